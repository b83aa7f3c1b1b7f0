package models

import "time"

// Period : accounting period collaborator. Entries can only be attached to
// open periods; closing a period is an administrative action.
type Period struct {
	ID        int64     `bun:",pk,autoincrement"`
	CompanyID int64     `bun:",notnull"`
	Company   *Company  `bun:"rel:belongs-to,join:company_id=id"`
	Year      int       `bun:",notnull"`
	Month     int       `bun:",notnull"`
	Status    string    `bun:",notnull"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
