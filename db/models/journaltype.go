package models

import "time"

// JournalType : per-tenant document series. NextNumber is only ever mutated
// by the sequence generator, with a single atomic UPDATE.
type JournalType struct {
	ID               int64     `bun:",pk,autoincrement"`
	CompanyID        int64     `bun:",notnull"`
	Company          *Company  `bun:"rel:belongs-to,join:company_id=id"`
	Code             string    `bun:",notnull"`
	Name             string    `bun:",notnull"`
	Prefix           string    `bun:",notnull"`
	NextNumber       int64     `bun:",notnull,default:1"`
	RequiresApproval bool      `bun:",notnull,default:false"`
	AutoPost         bool      `bun:",notnull,default:false"`
	IsActive         bool      `bun:",notnull,default:true"`
	CreatedAt        time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
