package models

import "time"

// Company : tenant identity. Managed by an external administration module;
// the ledger core only reads it.
type Company struct {
	ID             int64     `bun:",pk,autoincrement"`
	Name           string    `bun:",notnull"`
	Identification string    `bun:",notnull,unique"`
	CreatedAt      time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
