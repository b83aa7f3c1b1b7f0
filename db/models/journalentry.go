package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// JournalEntry : journal entry header. Number is assigned once at creation
// and carries a unique (company_id, number) constraint; HashValue is empty
// until the entry is posted.
type JournalEntry struct {
	ID            int64               `bun:",pk,autoincrement"`
	CompanyID     int64               `bun:",notnull"`
	Company       *Company            `bun:"rel:belongs-to,join:company_id=id"`
	JournalTypeID int64               `bun:",notnull"`
	JournalType   *JournalType        `bun:"rel:belongs-to,join:journal_type_id=id"`
	PeriodID      int64               `bun:",notnull"`
	Period        *Period             `bun:"rel:belongs-to,join:period_id=id"`
	Number        string              `bun:",notnull"`
	Date          time.Time           `bun:",notnull"`
	Reference     string              `bun:",nullzero"`
	Description   string              `bun:",nullzero"`
	Currency      string              `bun:",notnull"`
	TotalDebit    decimal.Decimal     `bun:"type:numeric(18,2),notnull"`
	TotalCredit   decimal.Decimal     `bun:"type:numeric(18,2),notnull"`
	IsBalanced    bool                `bun:",notnull,default:false"`
	Status        string              `bun:",notnull"`
	HashValue     string              `bun:",nullzero"`
	CreatedBy     int64               `bun:",notnull"`
	PostedBy      int64               `bun:",nullzero"`
	PostingDate   bun.NullTime        `bun:",nullzero"`
	CreatedAt     time.Time           `bun:",nullzero,notnull,default:current_timestamp"`
	Lines         []*JournalEntryLine `bun:"rel:has-many,join:id=journal_entry_id"`
}
