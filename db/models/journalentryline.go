package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntryLine : one side of a journal entry. Owned by its entry;
// cascade-deleted with it while the entry is still a draft.
type JournalEntryLine struct {
	ID             int64           `bun:",pk,autoincrement"`
	JournalEntryID int64           `bun:",notnull"`
	JournalEntry   *JournalEntry   `bun:"rel:belongs-to,join:journal_entry_id=id"`
	AccountID      int64           `bun:",notnull"`
	Account        *Account        `bun:"rel:belongs-to,join:account_id=id"`
	Description    string          `bun:",nullzero"`
	Debit          decimal.Decimal `bun:"type:numeric(18,2),notnull"`
	Credit         decimal.Decimal `bun:"type:numeric(18,2),notnull"`
	CostCenter     string          `bun:",nullzero"`
	Project        string          `bun:",nullzero"`
	ThirdPartyID   string          `bun:",nullzero"`
	LineNumber     int             `bun:",notnull"`
	CreatedAt      time.Time       `bun:",nullzero,notnull,default:current_timestamp"`
}
