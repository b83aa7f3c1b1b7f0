package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"github.com/contaflow/ledgerhub/common"
	"github.com/contaflow/ledgerhub/db/models"
	"github.com/contaflow/ledgerhub/ledger"
)

type LineParams struct {
	AccountCode  string
	Description  string
	Debit        decimal.Decimal
	Credit       decimal.Decimal
	CostCenter   string
	Project      string
	ThirdPartyID string
}

type CreateEntryParams struct {
	CompanyID     int64
	JournalTypeID int64
	PeriodID      int64
	Date          time.Time
	Reference     string
	Description   string
	Currency      string
	Actor         int64
	// Lines may be supplied up front; with an auto-post journal type a
	// complete balanced set is posted in the same transaction.
	Lines []LineParams
}

// CreateEntry creates a draft journal entry. The document number is reserved
// inside the same transaction that inserts the entry, so a failed insert
// rolls the counter back and the series stays gap-free.
func (svc *LedgerService) CreateEntry(ctx context.Context, params CreateEntryParams) (*models.JournalEntry, error) {
	period, err := svc.FindPeriod(ctx, params.CompanyID, params.PeriodID)
	if err != nil {
		return nil, err
	}
	if period.Status != common.PeriodStatusOpen {
		return nil, ledger.E(ledger.KindClosedPeriod, "period %d/%02d is closed", period.Year, period.Month)
	}
	journalType, err := svc.FindJournalType(ctx, params.CompanyID, params.JournalTypeID)
	if err != nil {
		return nil, err
	}
	if !journalType.IsActive {
		return nil, ledger.E(ledger.KindNotFound, "journal type %s is inactive", journalType.Code)
	}

	currency := params.Currency
	if currency == "" {
		currency = common.DefaultCurrency
	}

	entry := &models.JournalEntry{
		CompanyID:     params.CompanyID,
		JournalTypeID: params.JournalTypeID,
		PeriodID:      params.PeriodID,
		Date:          params.Date,
		Reference:     params.Reference,
		Description:   params.Description,
		Currency:      currency,
		TotalDebit:    decimal.Zero,
		TotalCredit:   decimal.Zero,
		Status:        common.EntryStatusDraft,
		CreatedBy:     params.Actor,
	}

	err = svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		number, err := svc.nextNumber(ctx, tx, params.CompanyID, params.JournalTypeID)
		if err != nil {
			return err
		}
		entry.Number = number
		if _, err := tx.NewInsert().Model(entry).Exec(ctx); err != nil {
			return err
		}

		for _, lineParams := range params.Lines {
			if err := svc.addLineTx(ctx, tx, entry, lineParams); err != nil {
				return err
			}
		}
		if journalType.AutoPost && len(params.Lines) > 0 {
			if err := svc.postEntryTx(ctx, tx, entry, params.Actor); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if entry.Status == common.EntryStatusPosted {
		svc.publishEntryEvent(ctx, "entry.posted", entry)
	}
	return entry, nil
}

// lockEntry loads the entry header with its lines under FOR UPDATE of the
// header row, serializing line mutation against a concurrent post.
func (svc *LedgerService) lockEntry(ctx context.Context, tx bun.Tx, companyID, entryID int64) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	err := tx.NewSelect().Model(&entry).
		Where("journal_entry.id = ? AND journal_entry.company_id = ?", entryID, companyID).
		For("UPDATE OF journal_entry").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.E(ledger.KindNotFound, "entry %d not found", entryID)
		}
		return nil, err
	}
	err = tx.NewSelect().Model(&entry.Lines).
		Relation("Account").
		Where("journal_entry_id = ?", entry.ID).
		Order("line_number ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// toAggregate maps the stored rows into the in-memory aggregate where the
// invariants live.
func toAggregate(entry *models.JournalEntry) *ledger.Entry {
	aggregate := &ledger.Entry{
		ID:          entry.ID,
		CompanyID:   entry.CompanyID,
		Number:      entry.Number,
		Date:        entry.Date,
		Currency:    entry.Currency,
		Status:      entry.Status,
		TotalDebit:  entry.TotalDebit,
		TotalCredit: entry.TotalCredit,
		HashValue:   entry.HashValue,
		PostedBy:    entry.PostedBy,
		PostingDate: entry.PostingDate.Time,
	}
	for _, line := range entry.Lines {
		aggregateLine := ledger.Line{
			AccountID:    line.AccountID,
			Description:  line.Description,
			Debit:        line.Debit,
			Credit:       line.Credit,
			CostCenter:   line.CostCenter,
			Project:      line.Project,
			ThirdPartyID: line.ThirdPartyID,
			LineNumber:   line.LineNumber,
		}
		if line.Account != nil {
			aggregateLine.AccountCode = line.Account.Code
		}
		aggregate.Lines = append(aggregate.Lines, aggregateLine)
	}
	return aggregate
}

func accountRules(account *models.Account) ledger.AccountRules {
	return ledger.AccountRules{
		IsDetail:           account.IsDetail,
		RequiresCostCenter: account.RequiresCostCenter,
		RequiresProject:    account.RequiresProject,
		RequiresThirdParty: account.RequiresThirdParty,
	}
}

func (svc *LedgerService) addLineTx(ctx context.Context, tx bun.Tx, entry *models.JournalEntry, params LineParams) error {
	account, err := svc.ResolveDetailAccount(ctx, entry.CompanyID, params.AccountCode)
	if err != nil {
		return err
	}

	aggregate := toAggregate(entry)
	line := ledger.Line{
		AccountID:    account.ID,
		AccountCode:  account.Code,
		Description:  params.Description,
		Debit:        params.Debit,
		Credit:       params.Credit,
		CostCenter:   params.CostCenter,
		Project:      params.Project,
		ThirdPartyID: params.ThirdPartyID,
	}
	if err := aggregate.AddLine(line, accountRules(account)); err != nil {
		return err
	}
	added := aggregate.Lines[len(aggregate.Lines)-1]

	lineRow := &models.JournalEntryLine{
		JournalEntryID: entry.ID,
		AccountID:      account.ID,
		Description:    params.Description,
		Debit:          params.Debit,
		Credit:         params.Credit,
		CostCenter:     params.CostCenter,
		Project:        params.Project,
		ThirdPartyID:   params.ThirdPartyID,
		LineNumber:     added.LineNumber,
	}
	lineRow.Account = account
	if _, err := tx.NewInsert().Model(lineRow).Exec(ctx); err != nil {
		return err
	}
	entry.Lines = append(entry.Lines, lineRow)

	return svc.storeTotals(ctx, tx, entry, aggregate)
}

// storeTotals writes the recomputed totals of the aggregate back to the
// header row.
func (svc *LedgerService) storeTotals(ctx context.Context, tx bun.Tx, entry *models.JournalEntry, aggregate *ledger.Entry) error {
	entry.TotalDebit = aggregate.TotalDebit
	entry.TotalCredit = aggregate.TotalCredit
	entry.IsBalanced = aggregate.IsBalanced()
	_, err := tx.NewUpdate().Model(entry).
		Column("total_debit", "total_credit", "is_balanced").
		WherePK().
		Exec(ctx)
	return err
}

// AddLine appends a line to a draft entry and persists the new totals in the
// same transaction.
func (svc *LedgerService) AddLine(ctx context.Context, companyID, entryID int64, params LineParams) (*models.JournalEntry, error) {
	var entry *models.JournalEntry
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var err error
		entry, err = svc.lockEntry(ctx, tx, companyID, entryID)
		if err != nil {
			return err
		}
		if entry.Status != common.EntryStatusDraft {
			return ledger.E(ledger.KindNotDraft, "entry %s is %s, lines can only change on drafts", entry.Number, entry.Status)
		}
		return svc.addLineTx(ctx, tx, entry, params)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// RemoveLine removes the line with the given line number from a draft entry.
func (svc *LedgerService) RemoveLine(ctx context.Context, companyID, entryID int64, lineNumber int) (*models.JournalEntry, error) {
	var entry *models.JournalEntry
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var err error
		entry, err = svc.lockEntry(ctx, tx, companyID, entryID)
		if err != nil {
			return err
		}

		aggregate := toAggregate(entry)
		if err := aggregate.RemoveLine(lineNumber); err != nil {
			return err
		}

		res, err := tx.NewDelete().Model((*models.JournalEntryLine)(nil)).
			Where("journal_entry_id = ? AND line_number = ?", entry.ID, lineNumber).
			Exec(ctx)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ledger.E(ledger.KindNotFound, "entry %s has no line %d", entry.Number, lineNumber)
		}
		for i, line := range entry.Lines {
			if line.LineNumber == lineNumber {
				entry.Lines = append(entry.Lines[:i], entry.Lines[i+1:]...)
				break
			}
		}

		return svc.storeTotals(ctx, tx, entry, aggregate)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// FindEntry returns the entry with its lines and journal type for display.
func (svc *LedgerService) FindEntry(ctx context.Context, companyID, entryID int64) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	err := svc.DB.NewSelect().Model(&entry).
		Relation("JournalType").
		Relation("Lines", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("line_number ASC")
		}).
		Relation("Lines.Account").
		Where("journal_entry.id = ? AND journal_entry.company_id = ?", entryID, companyID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.E(ledger.KindNotFound, "entry %d not found", entryID)
		}
		return nil, err
	}
	return &entry, nil
}

func (svc *LedgerService) postEntryTx(ctx context.Context, tx bun.Tx, entry *models.JournalEntry, actor int64) error {
	aggregate := toAggregate(entry)
	if err := aggregate.Post(actor, time.Now()); err != nil {
		return err
	}

	entry.TotalDebit = aggregate.TotalDebit
	entry.TotalCredit = aggregate.TotalCredit
	entry.IsBalanced = true
	entry.Status = aggregate.Status
	entry.HashValue = aggregate.HashValue
	entry.PostedBy = aggregate.PostedBy
	entry.PostingDate = bun.NullTime{Time: aggregate.PostingDate}

	_, err := tx.NewUpdate().Model(entry).
		Column("total_debit", "total_credit", "is_balanced", "status", "hash_value", "posted_by", "posting_date").
		WherePK().
		Where("status = ?", common.EntryStatusDraft).
		Exec(ctx)
	return err
}

// PostEntry transitions a balanced draft to its terminal posted state.
// Totals, status and the integrity hash are written in one transaction; a
// failed post leaves the entry untouched.
func (svc *LedgerService) PostEntry(ctx context.Context, companyID, entryID, actor int64) (*models.JournalEntry, error) {
	var entry *models.JournalEntry
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var err error
		entry, err = svc.lockEntry(ctx, tx, companyID, entryID)
		if err != nil {
			return err
		}
		return svc.postEntryTx(ctx, tx, entry, actor)
	})
	if err != nil {
		return nil, err
	}

	svc.publishEntryEvent(ctx, "entry.posted", entry)
	return entry, nil
}

// CancelEntry moves a draft to its terminal cancelled state.
func (svc *LedgerService) CancelEntry(ctx context.Context, companyID, entryID int64) (*models.JournalEntry, error) {
	var entry *models.JournalEntry
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var err error
		entry, err = svc.lockEntry(ctx, tx, companyID, entryID)
		if err != nil {
			return err
		}

		aggregate := toAggregate(entry)
		if err := aggregate.Cancel(); err != nil {
			return err
		}
		entry.Status = aggregate.Status

		_, err = tx.NewUpdate().Model(entry).
			Column("status").
			WherePK().
			Where("status = ?", common.EntryStatusDraft).
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	svc.publishEntryEvent(ctx, "entry.cancelled", entry)
	return entry, nil
}

// DeleteEntry removes a draft or cancelled entry together with its lines.
// Posted entries are never deletable through any interface.
func (svc *LedgerService) DeleteEntry(ctx context.Context, companyID, entryID int64) error {
	return svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		entry, err := svc.lockEntry(ctx, tx, companyID, entryID)
		if err != nil {
			return err
		}
		aggregate := toAggregate(entry)
		if !aggregate.Deletable() {
			return ledger.E(ledger.KindAlreadyPosted, "entry %s is posted and cannot be deleted", entry.Number)
		}
		if _, err := tx.NewDelete().Model((*models.JournalEntryLine)(nil)).
			Where("journal_entry_id = ?", entry.ID).
			Exec(ctx); err != nil {
			return err
		}
		_, err = tx.NewDelete().Model(entry).WherePK().Exec(ctx)
		return err
	})
}

func (svc *LedgerService) publishEntryEvent(ctx context.Context, key string, entry *models.JournalEntry) {
	if svc.RabbitMQClient == nil {
		return
	}
	if err := svc.RabbitMQClient.PublishEntryEvent(ctx, key, entry); err != nil {
		svc.Logger.Errorf("failed to publish %s for entry %s: %v", key, entry.Number, err)
	}
}
