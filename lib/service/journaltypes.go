package service

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"

	"github.com/contaflow/ledgerhub/db/models"
	"github.com/contaflow/ledgerhub/ledger"
)

type CreateJournalTypeParams struct {
	CompanyID        int64
	Code             string
	Name             string
	Prefix           string
	RequiresApproval bool
	AutoPost         bool
}

func (svc *LedgerService) CreateJournalType(ctx context.Context, params CreateJournalTypeParams) (*models.JournalType, error) {
	journalType := &models.JournalType{
		CompanyID:        params.CompanyID,
		Code:             params.Code,
		Name:             params.Name,
		Prefix:           params.Prefix,
		NextNumber:       1,
		RequiresApproval: params.RequiresApproval,
		AutoPost:         params.AutoPost,
		IsActive:         true,
	}
	_, err := svc.DB.NewInsert().Model(journalType).Exec(ctx)
	if err != nil {
		return nil, err
	}
	return journalType, nil
}

func (svc *LedgerService) FindJournalType(ctx context.Context, companyID, journalTypeID int64) (*models.JournalType, error) {
	var journalType models.JournalType

	err := svc.DB.NewSelect().Model(&journalType).Where("id = ? AND company_id = ?", journalTypeID, companyID).Limit(1).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.E(ledger.KindNotFound, "journal type %d not found", journalTypeID)
		}
		return nil, err
	}
	return &journalType, nil
}

// NextNumber reserves the next document number for the journal type.
// The increment-and-read is a single UPDATE .. RETURNING statement so that
// concurrent callers can never observe the same counter value. If the
// counter row cannot be updated no number is invented; the caller gets the
// error and must not create an entry.
func (svc *LedgerService) NextNumber(ctx context.Context, companyID, journalTypeID int64) (string, error) {
	return svc.nextNumber(ctx, svc.DB, companyID, journalTypeID)
}

func (svc *LedgerService) nextNumber(ctx context.Context, idb bun.IDB, companyID, journalTypeID int64) (string, error) {
	var prefix string
	var assigned int64

	err := idb.NewUpdate().
		Model((*models.JournalType)(nil)).
		Set("next_number = next_number + 1").
		Where("id = ? AND company_id = ? AND is_active", journalTypeID, companyID).
		Returning("prefix, next_number - 1").
		Scan(ctx, &prefix, &assigned)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ledger.E(ledger.KindNotFound, "journal type %d not found", journalTypeID)
		}
		return "", ledger.E(ledger.KindSequenceExhausted, "sequence for journal type %d unavailable: %v", journalTypeID, err)
	}

	return ledger.FormatDocumentNumber(prefix, assigned)
}
