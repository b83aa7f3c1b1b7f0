package service

import (
	"context"

	"github.com/contaflow/ledgerhub/common"
	"github.com/contaflow/ledgerhub/db/models"
	"github.com/contaflow/ledgerhub/ledger"
)

// The company and period collaborators live outside the ledger core; these
// administrative calls exist so the service is operable on its own.

func (svc *LedgerService) CreateCompany(ctx context.Context, name, identification string) (*models.Company, error) {
	company := &models.Company{Name: name, Identification: identification}
	_, err := svc.DB.NewInsert().Model(company).Exec(ctx)
	if err != nil {
		return nil, err
	}
	return company, nil
}

func (svc *LedgerService) CreatePeriod(ctx context.Context, companyID int64, year, month int) (*models.Period, error) {
	if month < 1 || month > 12 {
		return nil, ledger.E(ledger.KindInvalidPeriod, "month %d is out of range", month)
	}
	period := &models.Period{
		CompanyID: companyID,
		Year:      year,
		Month:     month,
		Status:    common.PeriodStatusOpen,
	}
	_, err := svc.DB.NewInsert().Model(period).Exec(ctx)
	if err != nil {
		return nil, err
	}
	return period, nil
}

// ClosePeriod closes the period; entries can no longer be attached to it.
func (svc *LedgerService) ClosePeriod(ctx context.Context, companyID, periodID int64) (*models.Period, error) {
	period, err := svc.FindPeriod(ctx, companyID, periodID)
	if err != nil {
		return nil, err
	}
	period.Status = common.PeriodStatusClosed
	_, err = svc.DB.NewUpdate().Model(period).Column("status").WherePK().Exec(ctx)
	if err != nil {
		return nil, err
	}
	return period, nil
}
