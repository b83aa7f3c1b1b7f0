package service

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"

	"github.com/contaflow/ledgerhub/db/models"
	"github.com/contaflow/ledgerhub/ledger"
	"github.com/contaflow/ledgerhub/rabbitmq"
)

type LedgerService struct {
	Config         *Config
	DB             *bun.DB
	Logger         *lecho.Logger
	RabbitMQClient rabbitmq.Client
}

func (svc *LedgerService) FindCompany(ctx context.Context, companyID int64) (*models.Company, error) {
	var company models.Company

	err := svc.DB.NewSelect().Model(&company).Where("id = ?", companyID).Limit(1).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.E(ledger.KindNotFound, "company %d not found", companyID)
		}
		return nil, err
	}
	return &company, nil
}

func (svc *LedgerService) FindPeriod(ctx context.Context, companyID, periodID int64) (*models.Period, error) {
	var period models.Period

	err := svc.DB.NewSelect().Model(&period).Where("id = ? AND company_id = ?", periodID, companyID).Limit(1).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.E(ledger.KindNotFound, "period %d not found", periodID)
		}
		return nil, err
	}
	return &period, nil
}
