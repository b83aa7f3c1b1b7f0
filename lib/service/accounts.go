package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/contaflow/ledgerhub/db/models"
	"github.com/contaflow/ledgerhub/ledger"
)

type CreateAccountParams struct {
	CompanyID          int64 // 0 creates a shared standard account
	ParentCode         string
	Code               string
	Name               string
	AccountClass       string
	Level              int
	IsDetail           bool
	RequiresThirdParty bool
	RequiresCostCenter bool
	RequiresProject    bool
}

// CreateAccount validates the code structure against the PUC rules and the
// uniqueness scope (global for standard accounts, per chart for custom ones)
// and stores the account. Custom accounts are attached to the company's
// chart, which is created on first use.
func (svc *LedgerService) CreateAccount(ctx context.Context, params CreateAccountParams) (*models.Account, error) {
	if err := ledger.ValidateAccountCode(params.Code, params.Level, params.AccountClass); err != nil {
		return nil, err
	}

	account := &models.Account{
		Code:               params.Code,
		Name:               params.Name,
		AccountClass:       params.AccountClass,
		Level:              params.Level,
		IsDetail:           params.IsDetail,
		RequiresThirdParty: params.RequiresThirdParty,
		RequiresCostCenter: params.RequiresCostCenter,
		RequiresProject:    params.RequiresProject,
		IsActive:           true,
	}

	if params.CompanyID != 0 {
		chart, err := svc.chartFor(ctx, params.CompanyID)
		if err != nil {
			return nil, err
		}
		account.ChartOfAccountsID = chart.ID
	}

	if params.ParentCode != "" {
		if err := ledger.ValidateParentCode(params.Code, params.ParentCode); err != nil {
			return nil, err
		}
		parent, err := svc.findVisibleAccount(ctx, params.CompanyID, params.ParentCode)
		if err != nil {
			return nil, err
		}
		account.ParentID = parent.ID
	}

	if err := svc.checkCodeUnique(ctx, account); err != nil {
		return nil, err
	}

	_, err := svc.DB.NewInsert().Model(account).Exec(ctx)
	if err != nil {
		// the partial unique indexes are the last line of defense against
		// concurrent creation of the same code
		if strings.Contains(err.Error(), "accounts_standard_code_key") || strings.Contains(err.Error(), "accounts_custom_code_key") {
			return nil, ledger.E(ledger.KindDuplicateAccountCode, "account code %s already exists", account.Code)
		}
		return nil, err
	}
	return account, nil
}

func (svc *LedgerService) chartFor(ctx context.Context, companyID int64) (*models.ChartOfAccounts, error) {
	var chart models.ChartOfAccounts
	err := svc.DB.NewSelect().Model(&chart).Where("company_id = ?", companyID).Limit(1).Scan(ctx)
	if err == nil {
		return &chart, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}
	chart = models.ChartOfAccounts{CompanyID: companyID, Name: "custom"}
	if _, err := svc.DB.NewInsert().Model(&chart).Exec(ctx); err != nil {
		return nil, err
	}
	return &chart, nil
}

func (svc *LedgerService) checkCodeUnique(ctx context.Context, account *models.Account) error {
	query := svc.DB.NewSelect().Model((*models.Account)(nil)).Where("code = ?", account.Code)
	if account.IsStandard() {
		query = query.Where("chart_of_accounts_id IS NULL")
	} else {
		query = query.Where("chart_of_accounts_id = ?", account.ChartOfAccountsID)
	}
	exists, err := query.Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return ledger.E(ledger.KindDuplicateAccountCode, "account code %s already exists", account.Code)
	}
	return nil
}

// findVisibleAccount returns the account the company sees for a code: its
// own custom account if one overrides the code, otherwise the shared
// standard account.
func (svc *LedgerService) findVisibleAccount(ctx context.Context, companyID int64, code string) (*models.Account, error) {
	var accounts []models.Account

	query := svc.DB.NewSelect().Model(&accounts).Where("account.code = ?", code)
	if companyID != 0 {
		query = query.
			Join("LEFT JOIN chart_of_accounts AS chart ON chart.id = account.chart_of_accounts_id").
			Where("account.chart_of_accounts_id IS NULL OR chart.company_id = ?", companyID)
	} else {
		query = query.Where("account.chart_of_accounts_id IS NULL")
	}
	err := query.Scan(ctx)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, ledger.E(ledger.KindNotFound, "account %s not found", code)
	}
	// prefer the tenant's own override
	for i := range accounts {
		if !accounts[i].IsStandard() {
			return &accounts[i], nil
		}
	}
	return &accounts[0], nil
}

// ResolveDetailAccount returns the active detail account visible to the
// company under the given code.
func (svc *LedgerService) ResolveDetailAccount(ctx context.Context, companyID int64, code string) (*models.Account, error) {
	account, err := svc.findVisibleAccount(ctx, companyID, code)
	if err != nil {
		return nil, err
	}
	if !account.IsDetail {
		return nil, ledger.E(ledger.KindNonDetailAccountUsed, "account %s does not accept movements", code)
	}
	if !account.IsActive {
		return nil, ledger.E(ledger.KindNotFound, "account %s is inactive", code)
	}
	return account, nil
}

// FullCode walks the parent chain and returns the dotted full code, root
// first. Pure lookup, no side effects.
func (svc *LedgerService) FullCode(ctx context.Context, account *models.Account) (string, error) {
	parts := []string{account.Code}
	current := account
	for current.ParentID != 0 {
		parent := &models.Account{}
		err := svc.DB.NewSelect().Model(parent).Where("id = ?", current.ParentID).Limit(1).Scan(ctx)
		if err != nil {
			return "", err
		}
		parts = append([]string{parent.Code}, parts...)
		current = parent
	}
	return strings.Join(parts, "."), nil
}

// SetAccountActive toggles the only structural field that may change once
// posted lines reference the account.
func (svc *LedgerService) SetAccountActive(ctx context.Context, companyID int64, code string, active bool) (*models.Account, error) {
	account, err := svc.findVisibleAccount(ctx, companyID, code)
	if err != nil {
		return nil, err
	}
	account.IsActive = active
	_, err = svc.DB.NewUpdate().Model(account).Column("is_active").WherePK().Exec(ctx)
	if err != nil {
		return nil, err
	}
	return account, nil
}
