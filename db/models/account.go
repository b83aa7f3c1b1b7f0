package models

import "time"

// ChartOfAccounts : per-tenant container for custom accounts. Standard
// (shared) accounts belong to no chart.
type ChartOfAccounts struct {
	ID        int64     `bun:",pk,autoincrement"`
	CompanyID int64     `bun:",notnull,unique"`
	Company   *Company  `bun:"rel:belongs-to,join:company_id=id"`
	Name      string    `bun:",notnull"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// Account : one node of the PUC account tree. ChartOfAccountsID is null for
// shared standard accounts, set for tenant-custom accounts.
type Account struct {
	ID                 int64            `bun:",pk,autoincrement"`
	ChartOfAccountsID  int64            `bun:",nullzero"`
	ChartOfAccounts    *ChartOfAccounts `bun:"rel:belongs-to,join:chart_of_accounts_id=id"`
	ParentID           int64            `bun:",nullzero"`
	Parent             *Account         `bun:"rel:belongs-to,join:parent_id=id"`
	Code               string           `bun:",notnull"`
	Name               string           `bun:",notnull"`
	AccountClass       string           `bun:",notnull"`
	Level              int              `bun:",notnull"`
	IsDetail           bool             `bun:",notnull,default:false"`
	RequiresThirdParty bool             `bun:",notnull,default:false"`
	RequiresCostCenter bool             `bun:",notnull,default:false"`
	RequiresProject    bool             `bun:",notnull,default:false"`
	IsActive           bool             `bun:",notnull,default:true"`
	CreatedAt          time.Time        `bun:",nullzero,notnull,default:current_timestamp"`
}

// IsStandard reports whether the account is shared across tenants.
func (a *Account) IsStandard() bool {
	return a.ChartOfAccountsID == 0
}
