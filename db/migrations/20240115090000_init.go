package migrations

import (
	"context"

	"github.com/contaflow/ledgerhub/db/models"
	"github.com/uptrace/bun"
)

/*
	Since this init will reflect the latest model fields when run on a fresh db

make sure that when you add/remove columns in subsequent migrations
IfNotExists/IfExists is used, otherwise it's going to result in errors.
*/
func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {

		if _, err := db.NewCreateTable().Model((*models.Company)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Period)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.ChartOfAccounts)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.Account)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.JournalType)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.JournalEntry)(nil)).Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*models.JournalEntryLine)(nil)).Exec(ctx); err != nil {
			return err
		}

		return nil
	}, nil)
}
