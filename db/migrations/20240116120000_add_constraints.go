package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {

		if db.Dialect().Name().String() != "pg" {
			fmt.Printf("\033[1;31m%s\033[0m", "You are not using PostgreSQL. DB level checks can not be enabled!\n")
			return nil
		}
		sql := `
			-- document numbers are unique per tenant
				ALTER TABLE journal_entries
				ADD CONSTRAINT journal_entries_company_number_key
				UNIQUE (company_id, number);

			-- a line carries exactly one non-negative side
				ALTER TABLE journal_entry_lines
				ADD CONSTRAINT check_amounts_non_negative
				CHECK (debit >= 0 AND credit >= 0);
				ALTER TABLE journal_entry_lines
				ADD CONSTRAINT check_single_side
				CHECK (NOT (debit > 0 AND credit > 0));

			-- account codes: unique globally among standard accounts,
			-- unique per chart among custom accounts
				CREATE UNIQUE INDEX accounts_standard_code_key
				ON accounts (code) WHERE chart_of_accounts_id IS NULL;
				CREATE UNIQUE INDEX accounts_custom_code_key
				ON accounts (chart_of_accounts_id, code)
				WHERE chart_of_accounts_id IS NOT NULL;

			-- lines of a non-draft entry are frozen at the storage level too
				CREATE OR REPLACE FUNCTION check_entry_is_draft()
					RETURNS TRIGGER AS $$
				DECLARE
					entry_status VARCHAR;
					entry_id BIGINT;
				BEGIN
					IF TG_OP = 'DELETE' THEN
						entry_id := OLD.journal_entry_id;
					ELSE
						entry_id := NEW.journal_entry_id;
					END IF;

					SELECT INTO entry_status status
					FROM journal_entries
					WHERE id = entry_id;

					-- cancelled entries may still be purged together with
					-- their lines; everything else requires a draft
					IF TG_OP = 'DELETE' AND entry_status IN ('draft', 'cancelled') THEN
						RETURN OLD;
					END IF;

					IF entry_status IS DISTINCT FROM 'draft'
					THEN
						RAISE EXCEPTION 'entry is not a draft [journal_entry_id:%] [status:%]',
						entry_id,
						entry_status;
					END IF;

					IF TG_OP = 'DELETE' THEN
						RETURN OLD;
					END IF;
					RETURN NEW;
				END;
				$$ LANGUAGE plpgsql;
				CREATE TRIGGER check_entry_is_draft
				BEFORE INSERT OR UPDATE OR DELETE ON journal_entry_lines
				FOR EACH ROW EXECUTE PROCEDURE check_entry_is_draft();
		`
		if _, err := db.Exec(sql); err != nil {
			return err
		}
		return nil
	}, nil)
}
