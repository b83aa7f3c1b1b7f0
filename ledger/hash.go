package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Fingerprint computes the tamper-evidence hash of a posted entry. It is a
// pure function of the immutable posted fields; recomputing it on an
// unchanged entry always reproduces the stored hash value.
//
// The input is rendered canonically (date as yyyy-mm-dd, totals with two
// decimals) so that equal values always hash equally regardless of the
// decimal representation they were parsed from.
func Fingerprint(companyID int64, number string, date time.Time, totalDebit, totalCredit decimal.Decimal) string {
	payload := fmt.Sprintf("%d|%s|%s|%s|%s",
		companyID,
		number,
		date.Format("2006-01-02"),
		totalDebit.StringFixed(2),
		totalCredit.StringFixed(2),
	)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
