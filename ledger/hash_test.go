package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFingerprintDeterministic(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	total := decimal.RequireFromString("1190.00")

	first := Fingerprint(1, "CE000001", date, total, total)
	second := Fingerprint(1, "CE000001", date, total, total)
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)

	// equal values hash equally regardless of representation
	alias := decimal.RequireFromString("1190")
	assert.Equal(t, first, Fingerprint(1, "CE000001", date, alias, alias))

	// time-of-day does not leak into the date component
	later := time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, first, Fingerprint(1, "CE000001", later, total, total))
}

func TestFingerprintSensitivity(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	total := decimal.RequireFromString("1190.00")
	base := Fingerprint(1, "CE000001", date, total, total)

	other := total.Add(decimal.New(1, -2))
	assert.NotEqual(t, base, Fingerprint(2, "CE000001", date, total, total))
	assert.NotEqual(t, base, Fingerprint(1, "CE000002", date, total, total))
	assert.NotEqual(t, base, Fingerprint(1, "CE000001", date.AddDate(0, 0, 1), total, total))
	assert.NotEqual(t, base, Fingerprint(1, "CE000001", date, other, total))
	assert.NotEqual(t, base, Fingerprint(1, "CE000001", date, total, other))
}
