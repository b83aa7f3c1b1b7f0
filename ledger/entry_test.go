package ledger

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contaflow/ledgerhub/common"
)

var detailAccount = AccountRules{IsDetail: true}

func newTestEntry() *Entry {
	return NewEntry(1, "CE000001", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), "COP")
}

func debitLine(code string, amount string) Line {
	return Line{AccountCode: code, Debit: decimal.RequireFromString(amount)}
}

func creditLine(code string, amount string) Line {
	return Line{AccountCode: code, Credit: decimal.RequireFromString(amount)}
}

func TestValidateLine(t *testing.T) {
	tests := []struct {
		name     string
		line     Line
		rules    AccountRules
		wantKind Kind
	}{
		{name: "valid debit", line: debitLine("110505", "100"), rules: detailAccount},
		{name: "valid credit", line: creditLine("413505", "100.50"), rules: detailAccount},
		{name: "negative amount", line: debitLine("110505", "-5"), rules: detailAccount, wantKind: KindInvalidAmount},
		{name: "both sides set", line: Line{Debit: decimal.NewFromInt(1), Credit: decimal.NewFromInt(1)}, rules: detailAccount, wantKind: KindConflictingAmounts},
		{name: "neither side set", line: Line{}, rules: detailAccount, wantKind: KindEmptyAmounts},
		{name: "more than cent precision", line: debitLine("110505", "10.005"), rules: detailAccount, wantKind: KindInvalidAmount},
		{name: "non detail account", line: debitLine("1105", "100"), rules: AccountRules{IsDetail: false}, wantKind: KindNonDetailAccountUsed},
		{
			name:     "missing cost center",
			line:     debitLine("510505", "100"),
			rules:    AccountRules{IsDetail: true, RequiresCostCenter: true},
			wantKind: KindMissingRequiredDimension,
		},
		{
			name:     "missing third party",
			line:     debitLine("130505", "100"),
			rules:    AccountRules{IsDetail: true, RequiresThirdParty: true},
			wantKind: KindMissingRequiredDimension,
		},
		{
			name:  "dimensions present",
			line:  Line{Debit: decimal.NewFromInt(100), CostCenter: "CC01", ThirdPartyID: "900123456"},
			rules: AccountRules{IsDetail: true, RequiresCostCenter: true, RequiresThirdParty: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLine(tt.line, tt.rules)
			if tt.wantKind == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, IsKind(err, tt.wantKind), "got %v, want kind %s", err, tt.wantKind)
		})
	}
}

func TestAddLineNumbersAndTotals(t *testing.T) {
	e := newTestEntry()

	require.NoError(t, e.AddLine(debitLine("110505", "250.75"), detailAccount))
	require.NoError(t, e.AddLine(creditLine("413505", "250.75"), detailAccount))

	assert.Equal(t, 1, e.Lines[0].LineNumber)
	assert.Equal(t, 2, e.Lines[1].LineNumber)
	assert.Equal(t, "250.75", e.TotalDebit.StringFixed(2))
	assert.Equal(t, "250.75", e.TotalCredit.StringFixed(2))
	assert.True(t, e.IsBalanced())
}

func TestRemoveLineRenumbersNothingAndRecomputes(t *testing.T) {
	e := newTestEntry()
	require.NoError(t, e.AddLine(debitLine("110505", "100"), detailAccount))
	require.NoError(t, e.AddLine(debitLine("110510", "50"), detailAccount))
	require.NoError(t, e.AddLine(creditLine("413505", "150"), detailAccount))

	require.NoError(t, e.RemoveLine(2))
	assert.Len(t, e.Lines, 2)
	assert.Equal(t, "100.00", e.TotalDebit.StringFixed(2))
	assert.False(t, e.IsBalanced())

	// surviving line numbers are stable
	assert.Equal(t, 1, e.Lines[0].LineNumber)
	assert.Equal(t, 3, e.Lines[1].LineNumber)

	// a new line takes the next number after the highest ever used
	require.NoError(t, e.AddLine(debitLine("110510", "50"), detailAccount))
	assert.Equal(t, 4, e.Lines[2].LineNumber)

	err := e.RemoveLine(99)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestTotalsMatchLinesAfterRandomMutation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	e := newTestEntry()

	for i := 0; i < 200; i++ {
		if len(e.Lines) > 0 && rng.Intn(3) == 0 {
			victim := e.Lines[rng.Intn(len(e.Lines))].LineNumber
			require.NoError(t, e.RemoveLine(victim))
		} else {
			cents := decimal.New(int64(rng.Intn(1000000)+1), -2)
			l := Line{AccountCode: "110505"}
			if rng.Intn(2) == 0 {
				l.Debit = cents
			} else {
				l.Credit = cents
			}
			require.NoError(t, e.AddLine(l, detailAccount))
		}

		wantDebit := decimal.Zero
		wantCredit := decimal.Zero
		for _, l := range e.Lines {
			wantDebit = wantDebit.Add(l.Debit)
			wantCredit = wantCredit.Add(l.Credit)
		}
		require.True(t, e.TotalDebit.Equal(wantDebit), "iteration %d: debit total drifted", i)
		require.True(t, e.TotalCredit.Equal(wantCredit), "iteration %d: credit total drifted", i)
	}
}

func TestPostBalancedEntry(t *testing.T) {
	e := newTestEntry()
	require.NoError(t, e.AddLine(debitLine("110505", "1190"), detailAccount))
	require.NoError(t, e.AddLine(creditLine("413505", "1000"), detailAccount))
	require.NoError(t, e.AddLine(creditLine("240805", "190"), detailAccount))

	now := time.Date(2024, 3, 16, 9, 30, 0, 0, time.UTC)
	require.NoError(t, e.Post(7, now))

	assert.Equal(t, common.EntryStatusPosted, e.Status)
	assert.Equal(t, int64(7), e.PostedBy)
	assert.Equal(t, now, e.PostingDate)
	assert.Equal(t, Fingerprint(e.CompanyID, e.Number, e.Date, e.TotalDebit, e.TotalCredit), e.HashValue)

	// posting is terminal
	err := e.Post(7, now)
	assert.True(t, IsKind(err, KindAlreadyPosted))
	err = e.AddLine(debitLine("110505", "1"), detailAccount)
	assert.True(t, IsKind(err, KindNotDraft))
	err = e.RemoveLine(1)
	assert.True(t, IsKind(err, KindNotDraft))
	assert.False(t, e.Deletable())
}

func TestPostRejectsUnbalancedAndEmpty(t *testing.T) {
	e := newTestEntry()
	require.NoError(t, e.AddLine(debitLine("110505", "100"), detailAccount))
	require.NoError(t, e.AddLine(creditLine("413505", "99.99"), detailAccount))

	err := e.Post(1, time.Now())
	assert.True(t, IsKind(err, KindUnbalancedEntry))

	// a failed post leaves the draft untouched
	assert.Equal(t, common.EntryStatusDraft, e.Status)
	assert.Empty(t, e.HashValue)
	assert.Zero(t, e.PostedBy)
	assert.True(t, e.PostingDate.IsZero())

	empty := newTestEntry()
	err = empty.Post(1, time.Now())
	assert.True(t, IsKind(err, KindUnbalancedEntry))
	assert.Equal(t, common.EntryStatusDraft, empty.Status)
}

func TestCancel(t *testing.T) {
	e := newTestEntry()
	require.NoError(t, e.Cancel())
	assert.Equal(t, common.EntryStatusCancelled, e.Status)
	assert.True(t, e.Deletable())

	// cancelled is terminal
	err := e.Cancel()
	assert.True(t, IsKind(err, KindNotDraft))
	err = e.Post(1, time.Now())
	assert.True(t, IsKind(err, KindNotDraft))
	err = e.AddLine(debitLine("110505", "1"), detailAccount)
	assert.True(t, IsKind(err, KindNotDraft))

	posted := newTestEntry()
	require.NoError(t, posted.AddLine(debitLine("110505", "10"), detailAccount))
	require.NoError(t, posted.AddLine(creditLine("413505", "10"), detailAccount))
	require.NoError(t, posted.Post(1, time.Now()))
	err = posted.Cancel()
	assert.True(t, IsKind(err, KindAlreadyPosted))
}

func TestNewEntryDefaultsCurrency(t *testing.T) {
	e := NewEntry(1, "CE000001", time.Now(), "")
	assert.Equal(t, common.DefaultCurrency, e.Currency)
	assert.Equal(t, common.EntryStatusDraft, e.Status)
	assert.True(t, e.TotalDebit.IsZero())
	assert.True(t, e.TotalCredit.IsZero())
}
