package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/contaflow/ledgerhub/common"
)

// AccountRules is the subset of account flags the line validator needs.
// The service layer fills it from the resolved account row.
type AccountRules struct {
	IsDetail           bool
	RequiresCostCenter bool
	RequiresProject    bool
	RequiresThirdParty bool
}

// Line is one side of a journal entry. Exactly one of Debit/Credit is
// strictly positive.
type Line struct {
	AccountID    int64
	AccountCode  string
	Description  string
	Debit        decimal.Decimal
	Credit       decimal.Decimal
	CostCenter   string
	Project      string
	ThirdPartyID string
	LineNumber   int
}

var oneHundred = decimal.NewFromInt(100)

// hasCentScale reports whether d has at most two decimal places.
func hasCentScale(d decimal.Decimal) bool {
	scaled := d.Mul(oneHundred)
	return scaled.Equal(scaled.Floor())
}

// ValidateLine enforces the per-line invariants against the rules of the
// account the line references.
func ValidateLine(l Line, rules AccountRules) error {
	hasDebit := l.Debit.IsPositive()
	hasCredit := l.Credit.IsPositive()
	switch {
	case l.Debit.IsNegative() || l.Credit.IsNegative():
		return E(KindInvalidAmount, "line %d: amounts must be non-negative", l.LineNumber)
	case hasDebit && hasCredit:
		return E(KindConflictingAmounts, "line %d: debit and credit are both set", l.LineNumber)
	case !hasDebit && !hasCredit:
		return E(KindEmptyAmounts, "line %d: neither debit nor credit is set", l.LineNumber)
	}
	if !hasCentScale(l.Debit) || !hasCentScale(l.Credit) {
		return E(KindInvalidAmount, "line %d: amounts must have at most 2 decimal places", l.LineNumber)
	}
	if !rules.IsDetail {
		return E(KindNonDetailAccountUsed, "account %s does not accept movements", l.AccountCode)
	}
	if rules.RequiresCostCenter && l.CostCenter == "" {
		return E(KindMissingRequiredDimension, "account %s requires a cost center", l.AccountCode)
	}
	if rules.RequiresProject && l.Project == "" {
		return E(KindMissingRequiredDimension, "account %s requires a project", l.AccountCode)
	}
	if rules.RequiresThirdParty && l.ThirdPartyID == "" {
		return E(KindMissingRequiredDimension, "account %s requires a third party", l.AccountCode)
	}
	return nil
}

// Entry is the journal entry aggregate: a header plus its ordered lines.
// It holds no storage handle; the service layer loads it, mutates it here
// and persists the result in a single transaction.
type Entry struct {
	ID          int64
	CompanyID   int64
	Number      string
	Date        time.Time
	Currency    string
	Status      string
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	HashValue   string
	PostedBy    int64
	PostingDate time.Time
	Lines       []Line
}

// NewEntry returns a draft entry with zeroed totals.
func NewEntry(companyID int64, number string, date time.Time, currency string) *Entry {
	if currency == "" {
		currency = common.DefaultCurrency
	}
	return &Entry{
		CompanyID:   companyID,
		Number:      number,
		Date:        date,
		Currency:    currency,
		Status:      common.EntryStatusDraft,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
}

// AddLine validates the line, appends it with the next line number and
// recomputes the totals. Only legal while the entry is a draft.
func (e *Entry) AddLine(l Line, rules AccountRules) error {
	if e.Status != common.EntryStatusDraft {
		return E(KindNotDraft, "entry %s is %s, lines can only change on drafts", e.Number, e.Status)
	}
	if l.LineNumber == 0 {
		l.LineNumber = e.nextLineNumber()
	}
	if err := ValidateLine(l, rules); err != nil {
		return err
	}
	e.Lines = append(e.Lines, l)
	e.RecomputeTotals()
	return nil
}

// RemoveLine drops the line with the given line number and recomputes the
// totals. Only legal while the entry is a draft.
func (e *Entry) RemoveLine(lineNumber int) error {
	if e.Status != common.EntryStatusDraft {
		return E(KindNotDraft, "entry %s is %s, lines can only change on drafts", e.Number, e.Status)
	}
	for i, l := range e.Lines {
		if l.LineNumber == lineNumber {
			e.Lines = append(e.Lines[:i], e.Lines[i+1:]...)
			e.RecomputeTotals()
			return nil
		}
	}
	return E(KindNotFound, "entry %s has no line %d", e.Number, lineNumber)
}

func (e *Entry) nextLineNumber() int {
	max := 0
	for _, l := range e.Lines {
		if l.LineNumber > max {
			max = l.LineNumber
		}
	}
	return max + 1
}

// RecomputeTotals recalculates both totals from the current line set.
// Comparison is exact decimal equality, never float and never an epsilon.
func (e *Entry) RecomputeTotals() {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, l := range e.Lines {
		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
	}
	e.TotalDebit = totalDebit
	e.TotalCredit = totalCredit
}

// IsBalanced reports exact equality of the totals.
func (e *Entry) IsBalanced() bool {
	return e.TotalDebit.Equal(e.TotalCredit)
}

// Post transitions the draft to its terminal posted state: it stamps the
// posting date and actor and computes the integrity hash. A failed Post
// leaves the entry unchanged.
func (e *Entry) Post(actor int64, now time.Time) error {
	if e.Status != common.EntryStatusDraft {
		if e.Status == common.EntryStatusPosted {
			return E(KindAlreadyPosted, "entry %s is already posted", e.Number)
		}
		return E(KindNotDraft, "entry %s is %s and cannot be posted", e.Number, e.Status)
	}
	e.RecomputeTotals()
	if !e.IsBalanced() {
		return E(KindUnbalancedEntry, "entry %s: debits (%s) != credits (%s)",
			e.Number, e.TotalDebit.StringFixed(2), e.TotalCredit.StringFixed(2))
	}
	if !e.TotalDebit.IsPositive() {
		return E(KindUnbalancedEntry, "entry %s has no movements", e.Number)
	}
	e.PostingDate = now
	e.PostedBy = actor
	e.HashValue = Fingerprint(e.CompanyID, e.Number, e.Date, e.TotalDebit, e.TotalCredit)
	e.Status = common.EntryStatusPosted
	return nil
}

// Cancel transitions a draft to its terminal cancelled state. Posted entries
// can never be cancelled.
func (e *Entry) Cancel() error {
	if e.Status == common.EntryStatusPosted {
		return E(KindAlreadyPosted, "entry %s is posted and cannot be cancelled", e.Number)
	}
	if e.Status == common.EntryStatusCancelled {
		return E(KindNotDraft, "entry %s is already cancelled", e.Number)
	}
	e.Status = common.EntryStatusCancelled
	return nil
}

// Deletable reports whether an external caller may delete the entry.
// Posted entries are never deletable through any interface.
func (e *Entry) Deletable() bool {
	return e.Status != common.EntryStatusPosted
}
