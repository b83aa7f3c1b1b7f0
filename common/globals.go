package common

const (
	EntryStatusDraft     = "draft"
	EntryStatusPosted    = "posted"
	EntryStatusCancelled = "cancelled"

	PeriodStatusOpen   = "open"
	PeriodStatusClosed = "closed"

	BalanceSideDebit  = "debit"
	BalanceSideCredit = "credit"

	AccountClassAsset     = "1"
	AccountClassLiability = "2"
	AccountClassEquity    = "3"
	AccountClassIncome    = "4"
	AccountClassExpense   = "5"
	AccountClassCost      = "6"

	// DefaultCurrency is used when a draft entry is created without an
	// explicit currency.
	DefaultCurrency = "COP"
)
