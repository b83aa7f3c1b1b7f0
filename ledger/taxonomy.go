package ledger

import "github.com/contaflow/ledgerhub/common"

// Classification groups account types for reporting.
type Classification string

const (
	ClassificationAsset     Classification = "asset"
	ClassificationLiability Classification = "liability"
	ClassificationEquity    Classification = "equity"
	ClassificationIncome    Classification = "income"
	ClassificationExpense   Classification = "expense"
	ClassificationCost      Classification = "cost"
)

// AccountType is immutable reference data: the class digit an account code
// must start with, plus the normal balance side and statement placement.
type AccountType struct {
	Code              string
	Classification    Classification
	NormalSide        string
	IsBalanceSheet    bool
	IsIncomeStatement bool
}

var accountTypes = map[string]AccountType{
	common.AccountClassAsset: {
		Code:           common.AccountClassAsset,
		Classification: ClassificationAsset,
		NormalSide:     common.BalanceSideDebit,
		IsBalanceSheet: true,
	},
	common.AccountClassLiability: {
		Code:           common.AccountClassLiability,
		Classification: ClassificationLiability,
		NormalSide:     common.BalanceSideCredit,
		IsBalanceSheet: true,
	},
	common.AccountClassEquity: {
		Code:           common.AccountClassEquity,
		Classification: ClassificationEquity,
		NormalSide:     common.BalanceSideCredit,
		IsBalanceSheet: true,
	},
	common.AccountClassIncome: {
		Code:              common.AccountClassIncome,
		Classification:    ClassificationIncome,
		NormalSide:        common.BalanceSideCredit,
		IsIncomeStatement: true,
	},
	common.AccountClassExpense: {
		Code:              common.AccountClassExpense,
		Classification:    ClassificationExpense,
		NormalSide:        common.BalanceSideDebit,
		IsIncomeStatement: true,
	},
	common.AccountClassCost: {
		Code:              common.AccountClassCost,
		Classification:    ClassificationCost,
		NormalSide:        common.BalanceSideDebit,
		IsIncomeStatement: true,
	},
}

// TypeForClass returns the account type for a class digit ("1".."6").
func TypeForClass(class string) (AccountType, bool) {
	t, ok := accountTypes[class]
	return t, ok
}

// AllTypes returns the six account types ordered by class digit.
func AllTypes() []AccountType {
	classes := []string{
		common.AccountClassAsset,
		common.AccountClassLiability,
		common.AccountClassEquity,
		common.AccountClassIncome,
		common.AccountClassExpense,
		common.AccountClassCost,
	}
	types := make([]AccountType, 0, len(classes))
	for _, c := range classes {
		types = append(types, accountTypes[c])
	}
	return types
}
