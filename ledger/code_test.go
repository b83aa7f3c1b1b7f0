package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/contaflow/ledgerhub/common"
)

func TestValidateAccountCode(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		level    int
		class    string
		wantKind Kind
	}{
		{name: "valid class", code: "1", level: 1, class: "1"},
		{name: "valid group", code: "11", level: 2, class: "1"},
		{name: "valid account", code: "1105", level: 3, class: "1"},
		{name: "valid subaccount", code: "110505", level: 4, class: "1"},
		{name: "valid expense account", code: "5105", level: 3, class: "5"},
		{name: "non numeric", code: "11A5", level: 3, class: "1", wantKind: KindInvalidAccountCode},
		{name: "empty code", code: "", level: 1, class: "1", wantKind: KindInvalidAccountCode},
		{name: "length does not match level", code: "110", level: 3, class: "1", wantKind: KindInvalidAccountCode},
		{name: "level out of range", code: "11050501", level: 5, class: "1", wantKind: KindInvalidAccountCode},
		{name: "unknown class", code: "7105", level: 3, class: "7", wantKind: KindInvalidAccountCode},
		{name: "class digit mismatch", code: "2105", level: 3, class: "1", wantKind: KindHierarchyMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAccountCode(tt.code, tt.level, tt.class)
			if tt.wantKind == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, IsKind(err, tt.wantKind), "got %v, want kind %s", err, tt.wantKind)
		})
	}
}

func TestValidateParentCode(t *testing.T) {
	assert.NoError(t, ValidateParentCode("1105", "11"))
	assert.NoError(t, ValidateParentCode("110505", "1105"))
	// no parent is legal for class-level accounts
	assert.NoError(t, ValidateParentCode("1", ""))

	// child must be strictly longer than the parent
	err := ValidateParentCode("1105", "1105")
	assert.True(t, IsKind(err, KindHierarchyMismatch))

	// child must start with the parent code
	err = ValidateParentCode("2105", "11")
	assert.True(t, IsKind(err, KindHierarchyMismatch))
}

func TestTypeForClass(t *testing.T) {
	asset, ok := TypeForClass("1")
	assert.True(t, ok)
	assert.Equal(t, ClassificationAsset, asset.Classification)
	assert.Equal(t, common.BalanceSideDebit, asset.NormalSide)
	assert.True(t, asset.IsBalanceSheet)

	income, ok := TypeForClass("4")
	assert.True(t, ok)
	assert.Equal(t, common.BalanceSideCredit, income.NormalSide)
	assert.True(t, income.IsIncomeStatement)

	_, ok = TypeForClass("9")
	assert.False(t, ok)
}
