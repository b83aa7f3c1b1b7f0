package ledger

import "strings"

// PUC code lengths by hierarchy level: class, group, account, subaccount.
var codeLengthByLevel = map[int]int{
	1: 1,
	2: 2,
	3: 4,
	4: 6,
}

const MaxAccountLevel = 4

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidateAccountCode checks the structural rules for a PUC account code:
// numeric only, length determined by level, leading digit matching the class
// of the declared account type.
func ValidateAccountCode(code string, level int, class string) error {
	if !isNumeric(code) {
		return E(KindInvalidAccountCode, "account code %q must contain digits only", code)
	}
	wantLen, ok := codeLengthByLevel[level]
	if !ok {
		return E(KindInvalidAccountCode, "account level %d is out of range 1..%d", level, MaxAccountLevel)
	}
	if len(code) != wantLen {
		return E(KindInvalidAccountCode, "account code %q has %d digits, level %d requires %d", code, len(code), level, wantLen)
	}
	if _, ok := TypeForClass(class); !ok {
		return E(KindInvalidAccountCode, "unknown account class %q", class)
	}
	if code[:1] != class {
		return E(KindHierarchyMismatch, "account code %q does not belong to class %q", code, class)
	}
	return nil
}

// ValidateParentCode checks that a child code is contained in its parent:
// the parent code must be a strict prefix of the child code.
func ValidateParentCode(code, parentCode string) error {
	if parentCode == "" {
		return nil
	}
	if !strings.HasPrefix(code, parentCode) || len(code) <= len(parentCode) {
		return E(KindHierarchyMismatch, "account code %q is not contained in parent %q", code, parentCode)
	}
	return nil
}
