package ledger

import (
	"errors"
	"fmt"
)

// Kind identifies a business-rule violation. Every expected failure of the
// ledger core is one of these; callers switch on the kind, not on message
// strings.
type Kind string

const (
	KindInvalidAccountCode       Kind = "invalid_account_code"
	KindHierarchyMismatch        Kind = "hierarchy_mismatch"
	KindDuplicateAccountCode     Kind = "duplicate_account_code"
	KindNonDetailAccountUsed     Kind = "non_detail_account_used"
	KindConflictingAmounts       Kind = "conflicting_amounts"
	KindEmptyAmounts             Kind = "empty_amounts"
	KindInvalidAmount            Kind = "invalid_amount"
	KindMissingRequiredDimension Kind = "missing_required_dimension"
	KindUnbalancedEntry          Kind = "unbalanced_entry"
	KindNotDraft                 Kind = "not_draft"
	KindAlreadyPosted            Kind = "already_posted"
	KindSequenceExhausted        Kind = "sequence_exhausted"
	KindClosedPeriod             Kind = "closed_period"
	KindInvalidPeriod            Kind = "invalid_period"
	KindNotFound                 Kind = "not_found"
)

// Error is a business-rule violation carrying its kind.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func E(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the business kind from err, or "" if err is not a ledger
// error (storage failures, programmer errors).
func KindOf(err error) Kind {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind
	}
	return ""
}

// IsKind reports whether err is a ledger error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
