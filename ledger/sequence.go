package ledger

import "fmt"

// maxSequence is the largest counter value the 6-digit document number
// format can carry.
const maxSequence = 999999

// FormatDocumentNumber renders a document number as prefix plus the
// zero-padded 6-digit counter value.
func FormatDocumentNumber(prefix string, n int64) (string, error) {
	if n < 1 || n > maxSequence {
		return "", E(KindSequenceExhausted, "sequence value %d is outside 1..%d", n, maxSequence)
	}
	return fmt.Sprintf("%s%06d", prefix, n), nil
}
