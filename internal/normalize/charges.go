package normalize

import (
	"regexp"
	"strings"

	"github.com/arjunv/invoice-organizer/internal/document"
)

// chargePatterns match document keys that carry additional charges
var chargePatterns = Patterns(
	`shipping`,
	`freight`,
	`delivery`,
	`handling`,
	`processing`,
	`packaging`,
	`making.*charges`,
	`additional.*charges`,
	`service.*charge`,
	`debit.*card.*charges`,
)

var chargeNameSeparators = regexp.MustCompile(`[_\s]+`)

// Charges scans every top-level key against the charge patterns and
// collects matching values under a lowercase, underscore-joined form of
// the key. The stored name derives from the key alone, so a key that
// satisfies several patterns writes the same entry each time; distinct
// keys that normalize to the same name are last-writer-wins in key
// order.
func Charges(root *document.Mapping) map[string]float64 {
	charges := make(map[string]float64)
	if root == nil {
		return charges
	}
	for _, key := range root.Keys() {
		for _, pattern := range chargePatterns {
			if pattern.MatchString(key) {
				name := chargeNameSeparators.ReplaceAllString(strings.ToLower(key), "_")
				value, _ := root.Get(key)
				charges[name] = ParseAmount(value)
			}
		}
	}
	return charges
}
