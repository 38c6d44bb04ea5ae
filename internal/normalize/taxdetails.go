package normalize

import (
	"regexp"

	"github.com/arjunv/invoice-organizer/internal/document"
)

// The four GST tax types, in reporting order
var taxTypes = []string{"cgst", "sgst", "igst", "cess"}

// TaxDetail is a rate/amount pair for one tax type
type TaxDetail struct {
	Rate   float64
	Amount float64
}

// TaxDetails extracts per-tax-type rate and amount values from the
// tree. For each tax type it looks for a "<type>...amount" key and a
// "<type>...rate" / "<type>...percentage" key; if either key is
// present an entry is emitted with the other side defaulted to 0.
// Tax types with neither key present are omitted entirely, so callers
// can only distinguish "no CGST" from "CGST of zero" by the entry's
// absence, not numerically.
func TaxDetails(root *document.Mapping) map[string]TaxDetail {
	details := make(map[string]TaxDetail)
	for _, taxType := range taxTypes {
		amountPatterns := []*regexp.Regexp{regexp.MustCompile(`(?i)` + taxType + `.*amount`)}
		ratePatterns := []*regexp.Regexp{regexp.MustCompile(`(?i)` + taxType + `.*rate|` + taxType + `.*percentage`)}

		amount, amountFound := FindValue(root, amountPatterns)
		rate, rateFound := FindValue(root, ratePatterns)

		if !amountFound && !rateFound {
			continue
		}
		details[taxType] = TaxDetail{
			Rate:   ParseAmount(rate),
			Amount: ParseAmount(amount),
		}
	}
	return details
}
