package normalize

import (
	"regexp"
	"strconv"
)

var nonNumeric = regexp.MustCompile(`[^0-9.\-]+`)

// ParseAmount converts a monetary value of unknown type to a float64.
// Numbers pass through unchanged. Strings are stripped of everything
// except digits, decimal points and minus signs before parsing, so
// currency formatting ("$1,234.56", "Rs. 100") is tolerated. Anything
// unparseable, absent or non-numeric comes back as 0. Partial or
// garbled monetary text must not abort the pipeline.
func ParseAmount(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		cleaned := nonNumeric.ReplaceAllString(v, "")
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
