package normalize

import (
	"github.com/arjunv/invoice-organizer/internal/document"
)

// itemKeyPatterns match the names sources give their line-item arrays
var itemKeyPatterns = Patterns(`items`, `products`, `services`, `line_items`)

// How deep the first-sequence fallback is willing to look
const sequenceSearchDepth = 6

// LineItem is one row of the document's products/services listing
type LineItem struct {
	Description string
	Quantity    float64
	Rate        float64
	Amount      float64
	TaxRate     float64
	TaxAmount   float64
	Discount    float64
	HSNCode     string
}

// LineItems locates the most plausible items array in the tree and maps
// each element to a LineItem. Search order: the tree itself if it is a
// sequence, then the first top-level key matching an item-like name
// with a sequence value, then the first sequence-valued property found
// anywhere via a bounded breadth-first scan. Never fails: an itemless
// tree yields an empty slice.
func LineItems(root any) []LineItem {
	items := findItemsSequence(root)
	out := make([]LineItem, 0, len(items))
	for _, el := range items {
		m, _ := el.(*document.Mapping)
		// Non-mapping elements still occupy a slot so the output count
		// always matches the source array length.
		out = append(out, LineItem{
			Description: FindString(m, Patterns(`description`, `item`, `particular`)),
			Quantity:    findAmount(m, Patterns(`qty`, `quantity`, `units`)),
			Rate:        findAmount(m, Patterns(`rate`, `price`, `unit.*price`)),
			Amount:      findAmount(m, Patterns(`amount`, `total`, `value`)),
			TaxRate:     findAmount(m, Patterns(`tax.*rate`, `gst.*rate`)),
			TaxAmount:   findAmount(m, Patterns(`tax.*amount`, `gst.*amount`)),
			Discount:    findAmount(m, Patterns(`discount`, `less`)),
			HSNCode:     FindString(m, Patterns(`hsn`, `sac`)),
		})
	}
	return out
}

func findItemsSequence(root any) []any {
	switch node := root.(type) {
	case []any:
		return node
	case *document.Mapping:
		for _, key := range node.Keys() {
			for _, pattern := range itemKeyPatterns {
				if pattern.MatchString(key) {
					if seq, ok := mustGet(node, key).([]any); ok {
						return seq
					}
				}
			}
		}
		if seq, ok := document.FirstSequence(node, sequenceSearchDepth); ok {
			return seq
		}
	}
	return nil
}

func mustGet(m *document.Mapping, key string) any {
	v, _ := m.Get(key)
	return v
}
