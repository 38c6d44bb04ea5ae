package invoice

import (
	"fmt"

	"github.com/arjunv/invoice-organizer/internal/document"
	"github.com/arjunv/invoice-organizer/internal/normalize"
)

// Validate checks an extracted document for structural completeness and
// returns every violation found in a single pass; checks never
// short-circuit on the first failure. The input is not mutated; the
// returned corrected document is a copy that carries one repair: a line
// item with no amount but both rate and quantity gets
// amount = rate * quantity written onto it, so the organizer downstream
// sees a complete line. Re-validating the corrected document is a
// fixpoint: same errors, no further rewrites.
//
// A nil document short-circuits with a single generic error.
func Validate(doc *document.Mapping) ([]ValidationError, *document.Mapping) {
	errors := make([]ValidationError, 0)

	if doc == nil {
		errors = append(errors, ValidationError{Field: "data", Message: "No data provided"})
		return errors, nil
	}

	corrected := doc.Clone()

	if !truthy(get(corrected, "invoice_number")) {
		errors = append(errors, ValidationError{
			Field:   "invoice_number",
			Message: "Invoice number is required",
		})
	}
	if !truthy(get(corrected, "date")) {
		errors = append(errors, ValidationError{Field: "date", Message: "Date is required"})
	}

	if !truthy(get(getMapping(corrected, "business_details"), "name")) {
		errors = append(errors, ValidationError{
			Field:   "business_details.name",
			Message: "Business name is required",
		})
	}

	if !truthy(get(getMapping(corrected, "customer_details"), "name")) {
		errors = append(errors, ValidationError{
			Field:   "customer_details.name",
			Message: "Customer name is required",
		})
	}

	items, ok := get(corrected, "products_services").([]any)
	if !ok || len(items) == 0 {
		errors = append(errors, ValidationError{
			Field:   "products_services",
			Message: "At least one product is required",
		})
		return errors, corrected
	}

	for i, el := range items {
		item, _ := el.(*document.Mapping)
		path := func(field string) string {
			return fmt.Sprintf("products_services[%d].%s", i, field)
		}

		if !truthy(get(item, "description")) {
			errors = append(errors, ValidationError{
				Field:   path("description"),
				Message: "Product description is required",
			})
		}
		if !truthy(get(item, "quantity")) {
			errors = append(errors, ValidationError{
				Field:   path("quantity"),
				Message: "Product quantity is required",
			})
		}
		if item != nil && !truthy(get(item, "amount")) && truthy(get(item, "rate")) && truthy(get(item, "quantity")) {
			rate := normalize.ParseAmount(get(item, "rate"))
			quantity := normalize.ParseAmount(get(item, "quantity"))
			item.Set("amount", rate*quantity)
		}
		if !truthy(get(item, "amount")) && !truthy(get(item, "rate")) {
			errors = append(errors, ValidationError{
				Field:   path("amount"),
				Message: "Product amount or rate is required",
			})
		}
	}

	return errors, corrected
}

// get reads a key from a possibly-nil mapping
func get(m *document.Mapping, key string) any {
	if m == nil {
		return nil
	}
	v, _ := m.Get(key)
	return v
}

// getMapping reads a nested mapping from a possibly-nil mapping
func getMapping(m *document.Mapping, key string) *document.Mapping {
	child, _ := get(m, key).(*document.Mapping)
	return child
}

// truthy reports whether a tree value counts as present: absent values,
// empty strings, zero numbers, false and empty sequences do not.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case float64:
		return val != 0
	case bool:
		return val
	case []any:
		return len(val) > 0
	default:
		return true
	}
}
