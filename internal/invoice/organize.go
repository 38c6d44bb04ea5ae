package invoice

import (
	"fmt"
	"time"

	"github.com/arjunv/invoice-organizer/internal/document"
	"github.com/arjunv/invoice-organizer/internal/normalize"
)

// Organize fans a validated (or merely extracted) document out into the
// three entity collections: one Invoice and one Product per line item,
// and at most one Customer per document. Every entity gets a fresh ID
// from newID. The caller gets either the complete triple or an error,
// never a partial result.
func Organize(doc *document.Mapping, newID func() string) ([]*Invoice, []*Product, []*Customer, error) {
	if doc == nil {
		return nil, nil, nil, fmt.Errorf("no document to organize")
	}

	invoices := make([]*Invoice, 0)
	products := make([]*Product, 0)
	customers := make([]*Customer, 0)

	customerDetails := getMapping(doc, "customer_details")
	taxDetails := getMapping(doc, "tax_details")
	business := organizeBusinessDetails(getMapping(doc, "business_details"))
	taxes := organizeTaxDetails(taxDetails)

	date := normalize.AsString(get(doc, "date"))
	if date == "" {
		date = time.Now().Format(time.RFC3339)
	}

	if items, ok := get(doc, "products_services").([]any); ok {
		for _, el := range items {
			item, _ := el.(*document.Mapping)

			// Line items without their own tax figure fall back to the
			// document-level IGST amount.
			tax := get(item, "tax")
			if !truthy(tax) {
				tax = get(taxDetails, "igst_amount")
			}

			invoices = append(invoices, &Invoice{
				ID:              newID(),
				SerialNumber:    normalize.AsString(get(doc, "invoice_number")),
				CustomerName:    normalize.AsString(get(customerDetails, "name")),
				CustomerGST:     normalize.AsString(get(customerDetails, "gst_number")),
				ProductName:     normalize.AsString(get(item, "description")),
				Quantity:        normalize.ParseAmount(get(item, "quantity")),
				Tax:             normalize.ParseAmount(tax),
				TotalAmount:     normalize.ParseAmount(get(item, "amount")),
				Date:            date,
				Discount:        normalize.ParseAmount(get(item, "discount_amount")),
				BusinessDetails: business,
				TaxDetails:      taxes,
			})

			products = append(products, &Product{
				ID:                 newID(),
				Name:               normalize.AsString(get(item, "description")),
				Quantity:           normalize.ParseAmount(get(item, "quantity")),
				UnitPrice:          normalize.ParseAmount(get(item, "rate")),
				Tax:                normalize.ParseAmount(tax),
				PriceWithTax:       normalize.ParseAmount(get(item, "amount")),
				Discount:           normalize.ParseAmount(get(item, "discount_amount")),
				DiscountPercentage: normalize.ParseAmount(get(item, "discount_percentage")),
			})
		}
	}

	if customerDetails != nil {
		customers = append(customers, &Customer{
			ID:                  newID(),
			Name:                normalize.AsString(get(customerDetails, "name")),
			PhoneNumber:         normalize.AsString(get(customerDetails, "phone")),
			TotalPurchaseAmount: normalize.ParseAmount(get(doc, "total")),
			Email:               normalize.AsString(get(customerDetails, "email")),
			Address:             normalize.AsString(get(customerDetails, "address")),
			GSTNumber:           normalize.AsString(get(customerDetails, "gst_number")),
		})
	}

	return invoices, products, customers, nil
}

func organizeBusinessDetails(m *document.Mapping) *BusinessDetails {
	if m == nil {
		return nil
	}
	return &BusinessDetails{
		Name:      normalize.AsString(get(m, "name")),
		Address:   normalize.AsString(get(m, "address")),
		GSTNumber: normalize.AsString(get(m, "gst_number")),
		Contact:   normalize.AsString(get(m, "contact")),
	}
}

func organizeTaxDetails(m *document.Mapping) *TaxDetails {
	if m == nil {
		return nil
	}
	return &TaxDetails{
		IGSTPercentage: normalize.ParseAmount(get(m, "igst_percentage")),
		IGSTAmount:     normalize.ParseAmount(get(m, "igst_amount")),
		CGSTPercentage: normalize.ParseAmount(get(m, "cgst_percentage")),
		CGSTAmount:     normalize.ParseAmount(get(m, "cgst_amount")),
		SGSTPercentage: normalize.ParseAmount(get(m, "sgst_percentage")),
		SGSTAmount:     normalize.ParseAmount(get(m, "sgst_amount")),
	}
}
