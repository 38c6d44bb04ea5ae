package invoice

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/arjunv/invoice-organizer/internal/document"
)

var _ = Describe("Organize", func() {
	var (
		doc       *document.Mapping
		invoices  []*Invoice
		products  []*Product
		customers []*Customer
		err       error
		nextID    int
	)

	newID := func() string {
		nextID++
		return fmt.Sprintf("id-%d", nextID)
	}

	JustBeforeEach(func() {
		nextID = 0
		invoices, products, customers, err = Organize(doc, newID)
	})

	When("the document is nil", func() {
		BeforeEach(func() {
			doc = nil
		})

		It("returns the error", func() {
			Expect(err).To(HaveOccurred())
		})
	})

	When("organizing a document with two line items", func() {
		BeforeEach(func() {
			doc = mapping(
				"invoice_number", "INV-7",
				"date", "2024-02-01",
				"business_details", mapping("name", "Gupta Jewellers", "gst_number", "27X", "address", "Mumbai", "contact", "999"),
				"customer_details", mapping("name", "Acme", "phone", "12345", "gst_number", "29Y", "email", "acme@example.com"),
				"products_services", []any{
					mapping("description", "Ring", "quantity", 2.0, "rate", 100.0, "amount", 200.0, "tax", 36.0),
					mapping("description", "Chain", "quantity", 1.0, "rate", 500.0, "amount", 500.0, "discount_amount", 50.0),
				},
				"total", "700.00",
				"tax_details", mapping("igst_percentage", 18.0, "igst_amount", 90.0),
			)
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should emit one invoice and one product per line item", func() {
			Expect(invoices).To(HaveLen(2))
			Expect(products).To(HaveLen(2))
		})

		It("should emit exactly one customer", func() {
			Expect(customers).To(HaveLen(1))
		})

		It("should share document fields across invoice rows", func() {
			for _, inv := range invoices {
				Expect(inv.SerialNumber).To(Equal("INV-7"))
				Expect(inv.CustomerName).To(Equal("Acme"))
				Expect(inv.Date).To(Equal("2024-02-01"))
				Expect(inv.BusinessDetails.Name).To(Equal("Gupta Jewellers"))
			}
		})

		It("should give every entity a distinct ID", func() {
			seen := map[string]bool{}
			for _, inv := range invoices {
				seen[inv.ID] = true
			}
			for _, p := range products {
				seen[p.ID] = true
			}
			for _, c := range customers {
				seen[c.ID] = true
			}
			Expect(seen).To(HaveLen(5))
		})

		It("should use the line item's own tax when present", func() {
			Expect(invoices[0].Tax).To(Equal(36.0))
			Expect(products[0].Tax).To(Equal(36.0))
		})

		It("should fall back to the document IGST amount when the item has no tax", func() {
			Expect(invoices[1].Tax).To(Equal(90.0))
			Expect(products[1].Tax).To(Equal(90.0))
		})

		It("should pass priceWithTax through from the item amount", func() {
			Expect(products[0].PriceWithTax).To(Equal(200.0))
			Expect(products[1].PriceWithTax).To(Equal(500.0))
		})

		It("should carry the discount", func() {
			Expect(invoices[1].Discount).To(Equal(50.0))
			Expect(products[1].Discount).To(Equal(50.0))
		})

		It("should take the customer total from the document, not the items", func() {
			Expect(customers[0].TotalPurchaseAmount).To(Equal(700.0))
			Expect(customers[0].Name).To(Equal("Acme"))
			Expect(customers[0].PhoneNumber).To(Equal("12345"))
			Expect(customers[0].Email).To(Equal("acme@example.com"))
			Expect(customers[0].GSTNumber).To(Equal("29Y"))
		})

		It("should attach the document tax breakdown to invoice rows", func() {
			Expect(invoices[0].TaxDetails.IGSTAmount).To(Equal(90.0))
			Expect(invoices[0].TaxDetails.IGSTPercentage).To(Equal(18.0))
		})
	})

	When("the document has no customer details", func() {
		BeforeEach(func() {
			doc = mapping(
				"invoice_number", "INV-8",
				"products_services", []any{
					mapping("description", "Ring", "quantity", 1.0, "amount", 100.0),
				},
			)
		})

		It("should emit no customers", func() {
			Expect(customers).To(BeEmpty())
		})

		It("should still emit invoices and products", func() {
			Expect(invoices).To(HaveLen(1))
			Expect(products).To(HaveLen(1))
		})

		It("should default the date to a non-empty value", func() {
			Expect(invoices[0].Date).NotTo(BeEmpty())
		})
	})

	When("the document has no line items", func() {
		BeforeEach(func() {
			doc = mapping(
				"invoice_number", "INV-9",
				"customer_details", mapping("name", "Acme"),
				"total", 100.0,
			)
		})

		It("should emit only the customer", func() {
			Expect(invoices).To(BeEmpty())
			Expect(products).To(BeEmpty())
			Expect(customers).To(HaveLen(1))
		})
	})
})
