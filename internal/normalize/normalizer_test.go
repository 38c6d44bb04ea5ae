package normalize

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/arjunv/invoice-organizer/internal/document"
)

var _ = Describe("Document", func() {
	var (
		root      *document.Mapping
		canonical *CanonicalInvoice
	)

	JustBeforeEach(func() {
		canonical = Document(root)
	})

	When("normalizing a tree with unfamiliar key names", func() {
		BeforeEach(func() {
			root = document.NewMapping()
			root.Set("Bill No", "B-42")
			root.Set("Invoice Date", "2024-02-01")
			root.Set("Buyer", "Acme Traders")
			root.Set("Seller", "Gupta Jewellers")
			root.Set("GSTIN", "27AAAAA0000A1Z5")
			root.Set("Grand Total", "5,900.00")
			root.Set("CGST Amount", "450.00")
			root.Set("Shipping Charges", 100.0)
			root.Set("Particulars", []any{
				item("description", "Gold Chain", "quantity", 1.0, "rate", 5000.0, "amount", 5000.0),
			})
		})

		It("should default the document type", func() {
			Expect(canonical.DocumentType).To(Equal("INVOICE"))
		})

		It("should extract metadata through the pattern tables", func() {
			Expect(canonical.Metadata.InvoiceNumber).To(Equal("B-42"))
			Expect(canonical.Metadata.Date).To(Equal("2024-02-01"))
		})

		It("should extract both parties", func() {
			Expect(canonical.Parties.Customer.Name).To(Equal("Acme Traders"))
			Expect(canonical.Parties.Customer.GSTNumber).To(Equal("27AAAAA0000A1Z5"))
			Expect(canonical.Parties.Business.Name).To(Equal("Gupta Jewellers"))
		})

		It("should locate line items without an item-named key", func() {
			Expect(canonical.LineItems).To(HaveLen(1))
			Expect(canonical.LineItems[0].Description).To(Equal("Gold Chain"))
		})

		It("should parse the totals", func() {
			Expect(canonical.Totals.GrandTotal).To(Equal(5900.0))
		})

		It("should pick up tax details and charges", func() {
			Expect(canonical.TaxDetails["cgst"].Amount).To(Equal(450.0))
			Expect(canonical.Charges["shipping_charges"]).To(Equal(100.0))
		})
	})

	When("normalizing an empty tree", func() {
		BeforeEach(func() {
			root = document.NewMapping()
		})

		It("should produce a zero-valued record rather than failing", func() {
			Expect(canonical.Metadata.InvoiceNumber).To(Equal(""))
			Expect(canonical.LineItems).To(BeEmpty())
			Expect(canonical.Totals.GrandTotal).To(Equal(0.0))
		})
	})
})

var _ = Describe("CanonicalInvoice.ToDocument", func() {
	It("lowers the canonical form onto the standard keys", func() {
		canonical := &CanonicalInvoice{
			DocumentType: "INVOICE",
			Metadata:     Metadata{InvoiceNumber: "B-42", Date: "2024-02-01"},
			Parties: Parties{
				Customer: Party{Name: "Acme Traders", GSTNumber: "27AAAAA0000A1Z5"},
				Business: Party{Name: "Gupta Jewellers"},
			},
			LineItems: []LineItem{
				{Description: "Gold Chain", Quantity: 1, Rate: 5000, Amount: 5000, TaxAmount: 450},
			},
			Totals:     Totals{GrandTotal: 5900},
			TaxDetails: map[string]TaxDetail{"cgst": {Rate: 9, Amount: 450}},
		}

		doc := canonical.ToDocument()

		number, _ := doc.Get("invoice_number")
		Expect(number).To(Equal("B-42"))

		customer, _ := doc.Get("customer_details")
		name, _ := customer.(*document.Mapping).Get("name")
		Expect(name).To(Equal("Acme Traders"))

		items, _ := doc.Get("products_services")
		Expect(items.([]any)).To(HaveLen(1))
		first := items.([]any)[0].(*document.Mapping)
		amount, _ := first.Get("amount")
		Expect(amount).To(Equal(5000.0))
		tax, _ := first.Get("tax")
		Expect(tax).To(Equal(450.0))

		total, _ := doc.Get("total")
		Expect(total).To(Equal(5900.0))

		taxDetails, _ := doc.Get("tax_details")
		cgstAmount, _ := taxDetails.(*document.Mapping).Get("cgst_amount")
		Expect(cgstAmount).To(Equal(450.0))
	})
})
