package normalize

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/arjunv/invoice-organizer/internal/document"
)

func item(pairs ...any) *document.Mapping {
	m := document.NewMapping()
	for i := 0; i < len(pairs); i += 2 {
		m.Set(pairs[i].(string), pairs[i+1])
	}
	return m
}

var _ = Describe("LineItems", func() {
	var (
		root  any
		items []LineItem
	)

	JustBeforeEach(func() {
		items = LineItems(root)
	})

	When("the tree itself is a sequence", func() {
		BeforeEach(func() {
			root = []any{
				item("description", "Gold Ring", "quantity", 2.0, "rate", 500.0, "amount", 1000.0),
			}
		})

		It("should map it directly", func() {
			Expect(items).To(HaveLen(1))
			Expect(items[0].Description).To(Equal("Gold Ring"))
			Expect(items[0].Quantity).To(Equal(2.0))
			Expect(items[0].Rate).To(Equal(500.0))
			Expect(items[0].Amount).To(Equal(1000.0))
		})
	})

	When("an item-like key matches case-insensitively", func() {
		BeforeEach(func() {
			m := document.NewMapping()
			m.Set("Invoice No", "1")
			m.Set("Items", []any{item("description", "Pen", "qty", 3.0)})
			root = m
		})

		It("should locate the sequence", func() {
			Expect(items).To(HaveLen(1))
			Expect(items[0].Description).To(Equal("Pen"))
			Expect(items[0].Quantity).To(Equal(3.0))
		})
	})

	When("no item-like key exists but a sequence does", func() {
		BeforeEach(func() {
			nested := document.NewMapping()
			nested.Set("rows", []any{item("particulars", "Service Fee", "value", "250.00")})
			m := document.NewMapping()
			m.Set("header", "x")
			m.Set("body", nested)
			root = m
		})

		It("should fall back to the first sequence found", func() {
			Expect(items).To(HaveLen(1))
			Expect(items[0].Description).To(Equal("Service Fee"))
			Expect(items[0].Amount).To(Equal(250.0))
		})
	})

	When("the tree has no sequences", func() {
		BeforeEach(func() {
			m := document.NewMapping()
			m.Set("total", 10.0)
			root = m
		})

		It("should return an empty slice", func() {
			Expect(items).To(BeEmpty())
		})
	})

	When("an element is not a mapping", func() {
		BeforeEach(func() {
			root = []any{"stray text", item("description", "Real Item")}
		})

		It("should keep one output slot per element", func() {
			Expect(items).To(HaveLen(2))
			Expect(items[0].Description).To(Equal(""))
			Expect(items[1].Description).To(Equal("Real Item"))
		})
	})

	When("items carry tax, discount and HSN fields", func() {
		BeforeEach(func() {
			root = []any{item(
				"description", "Necklace",
				"quantity", "1",
				"gst_rate", 18.0,
				"gst_amount", "90.00",
				"discount", 25.0,
				"hsn_code", "7113",
			)}
		})

		It("should map every field", func() {
			Expect(items[0].Quantity).To(Equal(1.0))
			Expect(items[0].TaxRate).To(Equal(18.0))
			Expect(items[0].TaxAmount).To(Equal(90.0))
			Expect(items[0].Discount).To(Equal(25.0))
			Expect(items[0].HSNCode).To(Equal("7113"))
		})
	})
})
