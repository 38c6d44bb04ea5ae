package invoice

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BoltDB", func() {
	var db *BoltDB

	BeforeEach(func() {
		var err error
		db, err = NewBoltDB(filepath.Join(GinkgoT().TempDir(), "test.db"))
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(db.Close()).To(Succeed())
	})

	Describe("invoices", func() {
		It("round-trips through the invoice bucket", func() {
			inv := &Invoice{
				ID:           "inv-1",
				SerialNumber: "INV-7",
				CustomerName: "Acme",
				ProductName:  "Ring",
				Quantity:     2,
				TotalAmount:  200,
				Date:         "2024-02-01",
				BusinessDetails: &BusinessDetails{
					Name:      "Gupta Jewellers",
					GSTNumber: "27X",
				},
				TaxDetails: &TaxDetails{IGSTAmount: 36},
			}
			Expect(db.SaveInvoice(inv)).To(Succeed())

			invoices, err := db.ListInvoices()
			Expect(err).NotTo(HaveOccurred())
			Expect(invoices).To(HaveLen(1))
			Expect(invoices[0]).To(Equal(inv))
		})

		It("overwrites on duplicate ID", func() {
			Expect(db.SaveInvoice(&Invoice{ID: "inv-1", SerialNumber: "INV-7"})).To(Succeed())
			Expect(db.SaveInvoice(&Invoice{ID: "inv-1", SerialNumber: "INV-8"})).To(Succeed())

			invoices, err := db.ListInvoices()
			Expect(err).NotTo(HaveOccurred())
			Expect(invoices).To(HaveLen(1))
			Expect(invoices[0].SerialNumber).To(Equal("INV-8"))
		})
	})

	Describe("products", func() {
		It("round-trips through the product bucket", func() {
			p := &Product{
				ID:           "prod-1",
				Name:         "Ring",
				Quantity:     2,
				UnitPrice:    100,
				Tax:          36,
				PriceWithTax: 200,
			}
			Expect(db.SaveProduct(p)).To(Succeed())

			products, err := db.ListProducts()
			Expect(err).NotTo(HaveOccurred())
			Expect(products).To(ConsistOf(p))
		})
	})

	Describe("customers", func() {
		It("round-trips through the customer bucket", func() {
			c := &Customer{
				ID:                  "cust-1",
				Name:                "Acme",
				PhoneNumber:         "12345",
				TotalPurchaseAmount: 700,
			}
			Expect(db.SaveCustomer(c)).To(Succeed())

			customers, err := db.ListCustomers()
			Expect(err).NotTo(HaveOccurred())
			Expect(customers).To(ConsistOf(c))
		})
	})

	It("lists empty collections as empty, not nil", func() {
		invoices, err := db.ListInvoices()
		Expect(err).NotTo(HaveOccurred())
		Expect(invoices).NotTo(BeNil())
		Expect(invoices).To(BeEmpty())
	})
})
