package normalize

import (
	"regexp"
	"sort"

	"github.com/arjunv/invoice-organizer/internal/document"
)

// Shared pattern tables for locating fields in trees whose key names
// vary per source. Order matters: the first matching key in the
// mapping's key order wins.
var (
	invoiceNumberPatterns = Patterns(`invoice.*no`, `bill.*no`, `ref.*no`)
	datePatterns          = Patterns(`date`, `issued.*on`, `invoice.*date`)
	customerNamePatterns  = Patterns(`customer.*name`, `bill.*to`, `consignee`, `buyer`)
	businessNamePatterns  = Patterns(`company.*name`, `seller`, `vendor`, `business.*name`)
	gstPatterns           = Patterns(`gst`, `gstin`, `tax.*id`)
	totalPatterns         = Patterns(`total`, `grand.*total`, `net.*amount`)
)

// CanonicalInvoice is the fixed-shape record assembled from a raw
// document tree of unknown layout.
type CanonicalInvoice struct {
	DocumentType string
	Metadata     Metadata
	Parties      Parties
	LineItems    []LineItem
	Charges      map[string]float64
	Totals       Totals
	TaxDetails   map[string]TaxDetail
}

// Metadata holds document-level identifiers. All fields are optional;
// absence surfaces as the empty string.
type Metadata struct {
	InvoiceNumber   string
	Date            string
	PlaceOfSupply   string
	ReferenceNumber string
}

// Parties holds the two sides of the transaction
type Parties struct {
	Customer Party
	Business Party
}

// Party describes either the customer or the issuing business
type Party struct {
	Name      string
	Contact   string
	Address   string
	GSTNumber string
}

// Totals holds document-level monetary summaries, defaulted to 0
type Totals struct {
	Subtotal   float64
	TaxTotal   float64
	GrandTotal float64
}

// Document assembles a CanonicalInvoice from a raw tree. Every field is
// extracted independently through the pattern tables, so a missing or
// misplaced field degrades that field alone rather than the whole
// record. Never fails: absent substructure yields zero values.
func Document(root *document.Mapping) *CanonicalInvoice {
	docType := FindString(root, Patterns(`type`, `document`))
	if docType == "" {
		docType = "INVOICE"
	}

	return &CanonicalInvoice{
		DocumentType: docType,
		Metadata: Metadata{
			InvoiceNumber:   FindString(root, invoiceNumberPatterns),
			Date:            FindString(root, datePatterns),
			PlaceOfSupply:   FindString(root, Patterns(`place.*supply`, `location`)),
			ReferenceNumber: FindString(root, Patterns(`ref`, `reference`)),
		},
		Parties: Parties{
			Customer: Party{
				Name:      FindString(root, customerNamePatterns),
				Contact:   FindString(root, Patterns(`phone`, `contact`, `mobile`)),
				Address:   FindString(root, Patterns(`address`, `location`)),
				GSTNumber: FindString(root, gstPatterns),
			},
			Business: Party{
				Name:      FindString(root, businessNamePatterns),
				Contact:   FindString(root, Patterns(`company.*phone`, `seller.*contact`)),
				Address:   FindString(root, Patterns(`company.*address`, `seller.*address`)),
				GSTNumber: FindString(root, Patterns(`company.*gst`, `seller.*gst`)),
			},
		},
		LineItems: LineItems(root),
		Charges:   Charges(root),
		Totals: Totals{
			Subtotal:   findAmount(root, Patterns(`subtotal`, `taxable.*amount`)),
			TaxTotal:   findAmount(root, Patterns(`tax.*total`, `total.*tax`)),
			GrandTotal: findAmount(root, totalPatterns),
		},
		TaxDetails: TaxDetails(root),
	}
}

func findAmount(m *document.Mapping, patterns []*regexp.Regexp) float64 {
	v, _ := FindValue(m, patterns)
	return ParseAmount(v)
}

// ToDocument lowers the canonical form back onto the standard raw keys
// consumed by the validator and organizer, so a structurally divergent
// model response can rejoin the normal pipeline path.
func (c *CanonicalInvoice) ToDocument() *document.Mapping {
	doc := document.NewMapping()
	doc.Set("document_type", c.DocumentType)
	doc.Set("invoice_number", c.Metadata.InvoiceNumber)
	doc.Set("date", c.Metadata.Date)
	doc.Set("place_of_supply", c.Metadata.PlaceOfSupply)
	doc.Set("reference_number", c.Metadata.ReferenceNumber)

	customer := document.NewMapping()
	customer.Set("name", c.Parties.Customer.Name)
	customer.Set("phone", c.Parties.Customer.Contact)
	customer.Set("address", c.Parties.Customer.Address)
	customer.Set("gst_number", c.Parties.Customer.GSTNumber)
	doc.Set("customer_details", customer)

	business := document.NewMapping()
	business.Set("name", c.Parties.Business.Name)
	business.Set("contact", c.Parties.Business.Contact)
	business.Set("address", c.Parties.Business.Address)
	business.Set("gst_number", c.Parties.Business.GSTNumber)
	doc.Set("business_details", business)

	items := make([]any, 0, len(c.LineItems))
	for _, li := range c.LineItems {
		item := document.NewMapping()
		item.Set("description", li.Description)
		item.Set("quantity", li.Quantity)
		item.Set("rate", li.Rate)
		if li.Amount != 0 {
			item.Set("amount", li.Amount)
		}
		item.Set("tax", li.TaxAmount)
		item.Set("discount_amount", li.Discount)
		if li.HSNCode != "" {
			item.Set("hsn_code", li.HSNCode)
		}
		items = append(items, item)
	}
	doc.Set("products_services", items)

	if len(c.Charges) > 0 {
		charges := document.NewMapping()
		names := make([]string, 0, len(c.Charges))
		for name := range c.Charges {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			charges.Set(name, c.Charges[name])
		}
		doc.Set("charges", charges)
	}

	doc.Set("subtotal", c.Totals.Subtotal)
	doc.Set("total", c.Totals.GrandTotal)

	if len(c.TaxDetails) > 0 {
		tax := document.NewMapping()
		for _, taxType := range taxTypes {
			detail, ok := c.TaxDetails[taxType]
			if !ok {
				continue
			}
			tax.Set(taxType+"_percentage", detail.Rate)
			tax.Set(taxType+"_amount", detail.Amount)
		}
		doc.Set("tax_details", tax)
	}

	return doc
}
