package invoice

// Entities produced by organizing one extracted document. Ownership
// transfers to the caller on return; the pipeline never mutates them
// afterwards.

// BusinessDetails describes the issuing business as found on the document
type BusinessDetails struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	GSTNumber string `json:"gst_number"`
	Contact   string `json:"contact"`
}

// TaxDetails is the document-level GST breakdown
type TaxDetails struct {
	IGSTPercentage float64 `json:"igst_percentage,omitempty"`
	IGSTAmount     float64 `json:"igst_amount,omitempty"`
	CGSTPercentage float64 `json:"cgst_percentage,omitempty"`
	CGSTAmount     float64 `json:"cgst_amount,omitempty"`
	SGSTPercentage float64 `json:"sgst_percentage,omitempty"`
	SGSTAmount     float64 `json:"sgst_amount,omitempty"`
}

// Invoice is one line of a processed document. A document with N line
// items produces N Invoice records sharing the same serial number,
// customer, date and business details: invoice rows are really
// invoice-line rows, denormalized for the consuming views.
type Invoice struct {
	ID              string           `json:"id"`
	SerialNumber    string           `json:"serialNumber"`
	CustomerName    string           `json:"customerName"`
	CustomerGST     string           `json:"customerGst,omitempty"`
	ProductName     string           `json:"productName"`
	Quantity        float64          `json:"quantity"`
	Tax             float64          `json:"tax"`
	TotalAmount     float64          `json:"totalAmount"`
	Date            string           `json:"date"`
	Discount        float64          `json:"discount,omitempty"`
	BusinessDetails *BusinessDetails `json:"businessDetails,omitempty"`
	TaxDetails      *TaxDetails      `json:"taxDetails,omitempty"`
}

// Product is the product-collection view of one line item.
// PriceWithTax is passed through verbatim from the source line item's
// amount, not recomputed from UnitPrice and Tax, so inconsistent source
// data stays visibly inconsistent.
type Product struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Quantity           float64 `json:"quantity"`
	UnitPrice          float64 `json:"unitPrice"`
	Tax                float64 `json:"tax"`
	PriceWithTax       float64 `json:"priceWithTax"`
	Discount           float64 `json:"discount"`
	DiscountPercentage float64 `json:"discountPercentage,omitempty"`
}

// Customer is emitted at most once per processed document.
// TotalPurchaseAmount comes from the document-level total, not a sum
// over line items.
type Customer struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	PhoneNumber         string  `json:"phoneNumber"`
	TotalPurchaseAmount float64 `json:"totalPurchaseAmount"`
	Email               string  `json:"email,omitempty"`
	Address             string  `json:"address,omitempty"`
	GSTNumber           string  `json:"gstNumber,omitempty"`
}

// ValidationError reports one missing or invalid required field. Field
// is a dotted path; array-element errors carry the element index, e.g.
// "products_services[2].description".
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Disposition is the terminal state of processing one file
type Disposition string

const (
	// DispositionSuccess means entities were produced with no validation errors
	DispositionSuccess Disposition = "success"
	// DispositionWarnings means entities were produced but validation found problems
	DispositionWarnings Disposition = "success-with-warnings"
)

// Bundle is the result of processing one file
type Bundle struct {
	Invoices         []*Invoice        `json:"invoices"`
	Products         []*Product        `json:"products"`
	Customers        []*Customer       `json:"customers"`
	ValidationErrors []ValidationError `json:"validationErrors"`
	Status           Disposition       `json:"status"`
}

// FileResult is one entry of a batch run: either a bundle or the error
// that stopped that file. One file's failure never blocks the rest.
type FileResult struct {
	Filename string
	Bundle   *Bundle
	Err      error
}
