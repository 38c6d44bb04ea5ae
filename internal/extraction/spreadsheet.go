package extraction

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/arjunv/invoice-organizer/internal/document"
	"github.com/arjunv/invoice-organizer/internal/normalize"
)

// Column patterns for the export layout tabular sources use. Lookup
// goes through the pattern matcher so header variants ("Serial Number",
// "serial_no") still resolve.
var (
	serialColumnPatterns = normalize.Patterns(`serial`, `invoice.*no`)
	dateColumnPatterns   = normalize.Patterns(`date`)
	partyColumnPatterns  = normalize.Patterns(`party.*name`, `customer.*name`)
	netColumnPatterns    = normalize.Patterns(`net.*amount`)
	totalColumnPatterns  = normalize.Patterns(`total.*amount`, `total`)
	taxColumnPatterns    = normalize.Patterns(`tax.*amount`, `tax`)
)

// ReadWorkbook reads the first sheet of an Excel workbook and returns
// one mapping per data row, keyed by the header row's column names.
// Column order is preserved.
func ReadWorkbook(data []byte) ([]*document.Mapping, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}

	return rowsToMappings(rows), nil
}

// ReadCSV reads CSV data and returns one mapping per data row, keyed by
// the header row's column names.
func ReadCSV(data []byte) ([]*document.Mapping, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // ragged rows are common in exports

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	return rowsToMappings(rows), nil
}

func rowsToMappings(rows [][]string) []*document.Mapping {
	mappings := make([]*document.Mapping, 0)
	if len(rows) < 2 {
		return mappings
	}

	header := rows[0]
	for _, row := range rows[1:] {
		m := document.NewMapping()
		empty := true
		for i, name := range header {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			var cell string
			if i < len(row) {
				cell = strings.TrimSpace(row[i])
			}
			if cell != "" {
				empty = false
			}
			m.Set(name, cell)
		}
		if !empty {
			mappings = append(mappings, m)
		}
	}
	return mappings
}

// BuildDocument assembles a raw document tree from tabular rows. The
// first row supplies the document-level fields (invoice number, date,
// customer name, total); every row becomes one line item. Rows carry no
// distinct description column in this layout, so the party name stands
// in for the description and quantity is fixed at 1.
func BuildDocument(rows []*document.Mapping, businessName string) (*document.Mapping, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data rows in tabular source")
	}

	first := rows[0]

	business := document.NewMapping()
	business.Set("name", businessName)
	business.Set("address", "")
	business.Set("gst_number", "")
	business.Set("contact", "")

	customer := document.NewMapping()
	customer.Set("name", normalize.FindString(first, partyColumnPatterns))
	customer.Set("phone", "")
	customer.Set("email", "")
	customer.Set("address", "")

	items := make([]any, 0, len(rows))
	for _, row := range rows {
		item := document.NewMapping()
		item.Set("description", normalize.FindString(row, partyColumnPatterns))
		item.Set("quantity", float64(1))
		rate, _ := normalize.FindValue(row, netColumnPatterns)
		item.Set("rate", normalize.ParseAmount(rate))
		amount, _ := normalize.FindValue(row, totalColumnPatterns)
		item.Set("amount", normalize.ParseAmount(amount))
		tax, _ := normalize.FindValue(row, taxColumnPatterns)
		item.Set("tax", normalize.ParseAmount(tax))
		items = append(items, item)
	}

	doc := document.NewMapping()
	doc.Set("invoice_number", normalize.FindString(first, serialColumnPatterns))
	doc.Set("date", normalize.FindString(first, dateColumnPatterns))
	doc.Set("business_details", business)
	doc.Set("customer_details", customer)
	doc.Set("products_services", items)
	total, _ := normalize.FindValue(first, totalColumnPatterns)
	doc.Set("total", normalize.ParseAmount(total))

	return doc, nil
}
