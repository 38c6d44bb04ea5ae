package extraction

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"github.com/arjunv/invoice-organizer/internal/document"
)

func buildWorkbook(rows [][]any) []byte {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			Expect(err).NotTo(HaveOccurred())
			Expect(f.SetCellValue(sheet, name, cell)).To(Succeed())
		}
	}
	var buf bytes.Buffer
	Expect(f.Write(&buf)).To(Succeed())
	return buf.Bytes()
}

var _ = Describe("ReadWorkbook", func() {
	var (
		data []byte
		rows []*document.Mapping
		err  error
	)

	JustBeforeEach(func() {
		rows, err = ReadWorkbook(data)
	})

	When("reading a workbook with a header and data rows", func() {
		BeforeEach(func() {
			data = buildWorkbook([][]any{
				{"Serial Number", "Party Name", "Total Amount"},
				{"A1", "Acme", "100.00"},
				{"A1", "Acme", "250.50"},
			})
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should return one mapping per data row", func() {
			Expect(rows).To(HaveLen(2))
		})

		It("should key cells by the header columns in order", func() {
			Expect(rows[0].Keys()).To(Equal([]string{"Serial Number", "Party Name", "Total Amount"}))
			v, _ := rows[0].Get("Party Name")
			Expect(v).To(Equal("Acme"))
		})
	})

	When("the bytes are not a workbook", func() {
		BeforeEach(func() {
			data = []byte("not a workbook")
		})

		It("returns the error", func() {
			Expect(err).To(HaveOccurred())
		})
	})
})

var _ = Describe("ReadCSV", func() {
	var (
		data []byte
		rows []*document.Mapping
		err  error
	)

	JustBeforeEach(func() {
		rows, err = ReadCSV(data)
	})

	When("reading csv data", func() {
		BeforeEach(func() {
			data = []byte("Serial Number,Party Name,Total Amount\nA1,Acme,100.00\n")
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should return the data rows", func() {
			Expect(rows).To(HaveLen(1))
			v, _ := rows[0].Get("Total Amount")
			Expect(v).To(Equal("100.00"))
		})
	})

	When("a row is ragged", func() {
		BeforeEach(func() {
			data = []byte("A,B,C\n1,2\n")
		})

		It("should pad the missing cells", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			v, _ := rows[0].Get("C")
			Expect(v).To(Equal(""))
		})
	})

	When("the file has only a header", func() {
		BeforeEach(func() {
			data = []byte("A,B,C\n")
		})

		It("should return no rows", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(BeEmpty())
		})
	})
})

var _ = Describe("BuildDocument", func() {
	var (
		rows []*document.Mapping
		doc  *document.Mapping
		err  error
	)

	JustBeforeEach(func() {
		doc, err = BuildDocument(rows, "Sharma Traders")
	})

	When("building from export rows", func() {
		BeforeEach(func() {
			row := document.NewMapping()
			row.Set("Serial Number", "A1")
			row.Set("Date", "2024-03-01")
			row.Set("Party Name", "Acme")
			row.Set("Net Amount", "90.00")
			row.Set("Tax Amount", "10.00")
			row.Set("Total Amount", "100.00")
			rows = []*document.Mapping{row}
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should take document fields from the first row", func() {
			number, _ := doc.Get("invoice_number")
			Expect(number).To(Equal("A1"))
			date, _ := doc.Get("date")
			Expect(date).To(Equal("2024-03-01"))
			total, _ := doc.Get("total")
			Expect(total).To(Equal(100.0))
		})

		It("should stamp the configured business name", func() {
			business, _ := doc.Get("business_details")
			name, _ := business.(*document.Mapping).Get("name")
			Expect(name).To(Equal("Sharma Traders"))
		})

		It("should use the party name as the customer", func() {
			customer, _ := doc.Get("customer_details")
			name, _ := customer.(*document.Mapping).Get("name")
			Expect(name).To(Equal("Acme"))
		})

		It("should make every row a line item", func() {
			items, _ := doc.Get("products_services")
			Expect(items.([]any)).To(HaveLen(1))
			item := items.([]any)[0].(*document.Mapping)
			quantity, _ := item.Get("quantity")
			Expect(quantity).To(Equal(1.0))
			rate, _ := item.Get("rate")
			Expect(rate).To(Equal(90.0))
			amount, _ := item.Get("amount")
			Expect(amount).To(Equal(100.0))
			tax, _ := item.Get("tax")
			Expect(tax).To(Equal(10.0))
		})
	})

	When("there are no rows", func() {
		BeforeEach(func() {
			rows = nil
		})

		It("returns the error", func() {
			Expect(err).To(HaveOccurred())
		})
	})
})
