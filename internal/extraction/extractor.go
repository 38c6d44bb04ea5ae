package extraction

import "strings"

// SourceKind classifies an uploaded file by what kind of extraction it
// needs.
type SourceKind int

const (
	// KindUnsupported means no extraction strategy exists for the file
	KindUnsupported SourceKind = iota
	// KindPDF is a rendered PDF document, extracted via the model
	KindPDF
	// KindSpreadsheet is a tabular source (xlsx, legacy xls or CSV)
	KindSpreadsheet
	// KindImage is a photographed or scanned document, extracted via the model
	KindImage
)

// DetectKind maps a MIME content type onto a SourceKind
func DetectKind(contentType string) SourceKind {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case strings.Contains(ct, "pdf"):
		return KindPDF
	case strings.Contains(ct, "excel"), strings.Contains(ct, "spreadsheet"), strings.Contains(ct, "csv"):
		return KindSpreadsheet
	case strings.Contains(ct, "image"):
		return KindImage
	default:
		return KindUnsupported
	}
}

// Extractor turns raw document bytes into an untyped document tree via
// an external document-understanding model. The returned tree has no
// guaranteed shape; downstream normalization deals with whatever the
// model produced.
type Extractor interface {
	// ExtractDocument analyzes an invoice document and returns the raw tree
	ExtractDocument(fileData []byte, contentType string) (any, error)
	// Close closes the extractor and releases resources
	Close() error
}
