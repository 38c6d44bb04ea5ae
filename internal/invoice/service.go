package invoice

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/arjunv/invoice-organizer/internal/document"
	"github.com/arjunv/invoice-organizer/internal/extraction"
	"github.com/arjunv/invoice-organizer/internal/normalize"
)

// IDGenerator generates unique IDs for entities
type IDGenerator interface {
	Generate() string
}

// defaultIDGenerator generates random UUIDs
type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return uuid.NewString()
}

// Service runs the per-file pipeline: dispatch by source kind, extract,
// validate, organize, persist. Every invocation is independent; there
// is no shared state between files beyond the database the results land
// in.
type Service struct {
	db           DB
	extractor    extraction.Extractor
	storage      Storage
	idGenerator  IDGenerator
	businessName string
}

// NewService creates a new Service with the default ID generator.
// businessName is stamped onto documents built from tabular sources,
// which carry no business identity of their own.
func NewService(db DB, extractor extraction.Extractor, storage Storage, businessName string) *Service {
	return &Service{
		db:           db,
		extractor:    extractor,
		storage:      storage,
		idGenerator:  &defaultIDGenerator{},
		businessName: businessName,
	}
}

// NewServiceWithDeps creates a new Service with a custom ID generator for testing
func NewServiceWithDeps(db DB, extractor extraction.Extractor, storage Storage, businessName string, idGen IDGenerator) *Service {
	s := NewService(db, extractor, storage, businessName)
	s.idGenerator = idGen
	return s
}

// sanitizeFilename cleans up a filename by removing special characters and truncating length
func sanitizeFilename(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	reg := regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	base = reg.ReplaceAllString(base, "")

	reg = regexp.MustCompile(`\s+`)
	base = reg.ReplaceAllString(base, " ")

	base = strings.TrimSpace(base)

	maxLen := 50
	if len(base) > maxLen {
		base = base[:maxLen]
	}

	if base == "" {
		base = "document"
	}

	return base + ext
}

// ProcessFile runs the full pipeline for one uploaded file and returns
// the entity bundle. Validation problems do not fail the file; they
// ride along in the bundle and flip its status to
// success-with-warnings. Unsupported source kinds, extraction failures
// and organizer failures are fatal for this file only.
func (s *Service) ProcessFile(filename string, data []byte, contentType string) (*Bundle, error) {
	kind := extraction.DetectKind(contentType)
	if kind == extraction.KindUnsupported {
		return nil, fmt.Errorf("unsupported source type: %s", contentType)
	}

	// Keep the original upload; remove it again if extraction fails.
	id := s.idGenerator.Generate()
	savedPath, err := s.storage.Save(fmt.Sprintf("%s_%s", id, sanitizeFilename(filename)), data)
	if err != nil {
		return nil, fmt.Errorf("saving file: %w", err)
	}

	doc, err := s.extract(kind, data, contentType)
	if err != nil {
		slog.Error("Failed to extract document",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		s.storage.Delete(savedPath)
		return nil, fmt.Errorf("extracting document: %w", err)
	}

	validationErrors, corrected := Validate(doc)

	invoices, products, customers, err := Organize(corrected, s.idGenerator.Generate)
	if err != nil {
		return nil, fmt.Errorf("organizing document: %w", err)
	}

	if err := s.persist(invoices, products, customers); err != nil {
		return nil, fmt.Errorf("saving entities: %w", err)
	}

	status := DispositionSuccess
	if len(validationErrors) > 0 {
		status = DispositionWarnings
	}

	return &Bundle{
		Invoices:         invoices,
		Products:         products,
		Customers:        customers,
		ValidationErrors: validationErrors,
		Status:           status,
	}, nil
}

// ProcessAll runs the pipeline over several files sequentially. Each
// file's outcome is recorded independently; a failure on one file never
// prevents the rest from being processed.
func (s *Service) ProcessAll(files []UploadFile) []FileResult {
	results := make([]FileResult, 0, len(files))
	for _, f := range files {
		bundle, err := s.ProcessFile(f.Filename, f.Data, f.ContentType)
		if err != nil {
			slog.Error("Error processing file", "filename", f.Filename, "error", err)
		}
		results = append(results, FileResult{Filename: f.Filename, Bundle: bundle, Err: err})
	}
	return results
}

// UploadFile is one file submitted for batch processing
type UploadFile struct {
	Filename    string
	Data        []byte
	ContentType string
}

func (s *Service) extract(kind extraction.SourceKind, data []byte, contentType string) (*document.Mapping, error) {
	if kind == extraction.KindSpreadsheet {
		var rows []*document.Mapping
		var err error
		if strings.Contains(strings.ToLower(contentType), "csv") {
			rows, err = extraction.ReadCSV(data)
		} else {
			rows, err = extraction.ReadWorkbook(data)
		}
		if err != nil {
			return nil, err
		}
		return extraction.BuildDocument(rows, s.businessName)
	}

	tree, err := s.extractor.ExtractDocument(data, contentType)
	if err != nil {
		return nil, err
	}
	return s.reshape(tree), nil
}

// reshape coerces whatever the model returned into a mapping carrying
// the standard top-level keys. Trees that already look standard pass
// through; a bare line-item array is wrapped; anything else goes
// through the document normalizer and is lowered back to standard keys.
func (s *Service) reshape(tree any) *document.Mapping {
	switch node := tree.(type) {
	case *document.Mapping:
		if _, hasNumber := node.Get("invoice_number"); hasNumber {
			return node
		}
		if _, hasItems := node.Get("products_services"); hasItems {
			return node
		}
		slog.Info("Model returned a divergent tree, normalizing")
		return normalize.Document(node).ToDocument()
	case []any:
		wrapped := document.NewMapping()
		wrapped.Set("products_services", node)
		return wrapped
	default:
		return nil
	}
}

func (s *Service) persist(invoices []*Invoice, products []*Product, customers []*Customer) error {
	for _, inv := range invoices {
		if err := s.db.SaveInvoice(inv); err != nil {
			return fmt.Errorf("saving invoice %s: %w", inv.ID, err)
		}
	}
	for _, p := range products {
		if err := s.db.SaveProduct(p); err != nil {
			return fmt.Errorf("saving product %s: %w", p.ID, err)
		}
	}
	for _, c := range customers {
		if err := s.db.SaveCustomer(c); err != nil {
			return fmt.Errorf("saving customer %s: %w", c.ID, err)
		}
	}
	return nil
}

// ListInvoices returns all persisted invoices
func (s *Service) ListInvoices() ([]*Invoice, error) {
	invoices, err := s.db.ListInvoices()
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	return invoices, nil
}

// ListProducts returns all persisted products
func (s *Service) ListProducts() ([]*Product, error) {
	products, err := s.db.ListProducts()
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return products, nil
}

// ListCustomers returns all persisted customers
func (s *Service) ListCustomers() ([]*Customer, error) {
	customers, err := s.db.ListCustomers()
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	return customers, nil
}
