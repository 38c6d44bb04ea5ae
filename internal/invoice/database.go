package invoice

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const (
	invoiceBucketName  = "invoices"
	productBucketName  = "products"
	customerBucketName = "customers"
)

// DB defines the interface for database operations
type DB interface {
	// SaveInvoice saves an invoice to the database
	SaveInvoice(inv *Invoice) error

	// SaveProduct saves a product to the database
	SaveProduct(p *Product) error

	// SaveCustomer saves a customer to the database
	SaveCustomer(c *Customer) error

	// ListInvoices returns all invoices
	ListInvoices() ([]*Invoice, error)

	// ListProducts returns all products
	ListProducts() ([]*Product, error)

	// ListCustomers returns all customers
	ListCustomers() ([]*Customer, error)

	// Close closes the database connection
	Close() error
}

// BoltDB implements the DB interface using BoltDB
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB creates a new BoltDB instance
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{invoiceBucketName, productBucketName, customerBucketName} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltDB{db: db}, nil
}

func (b *BoltDB) put(bucket, id string, entity any) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(entity)
		if err != nil {
			return fmt.Errorf("marshaling entity: %w", err)
		}
		return tx.Bucket([]byte(bucket)).Put([]byte(id), data)
	})
}

// SaveInvoice saves an invoice to the database
func (b *BoltDB) SaveInvoice(inv *Invoice) error {
	return b.put(invoiceBucketName, inv.ID, inv)
}

// SaveProduct saves a product to the database
func (b *BoltDB) SaveProduct(p *Product) error {
	return b.put(productBucketName, p.ID, p)
}

// SaveCustomer saves a customer to the database
func (b *BoltDB) SaveCustomer(c *Customer) error {
	return b.put(customerBucketName, c.ID, c)
}

// ListInvoices returns all invoices
func (b *BoltDB) ListInvoices() ([]*Invoice, error) {
	invoices := make([]*Invoice, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(invoiceBucketName)).ForEach(func(k, v []byte) error {
			var inv Invoice
			if err := json.Unmarshal(v, &inv); err != nil {
				return fmt.Errorf("unmarshaling invoice: %w", err)
			}
			invoices = append(invoices, &inv)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// ListProducts returns all products
func (b *BoltDB) ListProducts() ([]*Product, error) {
	products := make([]*Product, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(productBucketName)).ForEach(func(k, v []byte) error {
			var p Product
			if err := json.Unmarshal(v, &p); err != nil {
				return fmt.Errorf("unmarshaling product: %w", err)
			}
			products = append(products, &p)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ListCustomers returns all customers
func (b *BoltDB) ListCustomers() ([]*Customer, error) {
	customers := make([]*Customer, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(customerBucketName)).ForEach(func(k, v []byte) error {
			var c Customer
			if err := json.Unmarshal(v, &c); err != nil {
				return fmt.Errorf("unmarshaling customer: %w", err)
			}
			customers = append(customers, &c)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return customers, nil
}

// Close closes the database connection
func (b *BoltDB) Close() error {
	return b.db.Close()
}
