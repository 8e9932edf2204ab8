// Package store wraps the embedded bbolt database behind per-collection
// accessors. Documents are opaque JSON blobs keyed by string IDs; one
// bucket per entity collection, all created when the store is opened.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	// ErrNoDocument is returned when a lookup or delete misses.
	ErrNoDocument = errors.New("store: document not found")
	// ErrDuplicateKey is returned when an insert hits an existing key.
	ErrDuplicateKey = errors.New("store: duplicate key")
)

// Collections enumerates every entity bucket the application uses.
var Collections = []string{
	"students",
	"classes",
	"sessions",
	"payment_categories",
	"enrollments",
	"invoices",
	"payments",
	"expenses",
}

const fileName = "school.db"

// Store owns the bbolt handle. Individual calls are atomic; multi-document
// writes that must commit as a unit go through Update.
type Store struct {
	db      *bolt.DB
	observe func(collection, operation string, d time.Duration)
}

// Open creates the data directory on demand and opens the database file,
// ensuring every collection bucket exists.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := bolt.Open(filepath.Join(dir, fileName), 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range Collections {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close releases the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// SetObserver installs a callback timing every collection operation.
// Passing nil removes the callback.
func (s *Store) SetObserver(fn func(collection, operation string, d time.Duration)) {
	s.observe = fn
}

func (s *Store) observeOp(collection, operation string, start time.Time) {
	if s.observe != nil {
		s.observe(collection, operation, time.Since(start))
	}
}

// View runs fn in a read-only transaction.
func (s *Store) View(fn func(tx *Tx) error) error {
	return s.db.View(func(btx *bolt.Tx) error {
		return fn(&Tx{btx: btx})
	})
}

// Update runs fn in a read-write transaction; all writes inside fn commit
// or roll back as a unit.
func (s *Store) Update(fn func(tx *Tx) error) error {
	return s.db.Update(func(btx *bolt.Tx) error {
		return fn(&Tx{btx: btx})
	})
}

// Collection returns an accessor bound to a named bucket.
func (s *Store) Collection(name string) *Collection {
	return &Collection{store: s, name: name}
}

// Tx exposes collection buckets inside a transaction.
type Tx struct {
	btx *bolt.Tx
}

// Bucket returns the named bucket accessor. The bucket must be one of
// Collections; Open guarantees it exists.
func (t *Tx) Bucket(name string) *Bucket {
	return &Bucket{b: t.btx.Bucket([]byte(name))}
}

// Bucket wraps a bolt bucket with string keys.
type Bucket struct {
	b *bolt.Bucket
}

// Get returns the document for key, or nil when absent. The returned
// slice is only valid for the duration of the transaction.
func (b *Bucket) Get(key string) []byte {
	return b.b.Get([]byte(key))
}

// Put writes a document, overwriting any existing one.
func (b *Bucket) Put(key string, doc []byte) error {
	return b.b.Put([]byte(key), doc)
}

// Insert writes a document, failing with ErrDuplicateKey if the key exists.
func (b *Bucket) Insert(key string, doc []byte) error {
	if b.b.Get([]byte(key)) != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, key)
	}
	return b.b.Put([]byte(key), doc)
}

// Delete removes a document, failing with ErrNoDocument if absent.
func (b *Bucket) Delete(key string) error {
	if b.b.Get([]byte(key)) == nil {
		return fmt.Errorf("%w: %s", ErrNoDocument, key)
	}
	return b.b.Delete([]byte(key))
}

// NextSequence returns the bucket's monotonic counter, used for numeric
// primary keys. Never derived from wall-clock time.
func (b *Bucket) NextSequence() (uint64, error) {
	return b.b.NextSequence()
}

// ForEach visits every document in the bucket. The doc slice is only
// valid for the duration of the callback.
func (b *Bucket) ForEach(fn func(key string, doc []byte) error) error {
	return b.b.ForEach(func(k, v []byte) error {
		return fn(string(k), v)
	})
}

// Collection provides single-call operations on one bucket, each in its
// own transaction.
type Collection struct {
	store *Store
	name  string
}

// Name returns the collection's bucket name.
func (c *Collection) Name() string {
	return c.name
}

// Get fetches a document copy by key.
func (c *Collection) Get(key string) ([]byte, error) {
	defer c.store.observeOp(c.name, "get", time.Now())
	var doc []byte
	err := c.store.View(func(tx *Tx) error {
		v := tx.Bucket(c.name).Get(key)
		if v == nil {
			return fmt.Errorf("%w: %s/%s", ErrNoDocument, c.name, key)
		}
		doc = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Put writes a document, overwriting any existing one.
func (c *Collection) Put(key string, doc []byte) error {
	defer c.store.observeOp(c.name, "put", time.Now())
	return c.store.Update(func(tx *Tx) error {
		return tx.Bucket(c.name).Put(key, doc)
	})
}

// Insert writes a new document, failing on an existing key.
func (c *Collection) Insert(key string, doc []byte) error {
	defer c.store.observeOp(c.name, "insert", time.Now())
	return c.store.Update(func(tx *Tx) error {
		return tx.Bucket(c.name).Insert(key, doc)
	})
}

// Replace overwrites an existing document, failing with ErrNoDocument
// when the key is absent.
func (c *Collection) Replace(key string, doc []byte) error {
	defer c.store.observeOp(c.name, "replace", time.Now())
	return c.store.Update(func(tx *Tx) error {
		b := tx.Bucket(c.name)
		if b.Get(key) == nil {
			return fmt.Errorf("%w: %s/%s", ErrNoDocument, c.name, key)
		}
		return b.Put(key, doc)
	})
}

// Delete removes a document by key.
func (c *Collection) Delete(key string) error {
	defer c.store.observeOp(c.name, "delete", time.Now())
	return c.store.Update(func(tx *Tx) error {
		return tx.Bucket(c.name).Delete(key)
	})
}

// ForEach visits every document in the collection.
func (c *Collection) ForEach(fn func(key string, doc []byte) error) error {
	defer c.store.observeOp(c.name, "foreach", time.Now())
	return c.store.View(func(tx *Tx) error {
		return tx.Bucket(c.name).ForEach(fn)
	})
}

// Count returns the number of documents in the collection.
func (c *Collection) Count() (int, error) {
	count := 0
	err := c.ForEach(func(string, []byte) error {
		count++
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// NextID allocates the next numeric ID for the collection.
func (c *Collection) NextID() (uint64, error) {
	defer c.store.observeOp(c.name, "next_id", time.Now())
	var id uint64
	err := c.store.Update(func(tx *Tx) error {
		seq, err := tx.Bucket(c.name).NextSequence()
		if err != nil {
			return err
		}
		id = seq
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}
