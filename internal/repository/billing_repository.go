package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abuzarban/school-admin/internal/models"
	"github.com/abuzarban/school-admin/internal/store"
)

// BillingRepository covers the multi-document billing writes that must
// commit as a unit: enrollment plus generated invoices, and bulk class
// invoice runs. Each method runs in a single store transaction so a
// failure partway leaves no partial state behind.
type BillingRepository struct {
	store *store.Store
}

// NewBillingRepository constructs a BillingRepository.
func NewBillingRepository(s *store.Store) *BillingRepository {
	return &BillingRepository{store: s}
}

// CreateEnrollmentWithInvoices persists the enrollment and one invoice
// per supplied template atomically, allocating IDs inside the
// transaction. The created invoices are returned with IDs assigned.
func (r *BillingRepository) CreateEnrollmentWithInvoices(ctx context.Context, e *models.Enrollment, invoices []models.Invoice) ([]models.Invoice, error) {
	created := make([]models.Invoice, 0, len(invoices))
	err := r.store.Update(func(tx *store.Tx) error {
		enrollments := tx.Bucket("enrollments")
		if e.ID == 0 {
			seq, err := enrollments.NextSequence()
			if err != nil {
				return fmt.Errorf("allocate enrollment id: %w", err)
			}
			e.ID = int64(seq)
		}
		doc, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode enrollment: %w", err)
		}
		if err := enrollments.Insert(key(e.ID), doc); err != nil {
			return err
		}

		bucket := tx.Bucket("invoices")
		for _, inv := range invoices {
			seq, err := bucket.NextSequence()
			if err != nil {
				return fmt.Errorf("allocate invoice id: %w", err)
			}
			inv.ID = int64(seq)
			doc, err := json.Marshal(inv)
			if err != nil {
				return fmt.Errorf("encode invoice: %w", err)
			}
			if err := bucket.Insert(key(inv.ID), doc); err != nil {
				return err
			}
			created = append(created, inv)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// InsertMissingInvoices inserts the supplied invoices in one transaction,
// skipping any whose (student, category, term) triple already exists.
// Re-running the same bulk generation therefore creates no duplicates.
// Returns the number of invoices actually created.
func (r *BillingRepository) InsertMissingInvoices(ctx context.Context, invoices []models.Invoice) (int, error) {
	createdCount := 0
	err := r.store.Update(func(tx *store.Tx) error {
		bucket := tx.Bucket("invoices")

		existing := make(map[string]struct{})
		err := bucket.ForEach(func(_ string, doc []byte) error {
			var inv models.Invoice
			if err := json.Unmarshal(doc, &inv); err != nil {
				return fmt.Errorf("decode invoice: %w", err)
			}
			existing[invoiceTriple(inv.StudentID, inv.CategoryID, inv.Term)] = struct{}{}
			return nil
		})
		if err != nil {
			return err
		}

		for _, inv := range invoices {
			triple := invoiceTriple(inv.StudentID, inv.CategoryID, inv.Term)
			if _, dup := existing[triple]; dup {
				continue
			}
			seq, err := bucket.NextSequence()
			if err != nil {
				return fmt.Errorf("allocate invoice id: %w", err)
			}
			inv.ID = int64(seq)
			doc, err := json.Marshal(inv)
			if err != nil {
				return fmt.Errorf("encode invoice: %w", err)
			}
			if err := bucket.Insert(key(inv.ID), doc); err != nil {
				return err
			}
			existing[triple] = struct{}{}
			createdCount++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return createdCount, nil
}

func invoiceTriple(studentID string, categoryID int64, term string) string {
	return fmt.Sprintf("%s|%d|%s", studentID, categoryID, term)
}
