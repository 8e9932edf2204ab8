package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/abuzarban/school-admin/internal/models"
	"github.com/abuzarban/school-admin/internal/store"
)

// InvoiceRepository manages persistence for invoice records.
type InvoiceRepository struct {
	col *store.Collection
}

// NewInvoiceRepository constructs an InvoiceRepository.
func NewInvoiceRepository(s *store.Store) *InvoiceRepository {
	return &InvoiceRepository{col: s.Collection("invoices")}
}

// All returns every invoice, newest first.
func (r *InvoiceRepository) All(ctx context.Context) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.col.ForEach(func(_ string, doc []byte) error {
		var inv models.Invoice
		if err := json.Unmarshal(doc, &inv); err != nil {
			return fmt.Errorf("decode invoice: %w", err)
		}
		invoices = append(invoices, inv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(invoices, func(i, j int) bool { return invoices[i].Date.After(invoices[j].Date) })
	return invoices, nil
}

// List returns invoices matching the filter.
func (r *InvoiceRepository) List(ctx context.Context, filter models.InvoiceFilter) ([]models.Invoice, error) {
	all, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	var invoices []models.Invoice
	for _, inv := range all {
		if filter.StudentID != "" && inv.StudentID != filter.StudentID {
			continue
		}
		if filter.Session != "" && inv.Session != filter.Session {
			continue
		}
		if filter.Term != "" && inv.Term != filter.Term {
			continue
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

// FindByID fetches an invoice by ID.
func (r *InvoiceRepository) FindByID(ctx context.Context, id int64) (*models.Invoice, error) {
	doc, err := r.col.Get(key(id))
	if err != nil {
		return nil, err
	}
	var inv models.Invoice
	if err := json.Unmarshal(doc, &inv); err != nil {
		return nil, fmt.Errorf("decode invoice: %w", err)
	}
	return &inv, nil
}

// Insert persists a new invoice, allocating an ID when unset.
func (r *InvoiceRepository) Insert(ctx context.Context, inv *models.Invoice) error {
	if inv.ID == 0 {
		id, err := r.col.NextID()
		if err != nil {
			return fmt.Errorf("allocate invoice id: %w", err)
		}
		inv.ID = int64(id)
	}
	doc, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("encode invoice: %w", err)
	}
	return r.col.Insert(key(inv.ID), doc)
}

// Update overwrites an existing invoice.
func (r *InvoiceRepository) Update(ctx context.Context, inv *models.Invoice) error {
	doc, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("encode invoice: %w", err)
	}
	return r.col.Replace(key(inv.ID), doc)
}

// Delete removes an invoice record.
func (r *InvoiceRepository) Delete(ctx context.Context, id int64) error {
	return r.col.Delete(key(id))
}
