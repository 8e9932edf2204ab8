package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/abuzarban/school-admin/internal/models"
	"github.com/abuzarban/school-admin/internal/store"
)

// PaymentRepository manages persistence for payment records.
type PaymentRepository struct {
	col *store.Collection
}

// NewPaymentRepository constructs a PaymentRepository.
func NewPaymentRepository(s *store.Store) *PaymentRepository {
	return &PaymentRepository{col: s.Collection("payments")}
}

// All returns every payment, newest first.
func (r *PaymentRepository) All(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.col.ForEach(func(_ string, doc []byte) error {
		var p models.Payment
		if err := json.Unmarshal(doc, &p); err != nil {
			return fmt.Errorf("decode payment: %w", err)
		}
		payments = append(payments, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].Date.After(payments[j].Date) })
	return payments, nil
}

// List returns payments matching the filter.
func (r *PaymentRepository) List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error) {
	all, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	var payments []models.Payment
	for _, p := range all {
		if filter.StudentID != "" && p.StudentID != filter.StudentID {
			continue
		}
		if filter.CategoryID != 0 && p.CategoryID != filter.CategoryID {
			continue
		}
		if filter.Type != "" && p.Type != filter.Type {
			continue
		}
		if !filter.From.IsZero() && p.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && p.Date.After(filter.To) {
			continue
		}
		if filter.OutstandingOnly && p.Amount <= p.AmountPaid {
			continue
		}
		payments = append(payments, p)
	}
	return payments, nil
}

// FindByID fetches a payment by ID.
func (r *PaymentRepository) FindByID(ctx context.Context, id int64) (*models.Payment, error) {
	doc, err := r.col.Get(key(id))
	if err != nil {
		return nil, err
	}
	var p models.Payment
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, fmt.Errorf("decode payment: %w", err)
	}
	return &p, nil
}

// Insert persists a new payment, allocating an ID when unset.
func (r *PaymentRepository) Insert(ctx context.Context, p *models.Payment) error {
	if p.ID == 0 {
		id, err := r.col.NextID()
		if err != nil {
			return fmt.Errorf("allocate payment id: %w", err)
		}
		p.ID = int64(id)
	}
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode payment: %w", err)
	}
	return r.col.Insert(key(p.ID), doc)
}

// Update overwrites an existing payment.
func (r *PaymentRepository) Update(ctx context.Context, p *models.Payment) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode payment: %w", err)
	}
	return r.col.Replace(key(p.ID), doc)
}

// Delete removes a payment record.
func (r *PaymentRepository) Delete(ctx context.Context, id int64) error {
	return r.col.Delete(key(id))
}
