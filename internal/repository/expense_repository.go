package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/abuzarban/school-admin/internal/models"
	"github.com/abuzarban/school-admin/internal/store"
)

// ExpenseRepository manages persistence for expense records.
type ExpenseRepository struct {
	col *store.Collection
}

// NewExpenseRepository constructs an ExpenseRepository.
func NewExpenseRepository(s *store.Store) *ExpenseRepository {
	return &ExpenseRepository{col: s.Collection("expenses")}
}

// All returns every expense, newest first.
func (r *ExpenseRepository) All(ctx context.Context) ([]models.Expense, error) {
	var expenses []models.Expense
	err := r.col.ForEach(func(_ string, doc []byte) error {
		var e models.Expense
		if err := json.Unmarshal(doc, &e); err != nil {
			return fmt.Errorf("decode expense: %w", err)
		}
		expenses = append(expenses, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(expenses, func(i, j int) bool { return expenses[i].Date.After(expenses[j].Date) })
	return expenses, nil
}

// List returns expenses matching the filter.
func (r *ExpenseRepository) List(ctx context.Context, filter models.ExpenseFilter) ([]models.Expense, error) {
	all, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	var expenses []models.Expense
	for _, e := range all {
		if !filter.From.IsZero() && e.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && e.Date.After(filter.To) {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(e.Category, filter.Category) {
			continue
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

// FindByID fetches an expense by ID.
func (r *ExpenseRepository) FindByID(ctx context.Context, id int64) (*models.Expense, error) {
	doc, err := r.col.Get(key(id))
	if err != nil {
		return nil, err
	}
	var e models.Expense
	if err := json.Unmarshal(doc, &e); err != nil {
		return nil, fmt.Errorf("decode expense: %w", err)
	}
	return &e, nil
}

// Insert persists a new expense, allocating an ID when unset.
func (r *ExpenseRepository) Insert(ctx context.Context, e *models.Expense) error {
	if e.ID == 0 {
		id, err := r.col.NextID()
		if err != nil {
			return fmt.Errorf("allocate expense id: %w", err)
		}
		e.ID = int64(id)
	}
	doc, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode expense: %w", err)
	}
	return r.col.Insert(key(e.ID), doc)
}

// Update overwrites an existing expense.
func (r *ExpenseRepository) Update(ctx context.Context, e *models.Expense) error {
	doc, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode expense: %w", err)
	}
	return r.col.Replace(key(e.ID), doc)
}

// Delete removes an expense record.
func (r *ExpenseRepository) Delete(ctx context.Context, id int64) error {
	return r.col.Delete(key(id))
}
