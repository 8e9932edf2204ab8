package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/abuzarban/school-admin/internal/models"
	"github.com/abuzarban/school-admin/internal/store"
)

// CategoryRepository manages persistence for payment categories.
type CategoryRepository struct {
	col *store.Collection
}

// NewCategoryRepository constructs a CategoryRepository.
func NewCategoryRepository(s *store.Store) *CategoryRepository {
	return &CategoryRepository{col: s.Collection("payment_categories")}
}

// All returns every payment category ordered by name.
func (r *CategoryRepository) All(ctx context.Context) ([]models.PaymentCategory, error) {
	var categories []models.PaymentCategory
	err := r.col.ForEach(func(_ string, doc []byte) error {
		var c models.PaymentCategory
		if err := json.Unmarshal(doc, &c); err != nil {
			return fmt.Errorf("decode payment category: %w", err)
		}
		categories = append(categories, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

// ListByType returns categories of the given type.
func (r *CategoryRepository) ListByType(ctx context.Context, t models.CategoryType) ([]models.PaymentCategory, error) {
	all, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	var categories []models.PaymentCategory
	for _, c := range all {
		if c.Type == t {
			categories = append(categories, c)
		}
	}
	return categories, nil
}

// ActiveCompulsory returns the categories that drive automatic invoice
// generation.
func (r *CategoryRepository) ActiveCompulsory(ctx context.Context) ([]models.PaymentCategory, error) {
	all, err := r.ListByType(ctx, models.CategoryCompulsory)
	if err != nil {
		return nil, err
	}
	var categories []models.PaymentCategory
	for _, c := range all {
		if c.Active {
			categories = append(categories, c)
		}
	}
	return categories, nil
}

// FindByID fetches a category by ID.
func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*models.PaymentCategory, error) {
	doc, err := r.col.Get(key(id))
	if err != nil {
		return nil, err
	}
	var c models.PaymentCategory
	if err := json.Unmarshal(doc, &c); err != nil {
		return nil, fmt.Errorf("decode payment category: %w", err)
	}
	return &c, nil
}

// Insert persists a new category, allocating an ID when unset.
func (r *CategoryRepository) Insert(ctx context.Context, c *models.PaymentCategory) error {
	if c.ID == 0 {
		id, err := r.col.NextID()
		if err != nil {
			return fmt.Errorf("allocate category id: %w", err)
		}
		c.ID = int64(id)
	}
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode payment category: %w", err)
	}
	return r.col.Insert(key(c.ID), doc)
}

// Update overwrites an existing category.
func (r *CategoryRepository) Update(ctx context.Context, c *models.PaymentCategory) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode payment category: %w", err)
	}
	return r.col.Replace(key(c.ID), doc)
}

// Delete removes a category record.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	return r.col.Delete(key(id))
}
