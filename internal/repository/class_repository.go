package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/abuzarban/school-admin/internal/models"
	"github.com/abuzarban/school-admin/internal/store"
)

// ClassRepository manages persistence for class records.
type ClassRepository struct {
	col *store.Collection
}

// NewClassRepository constructs a ClassRepository.
func NewClassRepository(s *store.Store) *ClassRepository {
	return &ClassRepository{col: s.Collection("classes")}
}

// All returns every class ordered by ID.
func (r *ClassRepository) All(ctx context.Context) ([]models.Class, error) {
	var classes []models.Class
	err := r.col.ForEach(func(_ string, doc []byte) error {
		var c models.Class
		if err := json.Unmarshal(doc, &c); err != nil {
			return fmt.Errorf("decode class: %w", err)
		}
		classes = append(classes, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].ID < classes[j].ID })
	return classes, nil
}

// FindByID fetches a class by ID.
func (r *ClassRepository) FindByID(ctx context.Context, id int64) (*models.Class, error) {
	doc, err := r.col.Get(key(id))
	if err != nil {
		return nil, err
	}
	var c models.Class
	if err := json.Unmarshal(doc, &c); err != nil {
		return nil, fmt.Errorf("decode class: %w", err)
	}
	return &c, nil
}

// Insert persists a new class, allocating an ID when unset.
func (r *ClassRepository) Insert(ctx context.Context, c *models.Class) error {
	if c.ID == 0 {
		id, err := r.col.NextID()
		if err != nil {
			return fmt.Errorf("allocate class id: %w", err)
		}
		c.ID = int64(id)
	}
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode class: %w", err)
	}
	return r.col.Insert(key(c.ID), doc)
}

// Update overwrites an existing class.
func (r *ClassRepository) Update(ctx context.Context, c *models.Class) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode class: %w", err)
	}
	return r.col.Replace(key(c.ID), doc)
}

// Delete removes a class record.
func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	return r.col.Delete(key(id))
}
