package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/abuzarban/school-admin/internal/models"
)

type categoryRepository interface {
	All(ctx context.Context) ([]models.PaymentCategory, error)
	ListByType(ctx context.Context, t models.CategoryType) ([]models.PaymentCategory, error)
	FindByID(ctx context.Context, id int64) (*models.PaymentCategory, error)
	Insert(ctx context.Context, c *models.PaymentCategory) error
	Update(ctx context.Context, c *models.PaymentCategory) error
	Delete(ctx context.Context, id int64) error
}

// CategoryRequest describes category create/update payloads. Active
// defaults to true when omitted.
type CategoryRequest struct {
	Name   string              `json:"name" validate:"required"`
	Type   models.CategoryType `json:"type" validate:"required,oneof=compulsory optional"`
	Amount float64             `json:"amount" validate:"gte=0"`
	Active *bool               `json:"is_active"`
}

// CategoryService orchestrates payment category workflows.
type CategoryService struct {
	repo      categoryRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCategoryService constructs CategoryService.
func NewCategoryService(repo categoryRepository, validate *validator.Validate, logger *zap.Logger) *CategoryService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryService{repo: repo, validator: validate, logger: logger}
}

// List returns categories, optionally narrowed to one type.
func (s *CategoryService) List(ctx context.Context, t models.CategoryType) ([]models.PaymentCategory, error) {
	var (
		categories []models.PaymentCategory
		err        error
	)
	if t == "" {
		categories, err = s.repo.All(ctx)
	} else {
		categories, err = s.repo.ListByType(ctx, t)
	}
	if err != nil {
		return nil, internalError(err, "failed to list payment categories")
	}
	return categories, nil
}

// Get returns one category by ID.
func (s *CategoryService) Get(ctx context.Context, id int64) (*models.PaymentCategory, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "payment category not found", "failed to load payment category")
	}
	return category, nil
}

// Create registers a new payment category.
func (s *CategoryService) Create(ctx context.Context, req CategoryRequest) (*models.PaymentCategory, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid category payload")
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	category := &models.PaymentCategory{
		Name:   req.Name,
		Type:   req.Type,
		Amount: req.Amount,
		Active: active,
	}
	if err := s.repo.Insert(ctx, category); err != nil {
		return nil, storeError(err, "payment category not found", "failed to create payment category")
	}
	return category, nil
}

// Update edits an existing category. Changing the amount does not touch
// invoices already issued; their amount is a snapshot.
func (s *CategoryService) Update(ctx context.Context, id int64, req CategoryRequest) (*models.PaymentCategory, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid category payload")
	}
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "payment category not found", "failed to load payment category")
	}
	category.Name = req.Name
	category.Type = req.Type
	category.Amount = req.Amount
	if req.Active != nil {
		category.Active = *req.Active
	}
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, storeError(err, "payment category not found", "failed to update payment category")
	}
	return category, nil
}

// Delete removes a category record.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, "payment category not found", "failed to delete payment category")
	}
	return nil
}
