package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/abuzarban/school-admin/internal/models"
)

type expenseRepository interface {
	All(ctx context.Context) ([]models.Expense, error)
	List(ctx context.Context, filter models.ExpenseFilter) ([]models.Expense, error)
	FindByID(ctx context.Context, id int64) (*models.Expense, error)
	Insert(ctx context.Context, e *models.Expense) error
	Update(ctx context.Context, e *models.Expense) error
	Delete(ctx context.Context, id int64) error
}

// ExpenseRequest describes expense create/update payloads.
type ExpenseRequest struct {
	Category    string    `json:"category" validate:"required"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount" validate:"gte=0"`
	Date        time.Time `json:"date"`
}

// ExpenseService orchestrates expense workflows.
type ExpenseService struct {
	repo      expenseRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewExpenseService constructs ExpenseService.
func NewExpenseService(repo expenseRepository, validate *validator.Validate, logger *zap.Logger) *ExpenseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExpenseService{repo: repo, validator: validate, logger: logger}
}

// List returns expenses matching the filter.
func (s *ExpenseService) List(ctx context.Context, filter models.ExpenseFilter) ([]models.Expense, error) {
	expenses, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to list expenses")
	}
	return expenses, nil
}

// Get returns one expense by ID.
func (s *ExpenseService) Get(ctx context.Context, id int64) (*models.Expense, error) {
	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "expense not found", "failed to load expense")
	}
	return expense, nil
}

// Create records an expense. Date defaults to now.
func (s *ExpenseService) Create(ctx context.Context, req ExpenseRequest) (*models.Expense, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid expense payload")
	}
	expense := &models.Expense{
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
	}
	if expense.Date.IsZero() {
		expense.Date = time.Now().UTC()
	}
	if err := s.repo.Insert(ctx, expense); err != nil {
		return nil, storeError(err, "expense not found", "failed to create expense")
	}
	return expense, nil
}

// Update edits an existing expense.
func (s *ExpenseService) Update(ctx context.Context, id int64, req ExpenseRequest) (*models.Expense, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid expense payload")
	}
	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "expense not found", "failed to load expense")
	}
	expense.Category = req.Category
	expense.Description = req.Description
	expense.Amount = req.Amount
	if !req.Date.IsZero() {
		expense.Date = req.Date
	}
	if err := s.repo.Update(ctx, expense); err != nil {
		return nil, storeError(err, "expense not found", "failed to update expense")
	}
	return expense, nil
}

// Delete removes an expense record.
func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, "expense not found", "failed to delete expense")
	}
	return nil
}

// Summary totals expenses over the filter.
func (s *ExpenseService) Summary(ctx context.Context, filter models.ExpenseFilter) (*models.ExpenseSummary, error) {
	expenses, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to load expenses")
	}
	summary := &models.ExpenseSummary{Count: len(expenses)}
	for _, e := range expenses {
		summary.Total += e.Amount
	}
	return summary, nil
}
