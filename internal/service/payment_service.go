package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/abuzarban/school-admin/internal/ledger"
	"github.com/abuzarban/school-admin/internal/models"
)

type paymentRepository interface {
	All(ctx context.Context) ([]models.Payment, error)
	List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error)
	FindByID(ctx context.Context, id int64) (*models.Payment, error)
	Insert(ctx context.Context, p *models.Payment) error
	Update(ctx context.Context, p *models.Payment) error
	Delete(ctx context.Context, id int64) error
}

// PaymentRequest describes payment create/update payloads. Status is
// always derived from the amounts.
type PaymentRequest struct {
	StudentID  string              `json:"student_id" validate:"required"`
	CategoryID int64               `json:"payment_category_id"`
	Amount     float64             `json:"amount" validate:"gte=0"`
	AmountPaid float64             `json:"amount_paid" validate:"gte=0"`
	Method     string              `json:"payment_method"`
	Type       models.CategoryType `json:"payment_type" validate:"omitempty,oneof=compulsory optional"`
}

// PaymentService orchestrates payment recording and ledger summaries.
type PaymentService struct {
	repo      paymentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPaymentService constructs PaymentService.
func NewPaymentService(repo paymentRepository, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{repo: repo, validator: validate, logger: logger}
}

// List returns payments matching the filter.
func (s *PaymentService) List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error) {
	payments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to list payments")
	}
	return payments, nil
}

// Get returns one payment by ID.
func (s *PaymentService) Get(ctx context.Context, id int64) (*models.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "payment not found", "failed to load payment")
	}
	return payment, nil
}

// Create records a payment with a derived status.
func (s *PaymentService) Create(ctx context.Context, req PaymentRequest) (*models.Payment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid payment payload")
	}
	payment := &models.Payment{
		StudentID:  req.StudentID,
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		AmountPaid: req.AmountPaid,
		Method:     req.Method,
		Type:       req.Type,
		Date:       time.Now().UTC(),
		Status:     ledger.DeriveStatus(req.Amount, req.AmountPaid),
	}
	if err := s.repo.Insert(ctx, payment); err != nil {
		return nil, storeError(err, "payment not found", "failed to create payment")
	}
	return payment, nil
}

// Update edits a payment and re-derives its status.
func (s *PaymentService) Update(ctx context.Context, id int64, req PaymentRequest) (*models.Payment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid payment payload")
	}
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "payment not found", "failed to load payment")
	}
	payment.StudentID = req.StudentID
	payment.CategoryID = req.CategoryID
	payment.Amount = req.Amount
	payment.AmountPaid = req.AmountPaid
	payment.Method = req.Method
	if req.Type != "" {
		payment.Type = req.Type
	}
	payment.Status = ledger.DeriveStatus(req.Amount, req.AmountPaid)
	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, storeError(err, "payment not found", "failed to update payment")
	}
	return payment, nil
}

// Delete removes a payment record.
func (s *PaymentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, "payment not found", "failed to delete payment")
	}
	return nil
}

// StudentSummary reduces one student's payments into the per-type
// paid/outstanding summary.
func (s *PaymentService) StudentSummary(ctx context.Context, studentID string) (*models.StudentSummary, error) {
	payments, err := s.repo.List(ctx, models.PaymentFilter{StudentID: studentID})
	if err != nil {
		return nil, internalError(err, "failed to load student payments")
	}
	summary := ledger.Summarize(payments)
	return &summary, nil
}

// OverallTotals reduces every payment into the dashboard-wide totals.
func (s *PaymentService) OverallTotals(ctx context.Context) (*models.LedgerTotals, error) {
	payments, err := s.repo.All(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load payments")
	}
	totals := ledger.Totals(payments)
	return &totals, nil
}
