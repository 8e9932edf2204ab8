package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/abuzarban/school-admin/internal/ledger"
	"github.com/abuzarban/school-admin/internal/models"
)

type invoiceRepository interface {
	List(ctx context.Context, filter models.InvoiceFilter) ([]models.Invoice, error)
	FindByID(ctx context.Context, id int64) (*models.Invoice, error)
	Insert(ctx context.Context, inv *models.Invoice) error
	Update(ctx context.Context, inv *models.Invoice) error
	Delete(ctx context.Context, id int64) error
}

type invoiceBilling interface {
	InsertMissingInvoices(ctx context.Context, invoices []models.Invoice) (int, error)
}

type classStudentLister interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
}

// InvoiceRequest describes manual invoice create/update payloads. Status
// is derived server-side and never accepted from the client.
type InvoiceRequest struct {
	StudentID  string              `json:"student_id" validate:"required"`
	CategoryID int64               `json:"payment_category_id" validate:"required"`
	Amount     float64             `json:"amount" validate:"gte=0"`
	AmountPaid float64             `json:"amount_paid" validate:"gte=0"`
	Type       models.CategoryType `json:"payment_type" validate:"omitempty,oneof=compulsory optional"`
	Session    string              `json:"session"`
	Term       string              `json:"term"`
}

// GenerateClassInvoicesRequest describes a whole-class billing run.
type GenerateClassInvoicesRequest struct {
	Session string `json:"session" validate:"required"`
	Term    string `json:"term" validate:"required"`
}

// InvoiceService orchestrates invoice workflows including bulk class
// generation.
type InvoiceService struct {
	repo       invoiceRepository
	billing    invoiceBilling
	categories compulsoryCategoryReader
	students   classStudentLister
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewInvoiceService constructs InvoiceService.
func NewInvoiceService(repo invoiceRepository, billing invoiceBilling, categories compulsoryCategoryReader, students classStudentLister, validate *validator.Validate, logger *zap.Logger) *InvoiceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{repo: repo, billing: billing, categories: categories, students: students, validator: validate, logger: logger}
}

// List returns invoices matching the filter.
func (s *InvoiceService) List(ctx context.Context, filter models.InvoiceFilter) ([]models.Invoice, error) {
	invoices, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to list invoices")
	}
	return invoices, nil
}

// Get returns one invoice by ID.
func (s *InvoiceService) Get(ctx context.Context, id int64) (*models.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "invoice not found", "failed to load invoice")
	}
	return invoice, nil
}

// Create registers a manual invoice with a derived status.
func (s *InvoiceService) Create(ctx context.Context, req InvoiceRequest) (*models.Invoice, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid invoice payload")
	}
	invType := req.Type
	if invType == "" {
		invType = models.CategoryOptional
	}
	invoice := &models.Invoice{
		StudentID:  req.StudentID,
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		AmountPaid: req.AmountPaid,
		Status:     ledger.DeriveStatus(req.Amount, req.AmountPaid),
		Type:       invType,
		Session:    req.Session,
		Term:       req.Term,
		Date:       time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, invoice); err != nil {
		return nil, storeError(err, "invoice not found", "failed to create invoice")
	}
	return invoice, nil
}

// Update edits an invoice's amounts and re-derives its status.
func (s *InvoiceService) Update(ctx context.Context, id int64, req InvoiceRequest) (*models.Invoice, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid invoice payload")
	}
	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "invoice not found", "failed to load invoice")
	}
	invoice.StudentID = req.StudentID
	invoice.CategoryID = req.CategoryID
	invoice.Amount = req.Amount
	invoice.AmountPaid = req.AmountPaid
	invoice.Status = ledger.DeriveStatus(req.Amount, req.AmountPaid)
	if req.Type != "" {
		invoice.Type = req.Type
	}
	if req.Session != "" {
		invoice.Session = req.Session
	}
	if req.Term != "" {
		invoice.Term = req.Term
	}
	if err := s.repo.Update(ctx, invoice); err != nil {
		return nil, storeError(err, "invoice not found", "failed to update invoice")
	}
	return invoice, nil
}

// Delete removes an invoice record.
func (s *InvoiceService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, "invoice not found", "failed to delete invoice")
	}
	return nil
}

// GenerateForClass crosses every student in the class with every active
// compulsory category and creates the missing invoices in one
// transaction. Re-running the same class/term is a no-op for triples
// that already exist. Returns the number of invoices created.
func (s *InvoiceService) GenerateForClass(ctx context.Context, classID int64, req GenerateClassInvoicesRequest) (int, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, validationError(err, "invalid generation payload")
	}
	students, err := s.students.List(ctx, models.StudentFilter{ClassID: classID})
	if err != nil {
		return 0, internalError(err, "failed to load class students")
	}
	categories, err := s.categories.ActiveCompulsory(ctx)
	if err != nil {
		return 0, internalError(err, "failed to load compulsory categories")
	}
	if len(students) == 0 || len(categories) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	invoices := make([]models.Invoice, 0, len(students)*len(categories))
	for _, student := range students {
		for _, cat := range categories {
			invoices = append(invoices, models.Invoice{
				StudentID:  student.ID,
				CategoryID: cat.ID,
				Amount:     cat.Amount,
				AmountPaid: 0,
				Status:     models.StatusUnpaid,
				Type:       models.CategoryCompulsory,
				Session:    req.Session,
				Term:       req.Term,
				Date:       now,
			})
		}
	}

	created, err := s.billing.InsertMissingInvoices(ctx, invoices)
	if err != nil {
		return 0, internalError(err, "failed to generate class invoices")
	}
	s.logger.Info("class invoices generated",
		zap.Int64("class_id", classID),
		zap.String("term", req.Term),
		zap.Int("students", len(students)),
		zap.Int("categories", len(categories)),
		zap.Int("created", created))
	return created, nil
}
