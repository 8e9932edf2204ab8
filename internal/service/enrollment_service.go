package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/abuzarban/school-admin/internal/models"
)

type enrollmentRepository interface {
	All(ctx context.Context) ([]models.Enrollment, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Enrollment, error)
	FindByID(ctx context.Context, id int64) (*models.Enrollment, error)
	Insert(ctx context.Context, e *models.Enrollment) error
	Update(ctx context.Context, e *models.Enrollment) error
	Delete(ctx context.Context, id int64) error
}

type enrollmentBilling interface {
	CreateEnrollmentWithInvoices(ctx context.Context, e *models.Enrollment, invoices []models.Invoice) ([]models.Invoice, error)
}

type compulsoryCategoryReader interface {
	ActiveCompulsory(ctx context.Context) ([]models.PaymentCategory, error)
}

type studentReader interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

// EnrollStudentRequest describes enrollment creation. GenerateInvoices
// triggers the fan-out: one unpaid invoice per active compulsory
// category, committed atomically with the enrollment.
type EnrollStudentRequest struct {
	StudentID        string `json:"student_id" validate:"required"`
	Session          string `json:"session" validate:"required"`
	Term             string `json:"term" validate:"required"`
	Status           string `json:"status"`
	GenerateInvoices bool   `json:"generate_invoices"`
}

// UpdateEnrollmentRequest describes the enrollment edit payload.
type UpdateEnrollmentRequest struct {
	Session string `json:"session" validate:"required"`
	Term    string `json:"term" validate:"required"`
	Status  string `json:"status"`
}

// EnrollmentService orchestrates enrollment workflows including the
// invoice fan-out.
type EnrollmentService struct {
	repo       enrollmentRepository
	billing    enrollmentBilling
	categories compulsoryCategoryReader
	students   studentReader
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(repo enrollmentRepository, billing enrollmentBilling, categories compulsoryCategoryReader, students studentReader, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, billing: billing, categories: categories, students: students, validator: validate, logger: logger}
}

// List returns every enrollment.
func (s *EnrollmentService) List(ctx context.Context) ([]models.Enrollment, error) {
	enrollments, err := s.repo.All(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list enrollments")
	}
	return enrollments, nil
}

// ListByStudent returns a student's enrollments.
func (s *EnrollmentService) ListByStudent(ctx context.Context, studentID string) ([]models.Enrollment, error) {
	enrollments, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, internalError(err, "failed to list enrollments")
	}
	return enrollments, nil
}

// Enroll registers a student into a session/term. When invoice
// generation is requested, the enrollment and one invoice per active
// compulsory category commit in a single transaction; the invoice amount
// snapshots the category amount at this moment.
func (s *EnrollmentService) Enroll(ctx context.Context, req EnrollStudentRequest) (*models.EnrollmentResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid enrollment payload")
	}
	if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
		return nil, storeError(err, "student not found", "failed to load student")
	}

	status := req.Status
	if status == "" {
		status = "Enrolled"
	}
	now := time.Now().UTC()
	enrollment := &models.Enrollment{
		StudentID:    req.StudentID,
		Session:      req.Session,
		Term:         req.Term,
		Status:       status,
		DateEnrolled: now,
	}

	if !req.GenerateInvoices {
		if err := s.repo.Insert(ctx, enrollment); err != nil {
			return nil, storeError(err, "enrollment not found", "failed to create enrollment")
		}
		return &models.EnrollmentResult{Enrollment: *enrollment}, nil
	}

	categories, err := s.categories.ActiveCompulsory(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load compulsory categories")
	}
	invoices := make([]models.Invoice, 0, len(categories))
	for _, cat := range categories {
		invoices = append(invoices, models.Invoice{
			StudentID:  req.StudentID,
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

	created, err := s.billing.CreateEnrollmentWithInvoices(ctx, enrollment, invoices)
	if err != nil {
		return nil, storeError(err, "enrollment not found", "failed to create enrollment with invoices")
	}
	s.logger.Info("enrollment invoices generated",
		zap.String("student_id", req.StudentID),
		zap.String("session", req.Session),
		zap.String("term", req.Term),
		zap.Int("count", len(created)))

	return &models.EnrollmentResult{Enrollment: *enrollment, InvoicesCreated: len(created)}, nil
}

// Update edits an existing enrollment.
func (s *EnrollmentService) Update(ctx context.Context, id int64, req UpdateEnrollmentRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid enrollment payload")
	}
	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "enrollment not found", "failed to load enrollment")
	}
	enrollment.Session = req.Session
	enrollment.Term = req.Term
	if req.Status != "" {
		enrollment.Status = req.Status
	}
	if err := s.repo.Update(ctx, enrollment); err != nil {
		return nil, storeError(err, "enrollment not found", "failed to update enrollment")
	}
	return enrollment, nil
}

// Delete removes an enrollment record. Invoices generated from it remain.
func (s *EnrollmentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, "enrollment not found", "failed to delete enrollment")
	}
	return nil
}
