package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abuzarban/school-admin/internal/models"
)

type studentRepository interface {
	All(ctx context.Context) ([]models.Student, error)
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	Insert(ctx context.Context, s *models.Student) error
	Update(ctx context.Context, s *models.Student) error
	Delete(ctx context.Context, id string) error
}

// CreateStudentRequest describes the admission payload.
type CreateStudentRequest struct {
	Name     string  `json:"name" validate:"required"`
	Guardian string  `json:"guardian"`
	Phone    string  `json:"phone"`
	Email    string  `json:"email" validate:"omitempty,email"`
	ClassID  int64   `json:"class_id"`
	Balance  float64 `json:"balance"`
	Status   string  `json:"status"`
}

// UpdateStudentRequest describes the student edit payload.
type UpdateStudentRequest struct {
	Name     string  `json:"name" validate:"required"`
	Guardian string  `json:"guardian"`
	Phone    string  `json:"phone"`
	Email    string  `json:"email" validate:"omitempty,email"`
	ClassID  int64   `json:"class_id"`
	Balance  float64 `json:"balance"`
	Status   string  `json:"status"`
}

// StudentService orchestrates student record workflows.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs StudentService.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// List returns students matching the filter.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	students, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to list students")
	}
	return students, nil
}

// Get returns one student by ID.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "student not found", "failed to load student")
	}
	return student, nil
}

// Create admits a new student.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid student payload")
	}
	status := req.Status
	if status == "" {
		status = "Active"
	}
	student := &models.Student{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Guardian:     req.Guardian,
		Phone:        req.Phone,
		Email:        req.Email,
		ClassID:      req.ClassID,
		Balance:      req.Balance,
		Status:       status,
		DateEnrolled: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, student); err != nil {
		return nil, storeError(err, "student not found", "failed to create student")
	}
	return student, nil
}

// Update edits an existing student. Balance is informational only and is
// never recomputed from the ledger here.
func (s *StudentService) Update(ctx context.Context, id string, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid student payload")
	}
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "student not found", "failed to load student")
	}
	student.Name = req.Name
	student.Guardian = req.Guardian
	student.Phone = req.Phone
	student.Email = req.Email
	student.ClassID = req.ClassID
	student.Balance = req.Balance
	if req.Status != "" {
		student.Status = req.Status
	}
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, storeError(err, "student not found", "failed to update student")
	}
	return student, nil
}

// Delete removes a student record.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, "student not found", "failed to delete student")
	}
	return nil
}
