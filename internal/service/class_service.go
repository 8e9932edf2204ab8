package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/abuzarban/school-admin/internal/ledger"
	"github.com/abuzarban/school-admin/internal/models"
)

type classRepository interface {
	All(ctx context.Context) ([]models.Class, error)
	FindByID(ctx context.Context, id int64) (*models.Class, error)
	Insert(ctx context.Context, c *models.Class) error
	Update(ctx context.Context, c *models.Class) error
	Delete(ctx context.Context, id int64) error
}

type studentLister interface {
	All(ctx context.Context) ([]models.Student, error)
}

// CreateClassRequest describes the class creation payload.
type CreateClassRequest struct {
	Name     string `json:"name" validate:"required"`
	Level    string `json:"level" validate:"required"`
	Teacher  string `json:"teacher"`
	Capacity int    `json:"capacity" validate:"gte=0"`
}

// UpdateClassRequest describes the class edit payload.
type UpdateClassRequest struct {
	Name     string `json:"name" validate:"required"`
	Level    string `json:"level" validate:"required"`
	Teacher  string `json:"teacher"`
	Capacity int    `json:"capacity" validate:"gte=0"`
}

// ClassService orchestrates class workflows. Every read path annotates
// classes with the live student count projection.
type ClassService struct {
	repo      classRepository
	students  studentLister
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs ClassService.
func NewClassService(repo classRepository, students studentLister, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, students: students, validator: validate, logger: logger}
}

// List returns every class with its computed student count.
func (s *ClassService) List(ctx context.Context) ([]models.ClassDetail, error) {
	classes, err := s.repo.All(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list classes")
	}
	students, err := s.students.All(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load students")
	}
	counts := ledger.ClassStudentCounts(students)

	details := make([]models.ClassDetail, 0, len(classes))
	for _, c := range classes {
		details = append(details, models.ClassDetail{Class: c, StudentCount: counts[c.ID]})
	}
	return details, nil
}

// Get returns one class with its computed student count.
func (s *ClassService) Get(ctx context.Context, id int64) (*models.ClassDetail, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "class not found", "failed to load class")
	}
	students, err := s.students.All(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load students")
	}
	counts := ledger.ClassStudentCounts(students)
	return &models.ClassDetail{Class: *class, StudentCount: counts[class.ID]}, nil
}

// Create registers a new class.
func (s *ClassService) Create(ctx context.Context, req CreateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid class payload")
	}
	class := &models.Class{
		Name:      req.Name,
		Level:     req.Level,
		Teacher:   req.Teacher,
		Capacity:  req.Capacity,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, class); err != nil {
		return nil, storeError(err, "class not found", "failed to create class")
	}
	return class, nil
}

// Update edits an existing class.
func (s *ClassService) Update(ctx context.Context, id int64, req UpdateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid class payload")
	}
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "class not found", "failed to load class")
	}
	class.Name = req.Name
	class.Level = req.Level
	class.Teacher = req.Teacher
	class.Capacity = req.Capacity
	if err := s.repo.Update(ctx, class); err != nil {
		return nil, storeError(err, "class not found", "failed to update class")
	}
	return class, nil
}

// Delete removes a class record.
func (s *ClassService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, "class not found", "failed to delete class")
	}
	return nil
}
