package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/abuzarban/school-admin/internal/models"
	"github.com/abuzarban/school-admin/internal/store"
)

// EnrollmentRepository manages persistence for enrollment records.
type EnrollmentRepository struct {
	col *store.Collection
}

// NewEnrollmentRepository constructs an EnrollmentRepository.
func NewEnrollmentRepository(s *store.Store) *EnrollmentRepository {
	return &EnrollmentRepository{col: s.Collection("enrollments")}
}

// All returns every enrollment, newest first.
func (r *EnrollmentRepository) All(ctx context.Context) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := r.col.ForEach(func(_ string, doc []byte) error {
		var e models.Enrollment
		if err := json.Unmarshal(doc, &e); err != nil {
			return fmt.Errorf("decode enrollment: %w", err)
		}
		enrollments = append(enrollments, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(enrollments, func(i, j int) bool {
		return enrollments[i].DateEnrolled.After(enrollments[j].DateEnrolled)
	})
	return enrollments, nil
}

// ListByStudent returns a student's enrollments.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Enrollment, error) {
	all, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	var enrollments []models.Enrollment
	for _, e := range all {
		if e.StudentID == studentID {
			enrollments = append(enrollments, e)
		}
	}
	return enrollments, nil
}

// FindByID fetches an enrollment by ID.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	doc, err := r.col.Get(key(id))
	if err != nil {
		return nil, err
	}
	var e models.Enrollment
	if err := json.Unmarshal(doc, &e); err != nil {
		return nil, fmt.Errorf("decode enrollment: %w", err)
	}
	return &e, nil
}

// Insert persists a new enrollment, allocating an ID when unset.
func (r *EnrollmentRepository) Insert(ctx context.Context, e *models.Enrollment) error {
	if e.ID == 0 {
		id, err := r.col.NextID()
		if err != nil {
			return fmt.Errorf("allocate enrollment id: %w", err)
		}
		e.ID = int64(id)
	}
	doc, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode enrollment: %w", err)
	}
	return r.col.Insert(key(e.ID), doc)
}

// Update overwrites an existing enrollment.
func (r *EnrollmentRepository) Update(ctx context.Context, e *models.Enrollment) error {
	doc, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode enrollment: %w", err)
	}
	return r.col.Replace(key(e.ID), doc)
}

// Delete removes an enrollment record.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	return r.col.Delete(key(id))
}
