package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abuzarban/school-admin/internal/models"
	"github.com/abuzarban/school-admin/internal/store"
)

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	col *store.Collection
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(s *store.Store) *StudentRepository {
	return &StudentRepository{col: s.Collection("students")}
}

// All returns every student.
func (r *StudentRepository) All(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	err := r.col.ForEach(func(_ string, doc []byte) error {
		var s models.Student
		if err := json.Unmarshal(doc, &s); err != nil {
			return fmt.Errorf("decode student: %w", err)
		}
		students = append(students, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return students, nil
}

// List returns students matching the filter.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	all, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	search := strings.ToLower(filter.Search)
	var students []models.Student
	for _, s := range all {
		if filter.ClassID != 0 && s.ClassID != filter.ClassID {
			continue
		}
		if filter.Status != "" && !strings.EqualFold(s.Status, filter.Status) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(s.Name), search) &&
			!strings.Contains(strings.ToLower(s.Guardian), search) {
			continue
		}
		students = append(students, s)
	}
	return students, nil
}

// FindByID fetches a student by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	doc, err := r.col.Get(id)
	if err != nil {
		return nil, err
	}
	var s models.Student
	if err := json.Unmarshal(doc, &s); err != nil {
		return nil, fmt.Errorf("decode student: %w", err)
	}
	return &s, nil
}

// Insert persists a new student. The ID must already be assigned.
func (r *StudentRepository) Insert(ctx context.Context, s *models.Student) error {
	doc, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode student: %w", err)
	}
	return r.col.Insert(s.ID, doc)
}

// Update overwrites an existing student.
func (r *StudentRepository) Update(ctx context.Context, s *models.Student) error {
	doc, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode student: %w", err)
	}
	return r.col.Replace(s.ID, doc)
}

// Delete removes a student record.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	return r.col.Delete(id)
}
