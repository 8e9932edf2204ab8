package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abuzarban/school-admin/internal/models"
	"github.com/abuzarban/school-admin/internal/store"
)

type mockStudentRepo struct {
	students   map[string]models.Student
	lastFilter models.StudentFilter
	err        error
}

func (m *mockStudentRepo) All(ctx context.Context) ([]models.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.Student, 0, len(m.students))
	for _, s := range m.students {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockStudentRepo) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	m.lastFilter = filter
	return m.All(ctx)
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id string) (*models.Student, error) {
	if s, ok := m.students[id]; ok {
		return &s, nil
	}
	return nil, store.ErrNoDocument
}

func (m *mockStudentRepo) Insert(ctx context.Context, s *models.Student) error {
	if m.students == nil {
		m.students = make(map[string]models.Student)
	}
	m.students[s.ID] = *s
	return nil
}

func (m *mockStudentRepo) Update(ctx context.Context, s *models.Student) error {
	if _, ok := m.students[s.ID]; !ok {
		return store.ErrNoDocument
	}
	m.students[s.ID] = *s
	return nil
}

func (m *mockStudentRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.students[id]; !ok {
		return store.ErrNoDocument
	}
	delete(m.students, id)
	return nil
}

func TestStudentServiceCreate(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	student, err := svc.Create(context.Background(), CreateStudentRequest{
		Name:     "Ada Lovelace",
		Guardian: "Mary",
		ClassID:  1,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, student.ID)
	assert.Equal(t, "Active", student.Status)
	assert.False(t, student.DateEnrolled.IsZero())
	assert.Len(t, repo.students, 1)
}

func TestStudentServiceCreateInvalidEmail(t *testing.T) {
	svc := NewStudentService(&mockStudentRepo{}, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateStudentRequest{Name: "Ada", Email: "not-an-email"})
	require.Error(t, err)
}

func TestStudentServiceUpdate(t *testing.T) {
	repo := &mockStudentRepo{students: map[string]models.Student{
		"id1": {ID: "id1", Name: "Old", Status: "Active"},
	}}
	svc := NewStudentService(repo, validator.New(), zap.NewNop())

	updated, err := svc.Update(context.Background(), "id1", UpdateStudentRequest{Name: "New", ClassID: 2})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, int64(2), updated.ClassID)
	assert.Equal(t, "Active", updated.Status)
}

func TestStudentServiceGetMissing(t *testing.T) {
	svc := NewStudentService(&mockStudentRepo{}, validator.New(), zap.NewNop())

	_, err := svc.Get(context.Background(), "ghost")
	require.Error(t, err)
}
