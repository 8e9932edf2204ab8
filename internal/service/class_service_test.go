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

type mockClassRepo struct {
	classes map[int64]models.Class
	nextID  int64
}

func (m *mockClassRepo) All(ctx context.Context) ([]models.Class, error) {
	out := make([]models.Class, 0, len(m.classes))
	for _, c := range m.classes {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockClassRepo) FindByID(ctx context.Context, id int64) (*models.Class, error) {
	if c, ok := m.classes[id]; ok {
		return &c, nil
	}
	return nil, store.ErrNoDocument
}

func (m *mockClassRepo) Insert(ctx context.Context, c *models.Class) error {
	if m.classes == nil {
		m.classes = make(map[int64]models.Class)
	}
	if c.ID == 0 {
		m.nextID++
		c.ID = m.nextID
	}
	m.classes[c.ID] = *c
	return nil
}

func (m *mockClassRepo) Update(ctx context.Context, c *models.Class) error {
	if _, ok := m.classes[c.ID]; !ok {
		return store.ErrNoDocument
	}
	m.classes[c.ID] = *c
	return nil
}

func (m *mockClassRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.classes[id]; !ok {
		return store.ErrNoDocument
	}
	delete(m.classes, id)
	return nil
}

func TestClassServiceGetComputesStudentCount(t *testing.T) {
	classes := &mockClassRepo{classes: map[int64]models.Class{
		1: {ID: 1, Name: "JSS1", Level: "Junior"},
	}}
	students := &mockStudentRepo{students: map[string]models.Student{
		"a": {ID: "a", ClassID: 1},
		"b": {ID: "b", ClassID: 1},
		"c": {ID: "c", ClassID: 2},
	}}
	svc := NewClassService(classes, students, validator.New(), zap.NewNop())

	detail, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, detail.StudentCount)
}

func TestClassServiceListComputesStudentCounts(t *testing.T) {
	classes := &mockClassRepo{classes: map[int64]models.Class{
		1: {ID: 1, Name: "JSS1", Level: "Junior"},
		2: {ID: 2, Name: "JSS2", Level: "Junior"},
	}}
	students := &mockStudentRepo{students: map[string]models.Student{
		"a": {ID: "a", ClassID: 1},
	}}
	svc := NewClassService(classes, students, validator.New(), zap.NewNop())

	details, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, details, 2)

	counts := make(map[int64]int, len(details))
	for _, d := range details {
		counts[d.ID] = d.StudentCount
	}
	assert.Equal(t, 1, counts[1])
	assert.Equal(t, 0, counts[2])
}

func TestClassServiceCreate(t *testing.T) {
	repo := &mockClassRepo{}
	svc := NewClassService(repo, &mockStudentRepo{}, validator.New(), zap.NewNop())

	class, err := svc.Create(context.Background(), CreateClassRequest{Name: "JSS1", Level: "Junior", Capacity: 30})
	require.NoError(t, err)
	assert.NotZero(t, class.ID)
	assert.False(t, class.CreatedAt.IsZero())
}

func TestClassServiceCreateValidation(t *testing.T) {
	svc := NewClassService(&mockClassRepo{}, &mockStudentRepo{}, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateClassRequest{Name: "JSS1"})
	require.Error(t, err)
}
