package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abuzarban/school-admin/internal/models"
	"github.com/abuzarban/school-admin/internal/store"
)

type mockEnrollmentRepo struct {
	enrollments map[int64]models.Enrollment
	nextID      int64
	err         error
}

func (m *mockEnrollmentRepo) All(ctx context.Context) ([]models.Enrollment, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.Enrollment, 0, len(m.enrollments))
	for _, e := range m.enrollments {
		out = append(out, e)
	}
	return out, nil
}

func (m *mockEnrollmentRepo) ListByStudent(ctx context.Context, studentID string) ([]models.Enrollment, error) {
	all, err := m.All(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Enrollment
	for _, e := range all {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEnrollmentRepo) FindByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	if e, ok := m.enrollments[id]; ok {
		return &e, nil
	}
	return nil, store.ErrNoDocument
}

func (m *mockEnrollmentRepo) Insert(ctx context.Context, e *models.Enrollment) error {
	if m.enrollments == nil {
		m.enrollments = make(map[int64]models.Enrollment)
	}
	if e.ID == 0 {
		m.nextID++
		e.ID = m.nextID
	}
	m.enrollments[e.ID] = *e
	return nil
}

func (m *mockEnrollmentRepo) Update(ctx context.Context, e *models.Enrollment) error {
	if _, ok := m.enrollments[e.ID]; !ok {
		return store.ErrNoDocument
	}
	m.enrollments[e.ID] = *e
	return nil
}

func (m *mockEnrollmentRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.enrollments[id]; !ok {
		return store.ErrNoDocument
	}
	delete(m.enrollments, id)
	return nil
}

type mockBilling struct {
	enrollment  *models.Enrollment
	invoices    []models.Invoice
	existing    map[string]struct{}
	insertCalls int
	err         error
}

func (m *mockBilling) CreateEnrollmentWithInvoices(ctx context.Context, e *models.Enrollment, invoices []models.Invoice) ([]models.Invoice, error) {
	if m.err != nil {
		return nil, m.err
	}
	e.ID = 1
	m.enrollment = e
	created := make([]models.Invoice, 0, len(invoices))
	for i, inv := range invoices {
		inv.ID = int64(i + 1)
		created = append(created, inv)
	}
	m.invoices = append(m.invoices, created...)
	return created, nil
}

func (m *mockBilling) InsertMissingInvoices(ctx context.Context, invoices []models.Invoice) (int, error) {
	m.insertCalls++
	if m.err != nil {
		return 0, m.err
	}
	if m.existing == nil {
		m.existing = make(map[string]struct{})
	}
	created := 0
	for _, inv := range invoices {
		triple := fmt.Sprintf("%s|%d|%s", inv.StudentID, inv.CategoryID, inv.Term)
		if _, dup := m.existing[triple]; dup {
			continue
		}
		m.existing[triple] = struct{}{}
		m.invoices = append(m.invoices, inv)
		created++
	}
	return created, nil
}

type mockCategoryReader struct {
	compulsory []models.PaymentCategory
	err        error
}

func (m *mockCategoryReader) ActiveCompulsory(ctx context.Context) ([]models.PaymentCategory, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.compulsory, nil
}

type mockStudentReader struct {
	students map[string]models.Student
}

func (m *mockStudentReader) FindByID(ctx context.Context, id string) (*models.Student, error) {
	if s, ok := m.students[id]; ok {
		return &s, nil
	}
	return nil, store.ErrNoDocument
}

func TestEnrollmentServiceEnrollWithoutInvoices(t *testing.T) {
	repo := &mockEnrollmentRepo{}
	billing := &mockBilling{}
	students := &mockStudentReader{students: map[string]models.Student{"stu-1": {ID: "stu-1", Name: "Ada"}}}
	svc := NewEnrollmentService(repo, billing, &mockCategoryReader{}, students, validator.New(), zap.NewNop())

	result, err := svc.Enroll(context.Background(), EnrollStudentRequest{
		StudentID: "stu-1",
		Session:   "2025/2026",
		Term:      "First",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.InvoicesCreated)
	assert.Equal(t, "Enrolled", result.Enrollment.Status)
	assert.Len(t, repo.enrollments, 1)
	assert.Nil(t, billing.enrollment)
}

func TestEnrollmentServiceEnrollGeneratesCompulsoryInvoices(t *testing.T) {
	repo := &mockEnrollmentRepo{}
	billing := &mockBilling{}
	categories := &mockCategoryReader{compulsory: []models.PaymentCategory{
		{ID: 1, Name: "Tuition", Type: models.CategoryCompulsory, Amount: 500, Active: true},
		{ID: 2, Name: "Library", Type: models.CategoryCompulsory, Amount: 300, Active: true},
	}}
	students := &mockStudentReader{students: map[string]models.Student{"stu-1": {ID: "stu-1"}}}
	svc := NewEnrollmentService(repo, billing, categories, students, validator.New(), zap.NewNop())

	result, err := svc.Enroll(context.Background(), EnrollStudentRequest{
		StudentID:        "stu-1",
		Session:          "2025/2026",
		Term:             "First",
		GenerateInvoices: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.InvoicesCreated)
	require.Len(t, billing.invoices, 2)
	for _, inv := range billing.invoices {
		assert.Equal(t, "stu-1", inv.StudentID)
		assert.Equal(t, models.StatusUnpaid, inv.Status)
		assert.Equal(t, models.CategoryCompulsory, inv.Type)
		assert.Equal(t, 0.0, inv.AmountPaid)
		assert.Equal(t, "First", inv.Term)
	}
	assert.Equal(t, 500.0, billing.invoices[0].Amount)
	assert.Equal(t, 300.0, billing.invoices[1].Amount)
}

func TestEnrollmentServiceEnrollNoCompulsoryCategories(t *testing.T) {
	billing := &mockBilling{}
	students := &mockStudentReader{students: map[string]models.Student{"stu-1": {ID: "stu-1"}}}
	svc := NewEnrollmentService(&mockEnrollmentRepo{}, billing, &mockCategoryReader{}, students, validator.New(), zap.NewNop())

	result, err := svc.Enroll(context.Background(), EnrollStudentRequest{
		StudentID:        "stu-1",
		Session:          "2025/2026",
		Term:             "First",
		GenerateInvoices: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.InvoicesCreated)
	require.NotNil(t, billing.enrollment)
	assert.Empty(t, billing.invoices)
}

func TestEnrollmentServiceEnrollUnknownStudent(t *testing.T) {
	svc := NewEnrollmentService(&mockEnrollmentRepo{}, &mockBilling{}, &mockCategoryReader{}, &mockStudentReader{}, validator.New(), zap.NewNop())

	_, err := svc.Enroll(context.Background(), EnrollStudentRequest{
		StudentID: "ghost",
		Session:   "2025/2026",
		Term:      "First",
	})
	require.Error(t, err)
}

func TestEnrollmentServiceEnrollValidation(t *testing.T) {
	svc := NewEnrollmentService(&mockEnrollmentRepo{}, &mockBilling{}, &mockCategoryReader{}, &mockStudentReader{}, validator.New(), zap.NewNop())

	_, err := svc.Enroll(context.Background(), EnrollStudentRequest{StudentID: "stu-1"})
	require.Error(t, err)
}

func TestEnrollmentServiceUpdate(t *testing.T) {
	repo := &mockEnrollmentRepo{enrollments: map[int64]models.Enrollment{
		1: {ID: 1, StudentID: "stu-1", Session: "2024/2025", Term: "First", Status: "Enrolled"},
	}}
	svc := NewEnrollmentService(repo, &mockBilling{}, &mockCategoryReader{}, &mockStudentReader{}, validator.New(), zap.NewNop())

	updated, err := svc.Update(context.Background(), 1, UpdateEnrollmentRequest{
		Session: "2025/2026",
		Term:    "Second",
		Status:  "Completed",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025/2026", updated.Session)
	assert.Equal(t, "Second", updated.Term)
	assert.Equal(t, "Completed", updated.Status)
}

func TestEnrollmentServiceDeleteMissing(t *testing.T) {
	svc := NewEnrollmentService(&mockEnrollmentRepo{}, &mockBilling{}, &mockCategoryReader{}, &mockStudentReader{}, validator.New(), zap.NewNop())

	err := svc.Delete(context.Background(), 99)
	require.Error(t, err)
}
