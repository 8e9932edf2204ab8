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

type mockInvoiceRepo struct {
	invoices map[int64]models.Invoice
	nextID   int64
}

func (m *mockInvoiceRepo) List(ctx context.Context, filter models.InvoiceFilter) ([]models.Invoice, error) {
	out := make([]models.Invoice, 0, len(m.invoices))
	for _, inv := range m.invoices {
		if filter.StudentID != "" && inv.StudentID != filter.StudentID {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

func (m *mockInvoiceRepo) FindByID(ctx context.Context, id int64) (*models.Invoice, error) {
	if inv, ok := m.invoices[id]; ok {
		return &inv, nil
	}
	return nil, store.ErrNoDocument
}

func (m *mockInvoiceRepo) Insert(ctx context.Context, inv *models.Invoice) error {
	if m.invoices == nil {
		m.invoices = make(map[int64]models.Invoice)
	}
	if inv.ID == 0 {
		m.nextID++
		inv.ID = m.nextID
	}
	m.invoices[inv.ID] = *inv
	return nil
}

func (m *mockInvoiceRepo) Update(ctx context.Context, inv *models.Invoice) error {
	if _, ok := m.invoices[inv.ID]; !ok {
		return store.ErrNoDocument
	}
	m.invoices[inv.ID] = *inv
	return nil
}

func (m *mockInvoiceRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.invoices[id]; !ok {
		return store.ErrNoDocument
	}
	delete(m.invoices, id)
	return nil
}

type mockClassStudents struct {
	students []models.Student
}

func (m *mockClassStudents) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	var out []models.Student
	for _, s := range m.students {
		if filter.ClassID != 0 && s.ClassID != filter.ClassID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func TestInvoiceServiceCreateDerivesStatus(t *testing.T) {
	repo := &mockInvoiceRepo{}
	svc := NewInvoiceService(repo, &mockBilling{}, &mockCategoryReader{}, &mockClassStudents{}, validator.New(), zap.NewNop())

	invoice, err := svc.Create(context.Background(), InvoiceRequest{
		StudentID:  "stu-1",
		CategoryID: 1,
		Amount:     1000,
		AmountPaid: 400,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPartial, invoice.Status)
	assert.Equal(t, models.CategoryOptional, invoice.Type)
	assert.NotZero(t, invoice.ID)
}

func TestInvoiceServiceUpdateRederivesStatus(t *testing.T) {
	repo := &mockInvoiceRepo{invoices: map[int64]models.Invoice{
		1: {ID: 1, StudentID: "stu-1", CategoryID: 1, Amount: 1000, AmountPaid: 400, Status: models.StatusPartial},
	}}
	svc := NewInvoiceService(repo, &mockBilling{}, &mockCategoryReader{}, &mockClassStudents{}, validator.New(), zap.NewNop())

	updated, err := svc.Update(context.Background(), 1, InvoiceRequest{
		StudentID:  "stu-1",
		CategoryID: 1,
		Amount:     1000,
		AmountPaid: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, updated.Status)
}

func TestInvoiceServiceGenerateForClass(t *testing.T) {
	billing := &mockBilling{}
	categories := &mockCategoryReader{compulsory: []models.PaymentCategory{
		{ID: 1, Name: "Tuition", Type: models.CategoryCompulsory, Amount: 500, Active: true},
		{ID: 2, Name: "Library", Type: models.CategoryCompulsory, Amount: 200, Active: true},
	}}
	students := &mockClassStudents{students: []models.Student{
		{ID: "a", ClassID: 7},
		{ID: "b", ClassID: 7},
		{ID: "c", ClassID: 7},
		{ID: "other", ClassID: 8},
	}}
	svc := NewInvoiceService(&mockInvoiceRepo{}, billing, categories, students, validator.New(), zap.NewNop())

	created, err := svc.GenerateForClass(context.Background(), 7, GenerateClassInvoicesRequest{
		Session: "2025/2026",
		Term:    "First",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, created)
	require.Len(t, billing.invoices, 6)
	for _, inv := range billing.invoices {
		assert.Equal(t, models.StatusUnpaid, inv.Status)
		assert.Equal(t, models.CategoryCompulsory, inv.Type)
		assert.NotEqual(t, "other", inv.StudentID)
	}
}

func TestInvoiceServiceGenerateForClassIdempotent(t *testing.T) {
	billing := &mockBilling{}
	categories := &mockCategoryReader{compulsory: []models.PaymentCategory{
		{ID: 1, Type: models.CategoryCompulsory, Amount: 500, Active: true},
	}}
	students := &mockClassStudents{students: []models.Student{{ID: "a", ClassID: 7}}}
	svc := NewInvoiceService(&mockInvoiceRepo{}, billing, categories, students, validator.New(), zap.NewNop())

	req := GenerateClassInvoicesRequest{Session: "2025/2026", Term: "First"}

	created, err := svc.GenerateForClass(context.Background(), 7, req)
	require.NoError(t, err)
	require.Equal(t, 1, created)

	created, err = svc.GenerateForClass(context.Background(), 7, req)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Len(t, billing.invoices, 1)
}

func TestInvoiceServiceGenerateForClassEmpty(t *testing.T) {
	billing := &mockBilling{}
	svc := NewInvoiceService(&mockInvoiceRepo{}, billing, &mockCategoryReader{}, &mockClassStudents{}, validator.New(), zap.NewNop())

	created, err := svc.GenerateForClass(context.Background(), 7, GenerateClassInvoicesRequest{
		Session: "2025/2026",
		Term:    "First",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Equal(t, 0, billing.insertCalls)
}

func TestInvoiceServiceGenerateForClassValidation(t *testing.T) {
	svc := NewInvoiceService(&mockInvoiceRepo{}, &mockBilling{}, &mockCategoryReader{}, &mockClassStudents{}, validator.New(), zap.NewNop())

	_, err := svc.GenerateForClass(context.Background(), 7, GenerateClassInvoicesRequest{Session: "2025/2026"})
	require.Error(t, err)
}
