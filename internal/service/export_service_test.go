package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abuzarban/school-admin/internal/models"
	"github.com/abuzarban/school-admin/internal/store"
)

type mockExpenseFilterLister struct {
	expenses []models.Expense
}

func (m *mockExpenseFilterLister) List(ctx context.Context, filter models.ExpenseFilter) ([]models.Expense, error) {
	return m.expenses, nil
}

type mockCategoryFinder struct {
	categories map[int64]models.PaymentCategory
}

func (m *mockCategoryFinder) FindByID(ctx context.Context, id int64) (*models.PaymentCategory, error) {
	if c, ok := m.categories[id]; ok {
		return &c, nil
	}
	return nil, store.ErrNoDocument
}

func TestExportServicePaymentsCSV(t *testing.T) {
	payments := &mockPaymentRepo{payments: map[int64]models.Payment{
		1: {ID: 1, StudentID: "stu-1", CategoryID: 2, Amount: 500, AmountPaid: 200, Method: "cash", Type: models.CategoryCompulsory, Status: models.StatusPartial, Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}}
	svc := NewExportService(payments, &mockExpenseFilterLister{}, &mockInvoiceRepo{}, &mockStudentReader{}, &mockCategoryFinder{}, zap.NewNop())

	out, err := svc.PaymentsCSV(context.Background(), models.PaymentFilter{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ID,Student,Category,Amount,Paid,Outstanding,Method,Type,Status,Date", lines[0])
	assert.Equal(t, "1,stu-1,2,500.00,200.00,300.00,cash,compulsory,partial,2026-03-01", lines[1])
}

func TestExportServiceExpensesCSV(t *testing.T) {
	expenses := &mockExpenseFilterLister{expenses: []models.Expense{
		{ID: 1, Category: "Utilities", Description: "Diesel", Amount: 120.5, Date: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)},
	}}
	svc := NewExportService(&mockPaymentRepo{}, expenses, &mockInvoiceRepo{}, &mockStudentReader{}, &mockCategoryFinder{}, zap.NewNop())

	out, err := svc.ExpensesCSV(context.Background(), models.ExpenseFilter{})
	require.NoError(t, err)
	assert.Contains(t, string(out), "Utilities,Diesel,120.50,2026-02-10")
}

func TestExportServiceInvoiceReceiptPDFResolvesNames(t *testing.T) {
	invoices := &mockInvoiceRepo{invoices: map[int64]models.Invoice{
		7: {ID: 7, StudentID: "stu-1", CategoryID: 2, Amount: 500, AmountPaid: 500, Status: models.StatusPaid, Session: "2025/2026", Term: "First", Date: time.Now()},
	}}
	students := &mockStudentReader{students: map[string]models.Student{"stu-1": {ID: "stu-1", Name: "Ada Lovelace"}}}
	categories := &mockCategoryFinder{categories: map[int64]models.PaymentCategory{2: {ID: 2, Name: "Tuition"}}}
	svc := NewExportService(&mockPaymentRepo{}, &mockExpenseFilterLister{}, invoices, students, categories, zap.NewNop())

	out, err := svc.InvoiceReceiptPDF(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestExportServiceInvoiceReceiptPDFMissingInvoice(t *testing.T) {
	svc := NewExportService(&mockPaymentRepo{}, &mockExpenseFilterLister{}, &mockInvoiceRepo{}, &mockStudentReader{}, &mockCategoryFinder{}, zap.NewNop())

	_, err := svc.InvoiceReceiptPDF(context.Background(), 404)
	require.Error(t, err)
}
