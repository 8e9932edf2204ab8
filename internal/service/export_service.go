package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/abuzarban/school-admin/internal/ledger"
	"github.com/abuzarban/school-admin/internal/models"
	"github.com/abuzarban/school-admin/pkg/export"
)

type paymentFilterLister interface {
	List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error)
}

type expenseFilterLister interface {
	List(ctx context.Context, filter models.ExpenseFilter) ([]models.Expense, error)
}

type invoiceReader interface {
	FindByID(ctx context.Context, id int64) (*models.Invoice, error)
}

type categoryReader interface {
	FindByID(ctx context.Context, id int64) (*models.PaymentCategory, error)
}

// ExportService renders payments and expenses to CSV and invoices to
// receipt PDFs.
type ExportService struct {
	payments   paymentFilterLister
	expenses   expenseFilterLister
	invoices   invoiceReader
	students   studentReader
	categories categoryReader
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	logger     *zap.Logger
}

// NewExportService constructs ExportService.
func NewExportService(payments paymentFilterLister, expenses expenseFilterLister, invoices invoiceReader, students studentReader, categories categoryReader, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		payments:   payments,
		expenses:   expenses,
		invoices:   invoices,
		students:   students,
		categories: categories,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		logger:     logger,
	}
}

// PaymentsCSV renders the filtered payments as CSV.
func (s *ExportService) PaymentsCSV(ctx context.Context, filter models.PaymentFilter) ([]byte, error) {
	payments, err := s.payments.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to load payments")
	}
	data := export.Dataset{
		Headers: []string{"ID", "Student", "Category", "Amount", "Paid", "Outstanding", "Method", "Type", "Status", "Date"},
	}
	for _, p := range payments {
		data.Rows = append(data.Rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.StudentID,
			strconv.FormatInt(p.CategoryID, 10),
			formatAmount(p.Amount),
			formatAmount(p.AmountPaid),
			formatAmount(ledger.Outstanding(p.Amount, p.AmountPaid)),
			p.Method,
			string(p.Type),
			string(p.Status),
			p.Date.Format("2006-01-02"),
		})
	}
	out, err := s.csv.Render(data)
	if err != nil {
		return nil, internalError(err, "failed to render payments csv")
	}
	return out, nil
}

// ExpensesCSV renders the filtered expenses as CSV.
func (s *ExportService) ExpensesCSV(ctx context.Context, filter models.ExpenseFilter) ([]byte, error) {
	expenses, err := s.expenses.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to load expenses")
	}
	data := export.Dataset{
		Headers: []string{"ID", "Category", "Description", "Amount", "Date"},
	}
	for _, e := range expenses {
		data.Rows = append(data.Rows, []string{
			strconv.FormatInt(e.ID, 10),
			e.Category,
			e.Description,
			formatAmount(e.Amount),
			e.Date.Format("2006-01-02"),
		})
	}
	out, err := s.csv.Render(data)
	if err != nil {
		return nil, internalError(err, "failed to render expenses csv")
	}
	return out, nil
}

// InvoiceReceiptPDF renders a single invoice as a receipt, resolving the
// student and category names for display.
func (s *ExportService) InvoiceReceiptPDF(ctx context.Context, id int64) ([]byte, error) {
	invoice, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "invoice not found", "failed to load invoice")
	}

	studentName := invoice.StudentID
	if student, err := s.students.FindByID(ctx, invoice.StudentID); err == nil {
		studentName = student.Name
	}
	categoryName := strconv.FormatInt(invoice.CategoryID, 10)
	if category, err := s.categories.FindByID(ctx, invoice.CategoryID); err == nil {
		categoryName = category.Name
	}

	receipt := export.Receipt{
		Title: "Invoice Receipt",
		Fields: []export.ReceiptField{
			{Label: "Invoice No.", Value: strconv.FormatInt(invoice.ID, 10)},
			{Label: "Student", Value: studentName},
			{Label: "Category", Value: categoryName},
			{Label: "Session / Term", Value: fmt.Sprintf("%s / %s", invoice.Session, invoice.Term)},
			{Label: "Amount", Value: formatAmount(invoice.Amount)},
			{Label: "Amount Paid", Value: formatAmount(invoice.AmountPaid)},
			{Label: "Outstanding", Value: formatAmount(ledger.Outstanding(invoice.Amount, invoice.AmountPaid))},
			{Label: "Status", Value: string(invoice.Status)},
			{Label: "Date", Value: invoice.Date.Format("2006-01-02")},
		},
		Footer: "Generated by school-admin",
	}
	out, err := s.pdf.RenderReceipt(receipt)
	if err != nil {
		return nil, internalError(err, "failed to render invoice receipt")
	}
	return out, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
