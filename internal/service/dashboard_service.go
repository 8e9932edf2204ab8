package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/abuzarban/school-admin/internal/ledger"
	"github.com/abuzarban/school-admin/internal/models"
)

type sessionLister interface {
	All(ctx context.Context) ([]models.Session, error)
}

type classLister interface {
	All(ctx context.Context) ([]models.Class, error)
}

type paymentLister interface {
	All(ctx context.Context) ([]models.Payment, error)
}

type expenseLister interface {
	All(ctx context.Context) ([]models.Expense, error)
}

// DashboardSummary is the aggregate view backing the landing page.
type DashboardSummary struct {
	Students     int                 `json:"students"`
	Classes      int                 `json:"classes"`
	Sessions     int                 `json:"sessions"`
	Ledger       models.LedgerTotals `json:"ledger"`
	ExpenseTotal float64             `json:"expense_total"`
}

// DashboardService computes the aggregate dashboard view. Everything is
// derived per request from the full collections; nothing is cached or
// persisted.
type DashboardService struct {
	students studentLister
	classes  classLister
	sessions sessionLister
	payments paymentLister
	expenses expenseLister
	logger   *zap.Logger
}

// NewDashboardService constructs DashboardService.
func NewDashboardService(students studentLister, classes classLister, sessions sessionLister, payments paymentLister, expenses expenseLister, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{students: students, classes: classes, sessions: sessions, payments: payments, expenses: expenses, logger: logger}
}

// Summary aggregates entity counts, ledger totals and the expense total.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	students, err := s.students.All(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load students")
	}
	classes, err := s.classes.All(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load classes")
	}
	sessions, err := s.sessions.All(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load sessions")
	}
	payments, err := s.payments.All(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load payments")
	}
	expenses, err := s.expenses.All(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load expenses")
	}

	summary := &DashboardSummary{
		Students: len(students),
		Classes:  len(classes),
		Sessions: len(sessions),
		Ledger:   ledger.Totals(payments),
	}
	for _, e := range expenses {
		summary.ExpenseTotal += e.Amount
	}
	return summary, nil
}
