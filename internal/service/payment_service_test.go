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

type mockPaymentRepo struct {
	payments map[int64]models.Payment
	nextID   int64
}

func (m *mockPaymentRepo) All(ctx context.Context) ([]models.Payment, error) {
	out := make([]models.Payment, 0, len(m.payments))
	for _, p := range m.payments {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockPaymentRepo) List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error) {
	all, _ := m.All(ctx)
	var out []models.Payment
	for _, p := range all {
		if filter.StudentID != "" && p.StudentID != filter.StudentID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *mockPaymentRepo) FindByID(ctx context.Context, id int64) (*models.Payment, error) {
	if p, ok := m.payments[id]; ok {
		return &p, nil
	}
	return nil, store.ErrNoDocument
}

func (m *mockPaymentRepo) Insert(ctx context.Context, p *models.Payment) error {
	if m.payments == nil {
		m.payments = make(map[int64]models.Payment)
	}
	if p.ID == 0 {
		m.nextID++
		p.ID = m.nextID
	}
	m.payments[p.ID] = *p
	return nil
}

func (m *mockPaymentRepo) Update(ctx context.Context, p *models.Payment) error {
	if _, ok := m.payments[p.ID]; !ok {
		return store.ErrNoDocument
	}
	m.payments[p.ID] = *p
	return nil
}

func (m *mockPaymentRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.payments[id]; !ok {
		return store.ErrNoDocument
	}
	delete(m.payments, id)
	return nil
}

func TestPaymentServiceCreateDerivesStatus(t *testing.T) {
	cases := []struct {
		name       string
		amount     float64
		amountPaid float64
		want       models.PaymentStatus
	}{
		{"paid", 500, 500, models.StatusPaid},
		{"partial", 500, 200, models.StatusPartial},
		{"unpaid", 500, 0, models.StatusUnpaid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockPaymentRepo{}
			svc := NewPaymentService(repo, validator.New(), zap.NewNop())

			payment, err := svc.Create(context.Background(), PaymentRequest{
				StudentID:  "stu-1",
				Amount:     tc.amount,
				AmountPaid: tc.amountPaid,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, payment.Status)
			assert.False(t, payment.Date.IsZero())
		})
	}
}

func TestPaymentServiceUpdateRederivesStatus(t *testing.T) {
	repo := &mockPaymentRepo{payments: map[int64]models.Payment{
		1: {ID: 1, StudentID: "stu-1", Amount: 500, AmountPaid: 200, Status: models.StatusPartial},
	}}
	svc := NewPaymentService(repo, validator.New(), zap.NewNop())

	updated, err := svc.Update(context.Background(), 1, PaymentRequest{
		StudentID:  "stu-1",
		Amount:     500,
		AmountPaid: 500,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, updated.Status)
}

func TestPaymentServiceStudentSummary(t *testing.T) {
	repo := &mockPaymentRepo{payments: map[int64]models.Payment{
		1: {ID: 1, StudentID: "stu-1", Type: models.CategoryCompulsory, Amount: 2000, AmountPaid: 500},
		2: {ID: 2, StudentID: "stu-1", Type: models.CategoryOptional, Amount: 300, AmountPaid: 300},
		3: {ID: 3, StudentID: "other", Type: models.CategoryCompulsory, Amount: 999, AmountPaid: 0},
	}}
	svc := NewPaymentService(repo, validator.New(), zap.NewNop())

	summary, err := svc.StudentSummary(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.Equal(t, 800.0, summary.TotalPaid)
	assert.Equal(t, 1500.0, summary.TotalOutstanding)
	assert.Equal(t, 500.0, summary.CompulsoryPaid)
	assert.Equal(t, 1500.0, summary.CompulsoryOutstanding)
	assert.Equal(t, 300.0, summary.OptionalPaid)
	assert.Equal(t, 0.0, summary.OptionalOutstanding)
}

func TestPaymentServiceOverallTotals(t *testing.T) {
	repo := &mockPaymentRepo{payments: map[int64]models.Payment{
		1: {ID: 1, StudentID: "a", Amount: 1000, AmountPaid: 1000},
		2: {ID: 2, StudentID: "b", Amount: 500, AmountPaid: 100},
	}}
	svc := NewPaymentService(repo, validator.New(), zap.NewNop())

	totals, err := svc.OverallTotals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1100.0, totals.TotalPaid)
	assert.Equal(t, 400.0, totals.TotalOutstanding)
}

func TestPaymentServiceCreateValidation(t *testing.T) {
	svc := NewPaymentService(&mockPaymentRepo{}, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), PaymentRequest{Amount: 100})
	require.Error(t, err)
}
