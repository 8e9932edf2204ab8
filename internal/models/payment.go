package models

import "time"

// Payment records money received from a student for a category.
type Payment struct {
	ID         int64         `json:"id"`
	StudentID  string        `json:"student_id"`
	CategoryID int64         `json:"payment_category_id"`
	Amount     float64       `json:"amount"`
	AmountPaid float64       `json:"amount_paid"`
	Method     string        `json:"payment_method"`
	Type       CategoryType  `json:"payment_type"`
	Date       time.Time     `json:"date"`
	Status     PaymentStatus `json:"status"`
}

// PaymentFilter narrows payment listings. Zero values mean "no filter";
// OutstandingOnly keeps payments where amount exceeds amount_paid.
type PaymentFilter struct {
	StudentID       string
	CategoryID      int64
	Type            CategoryType
	From            time.Time
	To              time.Time
	OutstandingOnly bool
}

// StudentSummary is the per-student ledger reduction.
type StudentSummary struct {
	TotalPaid             float64 `json:"total_paid"`
	TotalOutstanding      float64 `json:"total_outstanding"`
	CompulsoryPaid        float64 `json:"compulsory_paid"`
	CompulsoryOutstanding float64 `json:"compulsory_outstanding"`
	OptionalPaid          float64 `json:"optional_paid"`
	OptionalOutstanding   float64 `json:"optional_outstanding"`
}

// LedgerTotals is the store-wide reduction used by the dashboard.
type LedgerTotals struct {
	TotalPaid        float64 `json:"total_paid"`
	TotalOutstanding float64 `json:"total_outstanding"`
}
