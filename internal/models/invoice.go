package models

import "time"

// Invoice is a billing record representing an amount owed for a specific
// category and term. Amount and PaymentType are snapshots of the category
// at creation time, not live references.
type Invoice struct {
	ID         int64         `json:"id"`
	StudentID  string        `json:"student_id"`
	CategoryID int64         `json:"payment_category_id"`
	Amount     float64       `json:"amount"`
	AmountPaid float64       `json:"amount_paid"`
	Status     PaymentStatus `json:"status"`
	Type       CategoryType  `json:"payment_type"`
	Session    string        `json:"session"`
	Term       string        `json:"term"`
	Date       time.Time     `json:"date"`
}

// InvoiceFilter narrows invoice listings.
type InvoiceFilter struct {
	StudentID string
	Session   string
	Term      string
}
