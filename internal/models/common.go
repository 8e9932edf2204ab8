package models

// Pagination carries list metadata in response envelopes.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// PaymentStatus is derived from amount vs amount_paid and never set by
// clients directly.
type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "paid"
	StatusPartial PaymentStatus = "partial"
	StatusUnpaid  PaymentStatus = "unpaid"
)

// CategoryType distinguishes fees every student owes from opt-in ones.
type CategoryType string

const (
	CategoryCompulsory CategoryType = "compulsory"
	CategoryOptional   CategoryType = "optional"
)
