package models

// PaymentCategory is a billable fee type. Only active compulsory
// categories participate in automatic invoice generation.
type PaymentCategory struct {
	ID     int64        `json:"id"`
	Name   string       `json:"name"`
	Type   CategoryType `json:"type"`
	Amount float64      `json:"amount"`
	Active bool         `json:"is_active"`
}
