package models

import "time"

// Expense is a school expenditure record.
type Expense struct {
	ID          int64     `json:"id"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
}

// ExpenseFilter narrows expense listings by date range and category.
type ExpenseFilter struct {
	From     time.Time
	To       time.Time
	Category string
}

// ExpenseSummary aggregates expenses over a filter.
type ExpenseSummary struct {
	Total float64 `json:"total"`
	Count int     `json:"count"`
}
