package models

import "time"

// Enrollment records a student joining a session/term.
type Enrollment struct {
	ID           int64     `json:"id"`
	StudentID    string    `json:"student_id"`
	Session      string    `json:"session"`
	Term         string    `json:"term"`
	Status       string    `json:"status"`
	DateEnrolled time.Time `json:"date_enrolled"`
}

// EnrollmentResult is returned from enrollment creation; InvoicesCreated
// reports how many invoices the fan-out generated and is omitted when
// generation was not requested.
type EnrollmentResult struct {
	Enrollment      Enrollment `json:"enrollment"`
	InvoicesCreated int        `json:"invoices_created,omitempty"`
}
