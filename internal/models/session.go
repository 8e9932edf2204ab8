package models

import "time"

// SessionStatus describes the lifecycle stage of an academic session.
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionUpcoming  SessionStatus = "upcoming"
	SessionCompleted SessionStatus = "completed"
)

// Session represents an academic session (school year).
type Session struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	StartDate time.Time     `json:"start_date"`
	EndDate   time.Time     `json:"end_date"`
	Status    SessionStatus `json:"status"`
}
