package models

import "time"

// Student represents a learner registered in the school.
type Student struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Guardian     string    `json:"guardian"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	ClassID      int64     `json:"class_id"`
	Balance      float64   `json:"balance"`
	Status       string    `json:"status"`
	DateEnrolled time.Time `json:"date_enrolled"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search  string
	ClassID int64
	Status  string
}
