package models

import "time"

// Class represents an academic class or section.
type Class struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Level     string    `json:"level"`
	Teacher   string    `json:"teacher"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}

// ClassDetail extends Class with the live student count. The count is a
// computed projection over the student collection, never persisted.
type ClassDetail struct {
	Class
	StudentCount int `json:"student_count"`
}
