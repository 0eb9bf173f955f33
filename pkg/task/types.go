// Package task defines the input vocabulary of the prioritization engine:
// raw task records as callers submit them, and validated tasks ready to score.
package task

import "time"

// DefaultImportance is used when a record carries no importance rating.
const DefaultImportance = 5.0

// Importance bounds accepted on input.
const (
	MinImportance = 1.0
	MaxImportance = 10.0
)

// Record is a raw task as submitted by a caller. Every field except Title is
// optional; pointer fields distinguish "absent" from a zero value.
type Record struct {
	ID             string   `json:"id,omitempty"`
	Title          string   `json:"title"`
	DueDate        string   `json:"due_date,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
	Importance     *float64 `json:"importance,omitempty"`
	Dependencies   []string `json:"dependencies,omitempty"`
}

// Task is a validated record. It is immutable once produced by Normalize.
type Task struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Due            *time.Time `json:"due_date,omitempty"` // UTC; nil when absent or unparseable
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
	Importance     float64    `json:"importance"`
	Dependencies   []string   `json:"dependencies,omitempty"` // deduplicated, input order
	Index          int        `json:"-"`                      // position in the submitted batch
}

// ValidationError reports a record rejected before scoring.
type ValidationError struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Message
}
