package model

import "fmt"

// DataLoadError is returned when the dataset cannot be loaded. It is fatal at startup.
type DataLoadError struct {
	Source string `json:"source"`
	Column string `json:"column,omitempty"`
	Line   int    `json:"line,omitempty"` // 1-based data line, 0 when not row specific
	Err    error  `json:"-"`
}

func (e *DataLoadError) Error() string {
	switch {
	case e.Column != "" && e.Line > 0:
		return fmt.Sprintf("load %s: column %q line %d: %v", e.Source, e.Column, e.Line, e.Err)
	case e.Column != "":
		return fmt.Sprintf("load %s: column %q: %v", e.Source, e.Column, e.Err)
	default:
		return fmt.Sprintf("load %s: %v", e.Source, e.Err)
	}
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// MissingFieldError means a row lacks a field an aggregator needs.
// Such rows are skipped by that aggregator only.
type MissingFieldError struct {
	Field   string
	OrderID string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("order %s: missing field %s", e.OrderID, e.Field)
}
