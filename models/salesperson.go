package models

import "time"

// Salesperson represents a salesperson in the database
type Salesperson struct {
	SalespersonID int64      `json:"salespersonId"`
	Name          string     `json:"name"`
	Code          string     `json:"code"`
	EnteredDate   time.Time  `json:"enteredDate"`
	UpdatedTime   *time.Time `json:"updatedTime"`
}

// SalespersonRequest represents the request body for adding or renaming a salesperson
// Example: {"name": "Nimal Perera", "code": "SP0003"}
type SalespersonRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}
