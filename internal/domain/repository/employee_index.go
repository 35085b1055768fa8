package repository

import "context"

// EmployeeIndex is an optional full-text index of employees.
type EmployeeIndex interface {
	Index(ctx context.Context, doc EmployeeDocument) error
	Delete(ctx context.Context, id string) error
	// Search returns matching employee ids, best match first.
	Search(ctx context.Context, q string, size int) ([]string, error)
}

// EmployeeDocument is the indexed projection of an employee.
type EmployeeDocument struct {
	ID         string `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Position   string `json:"position"`
	Department string `json:"department"`
	CreatedAt  string `json:"created_at"`
}
