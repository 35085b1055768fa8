package repository

import (
	"context"

	"github.com/oksasatya/go-employee-directory/internal/domain/entity"
)

// EmployeeFilter holds exact-match search criteria; empty fields are ignored.
type EmployeeFilter struct {
	Department string
	Position   string
}

// Empty reports whether no criterion is set.
func (f EmployeeFilter) Empty() bool { return f.Department == "" && f.Position == "" }

// EmployeeRepository persists employee records.
type EmployeeRepository interface {
	Create(ctx context.Context, e *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	// List returns every record, newest created first.
	List(ctx context.Context) ([]entity.Employee, error)
	// Search applies f as an AND of exact matches, newest created first.
	Search(ctx context.Context, f EmployeeFilter) ([]entity.Employee, error)
	// ListByIDs returns the records for ids that still exist, newest first.
	ListByIDs(ctx context.Context, ids []string) ([]entity.Employee, error)
	Update(ctx context.Context, e *entity.Employee) error
	Delete(ctx context.Context, id string) error
}
