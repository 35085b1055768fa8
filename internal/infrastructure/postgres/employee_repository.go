package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-employee-directory/internal/domain/entity"
	"github.com/oksasatya/go-employee-directory/internal/domain/repository"
)

const employeeColumns = `id, first_name, last_name, email, position, salary, department,
		date_of_joining, profile_picture, created_at, updated_at`

type EmployeeRepository struct {
	db DB
}

func NewEmployeeRepository(db DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *entity.Employee) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO employees (first_name, last_name, email, position, salary, department, date_of_joining, profile_picture)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, e.FirstName, e.LastName, e.Email, e.Position, e.Salary, e.Department, e.DateOfJoining, nullIfEmpty(e.ProfilePicture))

	if err := row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	row := r.db.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	e, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isPgCode(err, pgInvalidTextRepr) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

func (r *EmployeeRepository) List(ctx context.Context) ([]entity.Employee, error) {
	return r.Search(ctx, repository.EmployeeFilter{})
}

func (r *EmployeeRepository) Search(ctx context.Context, f repository.EmployeeFilter) ([]entity.Employee, error) {
	query, args := buildEmployeeSearch(f)
	return r.query(ctx, query, args...)
}

func (r *EmployeeRepository) ListByIDs(ctx context.Context, ids []string) ([]entity.Employee, error) {
	if len(ids) == 0 {
		return []entity.Employee{}, nil
	}
	return r.query(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = ANY($1::uuid[]) ORDER BY created_at DESC`, ids)
}

func (r *EmployeeRepository) Update(ctx context.Context, e *entity.Employee) error {
	err := r.db.QueryRow(ctx, `
		UPDATE employees
		SET first_name = $1, last_name = $2, email = $3, position = $4, salary = $5,
		    department = $6, date_of_joining = $7, profile_picture = $8, updated_at = now()
		WHERE id = $9
		RETURNING updated_at
	`, e.FirstName, e.LastName, e.Email, e.Position, e.Salary, e.Department, e.DateOfJoining,
		nullIfEmpty(e.ProfilePicture), e.ID).Scan(&e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) query(ctx context.Context, query string, args ...any) ([]entity.Employee, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	out := make([]entity.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}
	return out, nil
}

// buildEmployeeSearch turns f into an AND of exact, case-sensitive matches.
func buildEmployeeSearch(f repository.EmployeeFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.Department != "" {
		args = append(args, f.Department)
		conds = append(conds, fmt.Sprintf("department = $%d", len(args)))
	}
	if f.Position != "" {
		args = append(args, f.Position)
		conds = append(conds, fmt.Sprintf("position = $%d", len(args)))
	}

	var b strings.Builder
	b.WriteString("SELECT " + employeeColumns + " FROM employees")
	if len(conds) > 0 {
		b.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY created_at DESC")
	return b.String(), args
}

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	e := &entity.Employee{}
	var picture *string
	if err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Position, &e.Salary,
		&e.Department, &e.DateOfJoining, &picture, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	if picture != nil {
		e.ProfilePicture = *picture
	}
	return e, nil
}

var _ repository.EmployeeRepository = (*EmployeeRepository)(nil)
