package application

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-employee-directory/internal/domain/entity"
	repo "github.com/oksasatya/go-employee-directory/internal/domain/repository"
	"github.com/oksasatya/go-employee-directory/pkg/helpers"
)

const (
	defaultLookupSize = 10
	maxLookupSize     = 50
)

var (
	employeesCreated      = expvar.NewInt("employees_created")
	employeesUpdated      = expvar.NewInt("employees_updated")
	employeesDeleted      = expvar.NewInt("employees_deleted")
	assetRemovalFailures  = expvar.NewInt("asset_removal_failures")
	employeeIndexFailures = expvar.NewInt("employee_index_failures")
)

// SearchFilter selects employees by exact department and/or position.
type SearchFilter struct {
	Department string
	Position   string
}

// EmployeeService runs the employee record lifecycle and keeps each record's
// profile picture reference in step with the asset store.
type EmployeeService struct {
	Repo   repo.EmployeeRepository
	Assets repo.AssetStore
	// Index is optional; nil disables full-text lookup.
	Index  repo.EmployeeIndex
	Logger *logrus.Logger
}

func NewEmployeeService(r repo.EmployeeRepository, assets repo.AssetStore, index repo.EmployeeIndex, logger *logrus.Logger) *EmployeeService {
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	return &EmployeeService{Repo: r, Assets: assets, Index: index, Logger: logger}
}

// List returns all employees, newest first.
func (s *EmployeeService) List(ctx context.Context) ([]entity.Employee, error) {
	out, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return out, nil
}

// Search matches department and position exactly; at least one is required.
func (s *EmployeeService) Search(ctx context.Context, f SearchFilter) ([]entity.Employee, error) {
	filter := repo.EmployeeFilter{Department: f.Department, Position: f.Position}
	if filter.Empty() {
		return nil, ErrEmptyFilter
	}
	out, err := s.Repo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search employees: %w", err)
	}
	return out, nil
}

// Lookup runs a full-text query against the index. Without an index it finds nothing.
func (s *EmployeeService) Lookup(ctx context.Context, q string, size int) ([]entity.Employee, error) {
	if strings.TrimSpace(q) == "" {
		return nil, fieldError("q", "is required")
	}
	if s.Index == nil {
		return []entity.Employee{}, nil
	}
	switch {
	case size <= 0:
		size = defaultLookupSize
	case size > maxLookupSize:
		size = maxLookupSize
	}
	ids, err := s.Index.Search(ctx, q, size)
	if err != nil {
		return nil, fmt.Errorf("lookup employees: %w", err)
	}
	out, err := s.Repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}
	return out, nil
}

func (s *EmployeeService) Get(ctx context.Context, id string) (*entity.Employee, error) {
	e, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

// Create persists a new employee from the allow-listed fields. An attached
// picture is stored first; if the record cannot be written the picture is
// removed again.
func (s *EmployeeService) Create(ctx context.Context, fields map[string]string, picture *repo.Upload) (*entity.Employee, error) {
	p, err := BuildPayload(fields)
	if err != nil {
		return nil, err
	}
	e := &entity.Employee{}
	p.Apply(e)

	if picture != nil {
		name, err := s.Assets.Store(ctx, *picture)
		if err != nil {
			return nil, fmt.Errorf("store profile picture: %w", err)
		}
		e.ProfilePicture = name
	}

	if err := s.Repo.Create(ctx, e); err != nil {
		if e.HasPicture() {
			s.discardPicture(ctx, e.ProfilePicture, "create failed")
		}
		return nil, fmt.Errorf("create employee: %w", err)
	}

	employeesCreated.Add(1)
	s.index(ctx, e)
	return e, nil
}

// Update merges the supplied fields into the stored record. A new picture
// replaces the old one, which is then removed; without one the reference is kept.
func (s *EmployeeService) Update(ctx context.Context, id string, fields map[string]string, picture *repo.Upload) (*entity.Employee, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err := BuildPayload(fields)
	if err != nil {
		return nil, err
	}
	p.Apply(e)

	previous := e.ProfilePicture
	var stored string
	if picture != nil {
		stored, err = s.Assets.Store(ctx, *picture)
		if err != nil {
			return nil, fmt.Errorf("store profile picture: %w", err)
		}
		e.ProfilePicture = stored
	}

	if err := s.Repo.Update(ctx, e); err != nil {
		if stored != "" {
			s.discardPicture(ctx, stored, "update failed")
		}
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("update employee: %w", err)
	}

	if stored != "" && previous != "" && previous != stored {
		s.discardPicture(ctx, previous, "replaced")
	}

	employeesUpdated.Add(1)
	s.index(ctx, e)
	return e, nil
}

// Delete removes the employee and its picture. Picture cleanup is best-effort
// and never stops the record from being deleted.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	e, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if e.HasPicture() {
		s.discardPicture(ctx, e.ProfilePicture, "employee deleted")
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("delete employee: %w", err)
	}

	employeesDeleted.Add(1)
	if s.Index != nil {
		if err := s.Index.Delete(context.WithoutCancel(ctx), id); err != nil {
			employeeIndexFailures.Add(1)
			s.Logger.WithError(err).WithField("employee_id", id).Warn("es delete failed")
		}
	}
	return nil
}

// discardPicture removes filename and only logs the outcome.
func (s *EmployeeService) discardPicture(ctx context.Context, filename, reason string) {
	res := s.Assets.Remove(context.WithoutCancel(ctx), filename)
	fields := logrus.Fields{"file": res.Filename, "reason": reason}
	if res.OK() {
		s.Logger.WithFields(fields).WithField("absent", res.Absent).Debug("profile picture removed")
		return
	}
	assetRemovalFailures.Add(1)
	helpers.LogWarn(s.Logger, "profile picture cleanup failed", res.Err, fields)
}

func (s *EmployeeService) index(ctx context.Context, e *entity.Employee) {
	if s.Index == nil {
		return
	}
	doc := repo.EmployeeDocument{
		ID:         e.ID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Position:   e.Position,
		Department: e.Department,
		CreatedAt:  e.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if err := s.Index.Index(context.WithoutCancel(ctx), doc); err != nil {
		employeeIndexFailures.Add(1)
		helpers.LogWarn(s.Logger, "es index failed", err, logrus.Fields{"employee_id": e.ID})
	}
}
