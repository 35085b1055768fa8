package handlers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-employee-directory/internal/domain/entity"
	repo "github.com/oksasatya/go-employee-directory/internal/domain/repository"
)

type memUserRepo struct {
	mu   sync.Mutex
	rows []entity.User
}

func (m *memUserRepo) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Email == u.Email || r.Username == u.Username {
			return repo.ErrDuplicate
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	m.rows = append(m.rows, *u)
	return nil
}

func (m *memUserRepo) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Email == email || r.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUserRepo) FindByEmailOrUsername(_ context.Context, email, username string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if email != "" && r.Email == email {
			return &r, nil
		}
	}
	for _, r := range m.rows {
		if username != "" && r.Username == username {
			return &r, nil
		}
	}
	return nil, repo.ErrNotFound
}

type memEmployeeRepo struct {
	mu    sync.Mutex
	clock time.Time
	rows  map[string]entity.Employee
}

func newMemEmployeeRepo() *memEmployeeRepo {
	return &memEmployeeRepo{rows: map[string]entity.Employee{}, clock: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memEmployeeRepo) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memEmployeeRepo) Create(_ context.Context, e *entity.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = uuid.NewString()
	e.CreatedAt = m.tick()
	e.UpdatedAt = e.CreatedAt
	m.rows[e.ID] = *e
	return nil
}

func (m *memEmployeeRepo) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rows[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &e, nil
}

func (m *memEmployeeRepo) List(ctx context.Context) ([]entity.Employee, error) {
	return m.Search(ctx, repo.EmployeeFilter{})
}

func (m *memEmployeeRepo) Search(_ context.Context, f repo.EmployeeFilter) ([]entity.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.Employee{}
	for _, e := range m.rows {
		if (f.Department == "" || e.Department == f.Department) && (f.Position == "" || e.Position == f.Position) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memEmployeeRepo) ListByIDs(ctx context.Context, ids []string) ([]entity.Employee, error) {
	all, _ := m.List(ctx)
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := []entity.Employee{}
	for _, e := range all {
		if want[e.ID] {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEmployeeRepo) Update(_ context.Context, e *entity.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[e.ID]; !ok {
		return repo.ErrNotFound
	}
	e.UpdatedAt = m.tick()
	m.rows[e.ID] = *e
	return nil
}

func (m *memEmployeeRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}
