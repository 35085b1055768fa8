package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oksasatya/go-employee-directory/internal/domain/entity"
	repo "github.com/oksasatya/go-employee-directory/internal/domain/repository"
)

// =============================================================================
// Employee repository
// =============================================================================

type memEmployees struct {
	mu        sync.Mutex
	seq       int
	clock     time.Time
	rows      map[string]entity.Employee
	createErr error
	updateErr error
}

func newMemEmployees() *memEmployees {
	return &memEmployees{rows: map[string]entity.Employee{}, clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memEmployees) Create(_ context.Context, e *entity.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.seq++
	m.clock = m.clock.Add(time.Minute)
	e.ID = fmt.Sprintf("emp-%d", m.seq)
	e.CreatedAt, e.UpdatedAt = m.clock, m.clock
	m.rows[e.ID] = *e
	return nil
}

func (m *memEmployees) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rows[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &e, nil
}

func (m *memEmployees) List(ctx context.Context) ([]entity.Employee, error) {
	return m.Search(ctx, repo.EmployeeFilter{})
}

func (m *memEmployees) Search(_ context.Context, f repo.EmployeeFilter) ([]entity.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.Employee{}
	for _, e := range m.rows {
		if f.Department != "" && e.Department != f.Department {
			continue
		}
		if f.Position != "" && e.Position != f.Position {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memEmployees) ListByIDs(ctx context.Context, ids []string) ([]entity.Employee, error) {
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

func (m *memEmployees) Update(_ context.Context, e *entity.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.rows[e.ID]; !ok {
		return repo.ErrNotFound
	}
	m.clock = m.clock.Add(time.Minute)
	e.UpdatedAt = m.clock
	m.rows[e.ID] = *e
	return nil
}

func (m *memEmployees) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

// =============================================================================
// Asset store
// =============================================================================

type memAssets struct {
	mu        sync.Mutex
	seq       int
	files     map[string]string
	storeErr  error
	removeErr error
	removed   []string
}

func newMemAssets() *memAssets { return &memAssets{files: map[string]string{}} }

func (m *memAssets) Store(_ context.Context, u repo.Upload) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storeErr != nil {
		return "", m.storeErr
	}
	b, err := io.ReadAll(u.Body)
	if err != nil {
		return "", err
	}
	m.seq++
	name := fmt.Sprintf("file-%d.png", m.seq)
	m.files[name] = string(b)
	return name, nil
}

func (m *memAssets) Open(_ context.Context, name string) (io.ReadCloser, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.files[name]
	if !ok {
		return nil, "", repo.ErrAssetNotFound
	}
	return io.NopCloser(strings.NewReader(b)), "image/png", nil
}

func (m *memAssets) Remove(_ context.Context, name string) repo.RemovalResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = append(m.removed, name)
	if m.removeErr != nil {
		return repo.RemovalResult{Filename: name, Err: m.removeErr}
	}
	if _, ok := m.files[name]; !ok {
		return repo.RemovalResult{Filename: name, Absent: true}
	}
	delete(m.files, name)
	return repo.RemovalResult{Filename: name, Removed: true}
}

func (m *memAssets) has(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[name]
	return ok
}

func upload(content string) *repo.Upload {
	return &repo.Upload{Filename: "me.png", ContentType: "image/png", Size: int64(len(content)), Body: strings.NewReader(content)}
}

// =============================================================================
// Index
// =============================================================================

type fakeIndex struct {
	mu       sync.Mutex
	docs     map[string]repo.EmployeeDocument
	searchFn func(q string, size int) ([]string, error)
	indexErr error
}

func newFakeIndex() *fakeIndex { return &fakeIndex{docs: map[string]repo.EmployeeDocument{}} }

func (f *fakeIndex) Index(_ context.Context, doc repo.EmployeeDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.indexErr != nil {
		return f.indexErr
	}
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeIndex) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.docs, id)
	return nil
}

func (f *fakeIndex) Search(_ context.Context, q string, size int) ([]string, error) {
	if f.searchFn != nil {
		return f.searchFn(q, size)
	}
	return nil, errors.New("not implemented")
}

// =============================================================================
// Users, tokens, jobs
// =============================================================================

type memUsers struct {
	mu        sync.Mutex
	seq       int
	rows      []entity.User
	findErr   error
	createErr error
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.seq++
	u.ID = fmt.Sprintf("user-%d", m.seq)
	m.rows = append(m.rows, *u)
	return nil
}

func (m *memUsers) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) FindByEmailOrUsername(_ context.Context, email, username string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	var byName *entity.User
	for i := range m.rows {
		u := m.rows[i]
		if email != "" && u.Email == email {
			return &u, nil
		}
		if username != "" && u.Username == username && byName == nil {
			byName = &u
		}
	}
	if byName != nil {
		return byName, nil
	}
	return nil, repo.ErrNotFound
}

type fakeTokens struct{ err error }

func (f fakeTokens) Issue(userID string) (string, time.Time, error) {
	if f.err != nil {
		return "", time.Time{}, f.err
	}
	return "token-for-" + userID, time.Now().Add(time.Hour), nil
}

type recordingPublisher struct {
	mu   sync.Mutex
	jobs []any
	err  error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, body)
	return nil
}
