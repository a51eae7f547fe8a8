package http

import (
	"context"
	"sort"
	"sync"

	"github.com/wys-platform/project-service/internal/projects/domain"
)

// memStore is an in-memory service.Store. When err is set every call fails with it.
type memStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.Project
	err    error
}

func newMemStore() *memStore {
	return &memStore{rows: map[int64]domain.Project{}}
}

func (m *memStore) taken(userID, exceptID int64, name string) bool {
	for id, p := range m.rows {
		if id != exceptID && p.UserID == userID && p.Name == name {
			return true
		}
	}
	return false
}

func (m *memStore) seed(p domain.Project) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID > m.nextID {
		m.nextID = p.ID
	}
	m.rows[p.ID] = p
}

func (m *memStore) Create(_ context.Context, userID int64, in domain.CreateProjectInput) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.taken(userID, 0, in.Name) {
		return nil, domain.ErrDuplicateName
	}
	m.nextID++
	p := domain.Project{
		ID: m.nextID, Name: in.Name, UserID: userID,
		M2Ref: in.M2Ref, LocationRef: in.LocationRef, LayoutRef: in.LayoutRef,
		TimeRef: in.TimeRef, PriceRef: in.PriceRef,
	}
	m.rows[p.ID] = p
	return &p, nil
}

func (m *memStore) GetByID(_ context.Context, userID, id int64) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.rows[id]
	if !ok || p.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (m *memStore) ListByUser(_ context.Context, userID int64) ([]domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []domain.Project{}
	for _, p := range m.rows {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) Update(_ context.Context, p *domain.Project) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.taken(p.UserID, p.ID, p.Name) {
		return nil, domain.ErrDuplicateName
	}
	m.rows[p.ID] = *p
	out := *p
	return &out, nil
}

func (m *memStore) Delete(_ context.Context, userID, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	p, ok := m.rows[id]
	if !ok || p.UserID != userID {
		return false, nil
	}
	delete(m.rows, id)
	return true, nil
}

func ref(v int64) *int64 { return &v }
