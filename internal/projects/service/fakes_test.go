package service

import (
	"context"
	"sort"
	"sync"

	"github.com/wys-platform/project-service/internal/projects/domain"
	"github.com/wys-platform/project-service/internal/projects/siblings"
)

type lookupCall struct {
	Kind       domain.Kind
	Ref        int64
	Credential string
}

// fakeLookuper answers from a per-kind table and records every call.
type fakeLookuper struct {
	mu      sync.Mutex
	results map[domain.Kind]siblings.Result
	calls   []lookupCall
}

func newFakeLookuper() *fakeLookuper {
	return &fakeLookuper{results: map[domain.Kind]siblings.Result{}}
}

func (f *fakeLookuper) found(kind domain.Kind, value string) *fakeLookuper {
	v := siblings.FieldValue(value)
	var p siblings.Payload
	switch kind {
	case domain.KindM2:
		p.M2 = &v
	case domain.KindPrice:
		p.Price = &v
	case domain.KindLocation:
		p.Location = &v
	case domain.KindTime:
		p.Time = &v
	case domain.KindLayout:
		p.Layout = &v
	}
	f.results[kind] = siblings.Found(&p)
	return f
}

func (f *fakeLookuper) set(kind domain.Kind, res siblings.Result) *fakeLookuper {
	f.results[kind] = res
	return f
}

func (f *fakeLookuper) Lookup(_ context.Context, kind domain.Kind, ref int64, credential string) siblings.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, lookupCall{Kind: kind, Ref: ref, Credential: credential})
	if res, ok := f.results[kind]; ok {
		return res
	}
	return siblings.NotFound()
}

func (f *fakeLookuper) kindsCalled() []domain.Kind {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Kind, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.Kind)
	}
	return out
}

// memStore is an in-memory Store enforcing the (owner, name) uniqueness rule.
type memStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.Project
}

func newMemStore() *memStore {
	return &memStore{rows: map[int64]domain.Project{}}
}

func (m *memStore) nameTaken(userID, exceptID int64, name string) bool {
	for id, p := range m.rows {
		if id != exceptID && p.UserID == userID && p.Name == name {
			return true
		}
	}
	return false
}

func (m *memStore) Create(_ context.Context, userID int64, in domain.CreateProjectInput) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.nameTaken(userID, 0, in.Name) {
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
	p, ok := m.rows[id]
	if !ok || p.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (m *memStore) ListByUser(_ context.Context, userID int64) ([]domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
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
	cur, ok := m.rows[p.ID]
	if !ok || cur.UserID != p.UserID {
		return nil, domain.ErrNotFound
	}
	if m.nameTaken(p.UserID, p.ID, p.Name) {
		return nil, domain.ErrDuplicateName
	}
	m.rows[p.ID] = *p
	out := *p
	return &out, nil
}

func (m *memStore) Delete(_ context.Context, userID, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	if !ok || p.UserID != userID {
		return false, nil
	}
	delete(m.rows, id)
	return true, nil
}

func ref(v int64) *int64 { return &v }
