package service

import (
	"context"
	"strings"

	"github.com/wys-platform/project-service/internal/projects/domain"
)

// Store is the persistence the service needs. *repository.ProjectRepository implements it.
type Store interface {
	Create(ctx context.Context, userID int64, in domain.CreateProjectInput) (*domain.Project, error)
	GetByID(ctx context.Context, userID, id int64) (*domain.Project, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Project, error)
	Update(ctx context.Context, p *domain.Project) (*domain.Project, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
}

// ProjectService handles project-related business logic
type ProjectService struct {
	store     Store
	assembler *Assembler
}

// NewProjectService creates a new project service
func NewProjectService(store Store, assembler *Assembler) *ProjectService {
	return &ProjectService{
		store:     store,
		assembler: assembler,
	}
}

// Create creates a new project owned by userID
func (s *ProjectService) Create(ctx context.Context, userID int64, in domain.CreateProjectInput) (*domain.Project, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, domain.ErrNameRequired
	}
	return s.store.Create(ctx, userID, in)
}

// Get returns one project of userID
func (s *ProjectService) Get(ctx context.Context, userID, id int64) (*domain.Project, error) {
	return s.store.GetByID(ctx, userID, id)
}

// List returns all projects for a user
func (s *ProjectService) List(ctx context.Context, userID int64) ([]domain.Project, error) {
	return s.store.ListByUser(ctx, userID)
}

// Update applies a partial update; omitted fields keep their stored values
func (s *ProjectService) Update(ctx context.Context, userID, id int64, in domain.UpdateProjectInput) (*domain.Project, error) {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrNameRequired
		}
		in.Name = &name
	}

	p, err := s.store.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	in.Apply(p)
	return s.store.Update(ctx, p)
}

// Delete removes a project
func (s *ProjectService) Delete(ctx context.Context, userID, id int64) error {
	ok, err := s.store.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// Detail assembles the detail view of one project. No sibling is called
// when the project does not exist or belongs to someone else.
func (s *ProjectService) Detail(ctx context.Context, userID, id int64, credential string) (*domain.ProjectDetail, error) {
	p, err := s.store.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	d, err := s.assembler.Assemble(ctx, p, credential)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// AllDetails assembles every project of userID in store order
func (s *ProjectService) AllDetails(ctx context.Context, userID int64, credential string) ([]domain.ProjectDetail, error) {
	items, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.assembler.AssembleMany(ctx, items, credential)
}

// Location resolves only the location reference of one project
func (s *ProjectService) Location(ctx context.Context, userID, id int64, credential string) (string, error) {
	p, err := s.store.GetByID(ctx, userID, id)
	if err != nil {
		return "", err
	}
	return s.assembler.Resolve(ctx, p, domain.KindLocation, credential)
}
