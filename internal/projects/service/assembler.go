package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/wys-platform/project-service/internal/logging"
	"github.com/wys-platform/project-service/internal/projects/domain"
	"github.com/wys-platform/project-service/internal/projects/siblings"
)

// Lookuper resolves one sibling reference. *siblings.Client implements it.
type Lookuper interface {
	Lookup(ctx context.Context, kind domain.Kind, referenceID int64, credential string) siblings.Result
}

// Assembler turns projects into detail views by resolving their references.
type Assembler struct {
	client   Lookuper
	parallel bool
}

// NewAssembler creates an assembler. With parallel set, the lookups of one
// project are issued concurrently; the outcome is the same as in sequential mode.
func NewAssembler(client Lookuper, parallel bool) *Assembler {
	return &Assembler{client: client, parallel: parallel}
}

// Assemble resolves every populated reference of p. Absent references and
// records the sibling does not have leave their field empty. The first
// upstream error, in kind order, fails the whole call.
func (a *Assembler) Assemble(ctx context.Context, p *domain.Project, credential string) (domain.ProjectDetail, error) {
	if a.parallel {
		return a.assembleParallel(ctx, p, credential)
	}

	detail := domain.NewProjectDetail(p)
	for _, kind := range domain.Kinds {
		ref := p.Ref(kind)
		if ref == nil {
			continue
		}
		res := a.client.Lookup(ctx, kind, *ref, credential)
		if err := merge(ctx, &detail, p.ID, kind, res); err != nil {
			return domain.ProjectDetail{}, err
		}
	}
	return detail, nil
}

func (a *Assembler) assembleParallel(ctx context.Context, p *domain.Project, credential string) (domain.ProjectDetail, error) {
	results := make([]siblings.Result, len(domain.Kinds))
	issued := make([]bool, len(domain.Kinds))

	var g errgroup.Group
	for i, kind := range domain.Kinds {
		ref := p.Ref(kind)
		if ref == nil {
			continue
		}
		issued[i] = true
		g.Go(func() error {
			results[i] = a.client.Lookup(ctx, kind, *ref, credential)
			return nil
		})
	}
	_ = g.Wait()

	detail := domain.NewProjectDetail(p)
	for i, kind := range domain.Kinds {
		if !issued[i] {
			continue
		}
		if err := merge(ctx, &detail, p.ID, kind, results[i]); err != nil {
			return domain.ProjectDetail{}, err
		}
	}
	return detail, nil
}

// AssembleMany assembles each project in order. Any upstream error aborts the batch.
func (a *Assembler) AssembleMany(ctx context.Context, projects []domain.Project, credential string) ([]domain.ProjectDetail, error) {
	out := make([]domain.ProjectDetail, 0, len(projects))
	for i := range projects {
		d, err := a.Assemble(ctx, &projects[i], credential)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func merge(ctx context.Context, detail *domain.ProjectDetail, projectID int64, kind domain.Kind, res siblings.Result) error {
	switch res.Status {
	case siblings.StatusFound:
		v, ok := res.Payload.Field(kind)
		if !ok {
			logging.New(ctx).Warnf("assemble", "project_id=%d kind=%s response has no %q field", projectID, kind, kind)
		}
		detail.Set(kind, v)
	case siblings.StatusUpstreamError:
		err := res.Err
		if err == nil {
			err = domain.NewUpstreamError(kind)
		}
		logging.New(ctx).Errorf("assemble", "project_id=%d kind=%s error=%v", projectID, kind, err)
		return err
	}
	return nil
}

// Resolve looks up a single kind for p with the same rules as Assemble.
func (a *Assembler) Resolve(ctx context.Context, p *domain.Project, kind domain.Kind, credential string) (string, error) {
	ref := p.Ref(kind)
	if ref == nil {
		return "", nil
	}
	detail := domain.NewProjectDetail(p)
	if err := merge(ctx, &detail, p.ID, kind, a.client.Lookup(ctx, kind, *ref, credential)); err != nil {
		return "", err
	}
	switch kind {
	case domain.KindM2:
		return detail.M2, nil
	case domain.KindPrice:
		return detail.Price, nil
	case domain.KindLocation:
		return detail.Location, nil
	case domain.KindTime:
		return detail.Time, nil
	case domain.KindLayout:
		return detail.Layout, nil
	}
	return "", nil
}
