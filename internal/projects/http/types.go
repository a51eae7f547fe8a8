package http

import (
	"github.com/wys-platform/project-service/internal/projects/domain"
	"github.com/wys-platform/project-service/internal/projects/service"
)

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc *service.ProjectService
}

func New(svc *service.ProjectService) *Handler {
	return &Handler{svc: svc}
}

// createReq accepts location_id as an older spelling of location_gen_id.
// Any user_id in the body is ignored; the owner comes from the token.
type createReq struct {
	Name          string `json:"name"`
	M2GenID       *int64 `json:"m2_gen_id"`
	LocationGenID *int64 `json:"location_gen_id"`
	LocationID    *int64 `json:"location_id"`
	LayoutGenID   *int64 `json:"layout_gen_id"`
	TimeGenID     *int64 `json:"time_gen_id"`
	PriceGenID    *int64 `json:"price_gen_id"`
}

func (r createReq) toInput() domain.CreateProjectInput {
	loc := r.LocationGenID
	if loc == nil {
		loc = r.LocationID
	}
	return domain.CreateProjectInput{
		Name:        r.Name,
		M2Ref:       r.M2GenID,
		LocationRef: loc,
		LayoutRef:   r.LayoutGenID,
		TimeRef:     r.TimeGenID,
		PriceRef:    r.PriceGenID,
	}
}

type updateReq struct {
	Name          *string            `json:"name"`
	M2GenID       domain.OptionalRef `json:"m2_gen_id"`
	LocationGenID domain.OptionalRef `json:"location_gen_id"`
	LocationID    domain.OptionalRef `json:"location_id"`
	LayoutGenID   domain.OptionalRef `json:"layout_gen_id"`
	TimeGenID     domain.OptionalRef `json:"time_gen_id"`
	PriceGenID    domain.OptionalRef `json:"price_gen_id"`
}

func (r updateReq) toInput() domain.UpdateProjectInput {
	loc := r.LocationGenID
	if !loc.Set {
		loc = r.LocationID
	}
	return domain.UpdateProjectInput{
		Name:        r.Name,
		M2Ref:       r.M2GenID,
		LocationRef: loc,
		LayoutRef:   r.LayoutGenID,
		TimeRef:     r.TimeGenID,
		PriceRef:    r.PriceGenID,
	}
}

type projectResp struct {
	domain.Project
	LocationID *int64 `json:"location_id"`
}

func toProjectResp(p *domain.Project) projectResp {
	return projectResp{Project: *p, LocationID: p.LocationRef}
}

func toProjectResps(items []domain.Project) []projectResp {
	out := make([]projectResp, 0, len(items))
	for i := range items {
		out = append(out, toProjectResp(&items[i]))
	}
	return out
}
