package siblings

import "github.com/wys-platform/project-service/internal/projects/domain"

// Status is the three-way outcome of a sibling lookup.
type Status int

const (
	StatusNotFound Status = iota
	StatusFound
	StatusUpstreamError
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusUpstreamError:
		return "upstream_error"
	default:
		return "not_found"
	}
}

// Result is what a single lookup produced. Payload is set only when Found,
// Err only when UpstreamError.
type Result struct {
	Status  Status
	Payload *Payload
	Err     *domain.UpstreamError
}

func Found(p *Payload) Result {
	return Result{Status: StatusFound, Payload: p}
}

func NotFound() Result {
	return Result{Status: StatusNotFound}
}

func Upstream(kind domain.Kind) Result {
	return Result{Status: StatusUpstreamError, Err: domain.NewUpstreamError(kind)}
}
