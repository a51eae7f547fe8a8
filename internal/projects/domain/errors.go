package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("project not found")
	ErrDuplicateName = errors.New("project with this name already exists")
	ErrNameRequired  = errors.New("name required")
)

// UpstreamError reports a sibling module that answered but signalled its own failure.
type UpstreamError struct {
	Kind   Kind
	Detail string
}

func (e *UpstreamError) Error() string {
	return e.Detail
}

// NewUpstreamError builds the error surfaced when the kind module is down.
func NewUpstreamError(kind Kind) *UpstreamError {
	return &UpstreamError{Kind: kind, Detail: fmt.Sprintf("cannot connect to the %s module", kind)}
}
