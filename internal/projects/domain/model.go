package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// Kind names one sibling module a project can reference.
type Kind string

const (
	KindM2       Kind = "m2"
	KindPrice    Kind = "price"
	KindLocation Kind = "location"
	KindTime     Kind = "time"
	KindLayout   Kind = "layout"
)

// Kinds is the fixed order in which references are resolved.
var Kinds = []Kind{KindM2, KindPrice, KindLocation, KindTime, KindLayout}

// Project is a user-owned record pointing at work produced by sibling modules.
// Every reference is an opaque id owned by another service and may be nil.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	UserID      int64     `json:"user_id"`
	M2Ref       *int64    `json:"m2_gen_id"`
	LocationRef *int64    `json:"location_gen_id"`
	LayoutRef   *int64    `json:"layout_gen_id"`
	TimeRef     *int64    `json:"time_gen_id"`
	PriceRef    *int64    `json:"price_gen_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Ref returns the reference stored for kind, or nil when absent.
func (p *Project) Ref(kind Kind) *int64 {
	switch kind {
	case KindM2:
		return p.M2Ref
	case KindPrice:
		return p.PriceRef
	case KindLocation:
		return p.LocationRef
	case KindTime:
		return p.TimeRef
	case KindLayout:
		return p.LayoutRef
	}
	return nil
}

// ProjectDetail is the flattened view assembled from sibling lookups.
// It is built per request and never stored.
type ProjectDetail struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	M2       string `json:"m2"`
	Location string `json:"location"`
	Layout   string `json:"layout"`
	Time     string `json:"time"`
	Price    string `json:"price"`
}

// NewProjectDetail returns a detail with every sibling field empty.
func NewProjectDetail(p *Project) ProjectDetail {
	return ProjectDetail{ID: p.ID, Name: p.Name}
}

// Set assigns the field that belongs to kind.
func (d *ProjectDetail) Set(kind Kind, value string) {
	switch kind {
	case KindM2:
		d.M2 = value
	case KindPrice:
		d.Price = value
	case KindLocation:
		d.Location = value
	case KindTime:
		d.Time = value
	case KindLayout:
		d.Layout = value
	}
}

// CreateProjectInput carries the caller-supplied fields of a new project.
// The owner always comes from the authenticated identity.
type CreateProjectInput struct {
	Name        string
	M2Ref       *int64
	LocationRef *int64
	LayoutRef   *int64
	TimeRef     *int64
	PriceRef    *int64
}

// UpdateProjectInput is a partial update; nil Name and unset refs keep the stored value.
type UpdateProjectInput struct {
	Name        *string
	M2Ref       OptionalRef
	LocationRef OptionalRef
	LayoutRef   OptionalRef
	TimeRef     OptionalRef
	PriceRef    OptionalRef
}

// Apply merges the update into p.
func (in UpdateProjectInput) Apply(p *Project) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	in.M2Ref.applyTo(&p.M2Ref)
	in.LocationRef.applyTo(&p.LocationRef)
	in.LayoutRef.applyTo(&p.LayoutRef)
	in.TimeRef.applyTo(&p.TimeRef)
	in.PriceRef.applyTo(&p.PriceRef)
}

// OptionalRef distinguishes an omitted JSON key (Set=false) from an explicit
// null (Set=true, Value=nil) in update bodies.
type OptionalRef struct {
	Set   bool
	Value *int64
}

// UnmarshalJSON is only invoked when the key is present in the body.
func (o *OptionalRef) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

func (o OptionalRef) applyTo(dst **int64) {
	if o.Set {
		*dst = o.Value
	}
}
