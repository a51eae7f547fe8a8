package siblings

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/wys-platform/project-service/internal/projects/domain"
)

var errNotObject = errors.New("sibling response is not a JSON object")

// FieldValue renders a sibling field as text. Sibling modules are not
// consistent: some send strings, others numbers or small objects.
type FieldValue string

func (v *FieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FieldValue(s)
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*v = FieldValue(buf.String())
	return nil
}

// Payload is the decoded body of a 200 sibling response. A nil field means the
// key was absent or null.
type Payload struct {
	M2       *FieldValue `json:"m2"`
	Price    *FieldValue `json:"price"`
	Location *FieldValue `json:"location"`
	Time     *FieldValue `json:"time"`
	Layout   *FieldValue `json:"layout"`
}

// Field returns the value expected for kind and whether it was present.
func (p *Payload) Field(kind domain.Kind) (string, bool) {
	if p == nil {
		return "", false
	}
	var v *FieldValue
	switch kind {
	case domain.KindM2:
		v = p.M2
	case domain.KindPrice:
		v = p.Price
	case domain.KindLocation:
		v = p.Location
	case domain.KindTime:
		v = p.Time
	case domain.KindLayout:
		v = p.Layout
	}
	if v == nil {
		return "", false
	}
	return string(*v), true
}

func decodePayload(body []byte) (*Payload, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return nil, errNotObject
	}
	var p Payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
