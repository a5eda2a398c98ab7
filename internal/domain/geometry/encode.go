package geometry

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON writes primitives as objects carrying a "kind" member so
// clients can tell them apart.
func (g Group) MarshalJSON() ([]byte, error) {
	type plain Group
	out := struct {
		plain
		Primitives []json.RawMessage `json:"primitives,omitempty"`
	}{plain: plain(g)}
	for _, p := range g.Primitives {
		raw, err := marshalPrimitive(p)
		if err != nil {
			return nil, err
		}
		out.Primitives = append(out.Primitives, raw)
	}
	return json.Marshal(out)
}

func marshalPrimitive(p Primitive) (json.RawMessage, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", p.Kind(), err)
	}
	if len(body) < 2 || body[0] != '{' {
		return nil, fmt.Errorf("marshal %s: not an object", p.Kind())
	}
	head := fmt.Sprintf(`{"kind":%q`, p.Kind())
	if len(body) > 2 {
		head += ","
	}
	return append([]byte(head), body[1:]...), nil
}
