package scope

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Context provides named values to the template engine.
type Context interface {
	Lookup(name string) (any, bool)
}

// Map is the plain Context implementation used for render data.
type Map map[string]any

// Lookup returns the value stored under name.
func (m Map) Lookup(name string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m[name]
	return v, ok
}

// Binding is a single name/value pair layered over a parent context.
type Binding struct {
	Name  string
	Value any
}

type overlay struct {
	parent   Context
	bindings []Binding
}

// With returns a context that resolves the supplied bindings first and
// delegates everything else to parent. Later bindings shadow earlier ones.
// The parent is never modified.
func With(parent Context, bindings ...Binding) Context {
	if len(bindings) == 0 && parent != nil {
		return parent
	}
	own := make([]Binding, 0, len(bindings))
	for _, b := range bindings {
		if strings.TrimSpace(b.Name) == "" {
			continue
		}
		own = append(own, b)
	}
	return &overlay{parent: parent, bindings: own}
}

// Derive is shorthand for With(parent, Binding{name, value}).
func Derive(parent Context, name string, value any) Context {
	return With(parent, Binding{Name: name, Value: value})
}

func (o *overlay) Lookup(name string) (any, bool) {
	for i := len(o.bindings) - 1; i >= 0; i-- {
		if o.bindings[i].Name == name {
			return o.bindings[i].Value, true
		}
	}
	if o.parent == nil {
		return nil, false
	}
	return o.parent.Lookup(name)
}

// FromValue normalises arbitrary data (structs, typed maps) into a Map by
// round-tripping it through JSON, so field names follow their json tags.
func FromValue(data any) (Map, error) {
	switch v := data.(type) {
	case nil:
		return Map{}, nil
	case Map:
		return v, nil
	case map[string]any:
		return Map(v), nil
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("scope: marshal data: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("scope: data must encode to a JSON object: %w", err)
	}
	if out == nil {
		out = map[string]any{}
	}
	return Map(out), nil
}
