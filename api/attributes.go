package api

import (
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Attributes is a read-only, insertion-ordered view of service metadata.
// The zero value is an empty set of attributes.
type Attributes struct {
	m *orderedmap.OrderedMap[string, any]
}

// Attribute is a single key/value entry used to build Attributes
type Attribute struct {
	Key   string
	Value any
}

// NewAttributes builds Attributes from entries, keeping their order.
// Duplicate keys are rejected so every key is unique.
func NewAttributes(entries ...Attribute) (Attributes, error) {
	m := orderedmap.New[string, any]()
	for _, e := range entries {
		if _, present := m.Get(e.Key); present {
			return Attributes{}, fmt.Errorf("%w: duplicate attribute key %q", ErrInvalidArgument, e.Key)
		}
		m.Set(e.Key, e.Value)
	}
	return Attributes{m: m}, nil
}

// Get returns the value stored under key
func (a Attributes) Get(key string) (any, bool) {
	if a.m == nil {
		return nil, false
	}
	return a.m.Get(key)
}

// ModelID returns the model identifier stored under ModelIDKey, or "" if absent
func (a Attributes) ModelID() string {
	v, ok := a.Get(ModelIDKey)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Len returns the number of attributes
func (a Attributes) Len() int {
	if a.m == nil {
		return 0
	}
	return a.m.Len()
}

// Keys returns the attribute keys in insertion order
func (a Attributes) Keys() []string {
	keys := make([]string, 0, a.Len())
	if a.m == nil {
		return keys
	}
	for pair := a.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Map returns a copy of the attributes as a plain map.
// Mutating the returned map does not affect a.
func (a Attributes) Map() map[string]any {
	out := make(map[string]any, a.Len())
	if a.m == nil {
		return out
	}
	for pair := a.m.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value
	}
	return out
}

// RequireNonBlank returns an error wrapping ErrInvalidArgument when value is empty or whitespace only
func RequireNonBlank(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s must not be empty or whitespace", ErrInvalidArgument, name)
	}
	return nil
}
