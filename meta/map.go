package meta

import (
	"sort"

	"birch/cst"
)

// Map is one provider's frozen node-to-value mapping. The zero value is an
// empty map. Once returned from a resolution a Map never changes, so it is
// safe to share across goroutines.
type Map struct {
	provider *Provider
	values   map[cst.NodeID]any
}

func (m Map) Len() int { return len(m.values) }

// Provider reports which provider produced the map; nil for the zero Map.
func (m Map) Provider() *Provider { return m.provider }

// Lookup returns the value recorded for id.
func (m Map) Lookup(id cst.NodeID) (any, bool) {
	v, ok := m.values[id]
	return v, ok
}

// Get is Lookup failing with a NotFoundError on a miss.
func (m Map) Get(id cst.NodeID) (any, error) {
	v, ok := m.values[id]
	if !ok {
		return nil, &NotFoundError{Provider: m.name(), Node: id}
	}
	return v, nil
}

// Nodes returns every recorded node in ascending order.
func (m Map) Nodes() []cst.NodeID {
	ids := make([]cst.NodeID, 0, len(m.values))
	for id := range m.values {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (m Map) name() string {
	if m.provider == nil {
		return "unknown"
	}
	return m.provider.Name
}

// Get returns the value for id asserted to V. A miss is a NotFoundError; a
// wrong V is a caller bug and panics like any failed type assertion.
func Get[V any](m Map, id cst.NodeID) (V, error) {
	v, err := m.Get(id)
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}
