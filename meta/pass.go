package meta

import (
	"errors"

	"birch/cst"
)

// Pass carries one computation: the tree, the provider's private
// accumulator, and a view of the declared dependencies' frozen maps. A Pass
// is only valid while the computation that received it runs; freezing takes
// the accumulator away and releasing drops the dependency view, so nothing
// useful can leak past the provider's own Run or Batch call.
type Pass struct {
	Tree *cst.Tree

	provider *Provider
	values   map[cst.NodeID]any
	deps     map[*Provider]Map
}

func newPass(tree *cst.Tree, p *Provider, deps map[*Provider]Map) *Pass {
	return &Pass{
		Tree:     tree,
		provider: p,
		values:   make(map[cst.NodeID]any),
		deps:     deps,
	}
}

// Provider reports whose computation this pass belongs to.
func (p *Pass) Provider() *Provider { return p.provider }

// Record maps id to value. Recording the same node again overwrites.
func (p *Pass) Record(id cst.NodeID, value any) {
	p.values[id] = value
}

// Lookup reads metadata for id. The pass's own provider sees everything it
// has recorded so far, which lets a computation build on its own partial
// results. A declared dependency sees that provider's frozen map. Anything
// else fails with ErrDependencyNotResolved.
func (p *Pass) Lookup(from *Provider, id cst.NodeID) (any, error) {
	if from == nil {
		return nil, &UnresolvedError{Requested: "<nil>", By: p.provider.Name}
	}
	if from == p.provider {
		v, ok := p.values[id]
		if !ok {
			return nil, &NotFoundError{Provider: from.Name, Node: id}
		}
		return v, nil
	}
	dep, ok := p.deps[from]
	if !ok {
		return nil, &UnresolvedError{Requested: from.Name, By: p.provider.Name}
	}
	return dep.Get(id)
}

// LookupDefault is Lookup returning def for nodes with no entry. Reading an
// undeclared provider still fails.
func (p *Pass) LookupDefault(from *Provider, id cst.NodeID, def any) (any, error) {
	v, err := p.Lookup(from, id)
	if errors.Is(err, ErrMetadataNotFound) {
		return def, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// freeze moves the accumulator into an immutable Map. The pass surrenders
// it: recording afterwards is a bug and panics on the nil map.
func (p *Pass) freeze() Map {
	m := Map{provider: p.provider, values: p.values}
	p.values = nil
	return m
}

// release drops dependency visibility once the computation is over,
// success or failure.
func (p *Pass) release() {
	p.deps = nil
}
