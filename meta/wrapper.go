package meta

import (
	"fmt"

	"birch/cst"
)

// Wrapper owns one tree and memoizes provider results for it. Metadata is
// computed at most once per (provider, wrapper) pair; a failed computation
// caches nothing, so a later request retries it. A Wrapper is not safe for
// concurrent use, but distinct wrappers over distinct trees are independent.
type Wrapper struct {
	tree  *cst.Tree
	cache map[*Provider]Map
}

// NewWrapper wraps tree. The tree must not change afterwards.
func NewWrapper(tree *cst.Tree) *Wrapper {
	return &Wrapper{tree: tree, cache: make(map[*Provider]Map)}
}

func (w *Wrapper) Tree() *cst.Tree { return w.tree }

// Resolve computes metadata for p after computing its declared
// dependencies.
func (w *Wrapper) Resolve(p *Provider) (Map, error) {
	results, err := w.ResolveAll(p)
	if err != nil {
		return Map{}, err
	}
	return results[p], nil
}

// ResolveAll computes metadata for every listed provider. The declared
// dependency graph is validated before anything runs. Batchable providers
// whose dependencies are satisfied in the same round share one traversal.
func (w *Wrapper) ResolveAll(ps ...*Provider) (map[*Provider]Map, error) {
	order, err := closure(ps)
	if err != nil {
		return nil, err
	}
	pending := make([]*Provider, 0, len(order))
	for _, p := range order {
		if _, ok := w.cache[p]; !ok {
			pending = append(pending, p)
		}
	}
	for len(pending) > 0 {
		var ready, waiting []*Provider
		for _, p := range pending {
			if w.depsReady(p) {
				ready = append(ready, p)
			} else {
				waiting = append(waiting, p)
			}
		}
		if err := w.runRound(ready); err != nil {
			return nil, err
		}
		pending = waiting
	}
	results := make(map[*Provider]Map, len(ps))
	for _, p := range ps {
		results[p] = w.cache[p]
	}
	return results, nil
}

func (w *Wrapper) depsReady(p *Provider) bool {
	for _, r := range p.Requires {
		if _, ok := w.cache[r]; !ok {
			return false
		}
	}
	return true
}

// runRound computes one layer of providers whose dependencies are all
// cached. Self-driven providers run alone; batchable ones collect their
// callbacks and share a single walk.
func (w *Wrapper) runRound(ready []*Provider) error {
	var (
		batched []*Provider
		passes  []*Pass
		obs     batchObserver
	)
	for _, p := range ready {
		pass := newPass(w.tree, p, w.depsView(p))
		if p.Batch != nil {
			obs.callbacks = append(obs.callbacks, p.Batch(pass))
			batched = append(batched, p)
			passes = append(passes, pass)
			continue
		}
		err := p.Run(pass)
		if err != nil {
			pass.release()
			return err
		}
		w.cache[p] = pass.freeze()
		pass.release()
	}
	if len(batched) == 0 {
		return nil
	}
	cst.Walk(w.tree, w.tree.Root(), &obs)
	if obs.err != nil {
		for _, pass := range passes {
			pass.release()
		}
		return obs.err
	}
	for i, p := range batched {
		w.cache[p] = passes[i].freeze()
		passes[i].release()
	}
	return nil
}

func (w *Wrapper) depsView(p *Provider) map[*Provider]Map {
	deps := make(map[*Provider]Map, len(p.Requires))
	for _, r := range p.Requires {
		deps[r] = w.cache[r]
	}
	return deps
}

// closure flattens the transitive Requires graph of the requested providers
// into dependency-first order, rejecting cycles and misdeclared providers
// before any computation starts.
func closure(ps []*Provider) ([]*Provider, error) {
	const (
		visiting = 1
		finished = 2
	)
	var (
		order []*Provider
		state = make(map[*Provider]uint8)
		stack []string
	)
	var visit func(p *Provider) error
	visit = func(p *Provider) error {
		switch state[p] {
		case finished:
			return nil
		case visiting:
			start := 0
			for i, name := range stack {
				if name == p.Name {
					start = i
					break
				}
			}
			cycle := append(append([]string(nil), stack[start:]...), p.Name)
			return &CycleError{Stack: cycle}
		}
		if (p.Run == nil) == (p.Batch == nil) {
			return fmt.Errorf("meta: provider %q must set exactly one of Run and Batch", p.Name)
		}
		state[p] = visiting
		stack = append(stack, p.Name)
		for _, r := range p.Requires {
			if r == nil {
				return fmt.Errorf("meta: provider %q requires a nil provider", p.Name)
			}
			if err := visit(r); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		state[p] = finished
		order = append(order, p)
		return nil
	}
	for _, p := range ps {
		if p == nil {
			return nil, fmt.Errorf("meta: cannot resolve a nil provider")
		}
		if err := visit(p); err != nil {
			return nil, err
		}
	}
	return order, nil
}
