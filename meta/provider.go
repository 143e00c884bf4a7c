// Package meta computes per-node facts about a syntax tree through
// providers: small analyses that declare what they depend on, record one
// value per node, and expose the result as a frozen map. A Wrapper owns the
// tree, resolves provider dependencies up front, memoizes results, and
// shares a single traversal between providers that support batching.
package meta

import "birch/cst"

// Provider describes one metadata computation. Providers are identified by
// pointer: declare each as a package-level variable and hand the same
// pointer to Resolve and to Pass.Lookup.
//
// Exactly one of Run and Batch must be set. Run drives its own traversal
// (typically a render pass or cst.Walk) and may fail. Batch builds per-node
// callbacks instead; the wrapper drives them during a walk shared with the
// other batchable providers of the same resolution round.
type Provider struct {
	Name string
	Doc  string

	// Requires lists the providers whose frozen maps the computation may
	// read through Pass.Lookup. The graph over Requires must be acyclic.
	Requires []*Provider

	Run   func(*Pass) error
	Batch func(*Pass) Callbacks
}

func (p *Provider) String() string {
	if p == nil {
		return "<nil>"
	}
	return p.Name
}

// Callbacks are the per-node hooks of a batchable provider. Enter fires
// before a node's children, Leave after them. A nil hook is skipped. An
// error aborts the whole shared traversal.
type Callbacks struct {
	Enter func(id cst.NodeID) error
	Leave func(id cst.NodeID) error
}
