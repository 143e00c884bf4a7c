package cst

// Observer receives traversal callbacks. OnVisit runs before a node's
// children; returning false skips the children. OnLeave runs after them and
// is called even when the children were skipped.
type Observer interface {
	OnVisit(id NodeID) bool
	OnLeave(id NodeID)
}

// Walk traverses the subtree rooted at id in emission order, calling the
// observer on every node.
func Walk(t *Tree, id NodeID, obs Observer) {
	if !id.IsValid() {
		return
	}
	if obs.OnVisit(id) {
		for _, c := range t.Children(id) {
			Walk(t, c, obs)
		}
	}
	obs.OnLeave(id)
}
