package meta

import "birch/cst"

// Parent maps every node to its parent node; the traversal root maps to
// cst.NoNode.
var Parent = &Provider{
	Name: "parent",
	Doc:  "parent of every node",
	Batch: func(p *Pass) Callbacks {
		stack := []cst.NodeID{cst.NoNode}
		return Callbacks{
			Enter: func(id cst.NodeID) error {
				p.Record(id, stack[len(stack)-1])
				stack = append(stack, id)
				return nil
			},
			Leave: func(id cst.NodeID) error {
				stack = stack[:len(stack)-1]
				return nil
			},
		}
	},
}

// Depth maps every node to its distance from the traversal root. It reads
// the parent map for structure and its own partial results for the running
// count, so each node costs two lookups.
var Depth = &Provider{
	Name:     "depth",
	Doc:      "distance from the root node",
	Requires: []*Provider{Parent},
	Batch: func(p *Pass) Callbacks {
		return Callbacks{
			Enter: func(id cst.NodeID) error {
				v, err := p.Lookup(Parent, id)
				if err != nil {
					return err
				}
				parent := v.(cst.NodeID)
				if !parent.IsValid() {
					p.Record(id, 0)
					return nil
				}
				above, err := p.Lookup(p.Provider(), parent)
				if err != nil {
					return err
				}
				p.Record(id, above.(int)+1)
				return nil
			},
		}
	},
}
