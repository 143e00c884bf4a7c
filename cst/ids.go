package cst

type (
	// NodeID identifies a node within its Tree.
	NodeID uint32
	// payloadID indexes the per-kind payload arena for a node.
	payloadID uint32
)

const (
	NoNode    NodeID    = 0
	noPayload payloadID = 0
)

func (id NodeID) IsValid() bool    { return id != NoNode }
func (id payloadID) isValid() bool { return id != noPayload }
