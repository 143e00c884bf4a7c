// Package cst models lossless syntax trees: every byte of the original
// source, including whitespace and comments, is owned by some node, so a
// tree can always be rendered back to the exact input text.
//
// Nodes live in arenas owned by a Tree and are addressed by NodeID handles.
// A NodeID is stable for the lifetime of its tree and is what metadata
// tables key on. Trees are built once (by the parser or by hand through the
// NewXxx constructors) and treated as immutable afterwards.
package cst
