package meta

import (
	"errors"
	"fmt"
	"strings"

	"birch/cst"
)

var (
	// ErrMetadataNotFound indicates a lookup for a node the computed map
	// has no entry for.
	ErrMetadataNotFound = errors.New("metadata not found")
	// ErrDependencyNotResolved indicates a read of a provider that was not
	// declared in Requires.
	ErrDependencyNotResolved = errors.New("metadata dependency not resolved")
	// ErrCyclicDependency indicates a cycle in the declared dependency
	// graph.
	ErrCyclicDependency = errors.New("cyclic metadata dependency")
)

// NotFoundError reports which provider's map was missing which node.
type NotFoundError struct {
	Provider string
	Node     cst.NodeID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s metadata recorded for node %d", e.Provider, e.Node)
}

func (e *NotFoundError) Unwrap() error { return ErrMetadataNotFound }

// UnresolvedError reports an undeclared dependency read. Always a bug in
// the reading provider, never a transient condition.
type UnresolvedError struct {
	Requested string
	By        string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("%s reads %s without declaring it as a dependency", e.By, e.Requested)
}

func (e *UnresolvedError) Unwrap() error { return ErrDependencyNotResolved }

// CycleError carries the provider names along the offending cycle, first
// one repeated at the end.
type CycleError struct {
	Stack []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("metadata dependency cycle: %s", strings.Join(e.Stack, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCyclicDependency }
