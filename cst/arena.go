package cst

import (
	"fmt"

	"fortio.org/safecast"
)

// arena is an append-only store. Indices returned by allocate are 1-based so
// that zero stays free as the "no value" sentinel.
type arena[T any] struct {
	data []T
}

func newArena[T any](capHint uint) *arena[T] {
	return &arena[T]{
		data: make([]T, 0, capHint),
	}
}

func (a *arena[T]) allocate(value T) uint32 {
	a.data = append(a.data, value)
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	return n
}

func (a *arena[T]) get(index uint32) *T {
	if index == 0 || int(index) > len(a.data) {
		return nil
	}
	return &a.data[index-1]
}

func (a *arena[T]) len() uint32 {
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	return n
}
