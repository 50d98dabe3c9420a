// Package arena implements a fixed-capacity bump allocator and the allocator
// capability consumed by allocator-aware containers.
//
// # Overview
//
// A StackStorage owns one fixed byte buffer and a cursor. Every allocation
// advances the cursor; nothing is reclaimed until the storage itself is
// dropped. This makes allocation a handful of arithmetic operations and
// gives containers predictable, contiguous memory.
//
// # Basic Usage
//
//	s := arena.NewStackStorage(4096)
//
//	// Raw bytes
//	buf, err := s.Allocate(64, 8)
//
//	// Typed values through an allocator view
//	ints := arena.NewStackAllocator[int](s)
//	vals, err := ints.Allocate(16)
//
//	// Same storage, different element type
//	pairs := arena.Rebind[[2]int64](ints)
//	arena.Equal(ints, pairs) // true
//
// # Allocators
//
// Allocator[T] is the capability containers are written against. Two
// implementations are provided: StackAllocator, a non-owning view over a
// StackStorage, and HeapAllocator, which defers to the Go heap. Allocators
// compare equal when they draw from the same Resource; a container may only
// hand memory obtained from one allocator to an equal allocator.
//
// # Errors
//
// An allocation that does not fit returns a *CapacityError matching
// ErrOutOfCapacity. The cursor is left where it was, so a smaller request can
// still succeed.
//
// # Important Notes
//
//   - Allocated memory is only valid while the storage is reachable
//   - No individual deallocation; Deallocate only records the release
//   - The garbage collector does not scan storage memory. NewStackAllocator
//     panics for element types that hold pointers (strings, slices, maps,
//     pointers, interfaces); check with PointerFree first
//   - Rebind skips that check so containers can place their own linked
//     nodes in storage; it is not a way around the rule for element values
//   - Buffers start on a MaxAlign boundary, so padding is deterministic for
//     any alignment up to MaxAlign
//   - A StackStorage is not goroutine-safe
//
// # Metrics
//
//	m := s.Metrics()
//	fmt.Printf("Utilization: %.2f%%\n", m.Utilization*100)
//	fmt.Printf("Live allocations: %d\n", s.Live())
package arena
