// Package list implements an allocator-aware doubly linked list.
//
// # Overview
//
// Nodes are drawn one at a time from an arena.Allocator rebound to the
// list's node type, so a list can live entirely inside an
// arena.StackStorage. A sentinel closes the ring, which keeps insertion and
// removal free of empty-list special cases.
//
// # Basic Usage
//
//	s := arena.NewStackStorage(1024)
//	l := list.New[int](list.WithAllocator[int](arena.NewStackAllocator[int](s)))
//
//	_ = l.PushBack(5)
//	_ = l.PushBack(10)
//	_ = l.PushFront(1)
//
//	for v := range l.All() {
//		fmt.Println(v) // 1, 5, 10
//	}
//
//	for it := l.Begin(); it != l.End(); it = it.Next() {
//		it.Set(it.Value() * 2)
//	}
//
// # Failure Guarantees
//
// Every mutation that allocates can fail with arena.ErrOutOfCapacity.
// Single-element operations leave the list exactly as it was. Multi-element
// constructors release everything they built before returning the error.
// Assign builds the copy in a separate list and only swaps it in once it is
// complete.
//
// # Copy Policies
//
// Clone gives the copy the source's allocator unless the list was built
// with WithDefaultAllocatorOnCopy. Assign keeps the target's allocator unless
// the target was built with WithPropagateOnCopyAssignment.
//
// # Checked Preconditions
//
// Erasing or dereferencing the end position, popping an empty list, and
// passing a position from another list all panic.
package list
