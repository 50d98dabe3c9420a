package arena

import (
	"fmt"
	"math"
	"reflect"
	"unsafe"
)

// Resource identifies the memory behind an allocator. Two allocators are
// interchangeable exactly when their resources compare equal.
type Resource interface {
	// Linear reports whether the resource bump-allocates and never reclaims
	// individual regions.
	Linear() bool

	resource()
}

// Heap is the resource shared by every HeapAllocator.
var Heap Resource = heap{}

type heap struct{}

func (heap) Linear() bool { return false }
func (heap) resource()    {}

// Allocator hands out typed storage for n values of T at a time.
type Allocator[T any] interface {
	// Allocate returns room for n zeroed values of T.
	Allocate(n int) ([]T, error)
	// Deallocate gives back a slice returned by Allocate.
	Deallocate(p []T)
	// Resource returns the memory resource the allocator draws from.
	Resource() Resource
}

// StackAllocator is a typed view over a StackStorage. It does not own the
// storage and must not outlive it. The zero value has no storage and panics
// on Allocate.
type StackAllocator[T any] struct {
	storage *StackStorage
}

// NewStackAllocator returns an allocator of T drawing from s. It panics if
// T holds pointers, since the garbage collector would not see them.
func NewStackAllocator[T any](s *StackStorage) StackAllocator[T] {
	if !PointerFree[T]() {
		panic(fmt.Sprintf("arena: element type %s holds pointers and cannot live in storage", reflect.TypeFor[T]()))
	}
	return StackAllocator[T]{storage: s}
}

// Allocate carves room for n values of T out of the storage, aligned for T.
// Returns nil if n <= 0.
func (a StackAllocator[T]) Allocate(n int) ([]T, error) {
	if a.storage == nil {
		panic("arena: allocator has no storage")
	}
	if n <= 0 {
		return nil, nil
	}
	var zero T
	elemSize, align := int(unsafe.Sizeof(zero)), int(unsafe.Alignof(zero))
	if elemSize > 0 && n > math.MaxInt/elemSize {
		return nil, &CapacityError{
			Requested: math.MaxInt,
			Alignment: align,
			Used:      a.storage.SizeInUse(),
			Capacity:  a.storage.Capacity(),
		}
	}
	b, err := a.storage.Allocate(elemSize*n, align)
	if err != nil {
		return nil, err
	}
	clear(b)
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n), nil
}

// Deallocate reclaims nothing; the storage only records the release.
func (a StackAllocator[T]) Deallocate(p []T) {
	if len(p) == 0 {
		return
	}
	var zero T
	size := int(unsafe.Sizeof(zero)) * len(p)
	a.storage.Deallocate(unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(p))), size))
}

// Resource returns the underlying storage.
func (a StackAllocator[T]) Resource() Resource { return a.storage }

// Storage returns the underlying storage.
func (a StackAllocator[T]) Storage() *StackStorage { return a.storage }

// Equal reports whether a and other draw from the same storage.
func (a StackAllocator[T]) Equal(other interface{ Resource() Resource }) bool {
	return other != nil && other.Resource() == a.Resource()
}

// HeapAllocator allocates from the Go heap. The zero value is ready to use
// and all heap allocators are equal.
type HeapAllocator[T any] struct{}

// Allocate returns a fresh slice of n zeroed values. Returns nil if n <= 0.
func (HeapAllocator[T]) Allocate(n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	return make([]T, n), nil
}

// Deallocate is a no-op; the garbage collector reclaims the memory.
func (HeapAllocator[T]) Deallocate([]T) {}

// Resource returns Heap.
func (HeapAllocator[T]) Resource() Resource { return Heap }

// Rebind returns an allocator of U drawing from the same resource as a.
// Unlike NewStackAllocator it accepts any U; containers use it for node
// types whose only pointers link nodes of the same storage.
func Rebind[U, T any](a Allocator[T]) Allocator[U] {
	switch r := a.Resource().(type) {
	case *StackStorage:
		return StackAllocator[U]{storage: r}
	case heap:
		return HeapAllocator[U]{}
	default:
		panic(fmt.Sprintf("arena: cannot rebind allocator over %T", r))
	}
}

// Equal reports whether a and b draw from the same resource, regardless of
// their element types.
func Equal[T, U any](a Allocator[T], b Allocator[U]) bool {
	return a.Resource() == b.Resource()
}

// PointerFree reports whether values of T contain no pointers, and so may be
// kept in memory the garbage collector does not scan.
func PointerFree[T any]() bool {
	return !hasPointers(reflect.TypeFor[T]())
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.String, reflect.Slice,
		reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return true
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}
