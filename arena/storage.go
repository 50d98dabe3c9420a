package arena

import (
	"errors"
	"fmt"
	"unsafe"
)

// DefaultCapacity is the default capacity for new storages (64 KiB).
const DefaultCapacity = 1 << 16

// MaxAlign is the alignment of every storage's buffer start. Padding for
// alignments up to MaxAlign depends only on the bytes already consumed;
// larger alignments still pad against the absolute address.
const MaxAlign = 64

// ErrOutOfCapacity is returned when a storage cannot fit a requested region.
var ErrOutOfCapacity = errors.New("arena: out of capacity")

// CapacityError describes a failed allocation. It matches ErrOutOfCapacity
// under errors.Is.
type CapacityError struct {
	Requested int // Bytes requested
	Alignment int // Requested alignment
	Used      int // Bytes consumed before the call
	Capacity  int // Total capacity of the storage
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("arena: out of capacity: requested %d bytes (align %d), %d of %d in use",
		e.Requested, e.Alignment, e.Used, e.Capacity)
}

// Is reports whether target is ErrOutOfCapacity.
func (e *CapacityError) Is(target error) bool {
	return target == ErrOutOfCapacity
}

// noCopy may be embedded into structs which must not be copied
// after the first use. See go vet -copylocks.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// StackStorage is a fixed-size byte buffer handed out through a bump cursor.
// Regions are never reclaimed individually; the whole buffer goes away with
// the storage. Not goroutine-safe.
//
// The garbage collector does not scan storage memory, so NewStackAllocator
// refuses element types that hold pointers.
type StackStorage struct {
	noCopy   noCopy
	buf      []byte
	offset   uintptr // bytes consumed, including alignment padding
	allocs   int
	deallocs int
}

// NewStackStorage creates a storage of the given capacity.
// If capacity <= 0, DefaultCapacity is used.
func NewStackStorage(capacity int) *StackStorage {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	raw := make([]byte, capacity+MaxAlign)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(raw)))
	off := alignUp(base, MaxAlign) - base
	return &StackStorage{buf: raw[off : off+uintptr(capacity) : off+uintptr(capacity)]}
}

// Allocate returns a window of exactly size bytes whose start is aligned to
// alignment. The storage keeps ownership of the bytes. If the region would
// reach or exceed the capacity, the cursor is left untouched and a
// *CapacityError is returned, so a smaller request may still succeed.
func (s *StackStorage) Allocate(size, alignment int) ([]byte, error) {
	if size < 0 {
		panic("arena: negative allocation size")
	}
	if alignment <= 0 || alignment&(alignment-1) != 0 {
		panic(fmt.Sprintf("arena: alignment %d is not a power of two", alignment))
	}

	base := uintptr(unsafe.Pointer(unsafe.SliceData(s.buf)))
	start := alignUp(base+s.offset, uintptr(alignment)) - base
	end := start + uintptr(size)
	if end >= uintptr(len(s.buf)) || end < start {
		return nil, &CapacityError{
			Requested: size,
			Alignment: alignment,
			Used:      int(s.offset),
			Capacity:  len(s.buf),
		}
	}

	s.offset = end
	s.allocs++
	return s.buf[start:end:end], nil
}

// Deallocate records that region is no longer used. Nothing is reclaimed;
// the call only keeps the allocation counters balanced. It panics if region
// does not lie inside the storage.
func (s *StackStorage) Deallocate(region []byte) {
	if region == nil {
		return
	}
	if !s.owns(unsafe.Pointer(unsafe.SliceData(region)), uintptr(len(region))) {
		panic("arena: deallocating a region not owned by this storage")
	}
	s.deallocs++
}

// owns reports whether [p, p+size) lies inside the consumed part of the buffer.
func (s *StackStorage) owns(p unsafe.Pointer, size uintptr) bool {
	base := uintptr(unsafe.Pointer(unsafe.SliceData(s.buf)))
	addr := uintptr(p)
	return addr >= base && addr+size <= base+s.offset
}

// Linear reports true: storage regions come from a bump cursor.
func (s *StackStorage) Linear() bool { return true }

func (s *StackStorage) resource() {}

// alignUp aligns off up to align, which must be a power of two.
func alignUp(off, align uintptr) uintptr {
	mask := align - 1
	return (off + mask) & ^mask
}
