package list

import (
	"fmt"
	"iter"
	"log/slog"
	"reflect"
	"time"
	"unsafe"

	"github.com/pavanmanishd/arenalist/arena"
)

// link is the part of a node the ring is made of. The sentinel is a bare
// link; payload nodes embed one as their first field.
type link struct {
	next *link
	prev *link
}

type node[T any] struct {
	link
	value T
}

func nodeOf[T any](l *link) *node[T] {
	return (*node[T])(unsafe.Pointer(l))
}

// noCopy may be embedded into structs which must not be copied
// after the first use. See go vet -copylocks.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// List is a doubly linked list whose nodes come from an allocator.
// The nodes and a sentinel form a ring: the sentinel's next is the first
// element and its prev the last, or the sentinel itself when empty.
//
// The zero value is an empty list using arena.HeapAllocator. A List must not
// be copied after first use; use Clone or Assign. Not goroutine-safe.
type List[T any] struct {
	noCopy noCopy
	head   link
	len    int
	alloc  arena.Allocator[T]
	nodes  arena.Allocator[node[T]]
	opts   options
}

// New returns an empty list. It panics if the allocator draws from linear
// storage and T holds pointers: the garbage collector does not scan that
// memory.
func New[T any](opts ...Option) *List[T] {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	var alloc arena.Allocator[T] = arena.HeapAllocator[T]{}
	if o.allocator != nil {
		a, ok := o.allocator.(arena.Allocator[T])
		if !ok {
			panic(fmt.Sprintf("list: allocator %T does not allocate %s", o.allocator, reflect.TypeFor[T]()))
		}
		alloc = a
	}
	if alloc.Resource().Linear() && !arena.PointerFree[T]() {
		panic(fmt.Sprintf("list: element type %s holds pointers and cannot live in arena storage", reflect.TypeFor[T]()))
	}

	l := &List[T]{opts: o}
	l.init(alloc)
	return l
}

// NewSize returns a list of n zero values. If any element cannot be
// allocated, the elements built so far are released and the error returned.
func NewSize[T any](n int, opts ...Option) (*List[T], error) {
	return Generate[T](n, nil, opts...)
}

// NewFill returns a list of n copies of v, with the same failure
// guarantee as NewSize.
func NewFill[T any](n int, v T, opts ...Option) (*List[T], error) {
	return Generate(n, func(int) (T, error) { return v, nil }, opts...)
}

// Generate returns a list of n elements where element i is built by fn(i).
// A nil fn builds zero values. If allocation or fn fails (or fn panics), the
// elements built so far are released before the error is returned.
func Generate[T any](n int, fn func(i int) (T, error), opts ...Option) (*List[T], error) {
	if n < 0 {
		panic("list: negative size")
	}
	l := New[T](opts...)
	if err := l.appendN(n, fn); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *List[T]) init(alloc arena.Allocator[T]) {
	l.head.next = &l.head
	l.head.prev = &l.head
	l.len = 0
	l.alloc = alloc
	l.nodes = arena.Rebind[node[T]](alloc)
}

func (l *List[T]) lazyInit() {
	if l.head.next == nil {
		if l.opts.logger == nil {
			l.opts.logger = slog.New(slog.DiscardHandler)
		}
		l.init(arena.HeapAllocator[T]{})
	}
}

// derive returns an empty list sharing l's options but drawing from alloc.
func (l *List[T]) derive(alloc arena.Allocator[T]) *List[T] {
	d := &List[T]{opts: l.opts}
	d.init(alloc)
	return d
}

// Len returns the number of elements.
func (l *List[T]) Len() int { return l.len }

// Allocator returns the allocator elements are drawn from.
func (l *List[T]) Allocator() arena.Allocator[T] {
	l.lazyInit()
	return l.alloc
}

// Front returns the first element. It panics if the list is empty.
func (l *List[T]) Front() T {
	if l.len == 0 {
		panic("list: Front of empty list")
	}
	return nodeOf[T](l.head.next).value
}

// Back returns the last element. It panics if the list is empty.
func (l *List[T]) Back() T {
	if l.len == 0 {
		panic("list: Back of empty list")
	}
	return nodeOf[T](l.head.prev).value
}

// PushBack appends v.
func (l *List[T]) PushBack(v T) error {
	l.lazyInit()
	_, err := l.emplace(&l.head, v, nil)
	return err
}

// PushFront prepends v.
func (l *List[T]) PushFront(v T) error {
	l.lazyInit()
	_, err := l.emplace(l.head.next, v, nil)
	return err
}

// Insert places v before pos and returns an iterator to it. On error the
// list is unchanged.
func (l *List[T]) Insert(pos Position[T], v T) (Iterator[T], error) {
	at := l.check(pos)
	n, err := l.emplace(at, v, nil)
	if err != nil {
		return Iterator[T]{}, err
	}
	return l.iter(&n.link), nil
}

// InsertFunc places the value built by build before pos. If build fails or
// panics, the node memory is released and the list is unchanged.
func (l *List[T]) InsertFunc(pos Position[T], build func() (T, error)) (Iterator[T], error) {
	at := l.check(pos)
	var zero T
	n, err := l.emplace(at, zero, build)
	if err != nil {
		return Iterator[T]{}, err
	}
	return l.iter(&n.link), nil
}

// PopBack removes the last element. It panics if the list is empty.
func (l *List[T]) PopBack() {
	if l.len == 0 {
		panic("list: PopBack on empty list")
	}
	l.unlink(l.head.prev)
}

// PopFront removes the first element. It panics if the list is empty.
func (l *List[T]) PopFront() {
	if l.len == 0 {
		panic("list: PopFront on empty list")
	}
	l.unlink(l.head.next)
}

// Erase removes the element at pos and returns an iterator to the element
// that followed it. It panics if pos is the end position.
func (l *List[T]) Erase(pos Position[T]) Iterator[T] {
	at := l.check(pos)
	if at == &l.head {
		panic("list: erase of end position")
	}
	next := at.next
	l.unlink(at)
	return l.iter(next)
}

// Clear removes every element, handing each node back to the allocator.
func (l *List[T]) Clear() {
	l.destroy(l.len)
}

// Clone returns an independent copy of l. The copy uses l's allocator,
// or a heap allocator when l was built with WithDefaultAllocatorOnCopy.
// On error no list is returned and nothing is leaked.
func (l *List[T]) Clone() (*List[T], error) {
	l.lazyInit()
	alloc := l.alloc
	if l.opts.defaultOnCopy {
		alloc = arena.HeapAllocator[T]{}
	}
	c := l.derive(alloc)
	if err := c.copyFrom(l); err != nil {
		return nil, err
	}
	return c, nil
}

// Assign replaces the contents of l with a copy of src. The copy is built
// in a separate list first, drawing from l's allocator or, with
// WithPropagateOnCopyAssignment, from src's. If building fails l is left
// exactly as it was.
func (l *List[T]) Assign(src *List[T]) error {
	l.lazyInit()
	src.lazyInit()

	alloc := l.alloc
	if l.opts.propagateOnAssign {
		alloc = src.alloc
	}
	tmp := l.derive(alloc)
	if err := tmp.copyFrom(src); err != nil {
		l.opts.logger.Debug("list: copy assignment failed", "len", l.len, "source_len", src.len, "error", err)
		return err
	}

	l.swap(tmp)
	tmp.Clear()
	return nil
}

// All returns an iterator over the elements from front to back.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		l.lazyInit()
		for e := l.head.next; e != &l.head; e = e.next {
			if !yield(nodeOf[T](e).value) {
				return
			}
		}
	}
}

// Backward returns an iterator over the elements from back to front.
func (l *List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		l.lazyInit()
		for e := l.head.prev; e != &l.head; e = e.prev {
			if !yield(nodeOf[T](e).value) {
				return
			}
		}
	}
}

// emplace allocates a node, fills it with v or with the result of build,
// and splices it in before at.
func (l *List[T]) emplace(at *link, v T, build func() (T, error)) (*node[T], error) {
	l.pace()

	s, err := l.nodes.Allocate(1)
	if err != nil {
		return nil, err
	}
	if build != nil {
		if v, err = l.construct(s, build); err != nil {
			return nil, err
		}
	}

	n := &s[0]
	n.value = v
	n.prev = at.prev
	n.next = at
	at.prev.next = &n.link
	at.prev = &n.link
	l.len++
	return n, nil
}

// construct runs build, releasing s if build fails or panics.
func (l *List[T]) construct(s []node[T], build func() (T, error)) (v T, err error) {
	built := false
	defer func() {
		if !built {
			l.nodes.Deallocate(s)
		}
	}()
	if v, err = build(); err != nil {
		return v, err
	}
	built = true
	return v, nil
}

// unlink takes at out of the ring, clears its payload and returns its
// memory to the node allocator.
func (l *List[T]) unlink(at *link) {
	l.pace()

	at.prev.next = at.next
	at.next.prev = at.prev

	n := nodeOf[T](at)
	var zero T
	n.value = zero
	n.next, n.prev = nil, nil
	l.nodes.Deallocate(unsafe.Slice(n, 1))
	l.len--
}

// appendN appends n elements built by gen (zero values if gen is nil). If
// any element fails, every element appended by this call is removed again.
func (l *List[T]) appendN(n int, gen func(i int) (T, error)) (err error) {
	count := 0
	defer func() {
		if count < n {
			l.destroy(count)
			l.opts.logger.Debug("list: rolled back partial construction",
				"constructed", count,
				"requested", n,
				"error", err,
			)
		}
	}()

	var zero T
	for count < n {
		var build func() (T, error)
		if gen != nil {
			i := count
			build = func() (T, error) { return gen(i) }
		}
		if _, err = l.emplace(&l.head, zero, build); err != nil {
			return err
		}
		count++
	}
	return nil
}

func (l *List[T]) copyFrom(src *List[T]) error {
	cur := src.head.next
	return l.appendN(src.len, func(int) (T, error) {
		v := nodeOf[T](cur).value
		cur = cur.next
		return v, nil
	})
}

// destroy pops k elements off the back.
func (l *List[T]) destroy(k int) {
	for i := 0; i < k; i++ {
		l.PopBack()
	}
}

// swap exchanges the contents and allocators of l and o.
func (l *List[T]) swap(o *List[T]) {
	l.alloc, o.alloc = o.alloc, l.alloc
	l.nodes, o.nodes = o.nodes, l.nodes
	l.len, o.len = o.len, l.len

	ln, lp := l.head.next, l.head.prev
	on, op := o.head.next, o.head.prev
	l.adopt(on, op, &o.head)
	o.adopt(ln, lp, &l.head)
}

// adopt points l's sentinel at the ring next..prev that used to hang off
// oldHead, and points the ring back at l's sentinel.
func (l *List[T]) adopt(next, prev, oldHead *link) {
	if next == oldHead {
		l.head.next = &l.head
		l.head.prev = &l.head
		return
	}
	l.head.next = next
	l.head.prev = prev
	next.prev = &l.head
	prev.next = &l.head
}

// check returns the ring position of pos, panicking if it belongs to
// another list.
func (l *List[T]) check(pos Position[T]) *link {
	p := pos.position()
	if p.list != l {
		panic("list: position belongs to another list")
	}
	return p.at
}

func (l *List[T]) iter(at *link) Iterator[T] {
	return Iterator[T]{ConstIterator[T]{list: l, at: at}}
}

func (l *List[T]) pace() {
	if l.opts.pacing > 0 && !l.alloc.Resource().Linear() {
		spin(l.opts.pacing)
	}
}

// spin busy-waits for d.
func spin(d time.Duration) {
	for start := time.Now(); time.Since(start) < d; {
	}
}
