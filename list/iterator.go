package list

// Position is a place in a list that elements can be inserted before or
// erased at. Both Iterator and ConstIterator are positions.
type Position[T any] interface {
	position() ConstIterator[T]
}

// ConstIterator is a read-only bidirectional cursor into a List.
// Iterators compare equal with == when they point at the same place.
type ConstIterator[T any] struct {
	list *List[T]
	at   *link
}

func (it ConstIterator[T]) position() ConstIterator[T] { return it }

func (it ConstIterator[T]) node() *node[T] {
	if it.at == &it.list.head {
		panic("list: dereferencing end position")
	}
	return nodeOf[T](it.at)
}

// Value returns the element at it. It panics at the end position.
func (it ConstIterator[T]) Value() T { return it.node().value }

// Next returns an iterator to the following element.
func (it ConstIterator[T]) Next() ConstIterator[T] {
	return ConstIterator[T]{list: it.list, at: it.at.next}
}

// Prev returns an iterator to the preceding element.
func (it ConstIterator[T]) Prev() ConstIterator[T] {
	return ConstIterator[T]{list: it.list, at: it.at.prev}
}

// Iterator is a mutable bidirectional cursor into a List. It converts to a
// ConstIterator with Const; there is no way back.
type Iterator[T any] struct {
	ConstIterator[T]
}

// Next returns an iterator to the following element.
func (it Iterator[T]) Next() Iterator[T] {
	return Iterator[T]{it.ConstIterator.Next()}
}

// Prev returns an iterator to the preceding element.
func (it Iterator[T]) Prev() Iterator[T] {
	return Iterator[T]{it.ConstIterator.Prev()}
}

// Set replaces the element at it. It panics at the end position.
func (it Iterator[T]) Set(v T) { it.node().value = v }

// Pointer returns the address of the element at it. It panics at the end
// position.
func (it Iterator[T]) Pointer() *T { return &it.node().value }

// Const returns a read-only iterator to the same element.
func (it Iterator[T]) Const() ConstIterator[T] { return it.ConstIterator }

// ReverseIterator walks a list back to front. It refers to the element
// just before its base iterator.
type ReverseIterator[T any] struct {
	base Iterator[T]
}

// Base returns the forward iterator one past the referenced element.
func (it ReverseIterator[T]) Base() Iterator[T] { return it.base }

// Value returns the referenced element.
func (it ReverseIterator[T]) Value() T { return it.base.Prev().Value() }

// Set replaces the referenced element.
func (it ReverseIterator[T]) Set(v T) { it.base.Prev().Set(v) }

// Next moves toward the front of the list.
func (it ReverseIterator[T]) Next() ReverseIterator[T] {
	return ReverseIterator[T]{it.base.Prev()}
}

// Prev moves toward the back of the list.
func (it ReverseIterator[T]) Prev() ReverseIterator[T] {
	return ReverseIterator[T]{it.base.Next()}
}

// Const returns a read-only reverse iterator to the same element.
func (it ReverseIterator[T]) Const() ConstReverseIterator[T] {
	return ConstReverseIterator[T]{it.base.Const()}
}

// ConstReverseIterator is the read-only form of ReverseIterator.
type ConstReverseIterator[T any] struct {
	base ConstIterator[T]
}

// Base returns the forward iterator one past the referenced element.
func (it ConstReverseIterator[T]) Base() ConstIterator[T] { return it.base }

// Value returns the referenced element.
func (it ConstReverseIterator[T]) Value() T { return it.base.Prev().Value() }

func (it ConstReverseIterator[T]) Next() ConstReverseIterator[T] {
	return ConstReverseIterator[T]{it.base.Prev()}
}

func (it ConstReverseIterator[T]) Prev() ConstReverseIterator[T] {
	return ConstReverseIterator[T]{it.base.Next()}
}

// Begin returns an iterator to the first element, or End if empty.
func (l *List[T]) Begin() Iterator[T] {
	l.lazyInit()
	return l.iter(l.head.next)
}

// End returns the position one past the last element.
func (l *List[T]) End() Iterator[T] {
	l.lazyInit()
	return l.iter(&l.head)
}

// CBegin returns a read-only iterator to the first element.
func (l *List[T]) CBegin() ConstIterator[T] { return l.Begin().Const() }

// CEnd returns the read-only end position.
func (l *List[T]) CEnd() ConstIterator[T] { return l.End().Const() }

// RBegin returns a reverse iterator to the last element.
func (l *List[T]) RBegin() ReverseIterator[T] { return ReverseIterator[T]{l.End()} }

// REnd returns the reverse end position.
func (l *List[T]) REnd() ReverseIterator[T] { return ReverseIterator[T]{l.Begin()} }

// CRBegin returns a read-only reverse iterator to the last element.
func (l *List[T]) CRBegin() ConstReverseIterator[T] { return l.RBegin().Const() }

// CREnd returns the read-only reverse end position.
func (l *List[T]) CREnd() ConstReverseIterator[T] { return l.REnd().Const() }
