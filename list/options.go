package list

import (
	"log/slog"
	"time"

	"github.com/pavanmanishd/arenalist/arena"
)

type options struct {
	allocator         any
	defaultOnCopy     bool
	propagateOnAssign bool
	pacing            time.Duration
	logger            *slog.Logger
}

func defaultOptions() options {
	return options{logger: slog.New(slog.DiscardHandler)}
}

// Option configures a List.
type Option func(*options)

// WithAllocator sets the allocator elements are drawn from. T must be the
// list's element type; constructors panic otherwise. Lists default to
// arena.HeapAllocator.
func WithAllocator[T any](a arena.Allocator[T]) Option {
	return func(o *options) {
		o.allocator = a
	}
}

// WithDefaultAllocatorOnCopy makes Clone give the copy a default (heap)
// allocator instead of the source's allocator.
func WithDefaultAllocatorOnCopy() Option {
	return func(o *options) {
		o.defaultOnCopy = true
	}
}

// WithPropagateOnCopyAssignment makes Assign adopt the source's allocator.
// Without it the target keeps its own allocator.
func WithPropagateOnCopyAssignment() Option {
	return func(o *options) {
		o.propagateOnAssign = true
	}
}

// WithPacing makes every insert and erase busy-wait for d before touching
// the ring when the allocator is not backed by a linear arena. It exists to
// widen the gap between arena and heap lists in comparative benchmarks and
// has no effect on results. Zero disables it.
func WithPacing(d time.Duration) Option {
	return func(o *options) {
		o.pacing = d
	}
}

// WithLogger sets the logger used for rollback diagnostics.
// If nil is passed, logging is discarded.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		o.logger = l
	}
}
