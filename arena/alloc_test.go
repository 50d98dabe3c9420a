package arena

import (
	"errors"
	"testing"
	"unsafe"
)

type testStruct struct {
	a int64
	b int32
	c int16
	d int8
}

func TestStackAllocatorAllocate(t *testing.T) {
	s := NewStackStorage(1024)
	a := NewStackAllocator[int64](s)

	vals, err := a.Allocate(4)
	if err != nil {
		t.Fatalf("Allocate(4) error = %v", err)
	}
	if len(vals) != 4 {
		t.Fatalf("Allocate(4) len = %d, want 4", len(vals))
	}
	for i, v := range vals {
		if v != 0 {
			t.Errorf("vals[%d] = %d, want 0 (zeroed)", i, v)
		}
		vals[i] = int64(i * 10)
	}
	if vals[3] != 30 {
		t.Error("Could not write to allocated memory")
	}
	if s.SizeInUse() != 32 {
		t.Errorf("SizeInUse = %d, want 32", s.SizeInUse())
	}
	if addr := uintptr(unsafe.Pointer(&vals[0])); addr%unsafe.Alignof(int64(0)) != 0 {
		t.Errorf("Allocate(4) address %#x misaligned", addr)
	}

	none, err := a.Allocate(0)
	if none != nil || err != nil {
		t.Errorf("Allocate(0) = %v, %v, want nil, nil", none, err)
	}
}

func TestStackAllocatorStruct(t *testing.T) {
	s := NewStackStorage(1024)
	a := NewStackAllocator[testStruct](s)

	if _, err := NewStackAllocator[byte](s).Allocate(1); err != nil {
		t.Fatalf("Allocate byte error = %v", err)
	}
	p, err := a.Allocate(1)
	if err != nil {
		t.Fatalf("Allocate(1) error = %v", err)
	}
	if addr := uintptr(unsafe.Pointer(&p[0])); addr%unsafe.Alignof(testStruct{}) != 0 {
		t.Errorf("testStruct address %#x misaligned", addr)
	}
	p[0].a = 100
	if p[0] != (testStruct{a: 100}) {
		t.Errorf("testStruct = %+v", p[0])
	}
}

func TestStackAllocatorOutOfCapacity(t *testing.T) {
	s := NewStackStorage(64)
	a := NewStackAllocator[int64](s)

	if _, err := a.Allocate(7); err != nil {
		t.Fatalf("Allocate(7) error = %v", err)
	}
	used := s.SizeInUse()

	if _, err := a.Allocate(1); !errors.Is(err, ErrOutOfCapacity) {
		t.Errorf("Allocate(1) error = %v, want ErrOutOfCapacity", err)
	}
	if s.SizeInUse() != used {
		t.Errorf("SizeInUse after failure = %d, want %d", s.SizeInUse(), used)
	}
}

func TestStackAllocatorDeallocate(t *testing.T) {
	s := NewStackStorage(1024)
	a := NewStackAllocator[int32](s)

	p, err := a.Allocate(3)
	if err != nil {
		t.Fatalf("Allocate(3) error = %v", err)
	}
	used := s.SizeInUse()
	a.Deallocate(p)
	a.Deallocate(nil)

	if s.SizeInUse() != used {
		t.Errorf("SizeInUse after Deallocate = %d, want %d", s.SizeInUse(), used)
	}
	if s.Live() != 0 {
		t.Errorf("Live = %d, want 0", s.Live())
	}
}

func TestStackAllocatorNoStorage(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic allocating without storage")
		}
	}()
	var a StackAllocator[int]
	_, _ = a.Allocate(1)
}

func TestHeapAllocator(t *testing.T) {
	var a HeapAllocator[string]

	p, err := a.Allocate(2)
	if err != nil {
		t.Fatalf("Allocate(2) error = %v", err)
	}
	if len(p) != 2 || p[0] != "" {
		t.Errorf("Allocate(2) = %q", p)
	}
	a.Deallocate(p)

	if a.Resource().Linear() {
		t.Error("heap resource reports linear")
	}
	if !NewStackStorage(0).Linear() {
		t.Error("stack storage does not report linear")
	}
}

func TestRebind(t *testing.T) {
	s := NewStackStorage(1024)
	ints := NewStackAllocator[int](s)

	bytes := Rebind[byte](Allocator[int](ints))
	sa, ok := bytes.(StackAllocator[byte])
	if !ok {
		t.Fatalf("Rebind returned %T, want StackAllocator[byte]", bytes)
	}
	if sa.Storage() != s {
		t.Error("rebound allocator draws from a different storage")
	}
	if _, err := sa.Allocate(10); err != nil {
		t.Fatalf("rebound Allocate error = %v", err)
	}
	if s.SizeInUse() != 10 {
		t.Errorf("SizeInUse = %d, want 10", s.SizeInUse())
	}

	h := Rebind[byte](Allocator[int](HeapAllocator[int]{}))
	if _, ok := h.(HeapAllocator[byte]); !ok {
		t.Errorf("Rebind of heap allocator returned %T", h)
	}
}

func TestPointerFree(t *testing.T) {
	type flat struct {
		a [4]int32
		b float64
	}
	type nested struct {
		f flat
		s []int
	}

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"int", PointerFree[int](), true},
		{"array", PointerFree[[8]byte](), true},
		{"flat struct", PointerFree[flat](), true},
		{"empty struct", PointerFree[struct{}](), true},
		{"zero-length array of pointers", PointerFree[[0]*int](), true},
		{"string", PointerFree[string](), false},
		{"slice", PointerFree[[]int](), false},
		{"pointer", PointerFree[*int](), false},
		{"map", PointerFree[map[int]int](), false},
		{"interface", PointerFree[any](), false},
		{"func", PointerFree[func()](), false},
		{"array of strings", PointerFree[[2]string](), false},
		{"nested struct", PointerFree[nested](), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("PointerFree = %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestStackAllocatorRejectsPointers(t *testing.T) {
	s := NewStackStorage(1024)

	check := func(name string, f func()) {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Error("Expected panic for pointer-holding element type")
				}
			}()
			f()
		})
	}
	check("string", func() { NewStackAllocator[string](s) })
	check("slice", func() { NewStackAllocator[[]byte](s) })
	check("struct with pointer", func() { NewStackAllocator[struct{ p *int }](s) })

	if s.Allocs() != 0 {
		t.Errorf("Allocs = %d, want 0", s.Allocs())
	}
}

func TestEqual(t *testing.T) {
	s1 := NewStackStorage(1024)
	s2 := NewStackStorage(1024)

	a1 := NewStackAllocator[int](s1)
	b1 := NewStackAllocator[testStruct](s1)
	a2 := NewStackAllocator[int](s2)

	tests := []struct {
		name     string
		equal    bool
		expected bool
	}{
		{"same storage same type", Equal[int, int](a1, NewStackAllocator[int](s1)), true},
		{"same storage different type", Equal[int, testStruct](a1, b1), true},
		{"different storage same type", Equal[int, int](a1, a2), false},
		{"stack vs heap", Equal[int, int](a1, HeapAllocator[int]{}), false},
		{"heap vs heap", Equal[int, byte](HeapAllocator[int]{}, HeapAllocator[byte]{}), true},
		{"rebound", Equal[int, float64](a1, Rebind[float64](Allocator[int](a1))), true},
		{"method same storage", a1.Equal(b1), true},
		{"method different storage", a1.Equal(a2), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.equal != tt.expected {
				t.Errorf("equal = %v, want %v", tt.equal, tt.expected)
			}
		})
	}
}

func BenchmarkStackAllocatorVsHeap(b *testing.B) {
	b.Run("stack", func(b *testing.B) {
		s := NewStackStorage(1 << 20)
		a := NewStackAllocator[testStruct](s)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := a.Allocate(1); err != nil {
				s = NewStackStorage(1 << 20)
				a = NewStackAllocator[testStruct](s)
			}
		}
	})

	b.Run("heap", func(b *testing.B) {
		var a HeapAllocator[testStruct]
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = a.Allocate(1)
		}
	})
}
