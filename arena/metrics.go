package arena

// SizeInUse returns the number of bytes consumed by allocations.
// This includes internal fragmentation due to alignment.
func (s *StackStorage) SizeInUse() int {
	return int(s.offset)
}

// Capacity returns the size of the storage buffer in bytes.
func (s *StackStorage) Capacity() int {
	return len(s.buf)
}

// Remaining returns the number of bytes not yet consumed.
func (s *StackStorage) Remaining() int {
	return len(s.buf) - int(s.offset)
}

// Utilization returns the ratio of bytes in use to capacity (0.0 to 1.0).
func (s *StackStorage) Utilization() float64 {
	if len(s.buf) == 0 {
		return 0
	}
	return float64(s.offset) / float64(len(s.buf))
}

// Allocs returns the number of successful Allocate calls.
func (s *StackStorage) Allocs() int {
	return s.allocs
}

// Deallocs returns the number of Deallocate calls for non-nil regions.
func (s *StackStorage) Deallocs() int {
	return s.deallocs
}

// Live returns the number of allocations not yet handed back.
func (s *StackStorage) Live() int {
	return s.allocs - s.deallocs
}

// Metrics returns a snapshot of storage statistics.
func (s *StackStorage) Metrics() StorageMetrics {
	return StorageMetrics{
		SizeInUse:   s.SizeInUse(),
		Capacity:    s.Capacity(),
		Remaining:   s.Remaining(),
		Allocs:      s.allocs,
		Deallocs:    s.deallocs,
		Utilization: s.Utilization(),
	}
}

// StorageMetrics contains statistical information about a storage.
type StorageMetrics struct {
	SizeInUse   int     // Bytes consumed, padding included
	Capacity    int     // Total capacity in bytes
	Remaining   int     // Bytes still available
	Allocs      int     // Successful allocations
	Deallocs    int     // Recorded deallocations
	Utilization float64 // Ratio of used to total capacity (0.0-1.0)
}
