package pool

import "sync"

// countSlicePool holds dense frequency counting arrays.
var countSlicePool = sync.Pool{
	New: func() any { return &[]int{} },
}

// GetCountSlice retrieves a zeroed int slice of the given length from the pool.
//
// The caller must call the returned cleanup function (typically with defer) to
// return the slice to the pool.
//
// Example:
//
//	counts, cleanup := pool.GetCountSlice(int(maxSymbol) + 1)
//	defer cleanup()
func GetCountSlice(size int) ([]int, func()) {
	ptr, _ := countSlicePool.Get().(*[]int)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]int, size)
	} else {
		slice = slice[:size]
		clear(slice)
	}
	*ptr = slice

	return slice, func() { countSlicePool.Put(ptr) }
}
