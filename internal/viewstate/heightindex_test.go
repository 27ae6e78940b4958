package viewstate

import (
	"strconv"
	"testing"
)

func TestHeightIndex_PushAndPrefixSum(t *testing.T) {
	ix := NewHeightIndex(4)
	for _, h := range []int{10, 20, 15} {
		ix.Push(h)
	}

	if got := ix.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
	sums := []int{10, 30, 45}
	for i, want := range sums {
		if got := ix.PrefixSum(i); got != want {
			t.Errorf("PrefixSum(%d) = %d, want %d", i, got, want)
		}
	}
	if got := ix.Total(); got != 45 {
		t.Errorf("Total() = %d, want 45", got)
	}
}

func TestHeightIndex_LowerBound(t *testing.T) {
	ix := NewHeightIndex(4)
	for _, h := range []int{10, 20, 15} {
		ix.Push(h)
	}

	tests := []struct {
		offset int
		want   int
		ok     bool
	}{
		{0, 0, true},
		{9, 0, true},
		{10, 1, true},
		{29, 1, true},
		{30, 2, true},
		{44, 2, true},
		{45, 0, false},
		{100, 0, false},
	}
	for _, tt := range tests {
		got, ok := ix.LowerBound(tt.offset)
		if got != tt.want || ok != tt.ok {
			t.Errorf("LowerBound(%d) = (%d, %v), want (%d, %v)", tt.offset, got, ok, tt.want, tt.ok)
		}
	}
}

func TestHeightIndex_LowerBoundEmpty(t *testing.T) {
	ix := NewHeightIndex(4)
	if _, ok := ix.LowerBound(0); ok {
		t.Error("LowerBound(0) on empty index = ok, want not found")
	}
}

func TestHeightIndex_LowerBoundSkipsZeroHeights(t *testing.T) {
	ix := NewHeightIndex(8)
	for _, h := range []int{5, 0, 0, 3} {
		ix.Push(h)
	}

	// Offsets 0..4 land in entry 0, 5..7 in entry 3; the zero-height
	// entries own no lines.
	if got, ok := ix.LowerBound(4); !ok || got != 0 {
		t.Errorf("LowerBound(4) = (%d, %v), want (0, true)", got, ok)
	}
	if got, ok := ix.LowerBound(5); !ok || got != 3 {
		t.Errorf("LowerBound(5) = (%d, %v), want (3, true)", got, ok)
	}
}

func TestHeightIndex_Set(t *testing.T) {
	ix := NewHeightIndex(4)
	for _, h := range []int{10, 20, 15} {
		ix.Push(h)
	}

	ix.Set(1, 5) // shrink
	if got := ix.Total(); got != 30 {
		t.Errorf("Total() after Set(1, 5) = %d, want 30", got)
	}
	if got := ix.PrefixSum(0); got != 10 {
		t.Errorf("PrefixSum(0) = %d, want 10 (untouched)", got)
	}
	if got := ix.PrefixSum(2); got != 30 {
		t.Errorf("PrefixSum(2) = %d, want 30", got)
	}

	ix.Set(1, 100) // grow
	if got := ix.Total(); got != 125 {
		t.Errorf("Total() after Set(1, 100) = %d, want 125", got)
	}
	if got := ix.Height(1); got != 100 {
		t.Errorf("Height(1) = %d, want 100", got)
	}
}

func TestHeightIndex_SetOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Set(3, 1) on 3-entry index did not panic")
		}
	}()
	ix := NewHeightIndex(4)
	for _, h := range []int{10, 20, 15} {
		ix.Push(h)
	}
	ix.Set(3, 1)
}

func TestHeightIndex_PrefixSumOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("PrefixSum(0) on empty index did not panic")
		}
	}()
	NewHeightIndex(4).PrefixSum(0)
}

func TestHeightIndex_GrowthPreservesSums(t *testing.T) {
	ix := NewHeightIndex(2) // forces several rebuilds
	want := 0
	for i := 1; i <= 100; i++ {
		ix.Push(i)
		want += i
	}
	if got := ix.Total(); got != want {
		t.Errorf("Total() = %d, want %d", got, want)
	}
	// Spot-check a prefix and a point update after growth.
	if got := ix.PrefixSum(9); got != 55 {
		t.Errorf("PrefixSum(9) = %d, want 55", got)
	}
	ix.Set(0, 0)
	if got := ix.Total(); got != want-1 {
		t.Errorf("Total() after Set(0, 0) = %d, want %d", got, want-1)
	}
}

func TestHeightIndex_Clear(t *testing.T) {
	ix := NewHeightIndex(4)
	for _, h := range []int{10, 20, 15} {
		ix.Push(h)
	}
	ix.Clear()

	if got := ix.Len(); got != 0 {
		t.Errorf("Len() after Clear = %d, want 0", got)
	}
	if got := ix.Total(); got != 0 {
		t.Errorf("Total() after Clear = %d, want 0", got)
	}

	ix.Push(7)
	if got := ix.Total(); got != 7 {
		t.Errorf("Total() after Clear+Push = %d, want 7", got)
	}
}

func BenchmarkHeightIndexLowerBound(b *testing.B) {
	for _, n := range []int{1000, 10000, 100000} {
		b.Run(benchName(n), func(b *testing.B) {
			ix := NewHeightIndex(n)
			for i := 0; i < n; i++ {
				ix.Push(3 + i%7)
			}
			total := ix.Total()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				ix.LowerBound(i * 31 % total)
			}
		})
	}
}

func BenchmarkHeightIndexSet(b *testing.B) {
	for _, n := range []int{1000, 10000, 100000} {
		b.Run(benchName(n), func(b *testing.B) {
			ix := NewHeightIndex(n)
			for i := 0; i < n; i++ {
				ix.Push(3)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				ix.Set(i%n, 3+i%50)
			}
		})
	}
}

func benchName(n int) string {
	if n >= 1000 {
		return strconv.Itoa(n/1000) + "k"
	}
	return strconv.Itoa(n)
}
