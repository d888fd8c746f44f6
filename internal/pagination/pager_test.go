package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name  string
		total int
		page  int
		size  int
		want  Window
	}{
		{
			name:  "empty data",
			total: 0, page: 1, size: 20,
			want: Window{Total: 0, Page: 1, PageSize: 20, LowerBound: 0, UpperBound: 0, TotalPages: 0},
		},
		{
			name:  "last partial page",
			total: 95, page: 5, size: 20,
			want: Window{Total: 95, Page: 5, PageSize: 20, LowerBound: 80, UpperBound: 95, TotalPages: 5, HasPrev: true},
		},
		{
			name:  "size larger than data collapses to one page",
			total: 5, page: 3, size: 20,
			want: Window{Total: 5, Page: 1, PageSize: 5, LowerBound: 0, UpperBound: 5, TotalPages: 1},
		},
		{
			name:  "first of many pages",
			total: 100, page: 1, size: 10,
			want: Window{Total: 100, Page: 1, PageSize: 10, LowerBound: 0, UpperBound: 10, TotalPages: 10, HasNext: true},
		},
		{
			name:  "middle page has both neighbours",
			total: 100, page: 5, size: 10,
			want: Window{Total: 100, Page: 5, PageSize: 10, LowerBound: 40, UpperBound: 50, TotalPages: 10, HasNext: true, HasPrev: true},
		},
		{
			name:  "zero size collapses to one page",
			total: 7, page: 1, size: 0,
			want: Window{Total: 7, Page: 1, PageSize: 7, LowerBound: 0, UpperBound: 7, TotalPages: 1},
		},
		{
			name:  "negative page clamps to first",
			total: 30, page: -2, size: 10,
			want: Window{Total: 30, Page: 1, PageSize: 10, LowerBound: 0, UpperBound: 10, TotalPages: 3, HasNext: true},
		},
		{
			name:  "page past the end clamps to last",
			total: 30, page: 99, size: 10,
			want: Window{Total: 30, Page: 3, PageSize: 10, LowerBound: 20, UpperBound: 30, TotalPages: 3, HasPrev: true},
		},
		{
			name:  "exact fit",
			total: 40, page: 2, size: 20,
			want: Window{Total: 40, Page: 2, PageSize: 20, LowerBound: 20, UpperBound: 40, TotalPages: 2, HasPrev: true},
		},
		{
			name:  "single row",
			total: 1, page: 1, size: 1,
			want: Window{Total: 1, Page: 1, PageSize: 1, LowerBound: 0, UpperBound: 1, TotalPages: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compute(tt.total, tt.page, tt.size))
		})
	}
}

func TestComputeWindowNeverExceedsTotal(t *testing.T) {
	for total := 0; total <= 50; total += 7 {
		for page := -1; page <= 10; page++ {
			for _, size := range []int{-1, 0, 1, 3, 20, 100} {
				w := Compute(total, page, size)
				assert.GreaterOrEqual(t, w.LowerBound, 0)
				assert.LessOrEqual(t, w.UpperBound, total)
				assert.LessOrEqual(t, w.LowerBound, w.UpperBound)
			}
		}
	}
}
