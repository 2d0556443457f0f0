package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate_Totals(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		pageSize  int
		wantPages int
	}{
		{"exact multiple", 10, 5, 2},
		{"remainder", 11, 5, 3},
		{"single page", 3, 10, 1},
		{"empty", 0, 5, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			items := make([]int, tc.n)
			page := Paginate(items, 1, tc.pageSize)
			assert.Equal(t, tc.n, page.TotalItems)
			assert.Equal(t, tc.wantPages, page.TotalPages)
		})
	}
}

func TestPaginate_OutOfRangePage(t *testing.T) {
	items := []int{1, 2, 3}

	page := Paginate(items, 9, 2)
	assert.Empty(t, page.Data)
	assert.Equal(t, 3, page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 9, page.Page)
}

func TestPaginate_ConcatenationReconstructs(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	first := Paginate(items, 1, 5)
	var rebuilt []int
	for p := 1; p <= first.TotalPages; p++ {
		rebuilt = append(rebuilt, Paginate(items, p, 5).Data...)
	}
	assert.Equal(t, items, rebuilt)
}

func TestPaginate_NormalizesBadInput(t *testing.T) {
	items := []int{1, 2, 3}

	page := Paginate(items, 0, 0)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultPageSize, page.PageSize)
	assert.Equal(t, []int{1, 2, 3}, page.Data)
}
