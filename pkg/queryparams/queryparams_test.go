package queryparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateClampsToSafeRanges(t *testing.T) {
	p := ListParams{Page: -3, PerPage: 500, OrderBy: "sideways"}
	p.Validate()

	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, MaxPerPage, p.PerPage)
	assert.Equal(t, "desc", p.OrderBy)
	assert.Equal(t, "created_at", p.SortBy)

	p = ListParams{Page: 2, PerPage: 10, OrderBy: "asc", SortBy: "title"}
	p.Validate()
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, "asc", p.OrderBy)
	assert.Equal(t, "title", p.SortBy)
}

func TestOffset(t *testing.T) {
	p := ListParams{Page: 3, PerPage: 20}
	assert.Equal(t, 40, p.Offset())
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(10, 0))
	assert.Equal(t, 1, CalculateTotalPages(10, 10))
	assert.Equal(t, 2, CalculateTotalPages(11, 10))
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
}
