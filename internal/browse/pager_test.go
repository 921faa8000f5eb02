package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPager_Pages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{25, 0, 3},
		{-4, 10, 0},
		{7, 3, 3},
	}
	for _, tt := range tests {
		p := NewPager(tt.total, tt.size)
		assert.Equal(t, tt.want, p.Pages(), "total=%d size=%d", tt.total, tt.size)
	}
}

func TestPager_DefaultSize(t *testing.T) {
	assert.Equal(t, DefaultPageSize, NewPager(5, 0).Size())
	assert.Equal(t, DefaultPageSize, NewPager(5, -1).Size())
}

func TestPager_Navigation(t *testing.T) {
	p := NewPager(25, 10)
	assert.Equal(t, 1, p.Page())

	assert.False(t, p.Prev(), "prev on first page clamps")
	assert.Equal(t, 1, p.Page())

	assert.True(t, p.Next())
	assert.True(t, p.Next())
	assert.Equal(t, 3, p.Page())

	assert.False(t, p.Next(), "next on last page clamps")
	assert.Equal(t, 3, p.Page())

	start, end := p.Bounds()
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	assert.True(t, p.Goto(-5))
	assert.Equal(t, 1, p.Page())
	assert.True(t, p.Goto(99))
	assert.Equal(t, 3, p.Page())
}

func TestPager_Empty(t *testing.T) {
	p := NewPager(0, 10)
	assert.False(t, p.Next())
	assert.False(t, p.Prev())
	assert.Equal(t, 1, p.Page())

	start, end := p.Bounds()
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
	assert.Empty(t, Slice(p, []int{}))
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	p := NewPager(len(items), 3)

	assert.Equal(t, []int{1, 2, 3}, Slice(p, items))
	p.Next()
	assert.Equal(t, []int{4, 5, 6}, Slice(p, items))
	p.Next()
	assert.Equal(t, []int{7}, Slice(p, items))
}
