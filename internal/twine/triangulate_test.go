package twine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTriangulateFan(t *testing.T) {
	got := Triangulate([]int{1, 3, 4})
	want := []uint32{
		0, 1, 2,
		0, 2, 3,
		0, 3, 1,
		0, 4, 5,
		0, 5, 6,
		0, 6, 7,
		0, 7, 4,
	}
	assert.Equal(t, want, got)
}

func TestTriangulateSingleNode(t *testing.T) {
	got := Triangulate([]int{1})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTriangulateDegenerateRing(t *testing.T) {
	assert.Equal(t, []uint32{0, 1, 1}, Triangulate([]int{1, 1}))
}

func TestTriangulateSizesAndRange(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
	}{
		{"two rings", []int{1, 3, 5}},
		{"mixed degenerate", []int{1, 4, 1, 6, 3}},
		{"large", []int{1, 32, 64, 64, 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			indices := Triangulate(tt.counts)
			total := totalVertexCount(tt.counts)
			assert.Len(t, indices, 3*(total-1))
			for i, idx := range indices {
				assert.Less(t, int(idx), total, "index %d out of range", i)
			}
		})
	}
}

func TestTriangulateIdempotent(t *testing.T) {
	counts := []int{1, 5, 7, 1, 9}
	assert.Equal(t, Triangulate(counts), Triangulate(counts))
}
