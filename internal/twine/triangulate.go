package twine

// Triangulate builds the index buffer for the given ring sizes.
//
// Every ring vertex forms one triangle with the apex (vertex 0) and its
// cyclic successor in the same ring, so each ring is an independent fan to
// the apex; rings are not stitched to their neighbours. A single-vertex ring
// yields one degenerate triangle, which keeps the triangle count equal to
// the sum of ring sizes.
func Triangulate(counts []int) []uint32 {
	if len(counts) < 2 {
		return []uint32{}
	}

	starts := ringStarts(counts)
	indices := make([]uint32, 0, 3*(totalVertexCount(counts)-1))

	for i := 1; i < len(counts); i++ {
		k := counts[i]
		start := starts[i]
		for j := 0; j < k; j++ {
			indices = append(indices,
				0,
				uint32(start+j),
				uint32(start+(j+1)%k),
			)
		}
	}
	return indices
}
