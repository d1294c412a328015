package twine

import (
	"github.com/chewxy/math32"
)

// minRingVertices is the smallest ring that encloses an area.
const minRingVertices = 3

// Plan computes the ring vertex count of every node and the total vertex
// count. Element 0 is always 1 (the apex).
//
// Under density sizing, nodes with a negative radius first get a random
// radius in [MinRandomRadius, MaxRandomRadius), written back onto the node.
// All draws come from rng in node order.
func Plan(chain Chain, params Params, rng *Rand) ([]int, int) {
	counts := make([]int, len(chain))
	if len(chain) == 0 {
		return counts, 0
	}
	counts[0] = 1

	switch params.Sizing {
	case SizingDensity:
		planDensity(chain, counts, params, rng)
	default:
		planIncremental(counts, params, rng)
	}

	return counts, totalVertexCount(counts)
}

// planIncremental grows each ring from the previous by the minimum
// addition plus 0, 1 or 2 extra vertices.
func planIncremental(counts []int, params Params, rng *Rand) {
	for i := 1; i < len(counts); i++ {
		n := counts[i-1] + params.MinVertexAddPerNode + rng.IntRange(0, 3)
		n = capCount(n, params.MaxVerticesPerNode)
		if n < 1 {
			n = 1
		}
		counts[i] = n
	}
}

// planDensity sizes each ring from its own radius.
// Order per node: raw -> cap at max -> floor at 3.
func planDensity(chain Chain, counts []int, params Params, rng *Rand) {
	for i := 1; i < len(chain); i++ {
		node := chain[i]
		ResolveRadius(node, rng)

		if math32.Abs(node.BaseRadius) < RadiusEpsilon {
			counts[i] = 1
			continue
		}

		n := int(math32.Floor(node.BaseRadius * params.VertexDensityPerUnitRadius))
		n = capCount(n, params.MaxVerticesPerNode)
		if n < minRingVertices {
			n = minRingVertices
		}
		counts[i] = n
	}
}

// ResolveRadius replaces a negative radius sentinel with a random radius
// and stores it on the node. It reports whether the node was changed.
func ResolveRadius(node *Node, rng *Rand) bool {
	if node.BaseRadius >= 0 {
		return false
	}
	node.BaseRadius = rng.Range(MinRandomRadius, MaxRandomRadius)
	return true
}

func capCount(n, max int) int {
	if max > 0 && n > max {
		return max
	}
	return n
}

// totalVertexCount returns 1 + the sum of counts[1:].
func totalVertexCount(counts []int) int {
	if len(counts) == 0 {
		return 0
	}
	total := 1
	for _, c := range counts[1:] {
		total += c
	}
	return total
}

// ringStarts returns the vertex buffer offset of every node's ring.
// The apex occupies slot 0, so the first ring starts at 1.
func ringStarts(counts []int) []int {
	starts := make([]int, len(counts))
	next := 1
	for i := 1; i < len(counts); i++ {
		starts[i] = next
		next += counts[i]
	}
	return starts
}
