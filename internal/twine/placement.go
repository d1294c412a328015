package twine

import (
	"github.com/Faultbox/crystal-twine/pkg/math"
)

// Place computes the vertex buffer for the planned ring sizes.
//
// Vertex 0 is the apex at node 0's position. Every following node gets a
// ring starting at Position + Forward*radius; each next vertex is the
// previous one rotated about the vertical axis through the node by
// 360/k degrees, plus jitter in circular mode. In linear mode each ring
// vertex is then offset per axis, except in Y on the bottom node so the
// base ring stays planar.
//
// Draws follow node order, and within a node the ring order.
func Place(chain Chain, counts []int, params Params, rng *Rand) []math.Vec3 {
	if len(chain) == 0 {
		return nil
	}

	vertices := make([]math.Vec3, 0, totalVertexCount(counts))
	vertices = append(vertices, chain[0].Position)

	bottom := len(chain) - 1
	for i := 1; i < len(chain); i++ {
		start := len(vertices)
		vertices = placeRing(vertices, chain[i], counts[i], params, rng)

		if params.Jitter == JitterLinear && counts[i] > 1 {
			applyLinearJitter(vertices[start:], params.MaxVertexOffset, i == bottom, rng)
		}
	}

	return vertices
}

// placeRing appends the k ring vertices of node to vertices.
func placeRing(vertices []math.Vec3, node *Node, k int, params Params, rng *Rand) []math.Vec3 {
	// TODO: orient the ring from the neighbouring nodes instead of world Forward/Up.
	v := node.Position.Add(math.Forward.Scale(node.BaseRadius))
	vertices = append(vertices, v)
	if k <= 1 {
		return vertices
	}

	step := 360 / float32(k)
	maxJitter := step * params.CircularVertexOffset / 2

	for j := 1; j < k; j++ {
		angle := step
		if params.Jitter == JitterCircular {
			angle += rng.Range(-maxJitter, maxJitter)
		}
		v = math.RotateAround(v, node.Position, math.Up, angle)
		vertices = append(vertices, v)
	}
	return vertices
}

// applyLinearJitter offsets every ring vertex by a random amount per axis.
// On the bottom ring the Y offset is neither drawn nor applied.
func applyLinearJitter(ring []math.Vec3, max math.Vec3, bottom bool, rng *Rand) {
	for k := range ring {
		var offset math.Vec3
		offset.X = rng.Range(-max.X, max.X)
		if !bottom {
			offset.Y = rng.Range(-max.Y, max.Y)
		}
		offset.Z = rng.Range(-max.Z, max.Z)
		ring[k] = ring[k].Add(offset)
	}
}
