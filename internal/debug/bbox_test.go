package debug

import (
	"testing"

	"github.com/Faultbox/crystal-twine/internal/mesh"
	"github.com/Faultbox/crystal-twine/internal/twine"
	"github.com/Faultbox/crystal-twine/pkg/math"
)

func TestGenerateBBoxWireframeVertices(t *testing.T) {
	lines := GenerateBBoxWireframeVertices(math.Vec3{X: -1, Y: -2, Z: -3}, math.Vec3{X: 1, Y: 2, Z: 3})
	if len(lines) != BBoxWireframeVertexCount {
		t.Fatalf("expected %d vertices, got %d", BBoxWireframeVertexCount, len(lines))
	}
	for i := 0; i < len(lines); i += 2 {
		d := lines[i+1].Sub(lines[i])
		axes := 0
		for _, c := range []float32{d.X, d.Y, d.Z} {
			if c != 0 {
				axes++
			}
		}
		if axes != 1 {
			t.Errorf("edge %d is not axis aligned: %v -> %v", i/2, lines[i], lines[i+1])
		}
	}
}

func TestMarkerAt(t *testing.T) {
	p := math.Vec3{X: 1, Y: 2, Z: 3}
	lines := MarkerAt(p, 0.5)
	for _, v := range lines {
		if d := v.Sub(p); d.X*d.X != 0.0625 || d.Y*d.Y != 0.0625 || d.Z*d.Z != 0.0625 {
			t.Errorf("corner %v not at half size from %v", v, p)
		}
	}
}

func TestGizmos(t *testing.T) {
	chain := twine.Chain{
		{Position: math.Vec3{}},
		{Position: math.Vec3{Y: -1}, BaseRadius: 1},
	}
	res, err := twine.Generate(chain, twine.DefaultParams(), twine.SeedFromText("gizmo"))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	before := res.Mesh.Positions()
	lines := Gizmos(chain, res.Mesh)
	want := (res.Mesh.VertexCount() + len(chain)) * BBoxWireframeVertexCount
	if len(lines) != want {
		t.Errorf("expected %d line vertices, got %d", want, len(lines))
	}

	after := res.Mesh.Positions()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("gizmos changed vertex %d", i)
		}
	}
}

func TestBoundsWireframe(t *testing.T) {
	b := mesh.Bounds{Min: math.Vec3{}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}
	lines := BoundsWireframe(b, 1)
	if lines[0] != (math.Vec3{X: -1, Y: -1, Z: -1}) {
		t.Errorf("padded min = %v", lines[0])
	}
}
