package twine

import (
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/crystal-twine/internal/logger"
	"github.com/Faultbox/crystal-twine/internal/mesh"
)

// MeshName is the name given to generated meshes.
const MeshName = "Crystal Twine"

// Generate runs one full generation: seeding, ring planning, placement,
// triangulation and normal/tangent recomputation.
//
// The random source is seeded from seed.Value before any draw, so equal
// chains, params and seeds give identical buffers. Under density sizing,
// negative node radii are resolved and written back onto the chain.
func Generate(chain Chain, params Params, seed Seed) (*Result, error) {
	if len(chain) == 0 {
		return nil, ErrEmptyChain
	}

	rng := NewRand(seed.Value)

	counts, total := Plan(chain, params, rng)
	positions := Place(chain, counts, params, rng)
	indices := Triangulate(counts)

	m := mesh.New(MeshName, positions, indices)
	m.Recalculate()

	logger.Named("twine").Debug("generated mesh",
		zap.String("seed", seed.Text),
		zap.Int32("seed_value", seed.Value),
		zap.Int("nodes", len(chain)),
		zap.Int("vertices", total),
		zap.Int("triangles", m.TriangleCount()),
		zap.Stringer("sizing", params.Sizing),
		zap.Stringer("jitter", params.Jitter),
	)

	return &Result{
		Seed:               seed,
		VertexCountPerNode: counts,
		Mesh:               m,
	}, nil
}

// Generator owns the current mesh of one twine instance.
// Each Regenerate discards the previous result; calls never interleave.
type Generator struct {
	mu      sync.Mutex
	params  Params
	current *Result
}

// NewGenerator creates a generator with the given parameters.
func NewGenerator(params Params) *Generator {
	return &Generator{params: params}
}

// SetParams replaces the parameters used by the next Regenerate.
func (g *Generator) SetParams(params Params) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.params = params
}

// Params returns the current parameters.
func (g *Generator) Params() Params {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.params
}

// Regenerate generates a new mesh for chain and replaces the current one.
// On error the current result is left untouched.
func (g *Generator) Regenerate(chain Chain, seed Seed) (*Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	res, err := Generate(chain, g.params, seed)
	if err != nil {
		return nil, err
	}
	g.current = res
	return res, nil
}

// Current returns the last generated result, or nil.
func (g *Generator) Current() *Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}
