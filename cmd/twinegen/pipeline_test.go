package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/crystal-twine/internal/config"
	"github.com/Faultbox/crystal-twine/internal/debug"
	"github.com/Faultbox/crystal-twine/internal/scene"
	"github.com/Faultbox/crystal-twine/pkg/formats"
	"github.com/Faultbox/crystal-twine/pkg/math"
)

// testConfig writes a linear scene into a temp dir and returns a config
// pointing at it.
func testConfig(t *testing.T, radii []float32) *config.Config {
	t.Helper()
	dir := t.TempDir()

	s := scene.NewLinear("test", math.Zero, 0.5, radii)
	scenePath := filepath.Join(dir, "scene.yaml")
	require.NoError(t, s.SaveTo(scenePath))

	cfg := config.Default()
	cfg.Scene.Path = scenePath
	cfg.Output.Path = filepath.Join(dir, "out", "twine.obj")
	cfg.Generation.Seed = "CRYSTAL"
	return cfg
}

func TestRunGenerateOBJ(t *testing.T) {
	cfg := testConfig(t, []float32{0, 0.2, 0.4, 0.6})
	require.NoError(t, runGenerate(cfg))

	data, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, "# crystal twine, seed CRYSTAL"))
	assert.Contains(t, out, "o Crystal_Twine\n")
	assert.NotContains(t, out, "o gizmos")
	assert.Contains(t, out, "vn ")
}

func TestRunGenerateDeterministic(t *testing.T) {
	cfg := testConfig(t, []float32{0, 0.2, 0.4, 0.6})
	cfg.Generation.Jitter = "linear"

	require.NoError(t, runGenerate(cfg))
	first, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)

	require.NoError(t, runGenerate(cfg))
	second, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestRunGenerateTWM(t *testing.T) {
	cfg := testConfig(t, []float32{0, 0.2, 0.4})
	cfg.Output.Format = config.FormatTWM
	cfg.Output.Path = strings.TrimSuffix(cfg.Output.Path, ".obj") + ".twm"

	require.NoError(t, runGenerate(cfg))

	m, err := formats.LoadTWM(cfg.Output.Path)
	require.NoError(t, err)

	assert.Equal(t, "CRYSTAL", m.SeedText)
	require.Len(t, m.RingCounts, 3)
	assert.Equal(t, uint32(1), m.RingCounts[0])

	total := uint32(0)
	for _, c := range m.RingCounts {
		total += c
	}
	assert.Equal(t, int(total), len(m.Vertices))
	assert.Equal(t, int(total-1), m.TriangleCount())
	assert.Equal(t, [3]float32{0, 0, 0}, m.Vertices[0].Position)
}

func TestRunGenerateWriteBack(t *testing.T) {
	cfg := testConfig(t, []float32{0, -1, -1})
	cfg.Generation.Seed = ""
	cfg.Generation.Sizing = "density"
	cfg.Scene.WriteBack = true

	require.NoError(t, runGenerate(cfg))

	s, err := scene.Load(cfg.Scene.Path)
	require.NoError(t, err)

	assert.Len(t, s.Seed, 10, "generated seed should be persisted")
	for i, n := range s.Chain()[1:] {
		assert.GreaterOrEqual(t, n.BaseRadius, float32(0.1), "node %d radius", i+1)
		assert.Less(t, n.BaseRadius, float32(1), "node %d radius", i+1)
	}

	// Regenerating from the written-back scene reproduces the same mesh.
	first, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)
	require.NoError(t, runGenerate(cfg))
	second, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestRunGenerateGizmos(t *testing.T) {
	cfg := testConfig(t, []float32{0, 0.3})
	cfg.Debug.DrawGizmos = true

	require.NoError(t, runGenerate(cfg))

	data, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "o gizmos\n")
	// one wireframe per vertex plus one per node, 12 edges each
	lines := strings.Count(out, "\nl ")
	assert.Positive(t, lines)
	assert.Zero(t, lines%(debug.BBoxWireframeVertexCount/2))
}

func TestLoadSceneFallback(t *testing.T) {
	s, err := loadScene(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, len(defaultRadii), s.NodeCount())
}

func TestLoadSceneInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nodes: [unclosed"), 0644))

	_, err := loadScene(path)
	assert.Error(t, err)
}

func TestSeedText(t *testing.T) {
	cfg := config.Default()
	s := &scene.Scene{Seed: "SCENE"}

	assert.Equal(t, "SCENE", seedText(cfg, s))

	cfg.Generation.Seed = "CONFIG"
	assert.Equal(t, "CONFIG", seedText(cfg, s))
}

func TestRunBatch(t *testing.T) {
	cfg := testConfig(t, []float32{0, 0.2, 0.4})
	cfg.Scene.WriteBack = true
	dir := filepath.Join(t.TempDir(), "variants")

	seeds, err := runBatch(cfg, 3, dir, false)
	require.NoError(t, err)
	require.Len(t, seeds, 3)

	for _, seed := range seeds {
		assert.True(t, seed.Generated)
		_, err := os.Stat(variantPath(dir, "twine", seed.Text, "obj"))
		assert.NoError(t, err, "variant %s", seed.Text)
	}

	// batch never writes back
	s, err := scene.Load(cfg.Scene.Path)
	require.NoError(t, err)
	assert.Empty(t, s.Seed)
}

func TestVariantPath(t *testing.T) {
	got := variantPath("out", "twine", "ABC", "twm")
	assert.Equal(t, filepath.Join("out", "twine_ABC.twm"), got)
}

func TestRunWatchInitialGeneration(t *testing.T) {
	cfg := testConfig(t, []float32{0, 0.2, 0.4})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, runWatch(ctx, cfg, nil))

	_, err := os.Stat(cfg.Output.Path)
	assert.NoError(t, err)
}
