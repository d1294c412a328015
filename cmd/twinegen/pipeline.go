package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/crystal-twine/internal/config"
	"github.com/Faultbox/crystal-twine/internal/debug"
	"github.com/Faultbox/crystal-twine/internal/logger"
	"github.com/Faultbox/crystal-twine/internal/scene"
	"github.com/Faultbox/crystal-twine/internal/twine"
	"github.com/Faultbox/crystal-twine/pkg/formats"
	"github.com/Faultbox/crystal-twine/pkg/math"
)

// defaultRadii shape the scene used when no scene file exists.
var defaultRadii = []float32{0, 0.25, 0.4, 0.5, 0.55}

const defaultSpacing = 0.5

// loadScene reads the configured scene, falling back to a straight
// default twine when the file does not exist.
func loadScene(path string) (*scene.Scene, error) {
	s, err := scene.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("scene file not found, using default twine", zap.String("path", path))
		return scene.NewLinear("twine", math.Zero, defaultSpacing, defaultRadii), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading scene %s: %w", path, err)
	}
	return s, nil
}

// seedText picks the configured seed, then the one stored in the scene.
func seedText(cfg *config.Config, s *scene.Scene) string {
	if cfg.Generation.Seed != "" {
		return cfg.Generation.Seed
	}
	return s.Seed
}

// generateScene runs one generation for s with gen and persists the
// resolved seed and radii when write-back is enabled.
func generateScene(cfg *config.Config, gen *twine.Generator, s *scene.Scene, seed twine.Seed) (*twine.Result, twine.Chain, error) {
	chain := s.Chain()

	res, err := gen.Regenerate(chain, seed)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("generated twine",
		zap.String("seed", res.Seed.Text),
		zap.Int("nodes", len(chain)),
		zap.Int("vertices", res.Mesh.VertexCount()),
		zap.Int("triangles", res.Mesh.TriangleCount()))

	if cfg.Scene.WriteBack {
		if err := writeBack(cfg.Scene.Path, s, chain, res.Seed); err != nil {
			return nil, nil, err
		}
	}
	return res, chain, nil
}

func writeBack(path string, s *scene.Scene, chain twine.Chain, seed twine.Seed) error {
	changed, err := s.WriteBack(chain)
	if err != nil {
		return err
	}
	if s.Seed != seed.Text {
		s.Seed = seed.Text
		changed++
	}
	if changed == 0 {
		return nil
	}
	if err := s.SaveTo(path); err != nil {
		return fmt.Errorf("saving scene %s: %w", path, err)
	}
	logger.Debug("scene written back", zap.String("path", path), zap.Int("changed", changed))
	return nil
}

// export writes res to path in the configured format.
func export(cfg *config.Config, path string, res *twine.Result, chain twine.Chain) error {
	switch cfg.Output.Format {
	case config.FormatTWM:
		if cfg.Debug.DrawGizmos {
			logger.Warn("gizmos are only exported to OBJ")
		}
		return formats.SaveTWM(path, toTWM(res))
	default:
		var lines []math.Vec3
		if cfg.Debug.DrawGizmos {
			lines = debug.Gizmos(chain, res.Mesh)
		}
		return formats.SaveOBJ(path, toOBJ(res, lines))
	}
}

func toOBJ(res *twine.Result, lines []math.Vec3) *formats.OBJ {
	m := res.Mesh
	obj := &formats.OBJ{
		Name:      strings.ReplaceAll(m.Name, " ", "_"),
		Comments:  []string{fmt.Sprintf("crystal twine, seed %s", res.Seed)},
		Positions: make([][3]float32, len(m.Vertices)),
		Normals:   make([][3]float32, len(m.Vertices)),
		Indices:   m.Indices,
	}
	for i, v := range m.Vertices {
		obj.Positions[i] = v.Position.Array()
		obj.Normals[i] = v.Normal.Array()
	}
	for _, p := range lines {
		obj.Lines = append(obj.Lines, p.Array())
	}
	return obj
}

func toTWM(res *twine.Result) *formats.TWM {
	m := res.Mesh
	t := &formats.TWM{
		Name:       m.Name,
		SeedText:   res.Seed.Text,
		SeedValue:  res.Seed.Value,
		BoundsMin:  m.Bounds.Min.Array(),
		BoundsMax:  m.Bounds.Max.Array(),
		RingCounts: make([]uint32, len(res.VertexCountPerNode)),
		Vertices:   make([]formats.TWMVertex, len(m.Vertices)),
		Indices:    m.Indices,
	}
	for i, c := range res.VertexCountPerNode {
		t.RingCounts[i] = uint32(c)
	}
	for i, v := range m.Vertices {
		t.Vertices[i] = formats.TWMVertex{
			Position: v.Position.Array(),
			Normal:   v.Normal.Array(),
			Tangent:  v.Tangent.Array(),
		}
	}
	return t
}

// variantPath returns dir/<base>_<seed>.<format>.
func variantPath(dir, base, seed, format string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", base, seed, format))
}
