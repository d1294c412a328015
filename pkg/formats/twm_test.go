package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"path/filepath"
	"testing"
)

// createTestTWM returns a single-triangle twine mesh.
func createTestTWM() *TWM {
	return &TWM{
		Name:       "Crystal Twine",
		SeedText:   "ABC123XYZ0",
		SeedValue:  -42,
		BoundsMin:  [3]float32{-1, -1, 0},
		BoundsMax:  [3]float32{1, 0, 1},
		RingCounts: []uint32{1, 2},
		Vertices: []TWMVertex{
			{Position: [3]float32{0, 0, 0}, Normal: [3]float32{0, 1, 0}, Tangent: [4]float32{1, 0, 0, 1}},
			{Position: [3]float32{0, -1, 1}, Normal: [3]float32{0, 1, 0}, Tangent: [4]float32{1, 0, 0, 1}},
			{Position: [3]float32{1, -1, 0}, Normal: [3]float32{0, 1, 0}, Tangent: [4]float32{1, 0, 0, 1}},
		},
		Indices: []uint32{0, 1, 2},
	}
}

func encodeTWM(t *testing.T, m *TWM) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := WriteTWM(buf, m); err != nil {
		t.Fatalf("WriteTWM failed: %v", err)
	}
	return buf.Bytes()
}

func TestParseTWM_ValidFile(t *testing.T) {
	want := createTestTWM()
	data := encodeTWM(t, want)

	if string(data[:4]) != "TWMS" {
		t.Fatalf("magic = %q, want TWMS", data[:4])
	}

	got, err := ParseTWM(data)
	if err != nil {
		t.Fatalf("ParseTWM failed: %v", err)
	}

	if got.Version != TWMCurrentVersion {
		t.Errorf("expected version %s, got %s", TWMCurrentVersion, got.Version)
	}
	if got.Name != want.Name {
		t.Errorf("Name = %q, want %q", got.Name, want.Name)
	}
	if got.SeedText != want.SeedText || got.SeedValue != want.SeedValue {
		t.Errorf("seed = %q/%d, want %q/%d", got.SeedText, got.SeedValue, want.SeedText, want.SeedValue)
	}
	if got.BoundsMin != want.BoundsMin || got.BoundsMax != want.BoundsMax {
		t.Errorf("bounds = %v..%v, want %v..%v", got.BoundsMin, got.BoundsMax, want.BoundsMin, want.BoundsMax)
	}
	if len(got.RingCounts) != 2 || got.RingCounts[0] != 1 || got.RingCounts[1] != 2 {
		t.Errorf("RingCounts = %v, want [1 2]", got.RingCounts)
	}
	if len(got.Vertices) != 3 {
		t.Fatalf("expected 3 vertices, got %d", len(got.Vertices))
	}
	for i := range want.Vertices {
		if got.Vertices[i] != want.Vertices[i] {
			t.Errorf("vertex %d = %+v, want %+v", i, got.Vertices[i], want.Vertices[i])
		}
	}
	if got.TriangleCount() != 1 {
		t.Errorf("TriangleCount = %d, want 1", got.TriangleCount())
	}
}

func TestParseTWM_EmptyMesh(t *testing.T) {
	m := &TWM{Name: "", RingCounts: []uint32{1}, Vertices: []TWMVertex{{}}}
	got, err := ParseTWM(encodeTWM(t, m))
	if err != nil {
		t.Fatalf("ParseTWM failed: %v", err)
	}
	if len(got.Vertices) != 1 || len(got.Indices) != 0 || got.TriangleCount() != 0 {
		t.Errorf("got %d vertices, %d indices", len(got.Vertices), len(got.Indices))
	}
}

func TestParseTWM_InvalidMagic(t *testing.T) {
	data := encodeTWM(t, createTestTWM())
	copy(data, "XXXX")

	_, err := ParseTWM(data)
	if !errors.Is(err, ErrInvalidTWMMagic) {
		t.Errorf("expected ErrInvalidTWMMagic, got %v", err)
	}
}

func TestParseTWM_UnsupportedVersion(t *testing.T) {
	data := encodeTWM(t, createTestTWM())
	data[5] = 9 // major

	_, err := ParseTWM(data)
	if !errors.Is(err, ErrUnsupportedTWMVersion) {
		t.Errorf("expected ErrUnsupportedTWMVersion, got %v", err)
	}
}

func TestParseTWM_Truncated(t *testing.T) {
	data := encodeTWM(t, createTestTWM())

	for _, n := range []int{0, 3, 6, 20, len(data) - 1} {
		_, err := ParseTWM(data[:n])
		if !errors.Is(err, ErrTruncatedTWMData) {
			t.Errorf("len %d: expected ErrTruncatedTWMData, got %v", n, err)
		}
	}
}

func TestParseTWM_IndexOutOfRange(t *testing.T) {
	m := createTestTWM()
	m.Indices = []uint32{0, 1, 3}

	if _, err := ParseTWM(encodeTWM(t, m)); err == nil {
		t.Error("expected error for out-of-range index")
	}
}

func TestParseTWM_BadIndexCount(t *testing.T) {
	data := encodeTWM(t, createTestTWM())
	// IndexCount follows magic, version and VertexCount
	binary.LittleEndian.PutUint32(data[10:], 4)

	if _, err := ParseTWM(data); err == nil {
		t.Error("expected error for index count not divisible by 3")
	}
}

func TestSaveLoadTWM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "twine.twm")
	want := createTestTWM()

	if err := SaveTWM(path, want); err != nil {
		t.Fatalf("SaveTWM failed: %v", err)
	}
	got, err := LoadTWM(path)
	if err != nil {
		t.Fatalf("LoadTWM failed: %v", err)
	}
	if len(got.Vertices) != len(want.Vertices) || got.SeedText != want.SeedText {
		t.Errorf("loaded %d vertices seed %q", len(got.Vertices), got.SeedText)
	}
}

func TestLoadTWM_Missing(t *testing.T) {
	if _, err := LoadTWM(filepath.Join(t.TempDir(), "nope.twm")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestTWMVersionString(t *testing.T) {
	v := TWMVersion{Major: 1, Minor: 0}
	if v.String() != "1.0" {
		t.Errorf("expected '1.0', got '%s'", v.String())
	}
}
