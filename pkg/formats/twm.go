package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// TWM format errors.
var (
	ErrInvalidTWMMagic       = errors.New("invalid TWM magic: expected 'TWMS'")
	ErrUnsupportedTWMVersion = errors.New("unsupported TWM version")
	ErrTruncatedTWMData      = errors.New("truncated TWM data")
)

const twmMagic = "TWMS"

// Sanity limits on element counts.
const (
	maxTWMVertices = 1 << 24
	maxTWMIndices  = 3 << 24
	maxTWMNodes    = 1 << 16
	maxTWMString   = 1 << 12
)

// TWMVersion represents the TWM file version.
type TWMVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v TWMVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// TWMCurrentVersion is the version written by WriteTWM.
var TWMCurrentVersion = TWMVersion{Major: 1, Minor: 0}

// TWMVertex is one stored vertex.
type TWMVertex struct {
	Position [3]float32
	Normal   [3]float32
	Tangent  [4]float32
}

// TWM is a generated twine mesh together with the inputs needed to
// reproduce it.
type TWM struct {
	Version   TWMVersion
	Name      string
	SeedText  string
	SeedValue int32
	BoundsMin [3]float32
	BoundsMax [3]float32
	// RingCounts is the vertex count per node, apex first.
	RingCounts []uint32
	Vertices   []TWMVertex
	Indices    []uint32
}

// TriangleCount returns the number of triangles.
func (m *TWM) TriangleCount() int {
	return len(m.Indices) / 3
}

// twmHeader is the fixed-size part following magic and version.
type twmHeader struct {
	VertexCount uint32
	IndexCount  uint32
	NodeCount   uint32
	SeedValue   int32
	BoundsMin   [3]float32
	BoundsMax   [3]float32
}

// WriteTWM writes m in TWM binary format (little endian).
//
// Layout: "TWMS", minor, major, header, name, seed text (uint16 length +
// bytes each), ring counts, vertices, indices.
func WriteTWM(w io.Writer, m *TWM) error {
	if len(m.Name) > maxTWMString || len(m.SeedText) > maxTWMString {
		return fmt.Errorf("twm: string too long")
	}

	buf := new(bytes.Buffer)
	buf.WriteString(twmMagic)
	buf.WriteByte(TWMCurrentVersion.Minor)
	buf.WriteByte(TWMCurrentVersion.Major)

	hdr := twmHeader{
		VertexCount: uint32(len(m.Vertices)),
		IndexCount:  uint32(len(m.Indices)),
		NodeCount:   uint32(len(m.RingCounts)),
		SeedValue:   m.SeedValue,
		BoundsMin:   m.BoundsMin,
		BoundsMax:   m.BoundsMax,
	}
	binary.Write(buf, binary.LittleEndian, hdr)
	writeString(buf, m.Name)
	writeString(buf, m.SeedText)
	binary.Write(buf, binary.LittleEndian, m.RingCounts)
	binary.Write(buf, binary.LittleEndian, m.Vertices)
	binary.Write(buf, binary.LittleEndian, m.Indices)

	_, err := w.Write(buf.Bytes())
	return err
}

func writeString(buf *bytes.Buffer, s string) {
	binary.Write(buf, binary.LittleEndian, uint16(len(s)))
	buf.WriteString(s)
}

// ParseTWM parses a TWM file from raw bytes.
func ParseTWM(data []byte) (*TWM, error) {
	if len(data) < 6 {
		return nil, ErrTruncatedTWMData
	}

	if string(data[0:4]) != twmMagic {
		return nil, ErrInvalidTWMMagic
	}

	// Version is stored as [minor, major]
	version := TWMVersion{Major: data[5], Minor: data[4]}
	if version.Major != TWMCurrentVersion.Major {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTWMVersion, version)
	}

	r := bytes.NewReader(data[6:])

	var hdr twmHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: reading header", ErrTruncatedTWMData)
	}
	if hdr.VertexCount > maxTWMVertices || hdr.IndexCount > maxTWMIndices || hdr.NodeCount > maxTWMNodes {
		return nil, fmt.Errorf("invalid TWM counts: %d vertices, %d indices, %d nodes",
			hdr.VertexCount, hdr.IndexCount, hdr.NodeCount)
	}
	if hdr.IndexCount%3 != 0 {
		return nil, fmt.Errorf("invalid TWM index count %d", hdr.IndexCount)
	}

	m := &TWM{
		Version:    version,
		SeedValue:  hdr.SeedValue,
		BoundsMin:  hdr.BoundsMin,
		BoundsMax:  hdr.BoundsMax,
		RingCounts: make([]uint32, hdr.NodeCount),
		Vertices:   make([]TWMVertex, hdr.VertexCount),
		Indices:    make([]uint32, hdr.IndexCount),
	}

	var err error
	if m.Name, err = readString(r); err != nil {
		return nil, fmt.Errorf("reading name: %w", err)
	}
	if m.SeedText, err = readString(r); err != nil {
		return nil, fmt.Errorf("reading seed: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, m.RingCounts); err != nil {
		return nil, fmt.Errorf("%w: reading ring counts", ErrTruncatedTWMData)
	}
	if err := binary.Read(r, binary.LittleEndian, m.Vertices); err != nil {
		return nil, fmt.Errorf("%w: reading vertices", ErrTruncatedTWMData)
	}
	if err := binary.Read(r, binary.LittleEndian, m.Indices); err != nil {
		return nil, fmt.Errorf("%w: reading indices", ErrTruncatedTWMData)
	}

	for i, idx := range m.Indices {
		if idx >= hdr.VertexCount {
			return nil, fmt.Errorf("index %d out of range: %d >= %d", i, idx, hdr.VertexCount)
		}
	}

	return m, nil
}

func readString(r *bytes.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", fmt.Errorf("%w: reading string length", ErrTruncatedTWMData)
	}
	if int(n) > r.Len() {
		return "", fmt.Errorf("%w: string of %d bytes", ErrTruncatedTWMData, n)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", fmt.Errorf("%w: reading string", ErrTruncatedTWMData)
	}
	return string(b), nil
}

// LoadTWM parses a TWM file from disk.
func LoadTWM(path string) (*TWM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading TWM file: %w", err)
	}
	return ParseTWM(data)
}

// SaveTWM writes m to path, creating parent directories.
func SaveTWM(path string, m *TWM) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	buf := new(bytes.Buffer)
	if err := WriteTWM(buf, m); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
