package formats

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// OBJ holds the data written to a Wavefront OBJ file.
type OBJ struct {
	Name      string
	Comments  []string
	Positions [][3]float32
	Normals   [][3]float32 // optional, index-aligned with Positions
	Indices   []uint32     // 3 per triangle, 0-based
	// Lines are debug line segments, 2 endpoints each. They are written as
	// extra vertices after the mesh vertices, under their own object.
	Lines [][3]float32
}

// WriteOBJ writes obj in Wavefront OBJ text format.
func WriteOBJ(w io.Writer, obj *OBJ) error {
	if len(obj.Indices)%3 != 0 {
		return fmt.Errorf("obj: index count %d is not a multiple of 3", len(obj.Indices))
	}
	if len(obj.Lines)%2 != 0 {
		return fmt.Errorf("obj: line vertex count %d is odd", len(obj.Lines))
	}
	hasNormals := len(obj.Normals) > 0
	if hasNormals && len(obj.Normals) != len(obj.Positions) {
		return fmt.Errorf("obj: %d normals for %d positions", len(obj.Normals), len(obj.Positions))
	}

	bw := bufio.NewWriter(w)

	for _, c := range obj.Comments {
		fmt.Fprintf(bw, "# %s\n", c)
	}
	if obj.Name != "" {
		fmt.Fprintf(bw, "o %s\n", obj.Name)
	}

	for _, p := range obj.Positions {
		fmt.Fprintf(bw, "v %g %g %g\n", p[0], p[1], p[2])
	}
	for _, n := range obj.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n[0], n[1], n[2])
	}

	// OBJ indices are 1-based
	for i := 0; i < len(obj.Indices); i += 3 {
		a, b, c := obj.Indices[i]+1, obj.Indices[i+1]+1, obj.Indices[i+2]+1
		if hasNormals {
			fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
		} else {
			fmt.Fprintf(bw, "f %d %d %d\n", a, b, c)
		}
	}

	if len(obj.Lines) > 0 {
		fmt.Fprintln(bw, "o gizmos")
		base := len(obj.Positions) + 1
		for _, p := range obj.Lines {
			fmt.Fprintf(bw, "v %g %g %g\n", p[0], p[1], p[2])
		}
		for i := 0; i < len(obj.Lines); i += 2 {
			fmt.Fprintf(bw, "l %d %d\n", base+i, base+i+1)
		}
	}

	return bw.Flush()
}

// SaveOBJ writes obj to path, creating parent directories.
func SaveOBJ(path string, obj *OBJ) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteOBJ(f, obj); err != nil {
		f.Close()
		return fmt.Errorf("writing OBJ file: %w", err)
	}
	return f.Close()
}
