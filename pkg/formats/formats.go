// Package formats provides writers and parsers for twine mesh file formats.
package formats

// Note: TWM (binary twine mesh) is implemented in twm.go
// Note: OBJ (Wavefront, write-only) is implemented in obj.go
