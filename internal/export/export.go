// Package export writes reconstructed meshes to interchange formats.
// Writers play the part of the host scene: they bake the mesh transform into
// the coordinates they emit.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/pixstrip/internal/mesh"
)

// Export errors.
var (
	ErrUnknownFormat = errors.New("unknown export format")
	ErrEmptyMesh     = errors.New("mesh has no triangles")
)

// Format names an output encoding.
type Format string

// Supported formats.
const (
	FormatOBJ      Format = "obj"
	FormatSTL      Format = "stl"
	FormatSTLASCII Format = "stl-ascii"
	FormatYAML     Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatOBJ, FormatSTL, FormatSTLASCII, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return FormatOBJ, true
	case ".stl":
		return FormatSTL, true
	case ".yaml", ".yml":
		return FormatYAML, true
	default:
		return "", false
	}
}

// Extension returns the file extension for the format, with the dot.
func (f Format) Extension() string {
	switch f {
	case FormatSTL, FormatSTLASCII:
		return ".stl"
	case FormatYAML:
		return ".yaml"
	default:
		return ".obj"
	}
}

// Write encodes m in format f.
func Write(w io.Writer, f Format, m *mesh.Mesh) error {
	switch f {
	case FormatOBJ:
		return WriteOBJ(w, m)
	case FormatSTL:
		return WriteSTL(w, m, false)
	case FormatSTLASCII:
		return WriteSTL(w, m, true)
	case FormatYAML:
		return WriteYAML(w, m)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

// WriteFile encodes m into a new file at path.
func WriteFile(path string, f Format, m *mesh.Mesh) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		err = multierr.Append(err, file.Close())
	}()
	return Write(file, f, m)
}

// bakedPositions returns the positions with the mesh transform applied.
func bakedPositions(m *mesh.Mesh) []r3.Vec {
	out := make([]r3.Vec, len(m.Positions))
	for i, p := range m.Positions {
		out[i] = m.Transform.TransformPoint(p)
	}
	return out
}

// bakedNormals returns the normals rotated by the mesh transform and
// renormalized. Zero normals stay zero.
func bakedNormals(m *mesh.Mesh) []r3.Vec {
	out := make([]r3.Vec, len(m.Normals))
	for i, n := range m.Normals {
		d := m.Transform.TransformDirection(n)
		if r3.Norm(d) > 0 {
			d = r3.Unit(d)
		}
		out[i] = d
	}
	return out
}

// windingFlipped reports whether the transform mirrors space, which turns
// front faces into back faces once baked.
func windingFlipped(m *mesh.Mesh) bool {
	return m.Transform.Determinant() < 0
}

// corners returns the triangle's corner order after baking.
func corners(m *mesh.Mesh) [3]int {
	if windingFlipped(m) {
		return [3]int{0, 2, 1}
	}
	return [3]int{0, 1, 2}
}
