// Package mesh rebuilds indexed triangle meshes from triangle-strip vertex dumps.
package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/pixstrip/pkg/math"
)

// UV is a texture coordinate.
type UV [2]float64

// Corner is one triangle's use of a vertex.
type Corner struct {
	ID uint32
	// UV belongs to the corner, not the vertex: the same ID can carry
	// different texture coordinates on either side of a seam.
	UV UV
	// Record is the index in the source sequence this corner was taken from.
	Record int
}

// Triangle is three corners in winding order.
type Triangle struct {
	Corners [3]Corner
}

// IDs returns the vertex identities of the three corners.
func (t Triangle) IDs() [3]uint32 {
	return [3]uint32{t.Corners[0].ID, t.Corners[1].ID, t.Corners[2].ID}
}

// UVs returns the texture coordinates of the three corners.
func (t Triangle) UVs() [3]UV {
	return [3]UV{t.Corners[0].UV, t.Corners[1].UV, t.Corners[2].UV}
}

// Reversed returns the triangle with its winding flipped.
// Identities and UVs move together.
func (t Triangle) Reversed() Triangle {
	return Triangle{Corners: [3]Corner{t.Corners[2], t.Corners[1], t.Corners[0]}}
}

// Attribute holds the per-identity vertex data.
type Attribute struct {
	Position r3.Vec
	Normal   r3.Vec
}

// Stats describes how a mesh was assembled.
type Stats struct {
	Records   int
	Triangles int
	Vertices  int
	// Gaps is the number of identities below the maximum that no corner
	// referenced and were filled with zero attributes.
	Gaps int
	// Conflicts lists identities that were seen with differing attributes.
	// The last value seen was kept.
	Conflicts []uint32
	Empty     bool
}

// Mesh is the finished, dense, indexed mesh.
type Mesh struct {
	// Positions and Normals are indexed by vertex identity.
	Positions []r3.Vec
	Normals   []r3.Vec
	Triangles [][3]uint32
	// UVs[i] holds the corner texture coordinates of Triangles[i].
	UVs [][3]UV
	// Transform is handed to the consumer untouched; it is not baked into
	// Positions.
	Transform math.Mat4
	Stats     Stats
}

// DecodeMode selects how a record sequence is expanded into triangles.
type DecodeMode int

// Decode modes.
const (
	// ModeStrip emits one triangle per record after the first two.
	ModeStrip DecodeMode = iota
	// ModePhased runs the four-phase window of the legacy importer, which
	// emits two triangles for every three records after start-up.
	ModePhased
)

// String returns the config name of the mode.
func (m DecodeMode) String() string {
	switch m {
	case ModeStrip:
		return "strip"
	case ModePhased:
		return "phased"
	default:
		return "unknown"
	}
}

// DecodeOptions controls the strip decoder.
type DecodeOptions struct {
	Mode DecodeMode
	// Reverse flips every emitted triangle's corner order.
	Reverse bool
}

// DefaultMaxIdentity caps the dense attribute tables when no ceiling is given.
const DefaultMaxIdentity = 1<<24 - 1

// BuildOptions contains options for mesh building.
type BuildOptions struct {
	Decode DecodeOptions
	// MirrorX negates the x component of every position.
	MirrorX bool
	// MaxIdentity is the largest vertex identity accepted. Zero means
	// DefaultMaxIdentity.
	MaxIdentity uint32
	Transform   math.Mat4
}

// DefaultBuildOptions mirrors on X and reverses winding, with an identity transform.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		Decode:      DecodeOptions{Mode: ModeStrip, Reverse: true},
		MirrorX:     true,
		MaxIdentity: DefaultMaxIdentity,
		Transform:   math.Identity(),
	}
}
