package mesh

import (
	"slices"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/pixstrip/pkg/formats"
	"github.com/Faultbox/pixstrip/pkg/math"
)

// MirrorX returns a copy of positions with every x component negated.
func MirrorX(positions []r3.Vec) []r3.Vec {
	out := make([]r3.Vec, len(positions))
	for i, p := range positions {
		out[i] = r3.Vec{X: -p.X, Y: p.Y, Z: p.Z}
	}
	return out
}

// Assemble packages dense attributes and decoded triangles into a Mesh.
// Only positions are mirrored; normals are copied as they are.
func Assemble(positions, normals []r3.Vec, tris []Triangle, opts BuildOptions) *Mesh {
	m := &Mesh{
		Normals:   slices.Clone(normals),
		Triangles: make([][3]uint32, len(tris)),
		UVs:       make([][3]UV, len(tris)),
		Transform: transformOrIdentity(opts.Transform),
	}
	if opts.MirrorX {
		m.Positions = MirrorX(positions)
	} else {
		m.Positions = slices.Clone(positions)
	}

	for i, tri := range tris {
		m.Triangles[i] = tri.IDs()
		m.UVs[i] = tri.UVs()
	}
	return m
}

// Build runs the full pipeline: strip decoding, attribute deduplication,
// dense layout and assembly. An empty record sequence gives an empty mesh.
func Build(records []formats.PIXVertex, opts BuildOptions) (*Mesh, error) {
	if len(records) == 0 {
		return &Mesh{
			Transform: transformOrIdentity(opts.Transform),
			Stats:     Stats{Empty: true},
		}, nil
	}

	tris := DecodeStrip(records, opts.Decode)
	table := BuildTable(records, tris)

	positions, normals, gaps, err := table.Dense(opts.MaxIdentity)
	if err != nil {
		return nil, err
	}

	m := Assemble(positions, normals, tris, opts)
	m.Stats = Stats{
		Records:   len(records),
		Triangles: len(tris),
		Vertices:  len(positions),
		Gaps:      gaps,
		Conflicts: table.Conflicts(),
	}
	return m, nil
}

// transformOrIdentity treats the zero matrix as "no transform given".
func transformOrIdentity(m math.Mat4) math.Mat4 {
	if m == (math.Mat4{}) {
		return math.Identity()
	}
	return m
}
