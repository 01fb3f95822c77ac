package export

import (
	"io"

	"github.com/hschendel/stl"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/pixstrip/internal/mesh"
)

// WriteSTL writes m as an STL solid, binary unless ascii is set. STL has no
// texture coordinates, so UVs are dropped. Facet normals come from the baked
// triangle geometry.
func WriteSTL(w io.Writer, m *mesh.Mesh, ascii bool) error {
	if len(m.Triangles) == 0 {
		return ErrEmptyMesh
	}

	positions := bakedPositions(m)
	order := corners(m)

	solid := &stl.Solid{
		Name:      "pixstrip",
		IsAscii:   ascii,
		Triangles: make([]stl.Triangle, 0, len(m.Triangles)),
	}
	if !ascii {
		// Binary headers must not start with "solid" or readers sniff ASCII.
		solid.BinaryHeader = []byte("pixstrip binary STL")
	}
	for _, tri := range m.Triangles {
		p0 := positions[tri[order[0]]]
		p1 := positions[tri[order[1]]]
		p2 := positions[tri[order[2]]]

		solid.Triangles = append(solid.Triangles, stl.Triangle{
			Normal:   toSTLVec(facetNormal(p0, p1, p2)),
			Vertices: [3]stl.Vec3{toSTLVec(p0), toSTLVec(p1), toSTLVec(p2)},
		})
	}

	return solid.WriteAll(w)
}

// facetNormal returns the unit normal of a counter-clockwise triangle, or
// zero for a degenerate one.
func facetNormal(p0, p1, p2 r3.Vec) r3.Vec {
	n := r3.Cross(r3.Sub(p1, p0), r3.Sub(p2, p0))
	if r3.Norm(n) == 0 {
		return r3.Vec{}
	}
	return r3.Unit(n)
}

func toSTLVec(v r3.Vec) stl.Vec3 {
	return stl.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}
