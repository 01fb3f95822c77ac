package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/pixstrip/pkg/formats"
)

// testRecords builds a strip sequence. Attributes depend only on the identity
// so repeated identities agree; the raw UV depends on the row.
func testRecords(ids ...uint32) []formats.PIXVertex {
	records := make([]formats.PIXVertex, len(ids))
	for i, id := range ids {
		records[i] = formats.PIXVertex{
			ID:       id,
			Position: testPosition(id),
			Normal:   r3.Vec{X: 0, Y: 0, Z: 1},
			UV:       [2]float64{0.125 * float64(i), 0.25 + 0.0625*float64(i)},
			Row:      i + 1,
		}
	}
	return records
}

func testPosition(id uint32) r3.Vec {
	return r3.Vec{X: float64(id) + 1, Y: 2 * float64(id), Z: -float64(id)}
}

func triangleIDs(tris []Triangle) [][3]uint32 {
	ids := make([][3]uint32, len(tris))
	for i, t := range tris {
		ids[i] = t.IDs()
	}
	return ids
}

// directedEdges returns the three edges of a triangle in winding order.
func directedEdges(ids [3]uint32) [3][2]uint32 {
	return [3][2]uint32{{ids[0], ids[1]}, {ids[1], ids[2]}, {ids[2], ids[0]}}
}
