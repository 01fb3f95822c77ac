package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/pixstrip/internal/mesh"
)

// WriteOBJ writes m as a Wavefront OBJ object. Each triangle corner gets its
// own vt entry, since UVs are not shared by vertex identity.
func WriteOBJ(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# pixstrip: %d vertices, %d triangles\n", len(m.Positions), len(m.Triangles))
	fmt.Fprintln(bw, "o strip")

	for _, p := range bakedPositions(m) {
		writeVec3(bw, "v", p)
	}
	normals := bakedNormals(m)
	for _, n := range normals {
		writeVec3(bw, "vn", n)
	}
	for _, uvs := range m.UVs {
		for _, uv := range uvs {
			fmt.Fprintf(bw, "vt %s %s\n", formatFloat(uv[0]), formatFloat(uv[1]))
		}
	}

	order := corners(m)
	hasNormals := len(normals) == len(m.Positions) && len(normals) > 0
	for i, tri := range m.Triangles {
		bw.WriteString("f")
		for _, c := range order {
			v := tri[c] + 1
			vt := i*3 + c + 1
			if hasNormals {
				fmt.Fprintf(bw, " %d/%d/%d", v, vt, v)
			} else {
				fmt.Fprintf(bw, " %d/%d", v, vt)
			}
		}
		bw.WriteString("\n")
	}

	return bw.Flush()
}

func writeVec3(w *bufio.Writer, tag string, v r3.Vec) {
	fmt.Fprintf(w, "%s %s %s %s\n", tag, formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
}

func formatFloat(f float64) string {
	if f == 0 {
		f = 0 // no "-0" in output
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
