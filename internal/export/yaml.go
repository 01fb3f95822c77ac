package export

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/pixstrip/internal/mesh"
)

// yamlMesh is the debug dump layout. Coordinates are written untransformed,
// with the transform alongside, exactly as the mesh carries them.
type yamlMesh struct {
	Stats     yamlStats       `yaml:"stats"`
	Transform [4][4]float64   `yaml:"transform"`
	Positions [][3]float64    `yaml:"positions"`
	Normals   [][3]float64    `yaml:"normals"`
	Triangles [][3]uint32     `yaml:"triangles"`
	UVs       [][3][2]float64 `yaml:"uvs"`
}

type yamlStats struct {
	Records   int      `yaml:"records"`
	Triangles int      `yaml:"triangles"`
	Vertices  int      `yaml:"vertices"`
	Gaps      int      `yaml:"gaps"`
	Conflicts []uint32 `yaml:"conflicts,omitempty,flow"`
}

// WriteYAML dumps m as YAML.
func WriteYAML(w io.Writer, m *mesh.Mesh) error {
	doc := yamlMesh{
		Stats: yamlStats{
			Records:   m.Stats.Records,
			Triangles: m.Stats.Triangles,
			Vertices:  m.Stats.Vertices,
			Gaps:      m.Stats.Gaps,
			Conflicts: m.Stats.Conflicts,
		},
		Transform: m.Transform.Rows(),
		Positions: make([][3]float64, len(m.Positions)),
		Normals:   make([][3]float64, len(m.Normals)),
		Triangles: m.Triangles,
		UVs:       make([][3][2]float64, len(m.UVs)),
	}
	for i, p := range m.Positions {
		doc.Positions[i] = [3]float64{p.X, p.Y, p.Z}
	}
	for i, n := range m.Normals {
		doc.Normals[i] = [3]float64{n.X, n.Y, n.Z}
	}
	for i, uvs := range m.UVs {
		for j, uv := range uvs {
			doc.UVs[i][j] = [2]float64(uv)
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
