package mesh

import "github.com/Faultbox/pixstrip/pkg/formats"

// DecodeStrip expands records, in strip order, into triangles.
func DecodeStrip(records []formats.PIXVertex, opts DecodeOptions) []Triangle {
	var tris []Triangle
	switch opts.Mode {
	case ModePhased:
		tris = decodePhased(records)
	default:
		tris = decodeSliding(records)
	}

	if opts.Reverse {
		for i := range tris {
			tris[i] = tris[i].Reversed()
		}
	}
	return tris
}

// decodeSliding emits triangle k from records k, k+1, k+2, swapping the first
// two corners on odd k so every triangle keeps the strip's facing.
func decodeSliding(records []formats.PIXVertex) []Triangle {
	if len(records) < 3 {
		return nil
	}

	tris := make([]Triangle, 0, len(records)-2)
	for k := 0; k+2 < len(records); k++ {
		a, b, c := k, k+1, k+2
		if k%2 == 1 {
			a, b = b, a
		}
		tris = append(tris, newTriangle(records, a, b, c))
	}
	return tris
}

// decodePhased runs the four-phase window:
//
//	phase 0, 1: slide the window onto cur and advance
//	phase 2:    emit (a, b, cur), slide, advance
//	phase 3:    emit (b, a, cur), stay on cur
//
// A cycle left unfinished at the end of input emits nothing more.
func decodePhased(records []formats.PIXVertex) []Triangle {
	var tris []Triangle
	a, b := -1, -1
	phase := 0

	for cur := 0; cur < len(records); {
		switch phase {
		case 0, 1:
			a, b = b, cur
			cur++
			phase++
		case 2:
			tris = append(tris, newTriangle(records, a, b, cur))
			a, b = b, cur
			cur++
			phase = 3
		case 3:
			tris = append(tris, newTriangle(records, b, a, cur))
			phase = 0
		}
	}
	return tris
}

// newTriangle builds a triangle from three record indices. The exported V
// coordinate runs top-down, so it is flipped here, once per corner.
func newTriangle(records []formats.PIXVertex, i, j, k int) Triangle {
	return Triangle{Corners: [3]Corner{
		newCorner(records, i),
		newCorner(records, j),
		newCorner(records, k),
	}}
}

func newCorner(records []formats.PIXVertex, i int) Corner {
	r := &records[i]
	return Corner{
		ID:     r.ID,
		UV:     UV{r.UV[0], 1 - r.UV[1]},
		Record: i,
	}
}
