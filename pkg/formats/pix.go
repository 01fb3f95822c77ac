package formats

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/pixstrip/pkg/encoding"
)

// PIX format errors.
var (
	ErrMalformedRecord = errors.New("malformed PIX record")
)

// Column layout of a PIX vertex buffer dump row.
const (
	PIXColumnID      = 0
	PIXColumnAux     = 1
	PIXColumnPosX    = 2
	PIXColumnExtra   = 5
	PIXColumnNormalX = 6
	PIXColumnU       = 9
	PIXColumnV       = 10

	// PIXMinColumns is the number of columns every data row must carry.
	PIXMinColumns = 11
)

// PIXVertex is one row of a PIX CSV dump: a single vertex occurrence in
// triangle-strip order.
type PIXVertex struct {
	// ID keys the shared vertex attributes. It may repeat across rows.
	ID       uint32
	Aux      string // column 1, not interpreted
	Position r3.Vec
	Extra    string // column 5, not interpreted
	Normal   r3.Vec
	// UV is the texture coordinate exactly as exported, before any V flip.
	UV [2]float64
	// Row is the 1-based data row number (header excluded).
	Row int
}

// PIX represents a parsed PIX CSV vertex dump.
type PIX struct {
	Header   []string
	Vertices []PIXVertex
}

// Len returns the number of vertex rows.
func (p *PIX) Len() int {
	return len(p.Vertices)
}

// MaxID returns the largest vertex identity in the dump.
// ok is false when there are no rows.
func (p *PIX) MaxID() (max uint32, ok bool) {
	for i, v := range p.Vertices {
		if i == 0 || v.ID > max {
			max = v.ID
		}
	}
	return max, len(p.Vertices) > 0
}

// Bounds returns the axis-aligned bounds of all row positions.
func (p *PIX) Bounds() (min, max r3.Vec) {
	if len(p.Vertices) == 0 {
		return r3.Vec{}, r3.Vec{}
	}

	min = p.Vertices[0].Position
	max = p.Vertices[0].Position
	for _, v := range p.Vertices[1:] {
		min.X, max.X = minmax(min.X, max.X, v.Position.X)
		min.Y, max.Y = minmax(min.Y, max.Y, v.Position.Y)
		min.Z, max.Z = minmax(min.Z, max.Z, v.Position.Z)
	}
	return min, max
}

func minmax(lo, hi, v float64) (float64, float64) {
	if v < lo {
		lo = v
	}
	if v > hi {
		hi = v
	}
	return lo, hi
}

// ParsePIX parses a PIX CSV dump. The first row is a header and is skipped
// without validation. Every following row must have at least PIXMinColumns
// columns. Input with no rows at all yields an empty dump.
func ParsePIX(r io.Reader) (*PIX, error) {
	cr := csv.NewReader(encoding.NewDecodingReader(r))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return &PIX{}, nil
	}
	if err != nil {
		return nil, wrapCSVError(err, 0)
	}

	pix := &PIX{Header: header}
	for row := 1; ; row++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapCSVError(err, row)
		}

		vertex, err := parsePIXVertex(fields)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		vertex.Row = row
		pix.Vertices = append(pix.Vertices, vertex)
	}

	return pix, nil
}

// ParsePIXFile parses a PIX CSV dump from disk.
func ParsePIXFile(path string) (*PIX, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading PIX file: %w", err)
	}
	defer f.Close()
	return ParsePIX(f)
}

// wrapCSVError maps csv syntax errors onto ErrMalformedRecord and leaves I/O
// errors alone.
func wrapCSVError(err error, row int) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Errorf("%w: row %d: %v", ErrMalformedRecord, row, parseErr.Err)
	}
	return fmt.Errorf("reading PIX data: %w", err)
}

// parsePIXVertex parses the fields of a single data row.
func parsePIXVertex(fields []string) (PIXVertex, error) {
	if len(fields) < PIXMinColumns {
		return PIXVertex{}, fmt.Errorf("%w: %d columns, need %d", ErrMalformedRecord, len(fields), PIXMinColumns)
	}

	var v PIXVertex

	id, err := strconv.ParseUint(strings.TrimSpace(fields[PIXColumnID]), 10, 32)
	if err != nil {
		return PIXVertex{}, fmt.Errorf("%w: column %d: %v", ErrMalformedRecord, PIXColumnID, err)
	}
	v.ID = uint32(id)
	v.Aux = fields[PIXColumnAux]
	v.Extra = fields[PIXColumnExtra]

	if v.Position, err = parseVec3(fields, PIXColumnPosX); err != nil {
		return PIXVertex{}, err
	}
	if v.Normal, err = parseVec3(fields, PIXColumnNormalX); err != nil {
		return PIXVertex{}, err
	}
	if v.UV[0], err = parseFloatColumn(fields, PIXColumnU); err != nil {
		return PIXVertex{}, err
	}
	if v.UV[1], err = parseFloatColumn(fields, PIXColumnV); err != nil {
		return PIXVertex{}, err
	}

	return v, nil
}

// parseVec3 parses three consecutive float columns starting at col.
func parseVec3(fields []string, col int) (r3.Vec, error) {
	var xyz [3]float64
	for i := range xyz {
		f, err := parseFloatColumn(fields, col+i)
		if err != nil {
			return r3.Vec{}, err
		}
		xyz[i] = f
	}
	return r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

func parseFloatColumn(fields []string, col int) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(fields[col]), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: column %d: %v", ErrMalformedRecord, col, err)
	}
	return f, nil
}
