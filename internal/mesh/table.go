package mesh

import (
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/pixstrip/pkg/formats"
)

// ErrIdentityRangeExceeded is returned when the dense tables would be larger
// than the configured ceiling allows.
var ErrIdentityRangeExceeded = errors.New("vertex identity range exceeded")

// AttributeTable maps vertex identities to positions and normals.
// Later writes for an identity replace earlier ones.
type AttributeTable struct {
	entries   map[uint32]Attribute
	max       uint32
	hasMax    bool
	conflicts map[uint32]struct{}
}

// NewAttributeTable returns an empty table.
func NewAttributeTable() *AttributeTable {
	return &AttributeTable{
		entries:   make(map[uint32]Attribute),
		conflicts: make(map[uint32]struct{}),
	}
}

// Record stores the attributes for id. A write that changes a stored value
// is remembered as a conflict but still wins.
func (t *AttributeTable) Record(id uint32, attr Attribute) {
	if prev, ok := t.entries[id]; ok && prev != attr {
		t.conflicts[id] = struct{}{}
	}
	t.entries[id] = attr
	t.Observe(id)
}

// Observe widens the identity range to include id without storing anything.
func (t *AttributeTable) Observe(id uint32) {
	if !t.hasMax || id > t.max {
		t.max = id
		t.hasMax = true
	}
}

// Lookup returns the attributes recorded for id.
func (t *AttributeTable) Lookup(id uint32) (Attribute, bool) {
	attr, ok := t.entries[id]
	return attr, ok
}

// Len returns the number of identities with recorded attributes.
func (t *AttributeTable) Len() int {
	return len(t.entries)
}

// MaxID returns the largest identity recorded or observed.
func (t *AttributeTable) MaxID() (uint32, bool) {
	return t.max, t.hasMax
}

// Conflicts returns, in ascending order, the identities that were recorded
// with more than one distinct value.
func (t *AttributeTable) Conflicts() []uint32 {
	if len(t.conflicts) == 0 {
		return nil
	}
	ids := make([]uint32, 0, len(t.conflicts))
	for id := range t.conflicts {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// BuildTable records the attributes of every triangle corner, in emission
// order, and widens the range to every identity present in records.
func BuildTable(records []formats.PIXVertex, tris []Triangle) *AttributeTable {
	t := NewAttributeTable()
	for _, tri := range tris {
		for _, c := range tri.Corners {
			r := &records[c.Record]
			t.Record(c.ID, Attribute{Position: r.Position, Normal: r.Normal})
		}
	}
	for i := range records {
		t.Observe(records[i].ID)
	}
	return t
}

// Dense lays the table out as arrays indexed 0..MaxID. Identities with no
// recorded attributes get zero position and normal; gaps counts them.
// It fails before allocating if MaxID is above ceiling (zero means
// DefaultMaxIdentity).
func (t *AttributeTable) Dense(ceiling uint32) (positions, normals []r3.Vec, gaps int, err error) {
	if !t.hasMax {
		return nil, nil, 0, nil
	}
	if ceiling == 0 {
		ceiling = DefaultMaxIdentity
	}
	if t.max > ceiling {
		return nil, nil, 0, fmt.Errorf("%w: identity %d, limit %d", ErrIdentityRangeExceeded, t.max, ceiling)
	}

	n := int(t.max) + 1
	positions = make([]r3.Vec, n)
	normals = make([]r3.Vec, n)
	for id, attr := range t.entries {
		positions[id] = attr.Position
		normals[id] = attr.Normal
	}
	return positions, normals, n - len(t.entries), nil
}
