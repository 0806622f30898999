package grid

import (
	"fmt"
	"strings"
)

// Variant selects how index levels address their children. The data
// carries no tag for it, so callers choose.
type Variant uint8

const (
	// Segment nodes are two entries wide per bit.
	Segment Variant = iota
	// Header nodes use a stride of two entries per bit.
	Header
)

func (v Variant) valid() bool { return v == Segment || v == Header }

// unit is the index step taken when a coordinate bit is set.
func (v Variant) unit() uint {
	if v == Header {
		return 2
	}
	return 1
}

func (v Variant) String() string {
	switch v {
	case Segment:
		return "segment"
	case Header:
		return "header"
	}
	return fmt.Sprintf("Variant(%d)", uint8(v))
}

// ParseVariant maps a variant name to its value.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(s) {
	case "segment":
		return Segment, nil
	case "header":
		return Header, nil
	}
	return 0, fmt.Errorf("grid: unknown variant %q", s)
}

// fold refines a node base into a child index using one bit of each
// coordinate.
func (v Variant) fold(base uint, x, y uint32, bit uint32) uint {
	u := v.unit()
	k := base * 2
	if y&bit != 0 {
		k += u
	}
	k *= 2
	if x&bit != 0 {
		k += u
	}
	return k
}

// Value returns the attribute value at pixel (x, y). Coordinates outside
// the grid and lookups past the end of any table report
// ErrIndexOutOfRange.
func (g *Grid) Value(x, y uint32) (uint8, error) {
	if uint64(x) >= uint64(g.PixelWidth()) || uint64(y) >= uint64(g.PixelHeight()) {
		return 0, fmt.Errorf("%w: pixel (%d,%d) outside %dx%d grid", ErrIndexOutOfRange, x, y, g.PixelWidth(), g.PixelHeight())
	}

	cell := uint(y>>7)*uint(g.Info.Width) + uint(x>>7)
	if cell >= uint(len(g.Info.Macro)) {
		return 0, outOfRange("macro", cell, len(g.Info.Macro))
	}

	k := g.Variant.fold(uint(g.Info.Macro[cell]), x, y, 64)
	if k >= uint(len(g.Level1)) {
		return 0, outOfRange("level 1", k, len(g.Level1))
	}

	k = g.Variant.fold(uint(g.Level1[k]), x, y, 32)
	if k >= uint(len(g.Level2)) {
		return 0, outOfRange("level 2", k, len(g.Level2))
	}

	k = g.Variant.fold(uint(g.Level2[k]), x, y, 16)
	if k >= uint(len(g.Level3)) {
		return 0, outOfRange("level 3", k, len(g.Level3))
	}

	k = g.Variant.fold(uint(g.Level3[k]), x, y, 8)
	if k >= uint(len(g.Leaves)) {
		return 0, outOfRange("leaf", k, len(g.Leaves))
	}

	id := uint(g.Leaves[k])
	if id >= uint(len(g.Blocks)) {
		return 0, outOfRange("block", id, len(g.Blocks))
	}
	return g.Blocks[id][y&7][x&7], nil
}

func outOfRange(table string, i uint, n int) error {
	return fmt.Errorf("%w: %s index %d, table has %d entries", ErrIndexOutOfRange, table, i, n)
}
