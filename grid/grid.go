// Package grid decodes terrain attribute grids and resolves them to
// per-pixel values.
//
// A grid covers an image with 128x128 pixel macro cells. Each macro cell
// names a shape, and the shape roots a four level descent (64, 32, 16
// and 8 pixel steps) that ends in an 8x8 block of attribute bytes.
package grid

import (
	"encoding/binary"
	"errors"
	"fmt"

	"gridview/pack"
)

const (
	MacroSize  = 128
	BlockSize  = 8
	blockBytes = BlockSize * BlockSize

	// RecordCount is the number of records in a grid pack.
	RecordCount = 6
)

var (
	// ErrFormat is pack.ErrFormat.
	ErrFormat = pack.ErrFormat

	ErrIndexOutOfRange = errors.New("grid: index out of range")
)

// Info is the macro cell table heading a grid.
type Info struct {
	Width  uint8
	Height uint8
	// Macro holds one shape id per macro cell, row major.
	Macro []byte
}

// Block is an 8x8 tile of attribute values indexed [row][column].
type Block [BlockSize][BlockSize]uint8

// Grid is a decoded attribute grid. It is never modified after Decode
// and may be shared between goroutines.
type Grid struct {
	Info    Info
	Level1  []uint8
	Level2  []uint16
	Level3  []uint16
	Leaves  []uint16
	Blocks  []Block
	Variant Variant
}

// PixelWidth is the width in pixels covered by the grid.
func (g *Grid) PixelWidth() int { return int(g.Info.Width) * MacroSize }

// PixelHeight is the height in pixels covered by the grid.
func (g *Grid) PixelHeight() int { return int(g.Info.Height) * MacroSize }

// Decode builds a grid from the six records of a grid pack: info,
// three index levels, leaf index and block data.
func Decode(records [][]byte, v Variant) (*Grid, error) {
	if len(records) != RecordCount {
		return nil, fmt.Errorf("%w: grid has %d records, want %d", ErrFormat, len(records), RecordCount)
	}
	if !v.valid() {
		return nil, fmt.Errorf("grid: unknown variant %s", v)
	}

	info := records[0]
	if len(info) < 2 {
		return nil, fmt.Errorf("%w: info record is %d bytes", ErrFormat, len(info))
	}
	w, h := info[0], info[1]
	cells := int(w) * int(h)
	if len(info) < 2+cells {
		return nil, fmt.Errorf("%w: info record holds %d cells, need %dx%d", ErrFormat, len(info)-2, w, h)
	}

	blocks := records[5]
	if len(blocks)%blockBytes != 0 {
		return nil, fmt.Errorf("%w: block data is %d bytes, not a multiple of %d", ErrFormat, len(blocks), blockBytes)
	}

	g := &Grid{
		Info: Info{
			Width:  w,
			Height: h,
			Macro:  append([]byte(nil), info[2:2+cells]...),
		},
		Level1:  append([]uint8(nil), records[1]...),
		Level2:  toUint16s(records[2]),
		Level3:  toUint16s(records[3]),
		Leaves:  toUint16s(records[4]),
		Blocks:  make([]Block, len(blocks)/blockBytes),
		Variant: v,
	}
	for i := range g.Blocks {
		chunk := blocks[i*blockBytes : (i+1)*blockBytes]
		for row := 0; row < BlockSize; row++ {
			copy(g.Blocks[i][row][:], chunk[row*BlockSize:(row+1)*BlockSize])
		}
	}
	return g, nil
}

// toUint16s reads little-endian words; an odd trailing byte is dropped.
func toUint16s(b []byte) []uint16 {
	out := make([]uint16, len(b)/2)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(b[2*i:])
	}
	return out
}
