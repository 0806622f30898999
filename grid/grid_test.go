package grid

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"gridview/pack"
)

func words(vs ...uint16) []byte {
	b := make([]byte, 2*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint16(b[2*i:], v)
	}
	return b
}

func zeroWords(n int) []byte { return make([]byte, 2*n) }

func patternBlock() []byte {
	b := make([]byte, blockBytes)
	for i := range b {
		b[i] = uint8(i + 1)
	}
	return b
}

// flatRecords describes a w x h grid where every descent ends in block 0.
func flatRecords(w, h uint8, v Variant, block []byte) [][]byte {
	n := 4
	if v == Header {
		n = 8
	}
	info := append([]byte{w, h}, make([]byte, int(w)*int(h))...)
	return [][]byte{info, make([]byte, n), zeroWords(n), zeroWords(n), zeroWords(n), block}
}

func TestDecodeShapes(t *testing.T) {
	recs := flatRecords(2, 3, Segment, append(patternBlock(), patternBlock()...))
	recs[2] = words(1, 2, 3, 0xfffe)
	g, err := Decode(recs, Segment)
	require.NoError(t, err)
	require.Equal(t, uint8(2), g.Info.Width)
	require.Equal(t, uint8(3), g.Info.Height)
	require.Len(t, g.Info.Macro, 6)
	require.Equal(t, []uint16{1, 2, 3, 0xfffe}, g.Level2)
	require.Len(t, g.Blocks, 2)
	require.Equal(t, uint8(1), g.Blocks[1][0][0])
	require.Equal(t, uint8(10), g.Blocks[1][1][1])
	require.Equal(t, uint8(64), g.Blocks[1][7][7])
	require.Equal(t, 256, g.PixelWidth())
	require.Equal(t, 384, g.PixelHeight())
}

func TestDecodeBlockCount(t *testing.T) {
	for _, k := range []int{0, 1, 5} {
		g, err := Decode(flatRecords(1, 1, Segment, make([]byte, 64*k)), Segment)
		require.NoError(t, err)
		require.Len(t, g.Blocks, k)
	}
}

func TestDecodeRejects(t *testing.T) {
	ok := flatRecords(1, 1, Segment, patternBlock())

	cases := map[string][][]byte{
		"five records":  ok[:5],
		"seven records": append(append([][]byte(nil), ok...), nil),
		"short info":    {{1}, ok[1], ok[2], ok[3], ok[4], ok[5]},
		"short macro":   {{2, 2, 0, 0, 0}, ok[1], ok[2], ok[3], ok[4], ok[5]},
		"ragged blocks": {ok[0], ok[1], ok[2], ok[3], ok[4], make([]byte, 64+7)},
	}
	for name, recs := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(recs, Segment)
			require.ErrorIs(t, err, ErrFormat)
		})
	}
}

func TestDecodeDoesNotAliasRecords(t *testing.T) {
	recs := flatRecords(1, 1, Segment, patternBlock())
	g, err := Decode(recs, Segment)
	require.NoError(t, err)
	recs[0][2] = 9
	recs[1][0] = 9
	require.Equal(t, uint8(0), g.Info.Macro[0])
	require.Equal(t, uint8(0), g.Level1[0])
}

func TestFromContainer(t *testing.T) {
	good := pack.Build(flatRecords(1, 1, Segment, patternBlock()))
	five := pack.Build(flatRecords(1, 1, Segment, patternBlock())[:5])
	outer := pack.Build([][]byte{good, five, []byte("junk"), good})

	var skipped []int
	grids, err := FromContainer(outer, Segment, func(i int, err error) {
		require.ErrorIs(t, err, ErrFormat)
		skipped = append(skipped, i)
	})
	require.NoError(t, err)
	require.Len(t, grids, 2)
	require.Equal(t, []int{1, 2}, skipped)

	_, err = FromContainer([]byte{1, 2}, Segment, nil)
	require.ErrorIs(t, err, ErrFormat)
}
