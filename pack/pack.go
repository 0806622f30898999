// Package pack splits a packed archive buffer into its ordered records.
//
// A pack starts with a little-endian uint32 record count followed by
// count+1 uint32 offsets measured from the start of the buffer. Record i
// spans [off[i], off[i+1]). Anything after the final offset is padding.
// Records are frequently packs themselves; callers unpack each level
// explicitly by calling Parse again on the record they need.
package pack

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrFormat is returned for truncated or inconsistent pack data.
var ErrFormat = errors.New("pack: bad format")

const wordSize = 4

// Parse returns the records stored in data. The returned slices alias
// data; the offset table is not part of any record.
func Parse(data []byte) ([][]byte, error) {
	if len(data) < wordSize {
		return nil, fmt.Errorf("%w: short header (%d bytes)", ErrFormat, len(data))
	}
	n := uint64(binary.LittleEndian.Uint32(data[0:4]))
	tableEnd := wordSize + (n+1)*wordSize
	if tableEnd > uint64(len(data)) {
		return nil, fmt.Errorf("%w: %d records need a %d byte table, have %d bytes", ErrFormat, n, tableEnd, len(data))
	}
	table := data[wordSize:tableEnd]

	records := make([][]byte, 0, n)
	prev := uint64(binary.LittleEndian.Uint32(table[0:4]))
	if prev < tableEnd {
		return nil, fmt.Errorf("%w: record 0 starts inside offset table", ErrFormat)
	}
	for i := uint64(0); i < n; i++ {
		table = table[wordSize:]
		next := uint64(binary.LittleEndian.Uint32(table[0:4]))
		if next < prev {
			return nil, fmt.Errorf("%w: record %d has negative length", ErrFormat, i)
		}
		if next > uint64(len(data)) {
			return nil, fmt.Errorf("%w: record %d out of range", ErrFormat, i)
		}
		records = append(records, data[prev:next:next])
		prev = next
	}
	return records, nil
}

// Build assembles a pack from records. Parse(Build(r)) yields r.
func Build(records [][]byte) []byte {
	n := len(records)
	headerLen := wordSize * (n + 2)
	size := headerLen
	for _, r := range records {
		size += len(r)
	}
	buf := make([]byte, headerLen, size)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(n))
	off := uint32(headerLen)
	for i, r := range records {
		binary.LittleEndian.PutUint32(buf[wordSize*(i+1):], off)
		off += uint32(len(r))
	}
	binary.LittleEndian.PutUint32(buf[wordSize*(n+1):], off)
	for _, r := range records {
		buf = append(buf, r...)
	}
	return buf
}
