package main

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/zstd"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"gridview/grid"
)

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// readContainer loads a container file, inflating it first when it was
// stored as a zstd frame.
func readContainer(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(data, zstdMagic) {
		return data, nil
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	plain, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: zstd: %w", path, err)
	}
	logDebug("%s: inflated %s to %s", path, humanize.Bytes(uint64(len(data))), humanize.Bytes(uint64(len(plain))))
	return plain, nil
}

// loadGrids reads and decodes every grid stored in a container file.
func loadGrids(path string, v grid.Variant) ([]*grid.Grid, error) {
	data, err := readContainer(path)
	if err != nil {
		return nil, err
	}
	grids, err := grid.FromContainer(data, v, func(i int, err error) {
		logDebug("%s: skipping entry %d: %v", path, i, err)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logDebug("%s: %s, %d grids", path, humanize.Bytes(uint64(len(data))), len(grids))
	return grids, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}
