package grid

import (
	"fmt"

	"gridview/pack"
)

// FromContainer unpacks a top-level container of grid packs and decodes
// every well-formed one, in container order. Entries that are not a six
// record pack or fail to decode are passed to skip, when non-nil, and
// left out of the result. Only a malformed outer container is an error.
func FromContainer(data []byte, v Variant, skip func(index int, err error)) ([]*Grid, error) {
	assets, err := pack.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("grid: outer container: %w", err)
	}
	grids := make([]*Grid, 0, len(assets))
	for i, asset := range assets {
		records, err := pack.Parse(asset)
		if err == nil {
			var g *Grid
			if g, err = Decode(records, v); err == nil {
				grids = append(grids, g)
				continue
			}
		}
		if skip != nil {
			skip(i, err)
		}
	}
	return grids, nil
}
