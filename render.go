package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/image/draw"

	"gridview/grid"
)

const overlayAlpha = 128

// valueColor gives every attribute value a stable, distinct colour.
func valueColor(v uint8) color.NRGBA {
	r := uint64(v) + 42
	g := uint64(v) + 69
	b := uint64(v) + 20
	return color.NRGBA{
		R: uint8(r * r % 255),
		G: uint8(g * g * g % 255),
		B: uint8(b * b * b * b % 255),
		A: overlayAlpha,
	}
}

// blend puts src over dst with the fixed overlay opacity. Both colours
// are straight alpha.
func blend(src, dst color.NRGBA) color.NRGBA {
	outA := uint32(overlayAlpha) + (255-overlayAlpha)*uint32(dst.A)/255
	ch := func(s, d uint8) uint8 {
		v := (uint32(s)*uint32(src.A) + uint32(dst.A)*uint32(d)*(255-uint32(src.A))/255) / outA
		if v > 255 {
			v = 255
		}
		return uint8(v)
	}
	return color.NRGBA{
		R: ch(src.R, dst.R),
		G: ch(src.G, dst.G),
		B: ch(src.B, dst.B),
		A: uint8(outA),
	}
}

// toNRGBA copies img into a new NRGBA image anchored at the origin.
// NRGBA sources are copied byte for byte so translucent pixels keep
// their exact values.
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], src.Pix[off:off+4*b.Dx()])
		}
		return dst
	}
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// renderOverlay paints g over a copy of base. Pixels outside base are
// ignored, as are zero values.
func renderOverlay(base *image.NRGBA, g *grid.Grid) (*image.NRGBA, error) {
	out := image.NewNRGBA(base.Bounds())
	copy(out.Pix, base.Pix)

	w := min(g.PixelWidth(), out.Bounds().Dx())
	h := min(g.PixelHeight(), out.Bounds().Dy())
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v, err := g.Value(uint32(x), uint32(y))
			if err != nil {
				return nil, err
			}
			if v == 0 {
				continue
			}
			out.SetNRGBA(x, y, blend(valueColor(v), out.NRGBAAt(x, y)))
		}
	}
	return out, nil
}

// blockImage draws one block, scaled up by scale with nearest neighbour
// sampling. Zero values stay transparent. Scaling runs on the raw
// values so the colours are never resampled.
func blockImage(b *grid.Block, scale int) *image.NRGBA {
	values := image.NewGray(image.Rect(0, 0, grid.BlockSize, grid.BlockSize))
	for y := 0; y < grid.BlockSize; y++ {
		copy(values.Pix[y*values.Stride:], b[y][:])
	}
	if scale > 1 {
		big := image.NewGray(image.Rect(0, 0, grid.BlockSize*scale, grid.BlockSize*scale))
		draw.NearestNeighbor.Scale(big, big.Bounds(), values, values.Bounds(), draw.Src, nil)
		values = big
	}

	img := image.NewNRGBA(values.Bounds())
	for y := 0; y < values.Bounds().Dy(); y++ {
		for x := 0; x < values.Bounds().Dx(); x++ {
			if v := values.GrayAt(x, y).Y; v > 0 {
				img.SetNRGBA(x, y, valueColor(v))
			}
		}
	}
	return img
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeAsset renders every grid over base into dir, followed by the
// original image. A grid that cannot be resolved gets no overlay, but
// its blocks are still dumped and the rest of the asset still renders.
func writeAsset(dir string, base image.Image, grids []*grid.Grid, opts *options) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	canvas := toNRGBA(base)
	for i, g := range grids {
		out, err := renderOverlay(canvas, g)
		if err != nil {
			if opts.blocks {
				logWarn("%s: grid %d: no overlay, blocks still written: %v", dir, i, err)
			} else {
				logWarn("%s: grid %d: no overlay: %v", dir, i, err)
			}
		} else if err := savePNG(filepath.Join(dir, strconv.Itoa(i)+".png"), out); err != nil {
			return err
		}
		if !opts.blocks {
			continue
		}
		for j := range g.Blocks {
			name := "block-" + strconv.Itoa(i) + "-" + strconv.Itoa(j) + ".png"
			if err := savePNG(filepath.Join(dir, name), blockImage(&g.Blocks[j], opts.blockScale)); err != nil {
				return err
			}
		}
	}
	return savePNG(filepath.Join(dir, "original.png"), base)
}
