package graphics

import (
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"shadowscene/internal/gpu"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// MaxTextureSize bounds the larger side of uploaded images
const MaxTextureSize = 2048

// DecodeImage decodes any registered format (png, jpeg, bmp, webp) into RGBA.
func DecodeImage(r io.Reader) (*image.RGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	rgba := image.NewRGBA(img.Bounds())
	stddraw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, stddraw.Src)
	return rgba, nil
}

// FitTexture scales img down so neither side exceeds limit, keeping the aspect.
// Images already within bounds are returned unchanged.
func FitTexture(img *image.RGBA, limit int) *image.RGBA {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w <= limit && h <= limit {
		return img
	}
	if w >= h {
		h = h * limit / w
		w = limit
	} else {
		w = w * limit / h
		h = limit
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Checker renders a size x size checkerboard with cells x cells squares.
// Dark squares take their color from palette, cycling along diagonals.
func Checker(size, cells int, light color.RGBA, palette ...color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	if cells < 1 {
		cells = 1
	}
	if len(palette) == 0 {
		palette = []color.RGBA{{0, 0, 0, 255}}
	}
	cell := size / cells
	if cell < 1 {
		cell = 1
	}
	for y := 0; y < size; y++ {
		cy := y / cell
		for x := 0; x < size; x++ {
			cx := x / cell
			c := light
			if (cx+cy)%2 == 1 {
				c = palette[((cx+cy)/2)%len(palette)]
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// UploadRGBA creates a mipmapped, repeating texture from img.
func UploadRGBA(ctx *gpu.Context, img *image.RGBA) (uint32, error) {
	size := img.Rect.Size()
	return ctx.CreateTexture(gpu.TextureDesc{
		Width:   int32(size.X),
		Height:  int32(size.Y),
		Format:  gpu.FormatRGBA8,
		Filter:  gpu.FilterLinear,
		Wrap:    gpu.WrapRepeat,
		Mipmaps: true,
		Pixels:  img.Pix,
	})
}
