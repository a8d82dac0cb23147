package graphics

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"log"
	"maps"
	"slices"

	"shadowscene/internal/gpu"
)

// Texture names looked up by the scene
const (
	TextureCheckerGray    = "checker_gray"
	TextureCheckerColored = "checker_colored"
)

// ErrUnknownTexture is returned for names the set does not hold
var ErrUnknownTexture = errors.New("unknown texture")

const fallbackSize = 512

// Fallbacks generates the built-in images used when a texture file is absent
var Fallbacks = map[string]func() *image.RGBA{
	TextureCheckerGray: func() *image.RGBA {
		return Checker(fallbackSize, 16, color.RGBA{200, 200, 200, 255}, color.RGBA{120, 120, 120, 255})
	},
	TextureCheckerColored: func() *image.RGBA {
		return Checker(fallbackSize, 16, color.RGBA{235, 235, 235, 255},
			color.RGBA{214, 78, 69, 255},
			color.RGBA{76, 163, 84, 255},
			color.RGBA{66, 118, 201, 255},
			color.RGBA{232, 184, 58, 255},
		)
	},
}

// TextureSet holds named diffuse textures
type TextureSet struct {
	ctx      *gpu.Context
	textures map[string]uint32
	order    []string
}

// NewTextureSet returns an empty set
func NewTextureSet(ctx *gpu.Context) *TextureSet {
	return &TextureSet{ctx: ctx, textures: make(map[string]uint32)}
}

// LoadTextureSet loads every name -> path pair from src. A missing file falls
// back to the generated image registered in Fallbacks for that name; any
// other failure is returned.
func LoadTextureSet(ctx *gpu.Context, src fs.FS, files map[string]string) (*TextureSet, error) {
	ts := NewTextureSet(ctx)
	for _, name := range slices.Sorted(maps.Keys(files)) {
		img, err := readImage(src, files[name])
		if errors.Is(err, fs.ErrNotExist) {
			gen, ok := Fallbacks[name]
			if !ok {
				ts.Dispose()
				return nil, fmt.Errorf("texture %q: %w", name, err)
			}
			log.Printf("texture %q: %s not found, using generated checker", name, files[name])
			img = gen()
		} else if err != nil {
			ts.Dispose()
			return nil, fmt.Errorf("texture %q: %w", name, err)
		}
		if err := ts.Add(name, img); err != nil {
			ts.Dispose()
			return nil, err
		}
	}
	return ts, nil
}

func readImage(src fs.FS, path string) (*image.RGBA, error) {
	if src == nil || path == "" {
		return nil, fs.ErrNotExist
	}
	f, err := src.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := DecodeImage(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return FitTexture(img, MaxTextureSize), nil
}

// Add uploads img under name, replacing any texture already stored there
func (ts *TextureSet) Add(name string, img *image.RGBA) error {
	tex, err := UploadRGBA(ts.ctx, img)
	if err != nil {
		return fmt.Errorf("texture %q: %w", name, err)
	}
	if old, ok := ts.textures[name]; ok {
		ts.ctx.DeleteTexture(old)
	} else {
		ts.order = append(ts.order, name)
	}
	ts.textures[name] = tex
	return nil
}

// Lookup returns the texture handle stored under name
func (ts *TextureSet) Lookup(name string) (uint32, error) {
	tex, ok := ts.textures[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTexture, name)
	}
	return tex, nil
}

// Require checks that every name is present
func (ts *TextureSet) Require(names ...string) error {
	for _, name := range names {
		if _, err := ts.Lookup(name); err != nil {
			return err
		}
	}
	return nil
}

// Handle returns the texture stored under name, or 0
func (ts *TextureSet) Handle(name string) uint32 {
	return ts.textures[name]
}

// Dispose deletes all textures
func (ts *TextureSet) Dispose() {
	for i := len(ts.order) - 1; i >= 0; i-- {
		ts.ctx.DeleteTexture(ts.textures[ts.order[i]])
	}
	ts.textures = make(map[string]uint32)
	ts.order = nil
}
