package graphics_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"shadowscene/internal/gpu"
	"shadowscene/internal/gpu/gputest"
	"shadowscene/internal/graphics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCheckerAlternatesCells(t *testing.T) {
	light := color.RGBA{255, 255, 255, 255}
	dark := color.RGBA{0, 0, 0, 255}
	img := graphics.Checker(8, 4, light, dark)

	assert.Equal(t, light, img.RGBAAt(0, 0))
	assert.Equal(t, dark, img.RGBAAt(2, 0))
	assert.Equal(t, dark, img.RGBAAt(0, 2))
	assert.Equal(t, light, img.RGBAAt(2, 2))
}

func TestFitTextureDownscalesLargeImages(t *testing.T) {
	big := image.NewRGBA(image.Rect(0, 0, 4096, 1024))
	out := graphics.FitTexture(big, 2048)
	assert.Equal(t, 2048, out.Bounds().Dx())
	assert.Equal(t, 512, out.Bounds().Dy())

	small := image.NewRGBA(image.Rect(0, 0, 64, 64))
	assert.Same(t, small, graphics.FitTexture(small, 2048))
}

func TestLoadTextureSetDecodesFiles(t *testing.T) {
	src := fstest.MapFS{
		"gray.png": &fstest.MapFile{Data: encodePNG(t, graphics.Checker(16, 2, color.RGBA{255, 255, 255, 255}))},
	}
	dev := gputest.New()
	ts, err := graphics.LoadTextureSet(gpu.NewContext(dev), src, map[string]string{
		graphics.TextureCheckerGray: "gray.png",
	})
	require.NoError(t, err)

	tex, err := ts.Lookup(graphics.TextureCheckerGray)
	require.NoError(t, err)
	require.Contains(t, dev.Textures, tex)
	assert.Equal(t, int32(16), dev.Textures[tex].Width)
	assert.Equal(t, gpu.WrapRepeat, dev.Textures[tex].Wrap)
}

func TestLoadTextureSetFallsBackToGeneratedChecker(t *testing.T) {
	dev := gputest.New()
	ts, err := graphics.LoadTextureSet(gpu.NewContext(dev), fstest.MapFS{}, map[string]string{
		graphics.TextureCheckerGray:    "checker2k.png",
		graphics.TextureCheckerColored: "checker2kC.png",
	})
	require.NoError(t, err)
	require.NoError(t, ts.Require(graphics.TextureCheckerGray, graphics.TextureCheckerColored))
	assert.Len(t, dev.Textures, 2)
}

func TestLoadTextureSetRejectsCorruptFiles(t *testing.T) {
	src := fstest.MapFS{"bad.png": &fstest.MapFile{Data: []byte("not an image")}}
	_, err := graphics.LoadTextureSet(gpu.NewContext(gputest.New()), src, map[string]string{
		graphics.TextureCheckerGray: "bad.png",
	})
	require.Error(t, err)
}

func TestLoadTextureSetMissingWithoutFallback(t *testing.T) {
	_, err := graphics.LoadTextureSet(gpu.NewContext(gputest.New()), fstest.MapFS{}, map[string]string{
		"bricks": "bricks.png",
	})
	require.Error(t, err)
}

func TestTextureSetLookupUnknown(t *testing.T) {
	ts := graphics.NewTextureSet(gpu.NewContext(gputest.New()))
	_, err := ts.Lookup("nope")
	assert.ErrorIs(t, err, graphics.ErrUnknownTexture)
	assert.Zero(t, ts.Handle("nope"))
}

func TestTextureSetDispose(t *testing.T) {
	dev := gputest.New()
	ts := graphics.NewTextureSet(gpu.NewContext(dev))
	require.NoError(t, ts.Add("a", graphics.Checker(4, 2, color.RGBA{A: 255})))
	require.NoError(t, ts.Add("a", graphics.Checker(4, 2, color.RGBA{A: 255})))
	assert.Len(t, dev.Textures, 1, "replacing a name deletes the old texture")

	ts.Dispose()
	assert.Empty(t, dev.Textures)
}

func TestGeometryStoreDrawCounts(t *testing.T) {
	dev := gputest.New()
	ctx := gpu.NewContext(dev)
	g := graphics.NewGeometryStore(ctx)

	assert.Len(t, graphics.CubeVertices, graphics.CubeVertexCount*8)
	assert.Len(t, graphics.PlaneVertices, graphics.PlaneVertexCount*8)
	assert.Len(t, graphics.QuadVertices, graphics.QuadVertexCount*4)

	g.DrawCube()
	g.DrawPlane()
	g.DrawQuad()
	require.Len(t, dev.Draws, 3)
	assert.Equal(t, int32(36), dev.Draws[0].Count)
	assert.Equal(t, int32(6), dev.Draws[1].Count)
	assert.Equal(t, int32(6), dev.Draws[2].Count)
	assert.NotEqual(t, dev.Draws[0].VertexArray, dev.Draws[1].VertexArray)

	g.Dispose()
	assert.Empty(t, dev.VertexArrays)
}
