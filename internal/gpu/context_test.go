package gpu_test

import (
	"testing"

	"shadowscene/internal/gpu"
	"shadowscene/internal/gpu/gputest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextTracksBindings(t *testing.T) {
	dev := gputest.New()
	ctx := gpu.NewContext(dev)

	tex, err := ctx.CreateTexture(gpu.TextureDesc{Width: 4, Height: 4})
	require.NoError(t, err)
	other, err := ctx.CreateTexture(gpu.TextureDesc{Width: 4, Height: 4})
	require.NoError(t, err)

	ctx.BindTexture(0, tex)
	ctx.BindTexture(1, other)
	assert.Equal(t, uint32(1), ctx.ActiveUnit())
	assert.Equal(t, tex, ctx.Texture(0))
	assert.Equal(t, other, ctx.Texture(1))

	// Binding always reselects the unit, even when it is already active.
	dev.Reset()
	ctx.BindTexture(1, tex)
	assert.Equal(t, []string{"ActiveTexture", "BindTexture2D"}, dev.Ops())

	ctx.DeleteTexture(tex)
	assert.Zero(t, ctx.Texture(0))
	assert.Zero(t, ctx.Texture(1))
}

func TestContextDeleteBoundObjectsRevertToZero(t *testing.T) {
	dev := gputest.New()
	ctx := gpu.NewContext(dev)

	fb := ctx.CreateFramebuffer()
	ctx.BindFramebuffer(fb)
	require.Equal(t, fb, ctx.Framebuffer())
	ctx.DeleteFramebuffer(fb)
	assert.Zero(t, ctx.Framebuffer())

	prog, err := ctx.CompileProgram("void main(){}", "void main(){}")
	require.NoError(t, err)
	ctx.UseProgram(prog)
	ctx.DeleteProgram(prog)
	assert.Zero(t, ctx.Program())
}

func TestContextCreateTextureClearsActiveUnit(t *testing.T) {
	ctx := gpu.NewContext(gputest.New())
	tex, err := ctx.CreateTexture(gpu.TextureDesc{Width: 2, Height: 2})
	require.NoError(t, err)
	ctx.BindTexture(0, tex)

	_, err = ctx.CreateTexture(gpu.TextureDesc{Width: 2, Height: 2})
	require.NoError(t, err)
	assert.Zero(t, ctx.Texture(0))
}

func TestContextDepthState(t *testing.T) {
	ctx := gpu.NewContext(gputest.New())
	assert.True(t, ctx.DepthWrite())
	assert.False(t, ctx.DepthTest())

	ctx.SetDepthTest(true)
	ctx.SetDepthMask(false)
	ctx.Viewport(0, 0, 640, 480)
	assert.True(t, ctx.DepthTest())
	assert.False(t, ctx.DepthWrite())
	assert.Equal(t, gpu.Viewport{0, 0, 640, 480}, ctx.CurrentViewport())
}

func TestBindTextureOutOfRangePanics(t *testing.T) {
	ctx := gpu.NewContext(gputest.New())
	assert.Panics(t, func() { ctx.BindTexture(gpu.MaxTextureUnits, 1) })
}
