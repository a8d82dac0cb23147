// Package rendertarget allocates the offscreen framebuffers of the pipeline.
package rendertarget

import (
	"fmt"

	"shadowscene/internal/gpu"
)

// ShadowMapSize is the fixed edge length of the shadow target
const ShadowMapSize = 2048

// DepthKind tells how the depth attachment is stored
type DepthKind int

const (
	DepthNone DepthKind = iota
	// DepthRenderbuffer cannot be sampled
	DepthRenderbuffer
	// DepthTexture can be sampled by a later pass
	DepthTexture
)

// RenderTarget bundles a framebuffer with its attachments
type RenderTarget struct {
	Framebuffer uint32
	Color       []uint32
	Depth       uint32
	DepthKind   DepthKind
	Width       int32
	Height      int32
}

// Sampleable reports whether the depth attachment can be bound as a texture
func (t *RenderTarget) Sampleable() bool {
	return t != nil && t.DepthKind == DepthTexture && t.Depth != 0
}

// DepthTexture returns the depth texture, or 0 when depth is not sampleable
func (t *RenderTarget) DepthTexture() uint32 {
	if !t.Sampleable() {
		return 0
	}
	return t.Depth
}

// ColorTexture returns color attachment i, or 0
func (t *RenderTarget) ColorTexture(i int) uint32 {
	if t == nil || i < 0 || i >= len(t.Color) {
		return 0
	}
	return t.Color[i]
}

// Destroy releases the framebuffer and every attachment
func (t *RenderTarget) Destroy(ctx *gpu.Context) {
	if t == nil {
		return
	}
	ctx.DeleteFramebuffer(t.Framebuffer)
	for _, tex := range t.Color {
		ctx.DeleteTexture(tex)
	}
	switch t.DepthKind {
	case DepthTexture:
		ctx.DeleteTexture(t.Depth)
	case DepthRenderbuffer:
		ctx.DeleteRenderbuffer(t.Depth)
	}
	*t = RenderTarget{}
}

// CreateScreenTarget allocates a width x height target with a linear RGB
// color texture and a depth renderbuffer. The default framebuffer is bound
// when it returns.
func CreateScreenTarget(ctx *gpu.Context, width, height int) (*RenderTarget, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("screen target: invalid size %dx%d", width, height)
	}
	t := &RenderTarget{Width: int32(width), Height: int32(height)}
	err := t.build(ctx, func() error {
		color, err := ctx.CreateTexture(gpu.TextureDesc{
			Width:  t.Width,
			Height: t.Height,
			Format: gpu.FormatRGB8,
			Filter: gpu.FilterLinear,
			Wrap:   gpu.WrapClampToEdge,
		})
		if err != nil {
			return err
		}
		t.Color = append(t.Color, color)
		ctx.AttachColorTexture(0, color)

		depth, err := ctx.CreateDepthRenderbuffer(t.Width, t.Height)
		if err != nil {
			return err
		}
		t.Depth, t.DepthKind = depth, DepthRenderbuffer
		ctx.AttachDepthRenderbuffer(depth)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("screen target %dx%d: %w", width, height, err)
	}
	return t, nil
}

// CreateShadowTarget allocates the ShadowMapSize square depth target. The
// depth texture is sampleable; a companion color texture sits on attachment 0
// for drivers that reject color-less framebuffers, and color writes are
// disabled.
func CreateShadowTarget(ctx *gpu.Context) (*RenderTarget, error) {
	t := &RenderTarget{Width: ShadowMapSize, Height: ShadowMapSize}
	err := t.build(ctx, func() error {
		depth, err := ctx.CreateTexture(gpu.TextureDesc{
			Width:  t.Width,
			Height: t.Height,
			Format: gpu.FormatDepth32F,
			Filter: gpu.FilterNearest,
			Wrap:   gpu.WrapClampToEdge,
		})
		if err != nil {
			return err
		}
		t.Depth, t.DepthKind = depth, DepthTexture
		ctx.AttachDepthTexture(depth)

		color, err := ctx.CreateTexture(gpu.TextureDesc{
			Width:  t.Width,
			Height: t.Height,
			Format: gpu.FormatRGBA8,
			Filter: gpu.FilterNearest,
			Wrap:   gpu.WrapClampToEdge,
		})
		if err != nil {
			return err
		}
		t.Color = append(t.Color, color)
		ctx.AttachColorTexture(0, color)

		ctx.DisableColorBuffers()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("shadow target: %w", err)
	}
	return t, nil
}

// build creates the framebuffer, runs attach with it bound, checks
// completeness and rebinds the default framebuffer. On failure every object
// created so far is released.
func (t *RenderTarget) build(ctx *gpu.Context, attach func() error) error {
	t.Framebuffer = ctx.CreateFramebuffer()
	ctx.BindFramebuffer(t.Framebuffer)

	err := attach()
	if err == nil {
		err = ctx.CheckFramebuffer()
	}
	ctx.BindFramebuffer(0)
	if err != nil {
		t.Destroy(ctx)
		return err
	}
	return nil
}
