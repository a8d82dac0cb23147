package rendertarget

import (
	"shadowscene/internal/gpu"
)

// Manager owns the screen and shadow targets
type Manager struct {
	ctx    *gpu.Context
	screen *RenderTarget
	shadow *RenderTarget
}

// NewManager creates the screen target at width x height and the shadow
// target. Failure leaves nothing allocated.
func NewManager(ctx *gpu.Context, width, height int) (*Manager, error) {
	screen, err := CreateScreenTarget(ctx, width, height)
	if err != nil {
		return nil, err
	}
	shadow, err := CreateShadowTarget(ctx)
	if err != nil {
		screen.Destroy(ctx)
		return nil, err
	}
	return &Manager{ctx: ctx, screen: screen, shadow: shadow}, nil
}

func (m *Manager) Screen() *RenderTarget { return m.screen }
func (m *Manager) Shadow() *RenderTarget { return m.shadow }

// Resize replaces the screen target. The old target is destroyed only after
// the new one is complete, so a failed resize keeps rendering possible.
// The shadow target is never touched.
func (m *Manager) Resize(width, height int) error {
	next, err := CreateScreenTarget(m.ctx, width, height)
	if err != nil {
		return err
	}
	if m.ctx.Framebuffer() == m.screen.Framebuffer {
		m.ctx.BindFramebuffer(0)
	}
	m.screen.Destroy(m.ctx)
	m.screen = next
	return nil
}

// Bind makes t the render destination
func (m *Manager) Bind(t *RenderTarget) {
	m.ctx.BindFramebuffer(t.Framebuffer)
}

// Unbind restores the default framebuffer
func (m *Manager) Unbind() {
	m.ctx.BindFramebuffer(0)
}

// Dispose destroys both targets
func (m *Manager) Dispose() {
	m.Unbind()
	m.shadow.Destroy(m.ctx)
	m.screen.Destroy(m.ctx)
}
