// Package debugview shows the raw shadow map in the bottom-left corner.
package debugview

import (
	"shadowscene/internal/graphics"
	"shadowscene/internal/graphics/frame"
	"shadowscene/internal/profiling"
)

// Fraction of the canvas width used for the square overlay
const Fraction = 0.2

type Pass struct{}

func New() *Pass { return &Pass{} }

func (p *Pass) Name() string { return "debugPass" }

// Side is the overlay edge length for a canvas width
func Side(width int) int32 {
	return int32(float32(width) * Fraction)
}

func (p *Pass) Render(rc frame.RenderContext) {
	defer profiling.Track("renderer.debugPass")()

	side := Side(rc.State.Width)
	if side <= 0 {
		return
	}
	rc.Targets.Unbind()
	rc.GPU.Viewport(0, 0, side, side)
	rc.GPU.SetDepthTest(false)

	shader := rc.Programs.Use(graphics.ProgramDebug)
	shader.SetInt("tex", 0)
	rc.GPU.BindTexture(0, rc.Targets.Shadow().DepthTexture())
	rc.Geometry.DrawQuad()

	rc.GPU.BindTexture(0, 0)
	rc.GPU.SetDepthTest(true)
	rc.GPU.Viewport(0, 0, int32(rc.State.Width), int32(rc.State.Height))
}

var _ frame.Pass = (*Pass)(nil)
