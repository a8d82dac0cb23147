// Package blit copies the offscreen color target to the window.
package blit

import (
	"shadowscene/internal/gpu"
	"shadowscene/internal/graphics"
	"shadowscene/internal/graphics/frame"
	"shadowscene/internal/profiling"
)

type Pass struct{}

func New() *Pass { return &Pass{} }

func (p *Pass) Name() string { return "blitPass" }

func (p *Pass) Render(rc frame.RenderContext) {
	defer profiling.Track("renderer.blitPass")()

	src := rc.Output
	if src == nil {
		src = rc.Targets.Screen()
	}
	rc.Targets.Unbind()
	rc.GPU.Viewport(0, 0, int32(rc.State.Width), int32(rc.State.Height))
	rc.GPU.SetDepthTest(false)
	rc.GPU.SetClearColor(0, 0, 0, 1)
	rc.GPU.Clear(gpu.ClearColor)

	shader := rc.Programs.Use(graphics.ProgramScreen)
	shader.SetInt("tex", 0)
	rc.GPU.BindTexture(0, src.ColorTexture(0))
	rc.Geometry.DrawQuad()

	rc.GPU.SetDepthTest(true)
}

var _ frame.Pass = (*Pass)(nil)
