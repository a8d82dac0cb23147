// Package shadowmap renders scene depth from the light into the shadow target.
package shadowmap

import (
	"shadowscene/internal/gpu"
	"shadowscene/internal/graphics"
	"shadowscene/internal/graphics/frame"
	"shadowscene/internal/profiling"
)

// Pass fills the shadow map
type Pass struct{}

func New() *Pass { return &Pass{} }

func (p *Pass) Name() string { return "shadowPass" }

func (p *Pass) Render(rc frame.RenderContext) {
	defer profiling.Track("renderer.shadowPass")()

	target := rc.Targets.Shadow()
	depth := target.DepthTexture()

	// Never write into a texture that is still bound for sampling.
	for _, unit := range []uint32{frame.DiffuseUnit, frame.ShadowUnit} {
		if rc.GPU.Texture(unit) == depth {
			rc.GPU.BindTexture(unit, 0)
		}
	}

	rc.Targets.Bind(target)
	rc.GPU.Viewport(0, 0, target.Width, target.Height)
	rc.GPU.SetDepthTest(true)
	rc.GPU.SetDepthFunc(gpu.DepthLess)
	rc.GPU.SetDepthMask(true)
	rc.GPU.SetClearColor(1, 1, 1, 1)
	rc.GPU.Clear(gpu.ClearColor | gpu.ClearDepth)

	shader := rc.Programs.Use(graphics.ProgramDepth)
	shader.SetMat4("lightSpace", rc.State.LightSpace)
	rc.Scene.Draw(rc.NewSubmitter(shader, false), rc.State.Time)

	rc.Targets.Unbind()
}

var _ frame.Pass = (*Pass)(nil)
