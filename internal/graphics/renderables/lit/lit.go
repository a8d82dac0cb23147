// Package lit draws the sky and the shaded scene from the camera.
package lit

import (
	"shadowscene/internal/gpu"
	"shadowscene/internal/graphics"
	"shadowscene/internal/graphics/frame"
	"shadowscene/internal/profiling"
)

// Pass draws into rc.Output, or the window when Output is nil
type Pass struct {
	// Shadows selects the PCF shadow program; off uses the plain diffuse one
	Shadows bool
}

func New(shadows bool) *Pass { return &Pass{Shadows: shadows} }

func (p *Pass) Name() string { return "litPass" }

func (p *Pass) Render(rc frame.RenderContext) {
	defer profiling.Track("renderer.litPass")()

	if rc.Output != nil {
		rc.Targets.Bind(rc.Output)
	} else {
		rc.Targets.Unbind()
	}
	rc.GPU.Viewport(0, 0, int32(rc.State.Width), int32(rc.State.Height))
	rc.GPU.SetDepthTest(true)
	rc.GPU.SetDepthFunc(gpu.DepthLEqual)
	rc.GPU.SetDepthMask(true)
	rc.GPU.SetClearColor(0, 0, 0, 1)
	rc.GPU.Clear(gpu.ClearColor | gpu.ClearDepth)

	// Sky sits at the far plane and must not occlude anything.
	rc.GPU.SetDepthMask(false)
	sky := rc.Programs.Use(graphics.ProgramSky)
	sky.SetMat4("proj", rc.State.Proj)
	sky.SetMat4("view", rc.State.SkyView)
	rc.Geometry.DrawCube()
	rc.GPU.SetDepthMask(true)

	var shader *graphics.Shader
	if p.Shadows {
		shader = rc.Programs.Use(graphics.ProgramShadow)
		shader.SetMat4("lightSpace", rc.State.LightSpace)
		shader.SetVec3("lightDir", rc.State.LightDir)
		shader.SetVec3("viewPos", rc.State.CameraPos)
		shader.SetInt("shadowMap", int32(frame.ShadowUnit))
		rc.GPU.BindTexture(frame.ShadowUnit, rc.Targets.Shadow().DepthTexture())
	} else {
		shader = rc.Programs.Use(graphics.ProgramScene)
	}
	shader.SetMat4("proj", rc.State.Proj)
	shader.SetMat4("view", rc.State.View)
	shader.SetInt("tex", int32(frame.DiffuseUnit))

	rc.Scene.Draw(rc.NewSubmitter(shader, true), rc.State.Time)
}

var _ frame.Pass = (*Pass)(nil)
