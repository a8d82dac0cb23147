package frame

import (
	"shadowscene/internal/gpu"
	"shadowscene/internal/graphics"
	"shadowscene/internal/graphics/rendertarget"
	"shadowscene/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// Texture units of the lit pass. They must differ.
const (
	DiffuseUnit uint32 = 0
	ShadowUnit  uint32 = 1
)

// RenderContext provides shared context for all passes
type RenderContext struct {
	GPU      *gpu.Context
	State    State
	Scene    *scene.Scene
	Programs *graphics.ProgramSet
	Geometry *graphics.GeometryStore
	Textures *graphics.TextureSet
	Targets  *rendertarget.Manager
	// Output is where the lit pass draws; nil means the window
	Output *rendertarget.RenderTarget
}

// Pass is one stage of the frame
type Pass interface {
	Name() string
	Render(rc RenderContext)
}

// Submitter feeds scene draws through shader. With Diffuse set it binds each
// object's texture on DiffuseUnit before the draw.
type Submitter struct {
	GPU      *gpu.Context
	Shader   *graphics.Shader
	Geometry *graphics.GeometryStore
	Textures *graphics.TextureSet
	Diffuse  bool
}

// NewSubmitter returns a submitter drawing with shader
func (rc RenderContext) NewSubmitter(shader *graphics.Shader, diffuse bool) *Submitter {
	return &Submitter{
		GPU:      rc.GPU,
		Shader:   shader,
		Geometry: rc.Geometry,
		Textures: rc.Textures,
		Diffuse:  diffuse,
	}
}

func (s *Submitter) SetModel(m mgl32.Mat4) {
	s.Shader.SetMat4("model", m)
}

func (s *Submitter) BindDiffuse(texture string) {
	if !s.Diffuse {
		return
	}
	s.GPU.BindTexture(DiffuseUnit, s.Textures.Handle(texture))
}

func (s *Submitter) DrawCube() { s.Geometry.DrawCube() }
func (s *Submitter) DrawPlane() { s.Geometry.DrawPlane() }

var _ scene.Submitter = (*Submitter)(nil)
