package renderer

import (
	"fmt"
	"io/fs"
	"log"

	"shadowscene/internal/gpu"
	"shadowscene/internal/graphics"
	"shadowscene/internal/graphics/frame"
	"shadowscene/internal/graphics/renderables/blit"
	"shadowscene/internal/graphics/renderables/debugview"
	"shadowscene/internal/graphics/renderables/lit"
	"shadowscene/internal/graphics/renderables/shadowmap"
	"shadowscene/internal/graphics/rendertarget"
	"shadowscene/internal/profiling"
	"shadowscene/internal/scene"
)

// Options choose the pipeline variant
type Options struct {
	Shadows      bool
	DebugOverlay bool
	PostPass     PostPass
	CubeCount    int
	PlaneScale   float32
}

// Assets locate shader sources and textures
type Assets struct {
	Shaders  fs.FS
	Textures fs.FS
	// TextureFiles maps texture names to paths inside Textures
	TextureFiles map[string]string
}

// Pipeline orchestrates the passes of one frame
type Pipeline struct {
	gpu      *gpu.Context
	camera   graphics.CameraSource
	programs *graphics.ProgramSet
	textures *graphics.TextureSet
	geometry *graphics.GeometryStore
	targets  *rendertarget.Manager
	scene    *scene.Scene

	shadow frame.Pass
	lit    frame.Pass
	blit   frame.Pass
	debug  frame.Pass

	opts   Options
	width  int
	height int
	last   frame.State
}

// New loads every GPU resource and builds the scene. Any failure is fatal
// and leaves nothing allocated.
func New(ctx *gpu.Context, cam graphics.CameraSource, rng scene.Rand, assets Assets, opts Options, width, height int) (*Pipeline, error) {
	p := &Pipeline{
		gpu:    ctx,
		camera: cam,
		opts:   opts,
		width:  width,
		height: height,
		shadow: shadowmap.New(),
		lit:    lit.New(opts.Shadows),
		blit:   blit.New(),
		debug:  debugview.New(),
	}

	var err error
	if p.programs, err = graphics.LoadProgramSet(ctx, assets.Shaders); err != nil {
		return nil, err
	}
	if p.textures, err = graphics.LoadTextureSet(ctx, assets.Textures, assets.TextureFiles); err != nil {
		p.Dispose()
		return nil, err
	}
	if err = p.textures.Require(scene.TextureGray, scene.TextureColored); err != nil {
		p.Dispose()
		return nil, err
	}
	p.geometry = graphics.NewGeometryStore(ctx)
	if p.targets, err = rendertarget.NewManager(ctx, width, height); err != nil {
		p.Dispose()
		return nil, err
	}
	p.scene = scene.New(rng, scene.Options{CubeCount: opts.CubeCount, PlaneScale: opts.PlaneScale})

	log.Printf("pipeline ready: %dx%d, %d objects, shadows=%v, post=%s",
		width, height, p.scene.Count(), opts.Shadows, opts.PostPass)
	return p, nil
}

// Passes lists the passes OnFrame runs with the current options, in order
func (p *Pipeline) Passes() []frame.Pass {
	passes := make([]frame.Pass, 0, 4)
	if p.opts.Shadows {
		passes = append(passes, p.shadow)
	}
	passes = append(passes, p.lit)
	if p.opts.PostPass == PostPassBlit {
		passes = append(passes, p.blit)
	}
	if p.opts.DebugOverlay && p.opts.Shadows {
		passes = append(passes, p.debug)
	}
	return passes
}

// OnFrame recomputes the frame matrices and runs every pass
func (p *Pipeline) OnFrame(timestamp, delta float64) {
	defer profiling.Track("renderer.OnFrame")()

	p.last = frame.Compute(p.camera, timestamp, p.width, p.height)
	rc := frame.RenderContext{
		GPU:      p.gpu,
		State:    p.last,
		Scene:    p.scene,
		Programs: p.programs,
		Geometry: p.geometry,
		Textures: p.textures,
		Targets:  p.targets,
	}
	if p.opts.PostPass == PostPassBlit {
		rc.Output = p.targets.Screen()
	}
	for _, pass := range p.Passes() {
		pass.Render(rc)
	}
}

// OnResize reallocates the screen target. Non-positive sizes (a minimized
// window) are ignored and the previous size is kept.
func (p *Pipeline) OnResize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	if width == p.width && height == p.height {
		return nil
	}
	if err := p.targets.Resize(width, height); err != nil {
		return fmt.Errorf("resize to %dx%d: %w", width, height, err)
	}
	p.width, p.height = width, height
	return nil
}

// SetDebugOverlay toggles the shadow map preview
func (p *Pipeline) SetDebugOverlay(on bool) { p.opts.DebugOverlay = on }

func (p *Pipeline) Size() (int, int) { return p.width, p.height }

// LastFrame returns the state used by the most recent OnFrame
func (p *Pipeline) LastFrame() frame.State { return p.last }

func (p *Pipeline) Programs() *graphics.ProgramSet { return p.programs }
func (p *Pipeline) Targets() *rendertarget.Manager { return p.targets }
func (p *Pipeline) Scene() *scene.Scene { return p.scene }

// Dispose releases resources in reverse creation order
func (p *Pipeline) Dispose() {
	if p.targets != nil {
		p.targets.Dispose()
		p.targets = nil
	}
	if p.geometry != nil {
		p.geometry.Dispose()
		p.geometry = nil
	}
	if p.textures != nil {
		p.textures.Dispose()
		p.textures = nil
	}
	if p.programs != nil {
		p.programs.Dispose()
		p.programs = nil
	}
}

var _ FrameDriver = (*Pipeline)(nil)
