package main

import (
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"

	"shadowscene/internal/app"
	"shadowscene/internal/config"
	"shadowscene/internal/gpu"
	"shadowscene/internal/gpu/glbackend"
	"shadowscene/internal/graphics"
	"shadowscene/internal/graphics/renderer"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

type resources struct {
	camera   *graphics.Camera
	target   mgl32.Vec3
	pipeline *renderer.Pipeline
	watcher  *app.ShaderWatcher
}

func (r *resources) dispose() {
	if r.watcher != nil {
		if err := r.watcher.Close(); err != nil {
			log.Printf("shader watcher: %v", err)
		}
	}
	r.pipeline.Dispose()
}

func setupWindow(s config.WindowSettings) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(s.Width, s.Height, s.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	if s.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	return window, nil
}

func setupPipeline(window *glfw.Window, s config.Settings) (*resources, error) {
	dev, err := glbackend.New(s.Render.GLDebug)
	if err != nil {
		return nil, err
	}
	ctx := gpu.NewContext(dev)

	postPass, err := renderer.ParsePostPass(s.Render.PostPass)
	if err != nil {
		return nil, err
	}

	target := mgl32.Vec3(s.Camera.Target)
	camera := graphics.NewCamera(mgl32.Vec3(s.Camera.Position), mgl32.Vec3{0, 1, 0}, 0, 0, s.Camera.FOV)
	camera.LookAt(target)

	seed := s.Scene.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	log.Printf("scene seed %d", seed)

	width, height := window.GetFramebufferSize()
	p, err := renderer.New(ctx, camera, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		renderer.Assets{
			Shaders:      os.DirFS(s.Assets.ShaderDir),
			Textures:     os.DirFS(s.Assets.TextureDir),
			TextureFiles: s.Assets.Textures,
		},
		renderer.Options{
			Shadows:      s.Render.Shadows,
			DebugOverlay: config.GetDebugOverlay(),
			PostPass:     postPass,
			CubeCount:    s.Scene.CubeCount,
			PlaneScale:   s.Render.PlaneScale,
		},
		width, height,
	)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	res := &resources{camera: camera, target: target, pipeline: p}
	if s.Assets.HotReload {
		dir, err := filepath.Abs(s.Assets.ShaderDir)
		if err == nil {
			res.watcher, err = app.WatchShaders(dir)
		}
		if err != nil {
			log.Printf("hot reload disabled: %v", err)
		}
	}
	return res, nil
}
