package main

import (
	"log"

	"shadowscene/internal/app"
	"shadowscene/internal/config"
	"shadowscene/internal/graphics"
	"shadowscene/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera controls, per millisecond
var (
	orbitRate = mgl32.DegToRad(60) / 1000
	zoomRate  = float32(4.0 / 1000)
)

// Camera distance limits
const (
	minDistance = 2
	maxDistance = 40
)

func setupInputHandlers(window *glfw.Window, a *app.App, res *resources) {
	im := input.NewManager()
	im.Attach(window)

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		a.QueueResize(width, height)
	})

	a.SetUpdate(func(delta float64) {
		defer im.PostUpdate()
		dt := float32(delta)

		if im.JustPressed(input.ActionQuit) {
			window.SetShouldClose(true)
		}
		if im.JustPressed(input.ActionToggleOverlay) {
			on := config.ToggleDebugOverlay()
			res.pipeline.SetDebugOverlay(on)
			log.Printf("shadow map overlay: %v", on)
		}
		if im.JustPressed(input.ActionReloadShaders) {
			a.QueueReload(graphics.Programs...)
		}
		if im.IsActive(input.ActionOrbitLeft) {
			res.camera.Orbit(res.target, -orbitRate*dt)
		}
		if im.IsActive(input.ActionOrbitRight) {
			res.camera.Orbit(res.target, orbitRate*dt)
		}
		if im.IsActive(input.ActionZoomIn) {
			zoom(res, -zoomRate*dt)
		}
		if im.IsActive(input.ActionZoomOut) {
			zoom(res, zoomRate*dt)
		}
	})
}

// zoom moves the camera by step along the line to its target
func zoom(res *resources, step float32) {
	offset := res.camera.Pos.Sub(res.target)
	dist := offset.Len() + step
	if dist < minDistance || dist > maxDistance {
		return
	}
	res.camera.Pos = res.target.Add(offset.Normalize().Mul(dist))
	res.camera.LookAt(res.target)
}
