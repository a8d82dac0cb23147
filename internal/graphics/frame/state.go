// Package frame holds the per-frame matrices and the context shared by the
// render passes.
package frame

import (
	"math"

	"shadowscene/internal/graphics"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera projection
const (
	NearPlane = 0.1
	FarPlane  = 100.0
)

// Light orbit and light frustum
const (
	LightOrbitRadius = 5
	LightHeight      = 4
	// LightPeriod is the time, in timestamp units, per radian of orbit
	LightPeriod = 2500.0
	LightExtent = 10
	LightNear   = 1
	LightFar    = 20
)

// State is recomputed from scratch every frame
type State struct {
	Time       float64
	Width      int
	Height     int
	View       mgl32.Mat4
	SkyView    mgl32.Mat4
	Proj       mgl32.Mat4
	CameraPos  mgl32.Vec3
	LightPos   mgl32.Vec3
	LightDir   mgl32.Vec3
	LightView  mgl32.Mat4
	LightProj  mgl32.Mat4
	LightSpace mgl32.Mat4
}

// LightPosition orbits the light around the vertical axis:
// (5·sin(t/2500), 4, 5·cos(t/2500)).
func LightPosition(t float64) mgl32.Vec3 {
	angle := float32(math.Mod(t/LightPeriod, 2*math.Pi))
	return mgl32.Vec3{
		LightOrbitRadius * math32.Sin(angle),
		LightHeight,
		LightOrbitRadius * math32.Cos(angle),
	}
}

// LightProjection is the orthographic box used for the shadow map
func LightProjection() mgl32.Mat4 {
	return mgl32.Ortho(-LightExtent, LightExtent, -LightExtent, LightExtent, LightNear, LightFar)
}

// RotationOnly drops the translation of a view matrix so the sky stays at
// infinity.
func RotationOnly(view mgl32.Mat4) mgl32.Mat4 {
	m := view
	m[3], m[7], m[11] = 0, 0, 0
	m[12], m[13], m[14] = 0, 0, 0
	m[15] = 1
	return m
}

// Compute derives every matrix of the frame at time t for a width x height
// canvas.
func Compute(cam graphics.CameraSource, t float64, width, height int) State {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	view := cam.ViewMatrix()
	lightPos := LightPosition(t)
	lightView := mgl32.LookAtV(lightPos, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	lightProj := LightProjection()

	return State{
		Time:       t,
		Width:      width,
		Height:     height,
		View:       view,
		SkyView:    RotationOnly(view),
		Proj:       mgl32.Perspective(mgl32.DegToRad(cam.FieldOfView()), aspect, NearPlane, FarPlane),
		CameraPos:  cam.Position(),
		LightPos:   lightPos,
		LightDir:   lightPos.Normalize(),
		LightView:  lightView,
		LightProj:  lightProj,
		LightSpace: lightProj.Mul4(lightView),
	}
}
