package graphics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraSource is what the frame orchestrator needs from a camera
type CameraSource interface {
	ViewMatrix() mgl32.Mat4
	// FieldOfView is the vertical field of view in degrees
	FieldOfView() float32
	Position() mgl32.Vec3
}

// Camera is a yaw/pitch camera that can be aimed at a point
type Camera struct {
	Pos   mgl32.Vec3
	Up    mgl32.Vec3
	Yaw   float32 // degrees, 0 looks down +X
	Pitch float32 // degrees
	FOV   float32 // degrees
}

func NewCamera(pos, up mgl32.Vec3, yaw, pitch, fov float32) *Camera {
	return &Camera{Pos: pos, Up: up, Yaw: yaw, Pitch: pitch, FOV: fov}
}

// Front returns the unit view direction
func (c *Camera) Front() mgl32.Vec3 {
	yaw, pitch := mgl32.DegToRad(c.Yaw), mgl32.DegToRad(c.Pitch)
	return mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}.Normalize()
}

// LookAt aims the camera at target
func (c *Camera) LookAt(target mgl32.Vec3) {
	dir := target.Sub(c.Pos)
	if dir.Len() == 0 {
		return
	}
	dir = dir.Normalize()
	c.Pitch = mgl32.RadToDeg(math32.Asin(dir.Y()))
	c.Yaw = mgl32.RadToDeg(math32.Atan2(dir.Z(), dir.X()))
}

// Orbit rotates the camera around the vertical axis through target by angle
// radians and re-aims it at target.
func (c *Camera) Orbit(target mgl32.Vec3, angle float32) {
	offset := mgl32.Rotate3DY(angle).Mul3x1(c.Pos.Sub(target))
	c.Pos = target.Add(offset)
	c.LookAt(target)
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Pos, c.Pos.Add(c.Front()), c.Up)
}

func (c *Camera) FieldOfView() float32 { return c.FOV }

func (c *Camera) Position() mgl32.Vec3 { return c.Pos }
