package graphics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCameraLookAtMatchesLookAtMatrix(t *testing.T) {
	c := NewCamera(mgl32.Vec3{5, 4, 7}, mgl32.Vec3{0, 1, 0}, 0, 0, 45)
	c.LookAt(mgl32.Vec3{})

	want := mgl32.LookAtV(mgl32.Vec3{5, 4, 7}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	assert.True(t, c.ViewMatrix().ApproxEqualThreshold(want, 1e-4))
	assert.Equal(t, float32(45), c.FieldOfView())
}

func TestCameraOrbitKeepsDistance(t *testing.T) {
	c := NewCamera(mgl32.Vec3{5, 4, 7}, mgl32.Vec3{0, 1, 0}, 0, 0, 45)
	before := c.Position().Len()
	c.Orbit(mgl32.Vec3{}, 1.3)

	assert.InDelta(t, before, c.Position().Len(), 1e-4)
	assert.InDelta(t, 4, c.Position().Y(), 1e-5)

	origin := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, origin.X(), 1e-4)
	assert.InDelta(t, 0, origin.Y(), 1e-4)
}
