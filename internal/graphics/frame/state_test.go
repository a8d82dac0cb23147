package frame

import (
	"math"
	"testing"

	"shadowscene/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sceneCamera() *graphics.Camera {
	cam := graphics.NewCamera(mgl32.Vec3{5, 4, 7}, mgl32.Vec3{0, 1, 0}, 0, 0, 45)
	cam.LookAt(mgl32.Vec3{})
	return cam
}

func TestLightStartsOnPositiveZ(t *testing.T) {
	pos := LightPosition(0)
	assert.InDelta(t, 0, pos.X(), 1e-6)
	assert.InDelta(t, 4, pos.Y(), 1e-6)
	assert.InDelta(t, 5, pos.Z(), 1e-6)
}

func TestLightOrbit(t *testing.T) {
	for ts := 0.0; ts < 200000; ts += 337.5 {
		pos := LightPosition(ts)
		radius := math.Hypot(float64(pos.X()), float64(pos.Z()))
		assert.InDelta(t, LightOrbitRadius, radius, 1e-4, "t=%v", ts)
		assert.Equal(t, float32(LightHeight), pos.Y())
	}
	quarter := LightPosition(LightPeriod * math.Pi / 2)
	assert.InDelta(t, 5, quarter.X(), 1e-4)
	assert.InDelta(t, 0, quarter.Z(), 1e-4)
}

func TestComputeMatrices(t *testing.T) {
	cam := sceneCamera()
	s := Compute(cam, 0, 800, 600)

	assert.Equal(t, cam.ViewMatrix(), s.View)
	assert.Equal(t, mgl32.Vec3{5, 4, 7}, s.CameraPos)
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(45), 800.0/600.0, NearPlane, FarPlane), s.Proj)
	assert.Equal(t, LightProjection().Mul4(s.LightView), s.LightSpace)
	assert.InDelta(t, 1, s.LightDir.Len(), 1e-6)
	assert.True(t, s.LightDir.ApproxEqual(s.LightPos.Normalize()))

	// sky view keeps the rotation and drops the translation
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, s.SkyView.Col(3))
	assert.Equal(t, s.View.Mat3(), s.SkyView.Mat3())
}

func TestComputeIsPure(t *testing.T) {
	cam := sceneCamera()
	assert.Equal(t, Compute(cam, 4321, 640, 480), Compute(cam, 4321, 640, 480))
}

// rayToGround casts a ray through an NDC point and intersects the y = -1 plane.
func rayToGround(s State, ndcX, ndcY float32) (mgl32.Vec3, bool) {
	inv := s.Proj.Mul4(s.View).Inv()
	near := mgl32.TransformCoordinate(mgl32.Vec3{ndcX, ndcY, -1}, inv)
	far := mgl32.TransformCoordinate(mgl32.Vec3{ndcX, ndcY, 1}, inv)
	dir := far.Sub(near)
	if dir.Y() >= 0 {
		return mgl32.Vec3{}, false
	}
	k := (-1 - near.Y()) / dir.Y()
	return near.Add(dir.Mul(k)), true
}

func TestGroundCoversLowerHalf(t *testing.T) {
	s := Compute(sceneCamera(), 0, 800, 600)
	half := float32(7)

	for _, y := range []float32{-0.9, -0.5, -0.1} {
		hit, ok := rayToGround(s, 0, y)
		require.True(t, ok, "ndc y=%v", y)
		assert.LessOrEqual(t, math.Abs(float64(hit.X())), float64(half), "ndc y=%v", y)
		assert.LessOrEqual(t, math.Abs(float64(hit.Z())), float64(half), "ndc y=%v", y)
	}

	hit, ok := rayToGround(s, 0, 0.9)
	if ok {
		outside := math.Abs(float64(hit.X())) > float64(half) || math.Abs(float64(hit.Z())) > float64(half)
		assert.True(t, outside, "upper screen must not see the plane")
	}
}

func TestCubeIsCloserToLightThanGround(t *testing.T) {
	s := Compute(sceneCamera(), 0, 800, 600)

	// front top edge of the unit cube and the ground point it shadows
	cube := mgl32.Vec3{0, 1, 1}
	toOrigin := s.LightPos.Mul(-1).Normalize()
	k := (-1 - cube.Y()) / toOrigin.Y()
	ground := cube.Add(toOrigin.Mul(k))

	a := mgl32.TransformCoordinate(cube, s.LightSpace)
	b := mgl32.TransformCoordinate(ground, s.LightSpace)

	assert.InDelta(t, a.X(), b.X(), 1e-4)
	assert.InDelta(t, a.Y(), b.Y(), 1e-4)
	assert.Less(t, a.Z(), b.Z())
	for _, p := range []mgl32.Vec3{a, b} {
		for i := 0; i < 3; i++ {
			assert.LessOrEqual(t, math.Abs(float64(p[i])), 1.0, "inside the light frustum")
		}
	}
}

func TestAspectFallsBackForEmptyCanvas(t *testing.T) {
	s := Compute(sceneCamera(), 0, 0, 0)
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(45), 1, NearPlane, FarPlane), s.Proj)
}

func BenchmarkCompute(b *testing.B) {
	cam := sceneCamera()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Compute(cam, float64(i)*16.6, 1920, 1080)
	}
}
