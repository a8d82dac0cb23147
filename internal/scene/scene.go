// Package scene describes the objects drawn every frame.
package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Rand is the random source used by Generate; *math/rand/v2.Rand satisfies it
type Rand interface {
	// Float32 returns a value in [0, 1)
	Float32() float32
}

// Mesh selects the primitive an object is drawn with
type Mesh int

const (
	MeshCube Mesh = iota
	MeshPlane
)

// Texture names used by the scene
const (
	TextureGray    = "checker_gray"
	TextureColored = "checker_colored"
)

// Generation parameters of the cube field
const (
	DefaultCubeCount = 100
	FieldRadius      = 8
	FieldLift        = 4
	MaxCubeScale     = 0.3
	DefaultPlane     = 7
)

// ObjectTransform is immutable after creation
type ObjectTransform struct {
	Position mgl32.Vec3
	Axis     mgl32.Vec3
	Scale    mgl32.Vec3
	// Spin in radians per second of elapsed time
	Spin float32
}

// Model returns T(position) * R(spin * t/1000, axis) * S(scale) with t in
// milliseconds.
func (o ObjectTransform) Model(t float64) mgl32.Mat4 {
	m := mgl32.Translate3D(o.Position.X(), o.Position.Y(), o.Position.Z())
	if angle := o.Spin * float32(t/1000); angle != 0 && o.Axis.Len() > 0 {
		m = m.Mul4(mgl32.HomogRotate3D(angle, o.Axis.Normalize()))
	}
	return m.Mul4(mgl32.Scale3D(o.Scale.X(), o.Scale.Y(), o.Scale.Z()))
}

// Object is one draw of the scene
type Object struct {
	Mesh      Mesh
	Texture   string
	Transform ObjectTransform
}

// Submitter receives the scene's draw calls. Depth-only submitters may ignore
// BindDiffuse.
type Submitter interface {
	SetModel(m mgl32.Mat4)
	BindDiffuse(texture string)
	DrawCube()
	DrawPlane()
}

// Scene is the fixed object list of the demo
type Scene struct {
	Fixed  []Object
	Field  []ObjectTransform
	Ground Object
}

// Options tune the generated scene
type Options struct {
	CubeCount  int
	PlaneScale float32
}

// New builds the two fixed cubes, count generated cubes and the ground plane.
func New(rng Rand, opts Options) *Scene {
	if opts.PlaneScale <= 0 {
		opts.PlaneScale = DefaultPlane
	}
	return &Scene{
		Fixed: []Object{
			{
				Mesh:    MeshCube,
				Texture: TextureGray,
				Transform: ObjectTransform{
					Axis:  mgl32.Vec3{0, 1, 0},
					Scale: mgl32.Vec3{1, 1, 1},
				},
			},
			{
				Mesh:    MeshCube,
				Texture: TextureGray,
				Transform: ObjectTransform{
					Position: mgl32.Vec3{1.8, -0.6, 0.6},
					Axis:     mgl32.Vec3{0, 1, 0},
					Scale:    mgl32.Vec3{0.4, 0.4, 0.4},
				},
			},
		},
		Field: Generate(rng, opts.CubeCount),
		Ground: Object{
			Mesh:    MeshPlane,
			Texture: TextureColored,
			Transform: ObjectTransform{
				Position: mgl32.Vec3{0, -1, 0},
				Axis:     mgl32.Vec3{0, 1, 0},
				Scale:    mgl32.Vec3{opts.PlaneScale, opts.PlaneScale, opts.PlaneScale},
			},
		},
	}
}

// Generate returns count transforms scattered uniformly through a sphere of
// radius FieldRadius centered FieldLift above the origin.
func Generate(rng Rand, count int) []ObjectTransform {
	out := make([]ObjectTransform, 0, count)
	for i := 0; i < count; i++ {
		r := FieldRadius * math32.Cbrt(rng.Float32())
		pos := RandomUnit(rng).Mul(r).Add(mgl32.Vec3{0, FieldLift, 0})
		axis := RandomUnit(rng)
		s := RandomUnit(rng).Mul(MaxCubeScale * rng.Float32())
		out = append(out, ObjectTransform{
			Position: pos,
			Axis:     axis,
			Scale:    mgl32.Vec3{math32.Abs(s.X()), math32.Abs(s.Y()), math32.Abs(s.Z())},
			Spin:     rng.Float32(),
		})
	}
	return out
}

// RandomUnit returns a direction uniformly distributed on the unit sphere
func RandomUnit(rng Rand) mgl32.Vec3 {
	theta := rng.Float32() * 2 * math32.Pi
	z := rng.Float32()*2 - 1
	ring := math32.Sqrt(1 - z*z)
	return mgl32.Vec3{math32.Cos(theta) * ring, math32.Sin(theta) * ring, z}
}

// Count returns the number of draws per pass
func (s *Scene) Count() int {
	return len(s.Fixed) + len(s.Field) + 1
}

// Draw submits every object in order: fixed cubes, generated cubes, ground.
func (s *Scene) Draw(sub Submitter, t float64) {
	for _, o := range s.Fixed {
		drawObject(sub, o, t)
	}
	for _, tr := range s.Field {
		drawObject(sub, Object{Mesh: MeshCube, Texture: TextureGray, Transform: tr}, t)
	}
	drawObject(sub, s.Ground, t)
}

func drawObject(sub Submitter, o Object, t float64) {
	sub.SetModel(o.Transform.Model(t))
	sub.BindDiffuse(o.Texture)
	switch o.Mesh {
	case MeshPlane:
		sub.DrawPlane()
	default:
		sub.DrawCube()
	}
}
