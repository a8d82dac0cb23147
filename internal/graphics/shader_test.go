package graphics_test

import (
	"os"
	"testing"
	"testing/fstest"

	"shadowscene/internal/gpu"
	"shadowscene/internal/gpu/gputest"
	"shadowscene/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shaderDir = os.DirFS("../../assets/shaders")

func loadPrograms(t *testing.T) (*gputest.Device, *gpu.Context, *graphics.ProgramSet) {
	t.Helper()
	dev := gputest.New()
	ctx := gpu.NewContext(dev)
	ps, err := graphics.LoadProgramSet(ctx, shaderDir)
	require.NoError(t, err)
	return dev, ctx, ps
}

func TestLoadProgramSetCompilesEveryProgram(t *testing.T) {
	dev, _, ps := loadPrograms(t)
	assert.Len(t, dev.Programs, len(graphics.Programs))
	for _, name := range graphics.Programs {
		assert.NotZero(t, ps.Get(name).ID(), name)
	}
}

func TestShippedShadersDeclarePipelineUniforms(t *testing.T) {
	dev, _, ps := loadPrograms(t)
	want := map[graphics.ProgramName][]string{
		graphics.ProgramScene:  {"model", "view", "proj", "tex"},
		graphics.ProgramSky:    {"view", "proj"},
		graphics.ProgramScreen: {"tex"},
		graphics.ProgramDepth:  {"model", "lightSpace"},
		graphics.ProgramShadow: {"model", "view", "proj", "lightSpace", "tex", "shadowMap", "lightDir", "viewPos"},
		graphics.ProgramDebug:  {"tex"},
	}
	for name, uniforms := range want {
		p := dev.Programs[ps.Get(name).ID()]
		for _, u := range uniforms {
			assert.Contains(t, p.Uniforms, u, "%s.%s", name, u)
		}
	}
}

func TestUniformLocationsAreCached(t *testing.T) {
	dev, _, ps := loadPrograms(t)
	s := ps.Use(graphics.ProgramShadow)

	dev.Reset()
	s.SetMat4("model", mgl32.Ident4())
	s.SetMat4("model", mgl32.Translate3D(1, 2, 3))
	s.SetMat4("doesNotExist", mgl32.Ident4())
	s.SetMat4("doesNotExist", mgl32.Ident4())

	lookups := 0
	for _, op := range dev.Ops() {
		if op == "UniformLocation" {
			lookups++
		}
	}
	assert.Equal(t, 2, lookups)

	v, ok := dev.Uniform(s.ID(), "model")
	require.True(t, ok)
	assert.Equal(t, mgl32.Translate3D(1, 2, 3), v)
}

func TestMissingUniformIsSilentNoOp(t *testing.T) {
	dev, _, ps := loadPrograms(t)
	s := ps.Use(graphics.ProgramScene)

	dev.Reset()
	assert.NotPanics(t, func() {
		s.SetVec3("lightDir", mgl32.Vec3{0, 1, 0})
		s.SetInt("shadowMap", 1)
		s.SetFloat("time", 3)
	})
	for _, op := range dev.Ops() {
		assert.NotContains(t, []string{"Uniform3", "Uniform1i", "Uniform1f"}, op)
	}
}

func TestSetterActivatesItsProgram(t *testing.T) {
	_, ctx, ps := loadPrograms(t)
	ps.Use(graphics.ProgramSky)

	depth := ps.Get(graphics.ProgramDepth)
	depth.SetMat4("lightSpace", mgl32.Ident4())
	assert.Equal(t, depth.ID(), ctx.Program())
}

func TestCompileFailureIsFatal(t *testing.T) {
	src := fstest.MapFS{}
	for _, name := range graphics.Programs {
		src[name.VertexPath()] = &fstest.MapFile{Data: []byte("void main() {}")}
		src[name.FragmentPath()] = &fstest.MapFile{Data: []byte("void main() {}")}
	}
	src[graphics.ProgramShadow.FragmentPath()] = &fstest.MapFile{Data: []byte("#error broken")}

	dev := gputest.New()
	_, err := graphics.LoadProgramSet(gpu.NewContext(dev), src)
	require.ErrorIs(t, err, graphics.ErrShaderCompile)
	assert.Empty(t, dev.Programs, "programs linked before the failure are released")
}

func TestMissingSourceIsFatal(t *testing.T) {
	_, err := graphics.LoadProgramSet(gpu.NewContext(gputest.New()), fstest.MapFS{})
	require.Error(t, err)
}

func TestReloadKeepsOldProgramOnFailure(t *testing.T) {
	src := fstest.MapFS{}
	for _, name := range graphics.Programs {
		src[name.VertexPath()] = &fstest.MapFile{Data: []byte("uniform mat4 model;\nvoid main() {}")}
		src[name.FragmentPath()] = &fstest.MapFile{Data: []byte("void main() {}")}
	}
	dev := gputest.New()
	ps, err := graphics.LoadProgramSet(gpu.NewContext(dev), src)
	require.NoError(t, err)

	s := ps.Get(graphics.ProgramDebug)
	before := s.ID()

	src[graphics.ProgramDebug.FragmentPath()] = &fstest.MapFile{Data: []byte("#error")}
	require.ErrorIs(t, ps.Reload(graphics.ProgramDebug), graphics.ErrShaderCompile)
	assert.Equal(t, before, s.ID())

	src[graphics.ProgramDebug.FragmentPath()] = &fstest.MapFile{Data: []byte("void main() {}")}
	require.NoError(t, ps.Reload(graphics.ProgramDebug))
	assert.NotEqual(t, before, s.ID())
	assert.NotContains(t, dev.Programs, before)
}

func TestByPath(t *testing.T) {
	name, ok := graphics.ByPath("shadow.frag")
	assert.True(t, ok)
	assert.Equal(t, graphics.ProgramShadow, name)

	_, ok = graphics.ByPath("shadow.glsl")
	assert.False(t, ok)
}

func TestUnknownProgramPanics(t *testing.T) {
	_, _, ps := loadPrograms(t)
	assert.Panics(t, func() { ps.Get("bloom") })
}
