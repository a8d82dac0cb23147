package graphics

import (
	"errors"
	"fmt"
	"io/fs"

	"shadowscene/internal/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrShaderCompile wraps every compile or link failure
var ErrShaderCompile = errors.New("shader compile failed")

// Shader represents a linked program and its uniform locations
type Shader struct {
	Name string

	ctx       *gpu.Context
	id        uint32
	locations map[string]int32
}

// NewShader reads vertexPath and fragmentPath from src and links them
func NewShader(ctx *gpu.Context, src fs.FS, name, vertexPath, fragmentPath string) (*Shader, error) {
	id, err := compileFromFS(ctx, src, vertexPath, fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", name, err)
	}
	return &Shader{Name: name, ctx: ctx, id: id, locations: make(map[string]int32)}, nil
}

func compileFromFS(ctx *gpu.Context, src fs.FS, vertexPath, fragmentPath string) (uint32, error) {
	vertexSource, err := fs.ReadFile(src, vertexPath)
	if err != nil {
		return 0, fmt.Errorf("could not read vertex shader file: %w", err)
	}
	fragmentSource, err := fs.ReadFile(src, fragmentPath)
	if err != nil {
		return 0, fmt.Errorf("could not read fragment shader file: %w", err)
	}
	id, err := ctx.CompileProgram(string(vertexSource), string(fragmentSource))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrShaderCompile, err)
	}
	return id, nil
}

// ID returns the program handle
func (s *Shader) ID() uint32 { return s.id }

// Use activates the shader program
func (s *Shader) Use() {
	s.ctx.UseProgram(s.id)
}

// replace swaps in a freshly linked program and drops cached locations
func (s *Shader) replace(id uint32) {
	old := s.id
	s.id = id
	s.locations = make(map[string]int32)
	s.ctx.DeleteProgram(old)
}

// location looks up name once; a missing uniform is cached as -1 as well.
func (s *Shader) location(name string) int32 {
	if loc, ok := s.locations[name]; ok {
		return loc
	}
	loc := s.ctx.UniformLocation(s.id, name)
	s.locations[name] = loc
	return loc
}

// uniform returns the location of name with the program made active. It
// reports false for uniforms the program does not declare.
func (s *Shader) uniform(name string) (int32, bool) {
	loc := s.location(name)
	if loc < 0 {
		return loc, false
	}
	if s.ctx.Program() != s.id {
		s.Use()
	}
	return loc, true
}

// SetMat4 sets a 4x4 matrix uniform
func (s *Shader) SetMat4(name string, m mgl32.Mat4) {
	if loc, ok := s.uniform(name); ok {
		s.ctx.UniformMatrix4(loc, m)
	}
}

// SetVec3 sets a vector3 uniform
func (s *Shader) SetVec3(name string, v mgl32.Vec3) {
	if loc, ok := s.uniform(name); ok {
		s.ctx.Uniform3(loc, v)
	}
}

// SetInt sets an integer uniform, also used for sampler units
func (s *Shader) SetInt(name string, v int32) {
	if loc, ok := s.uniform(name); ok {
		s.ctx.Uniform1i(loc, v)
	}
}

func (s *Shader) SetFloat(name string, v float32) {
	if loc, ok := s.uniform(name); ok {
		s.ctx.Uniform1f(loc, v)
	}
}

// Dispose deletes the program
func (s *Shader) Dispose() {
	s.ctx.DeleteProgram(s.id)
	s.id = 0
}
