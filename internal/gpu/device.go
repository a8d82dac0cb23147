package gpu

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrFramebufferIncomplete is returned when a framebuffer fails its completeness check.
var ErrFramebufferIncomplete = errors.New("framebuffer incomplete")

// TextureFormat selects the internal storage of a 2D texture
type TextureFormat int

const (
	FormatRGB8 TextureFormat = iota
	FormatRGBA8
	FormatDepth32F
)

// Filter is used for both min and mag filtering
type Filter int

const (
	FilterLinear Filter = iota
	FilterNearest
)

// Wrap is used for both S and T
type Wrap int

const (
	WrapRepeat Wrap = iota
	WrapClampToEdge
)

// TextureDesc describes a 2D texture allocation. Pixels may be nil to allocate
// uninitialized storage (render target attachments).
type TextureDesc struct {
	Width   int32
	Height  int32
	Format  TextureFormat
	Filter  Filter
	Wrap    Wrap
	Mipmaps bool
	Pixels  []byte
}

// DepthFunc mirrors the GL depth comparison functions the pipeline uses
type DepthFunc int

const (
	DepthLess DepthFunc = iota
	DepthLEqual
)

// ClearMask selects the buffers cleared by Clear
type ClearMask int

const (
	ClearColor ClearMask = 1 << iota
	ClearDepth
)

// Attrib describes one float vertex attribute inside an interleaved buffer
type Attrib struct {
	Location   uint32
	Components int32
}

// Device is the single rendering backend. Every method maps to one or a few
// GL calls and is only valid on the thread that owns the context.
//
// Object creation never changes the texture, framebuffer or vertex array
// bindings observed by Context: implementations restore the zero binding
// before returning.
type Device interface {
	CreateTexture(desc TextureDesc) (uint32, error)
	DeleteTexture(id uint32)
	CreateDepthRenderbuffer(width, height int32) (uint32, error)
	DeleteRenderbuffer(id uint32)

	CreateFramebuffer() uint32
	DeleteFramebuffer(id uint32)
	BindFramebuffer(id uint32)
	// The attach calls operate on the currently bound framebuffer.
	AttachColorTexture(index uint32, tex uint32)
	AttachDepthTexture(tex uint32)
	AttachDepthRenderbuffer(rb uint32)
	DisableColorBuffers()
	CheckFramebuffer() error

	CompileProgram(vertexSrc, fragmentSrc string) (uint32, error)
	DeleteProgram(id uint32)
	UniformLocation(program uint32, name string) int32
	UseProgram(id uint32)
	UniformMatrix4(location int32, m mgl32.Mat4)
	Uniform3(location int32, v mgl32.Vec3)
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)

	ActiveTexture(unit uint32)
	BindTexture2D(tex uint32)

	CreateVertexArray(vertices []float32, layout []Attrib) (vao, vbo uint32)
	DeleteVertexArray(vao, vbo uint32)
	BindVertexArray(vao uint32)
	DrawTriangles(first, count int32)

	Viewport(x, y, width, height int32)
	SetClearColor(r, g, b, a float32)
	Clear(mask ClearMask)
	SetDepthTest(enabled bool)
	SetDepthMask(write bool)
	SetDepthFunc(fn DepthFunc)
}
