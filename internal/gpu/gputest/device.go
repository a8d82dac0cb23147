// Package gputest provides an in-memory gpu.Device that records every call.
// It tracks live objects and per-program uniforms so pipeline code can be
// tested without a GL context.
package gputest

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"shadowscene/internal/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

// Call is one recorded device call
type Call struct {
	Op   string
	Args []any
}

func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Op
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = fmt.Sprint(a)
	}
	return c.Op + "(" + strings.Join(parts, ", ") + ")"
}

// Texture is the recorded state of a texture object
type Texture struct {
	gpu.TextureDesc
}

// Framebuffer is the recorded state of a framebuffer object
type Framebuffer struct {
	Color          map[uint32]uint32
	DepthTexture   uint32
	DepthRenderbuf uint32
	ColorDisabled  bool
}

// Renderbuffer is the recorded state of a depth renderbuffer
type Renderbuffer struct {
	Width, Height int32
}

// Program is a "compiled" program: its uniform names come from the
// `uniform <type> <name>` declarations of both sources.
type Program struct {
	Uniforms map[string]int32
	names    map[int32]string
}

// Draw captures the binding state at the moment of a draw call
type Draw struct {
	Framebuffer uint32
	Program     uint32
	VertexArray uint32
	Count       int32
	Textures    [gpu.MaxTextureUnits]uint32
	Viewport    gpu.Viewport
	DepthTest   bool
	DepthWrite  bool
	Uniforms    map[string]any
}

// Device records calls and simulates object lifetimes.
type Device struct {
	Calls []Call
	Draws []Draw

	Textures      map[uint32]*Texture
	Framebuffers  map[uint32]*Framebuffer
	Renderbuffers map[uint32]*Renderbuffer
	Programs      map[uint32]*Program
	VertexArrays  map[uint32]int // vao -> vertex float count

	// FailFramebuffers makes CheckFramebuffer report incompleteness
	FailFramebuffers bool
	// FailTextures makes CreateTexture fail
	FailTextures bool

	nextID      uint32
	framebuffer uint32
	program     uint32
	activeUnit  uint32
	units       [gpu.MaxTextureUnits]uint32
	vao         uint32
	viewport    gpu.Viewport
	depthTest   bool
	depthWrite  bool
	uniforms    map[uint32]map[string]any
}

// New returns an empty recording device
func New() *Device {
	return &Device{
		Textures:      make(map[uint32]*Texture),
		Framebuffers:  make(map[uint32]*Framebuffer),
		Renderbuffers: make(map[uint32]*Renderbuffer),
		Programs:      make(map[uint32]*Program),
		VertexArrays:  make(map[uint32]int),
		uniforms:      make(map[uint32]map[string]any),
		depthWrite:    true,
	}
}

func (d *Device) record(op string, args ...any) {
	d.Calls = append(d.Calls, Call{Op: op, Args: args})
}

func (d *Device) id() uint32 {
	d.nextID++
	return d.nextID
}

// Reset drops recorded calls and draws but keeps objects and state
func (d *Device) Reset() {
	d.Calls = nil
	d.Draws = nil
}

// Ops returns the recorded operation names in order
func (d *Device) Ops() []string {
	out := make([]string, len(d.Calls))
	for i, c := range d.Calls {
		out[i] = c.Op
	}
	return out
}

// Uniform returns the last value uploaded to name on program
func (d *Device) Uniform(program uint32, name string) (any, bool) {
	v, ok := d.uniforms[program][name]
	return v, ok
}

func (d *Device) CreateTexture(desc gpu.TextureDesc) (uint32, error) {
	if d.FailTextures {
		return 0, errors.New("gputest: texture allocation failed")
	}
	if desc.Width <= 0 || desc.Height <= 0 {
		return 0, fmt.Errorf("gputest: invalid texture size %dx%d", desc.Width, desc.Height)
	}
	id := d.id()
	desc.Pixels = nil
	d.Textures[id] = &Texture{TextureDesc: desc}
	d.units[d.activeUnit] = 0
	d.record("CreateTexture", id, desc.Width, desc.Height, desc.Format)
	return id, nil
}

func (d *Device) DeleteTexture(id uint32) {
	delete(d.Textures, id)
	for i := range d.units {
		if d.units[i] == id {
			d.units[i] = 0
		}
	}
	d.record("DeleteTexture", id)
}

func (d *Device) CreateDepthRenderbuffer(width, height int32) (uint32, error) {
	id := d.id()
	d.Renderbuffers[id] = &Renderbuffer{Width: width, Height: height}
	d.record("CreateDepthRenderbuffer", id, width, height)
	return id, nil
}

func (d *Device) DeleteRenderbuffer(id uint32) {
	delete(d.Renderbuffers, id)
	d.record("DeleteRenderbuffer", id)
}

func (d *Device) CreateFramebuffer() uint32 {
	id := d.id()
	d.Framebuffers[id] = &Framebuffer{Color: make(map[uint32]uint32)}
	d.record("CreateFramebuffer", id)
	return id
}

func (d *Device) DeleteFramebuffer(id uint32) {
	delete(d.Framebuffers, id)
	if d.framebuffer == id {
		d.framebuffer = 0
	}
	d.record("DeleteFramebuffer", id)
}

func (d *Device) BindFramebuffer(id uint32) {
	if _, ok := d.Framebuffers[id]; id != 0 && !ok {
		panic(fmt.Sprintf("gputest: bind of unknown framebuffer %d", id))
	}
	d.framebuffer = id
	d.record("BindFramebuffer", id)
}

func (d *Device) bound() *Framebuffer {
	fb, ok := d.Framebuffers[d.framebuffer]
	if !ok {
		panic("gputest: attachment without a bound framebuffer")
	}
	return fb
}

func (d *Device) AttachColorTexture(index uint32, tex uint32) {
	d.bound().Color[index] = tex
	d.record("AttachColorTexture", index, tex)
}

func (d *Device) AttachDepthTexture(tex uint32) {
	d.bound().DepthTexture = tex
	d.record("AttachDepthTexture", tex)
}

func (d *Device) AttachDepthRenderbuffer(rb uint32) {
	d.bound().DepthRenderbuf = rb
	d.record("AttachDepthRenderbuffer", rb)
}

func (d *Device) DisableColorBuffers() {
	d.bound().ColorDisabled = true
	d.record("DisableColorBuffers")
}

func (d *Device) CheckFramebuffer() error {
	d.record("CheckFramebuffer")
	if d.FailFramebuffers {
		return fmt.Errorf("%w: gputest", gpu.ErrFramebufferIncomplete)
	}
	fb := d.bound()
	if len(fb.Color) == 0 && fb.DepthTexture == 0 && fb.DepthRenderbuf == 0 {
		return fmt.Errorf("%w: no attachments", gpu.ErrFramebufferIncomplete)
	}
	return nil
}

var uniformDecl = regexp.MustCompile(`(?m)^\s*uniform\s+\w+\s+(\w+)\s*(?:\[\s*\d+\s*\])?\s*;`)

// CompileProgram fails when either source is empty or contains "#error".
func (d *Device) CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	for stage, src := range map[string]string{"vertex": vertexSrc, "fragment": fragmentSrc} {
		if strings.TrimSpace(src) == "" || strings.Contains(src, "#error") {
			return 0, fmt.Errorf("%s: compile: gputest rejected source", stage)
		}
	}
	id := d.id()
	p := &Program{Uniforms: make(map[string]int32), names: make(map[int32]string)}
	var next int32
	for _, src := range []string{vertexSrc, fragmentSrc} {
		for _, m := range uniformDecl.FindAllStringSubmatch(src, -1) {
			if _, ok := p.Uniforms[m[1]]; ok {
				continue
			}
			p.Uniforms[m[1]] = next
			p.names[next] = m[1]
			next++
		}
	}
	d.Programs[id] = p
	d.uniforms[id] = make(map[string]any)
	d.record("CompileProgram", id)
	return id, nil
}

func (d *Device) DeleteProgram(id uint32) {
	delete(d.Programs, id)
	delete(d.uniforms, id)
	if d.program == id {
		d.program = 0
	}
	d.record("DeleteProgram", id)
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	d.record("UniformLocation", program, name)
	p, ok := d.Programs[program]
	if !ok {
		return -1
	}
	if loc, ok := p.Uniforms[name]; ok {
		return loc
	}
	return -1
}

func (d *Device) UseProgram(id uint32) {
	d.program = id
	d.record("UseProgram", id)
}

func (d *Device) setUniform(op string, loc int32, v any) {
	d.record(op, loc, v)
	if loc < 0 {
		return
	}
	p, ok := d.Programs[d.program]
	if !ok {
		panic(fmt.Sprintf("gputest: %s with no active program", op))
	}
	name, ok := p.names[loc]
	if !ok {
		panic(fmt.Sprintf("gputest: %s location %d not in program %d", op, loc, d.program))
	}
	d.uniforms[d.program][name] = v
}

func (d *Device) UniformMatrix4(location int32, m mgl32.Mat4) { d.setUniform("UniformMatrix4", location, m) }
func (d *Device) Uniform3(location int32, v mgl32.Vec3) { d.setUniform("Uniform3", location, v) }
func (d *Device) Uniform1i(location int32, v int32) { d.setUniform("Uniform1i", location, v) }
func (d *Device) Uniform1f(location int32, v float32) { d.setUniform("Uniform1f", location, v) }

func (d *Device) ActiveTexture(unit uint32) {
	d.activeUnit = unit
	d.record("ActiveTexture", unit)
}

func (d *Device) BindTexture2D(tex uint32) {
	if _, ok := d.Textures[tex]; tex != 0 && !ok {
		panic(fmt.Sprintf("gputest: bind of unknown texture %d", tex))
	}
	d.units[d.activeUnit] = tex
	d.record("BindTexture2D", tex)
}

func (d *Device) CreateVertexArray(vertices []float32, layout []gpu.Attrib) (uint32, uint32) {
	vao, vbo := d.id(), d.id()
	d.VertexArrays[vao] = len(vertices)
	d.vao = 0
	d.record("CreateVertexArray", vao, len(vertices))
	return vao, vbo
}

func (d *Device) DeleteVertexArray(vao, vbo uint32) {
	delete(d.VertexArrays, vao)
	d.record("DeleteVertexArray", vao)
}

func (d *Device) BindVertexArray(vao uint32) {
	d.vao = vao
	d.record("BindVertexArray", vao)
}

func (d *Device) DrawTriangles(first, count int32) {
	d.record("DrawTriangles", first, count)
	uniforms := make(map[string]any, len(d.uniforms[d.program]))
	for k, v := range d.uniforms[d.program] {
		uniforms[k] = v
	}
	d.Draws = append(d.Draws, Draw{
		Framebuffer: d.framebuffer,
		Program:     d.program,
		VertexArray: d.vao,
		Count:       count,
		Textures:    d.units,
		Viewport:    d.viewport,
		DepthTest:   d.depthTest,
		DepthWrite:  d.depthWrite,
		Uniforms:    uniforms,
	})
}

func (d *Device) Viewport(x, y, width, height int32) {
	d.viewport = gpu.Viewport{x, y, width, height}
	d.record("Viewport", x, y, width, height)
}

func (d *Device) SetClearColor(r, g, b, a float32) { d.record("SetClearColor", r, g, b, a) }
func (d *Device) Clear(mask gpu.ClearMask) { d.record("Clear", mask) }

func (d *Device) SetDepthTest(enabled bool) {
	d.depthTest = enabled
	d.record("SetDepthTest", enabled)
}

func (d *Device) SetDepthMask(write bool) {
	d.depthWrite = write
	d.record("SetDepthMask", write)
}

func (d *Device) SetDepthFunc(fn gpu.DepthFunc) { d.record("SetDepthFunc", fn) }

var _ gpu.Device = (*Device)(nil)
