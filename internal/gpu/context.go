package gpu

import "github.com/go-gl/mathgl/mgl32"

// MaxTextureUnits is the number of texture units Context tracks
const MaxTextureUnits = 16

// Viewport is an x, y, width, height rectangle in window pixels
type Viewport [4]int32

// Context owns the mutable binding state of a Device: the bound framebuffer,
// active program, active texture unit, per-unit textures, vertex array and
// depth state. All pipeline code changes GPU state through it so the state
// is observable without querying the driver.
type Context struct {
	dev Device

	framebuffer uint32
	program     uint32
	activeUnit  uint32
	textures    [MaxTextureUnits]uint32
	vertexArray uint32
	viewport    Viewport
	depthTest   bool
	depthWrite  bool
}

// NewContext wraps dev with binding state matching a fresh GL context.
func NewContext(dev Device) *Context {
	return &Context{dev: dev, depthWrite: true}
}

// Device returns the wrapped backend
func (c *Context) Device() Device { return c.dev }

func (c *Context) Framebuffer() uint32 { return c.framebuffer }
func (c *Context) Program() uint32 { return c.program }
func (c *Context) ActiveUnit() uint32 { return c.activeUnit }
func (c *Context) VertexArray() uint32 { return c.vertexArray }
func (c *Context) CurrentViewport() Viewport { return c.viewport }
func (c *Context) DepthTest() bool { return c.depthTest }
func (c *Context) DepthWrite() bool { return c.depthWrite }

// Texture returns the texture bound to unit, or 0
func (c *Context) Texture(unit uint32) uint32 {
	if unit >= MaxTextureUnits {
		return 0
	}
	return c.textures[unit]
}

// BindFramebuffer binds id as the draw and read framebuffer; 0 is the window.
func (c *Context) BindFramebuffer(id uint32) {
	c.dev.BindFramebuffer(id)
	c.framebuffer = id
}

// UseProgram makes id the active program
func (c *Context) UseProgram(id uint32) {
	c.dev.UseProgram(id)
	c.program = id
}

// BindTexture selects unit and binds tex to it. The selection is always
// issued so the caller never depends on a unit chosen by an earlier pass.
func (c *Context) BindTexture(unit, tex uint32) {
	if unit >= MaxTextureUnits {
		panic("gpu: texture unit out of range")
	}
	c.dev.ActiveTexture(unit)
	c.dev.BindTexture2D(tex)
	c.activeUnit = unit
	c.textures[unit] = tex
}

func (c *Context) BindVertexArray(vao uint32) {
	c.dev.BindVertexArray(vao)
	c.vertexArray = vao
}

func (c *Context) Viewport(x, y, width, height int32) {
	c.dev.Viewport(x, y, width, height)
	c.viewport = Viewport{x, y, width, height}
}

func (c *Context) SetDepthTest(enabled bool) {
	c.dev.SetDepthTest(enabled)
	c.depthTest = enabled
}

func (c *Context) SetDepthMask(write bool) {
	c.dev.SetDepthMask(write)
	c.depthWrite = write
}

func (c *Context) SetDepthFunc(fn DepthFunc) { c.dev.SetDepthFunc(fn) }
func (c *Context) SetClearColor(r, g, b, a float32) { c.dev.SetClearColor(r, g, b, a) }
func (c *Context) Clear(mask ClearMask) { c.dev.Clear(mask) }
func (c *Context) DrawTriangles(first, count int32) { c.dev.DrawTriangles(first, count) }
func (c *Context) UniformMatrix4(loc int32, m mgl32.Mat4) { c.dev.UniformMatrix4(loc, m) }
func (c *Context) Uniform3(loc int32, v mgl32.Vec3) { c.dev.Uniform3(loc, v) }
func (c *Context) Uniform1i(loc int32, v int32) { c.dev.Uniform1i(loc, v) }
func (c *Context) Uniform1f(loc int32, v float32) { c.dev.Uniform1f(loc, v) }

// CreateTexture allocates a texture. The backend leaves the active unit's
// binding at zero afterwards, which is mirrored here.
func (c *Context) CreateTexture(desc TextureDesc) (uint32, error) {
	id, err := c.dev.CreateTexture(desc)
	c.textures[c.activeUnit] = 0
	return id, err
}

// DeleteTexture releases tex and clears any unit it was bound to.
func (c *Context) DeleteTexture(tex uint32) {
	if tex == 0 {
		return
	}
	c.dev.DeleteTexture(tex)
	for i := range c.textures {
		if c.textures[i] == tex {
			c.textures[i] = 0
		}
	}
}

func (c *Context) CreateDepthRenderbuffer(width, height int32) (uint32, error) {
	return c.dev.CreateDepthRenderbuffer(width, height)
}

func (c *Context) DeleteRenderbuffer(rb uint32) {
	if rb != 0 {
		c.dev.DeleteRenderbuffer(rb)
	}
}

func (c *Context) CreateFramebuffer() uint32 { return c.dev.CreateFramebuffer() }

// DeleteFramebuffer releases fb; deleting the bound framebuffer reverts to 0
// as GL does.
func (c *Context) DeleteFramebuffer(fb uint32) {
	if fb == 0 {
		return
	}
	c.dev.DeleteFramebuffer(fb)
	if c.framebuffer == fb {
		c.framebuffer = 0
	}
}

func (c *Context) AttachColorTexture(index, tex uint32) { c.dev.AttachColorTexture(index, tex) }
func (c *Context) AttachDepthTexture(tex uint32) { c.dev.AttachDepthTexture(tex) }
func (c *Context) AttachDepthRenderbuffer(rb uint32) { c.dev.AttachDepthRenderbuffer(rb) }
func (c *Context) DisableColorBuffers() { c.dev.DisableColorBuffers() }
func (c *Context) CheckFramebuffer() error { return c.dev.CheckFramebuffer() }

func (c *Context) CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	return c.dev.CompileProgram(vertexSrc, fragmentSrc)
}

// DeleteProgram releases id; an active program reverts to 0.
func (c *Context) DeleteProgram(id uint32) {
	if id == 0 {
		return
	}
	c.dev.DeleteProgram(id)
	if c.program == id {
		c.program = 0
	}
}

func (c *Context) UniformLocation(program uint32, name string) int32 {
	return c.dev.UniformLocation(program, name)
}

// CreateVertexArray uploads vertices and leaves no vertex array bound.
func (c *Context) CreateVertexArray(vertices []float32, layout []Attrib) (uint32, uint32) {
	vao, vbo := c.dev.CreateVertexArray(vertices, layout)
	c.vertexArray = 0
	return vao, vbo
}

func (c *Context) DeleteVertexArray(vao, vbo uint32) {
	c.dev.DeleteVertexArray(vao, vbo)
	if c.vertexArray == vao {
		c.vertexArray = 0
	}
}
