package graphics

import "shadowscene/internal/gpu"

// Vertex counts per primitive
const (
	CubeVertexCount  = 36
	PlaneVertexCount = 6
	QuadVertexCount  = 6
)

// Mesh layout: position.xyz, normal.xyz, uv
var meshLayout = []gpu.Attrib{
	{Location: 0, Components: 3},
	{Location: 1, Components: 3},
	{Location: 2, Components: 2},
}

// Quad layout: position.xy, uv
var quadLayout = []gpu.Attrib{
	{Location: 0, Components: 2},
	{Location: 1, Components: 2},
}

// CubeVertices is a unit cube spanning [-1, 1] on every axis, CCW faces
var CubeVertices = []float32{
	// back
	-1, -1, -1, 0, 0, -1, 0, 0,
	1, 1, -1, 0, 0, -1, 1, 1,
	1, -1, -1, 0, 0, -1, 1, 0,
	1, 1, -1, 0, 0, -1, 1, 1,
	-1, -1, -1, 0, 0, -1, 0, 0,
	-1, 1, -1, 0, 0, -1, 0, 1,
	// front
	-1, -1, 1, 0, 0, 1, 0, 0,
	1, -1, 1, 0, 0, 1, 1, 0,
	1, 1, 1, 0, 0, 1, 1, 1,
	1, 1, 1, 0, 0, 1, 1, 1,
	-1, 1, 1, 0, 0, 1, 0, 1,
	-1, -1, 1, 0, 0, 1, 0, 0,
	// left
	-1, 1, 1, -1, 0, 0, 1, 0,
	-1, 1, -1, -1, 0, 0, 1, 1,
	-1, -1, -1, -1, 0, 0, 0, 1,
	-1, -1, -1, -1, 0, 0, 0, 1,
	-1, -1, 1, -1, 0, 0, 0, 0,
	-1, 1, 1, -1, 0, 0, 1, 0,
	// right
	1, 1, 1, 1, 0, 0, 1, 0,
	1, -1, -1, 1, 0, 0, 0, 1,
	1, 1, -1, 1, 0, 0, 1, 1,
	1, -1, -1, 1, 0, 0, 0, 1,
	1, 1, 1, 1, 0, 0, 1, 0,
	1, -1, 1, 1, 0, 0, 0, 0,
	// bottom
	-1, -1, -1, 0, -1, 0, 0, 1,
	1, -1, -1, 0, -1, 0, 1, 1,
	1, -1, 1, 0, -1, 0, 1, 0,
	1, -1, 1, 0, -1, 0, 1, 0,
	-1, -1, 1, 0, -1, 0, 0, 0,
	-1, -1, -1, 0, -1, 0, 0, 1,
	// top
	-1, 1, -1, 0, 1, 0, 0, 1,
	1, 1, 1, 0, 1, 0, 1, 0,
	1, 1, -1, 0, 1, 0, 1, 1,
	1, 1, 1, 0, 1, 0, 1, 0,
	-1, 1, -1, 0, 1, 0, 0, 1,
	-1, 1, 1, 0, 1, 0, 0, 0,
}

// PlaneVertices is a [-1, 1] square in the XZ plane facing +Y
var PlaneVertices = []float32{
	1, 0, 1, 0, 1, 0, 1, 0,
	-1, 0, -1, 0, 1, 0, 0, 1,
	-1, 0, 1, 0, 1, 0, 0, 0,
	1, 0, 1, 0, 1, 0, 1, 0,
	1, 0, -1, 0, 1, 0, 1, 1,
	-1, 0, -1, 0, 1, 0, 0, 1,
}

// QuadVertices covers the whole viewport in NDC
var QuadVertices = []float32{
	-1, 1, 0, 1,
	-1, -1, 0, 0,
	1, -1, 1, 0,
	-1, 1, 0, 1,
	1, -1, 1, 0,
	1, 1, 1, 1,
}

type vertexArray struct {
	vao, vbo uint32
}

// GeometryStore owns the GPU vertex data of the three primitives
type GeometryStore struct {
	ctx   *gpu.Context
	cube  vertexArray
	plane vertexArray
	quad  vertexArray
}

// NewGeometryStore uploads cube, plane and quad
func NewGeometryStore(ctx *gpu.Context) *GeometryStore {
	g := &GeometryStore{ctx: ctx}
	g.cube.vao, g.cube.vbo = ctx.CreateVertexArray(CubeVertices, meshLayout)
	g.plane.vao, g.plane.vbo = ctx.CreateVertexArray(PlaneVertices, meshLayout)
	g.quad.vao, g.quad.vbo = ctx.CreateVertexArray(QuadVertices, quadLayout)
	return g
}

func (g *GeometryStore) draw(va vertexArray, count int32) {
	g.ctx.BindVertexArray(va.vao)
	g.ctx.DrawTriangles(0, count)
}

func (g *GeometryStore) DrawCube() { g.draw(g.cube, CubeVertexCount) }
func (g *GeometryStore) DrawPlane() { g.draw(g.plane, PlaneVertexCount) }
func (g *GeometryStore) DrawQuad() { g.draw(g.quad, QuadVertexCount) }

// Dispose cleans up OpenGL resources
func (g *GeometryStore) Dispose() {
	for _, va := range []vertexArray{g.cube, g.plane, g.quad} {
		if va.vao != 0 {
			g.ctx.DeleteVertexArray(va.vao, va.vbo)
		}
	}
	g.cube, g.plane, g.quad = vertexArray{}, vertexArray{}, vertexArray{}
}
