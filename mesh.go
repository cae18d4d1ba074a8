package battery

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	// ErrMissingShader is returned when a mesh is built without shader source
	// or the source does not compile.
	ErrMissingShader = errors.New("missing shader")
	// ErrMissingTexture is returned when the matcap or light texture is absent.
	ErrMissingTexture = errors.New("missing texture")
	// ErrTextureSize is returned when the matcap and light textures differ in
	// size; the shader samples both with the same coordinates.
	ErrTextureSize = errors.New("matcap and light textures differ in size")
)

// Assets are the inputs of a Mesh.
type Assets struct {
	Geometry *Geometry
	Shader   []byte
	Matcap   *ebiten.Image
	Light    *ebiten.Image
}

// validate checks assets without touching the GPU.
func (a Assets) validate() error {
	if err := a.Geometry.Validate(); err != nil {
		return err
	}
	if len(a.Shader) == 0 {
		return ErrMissingShader
	}
	if a.Matcap == nil {
		return fmt.Errorf("%w: matcap", ErrMissingTexture)
	}
	if a.Light == nil {
		return fmt.Errorf("%w: light", ErrMissingTexture)
	}
	if a.Matcap.Bounds().Size() != a.Light.Bounds().Size() {
		return fmt.Errorf("%w: %v vs %v", ErrTextureSize, a.Matcap.Bounds().Size(), a.Light.Bounds().Size())
	}
	return nil
}

// Mesh draws a Geometry with a matcap shader. It has a time uniform that
// Render updates; it is drawn without culling, both windings, with triangles
// sorted back to front.
type Mesh struct {
	node     *Node
	geometry *Geometry
	shader   *ebiten.Shader
	matcap   *ebiten.Image
	light    *ebiten.Image

	uniforms map[string]any
	time     float32
	shaderOp ebiten.DrawTrianglesShaderOptions

	// preallocated per-frame buffers
	verts  []ebiten.Vertex
	depth  []float64
	order  []int
	sorted []uint16
}

// NewMesh validates assets, compiles the shader, and returns a mesh with its
// own node. Any missing asset is an error.
func NewMesh(name string, assets Assets) (*Mesh, error) {
	if err := assets.validate(); err != nil {
		return nil, err
	}
	shader, err := ebiten.NewShader(assets.Shader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingShader, err)
	}
	m := &Mesh{
		geometry: assets.Geometry,
		shader:   shader,
		matcap:   assets.Matcap,
		light:    assets.Light,
		uniforms: map[string]any{"Time": float32(0)},
	}
	m.node = newMeshNode(name, m)
	return m, nil
}

// Node returns the mesh's scene graph node.
func (m *Mesh) Node() *Node {
	return m.node
}

// Render sets the time uniform.
func (m *Mesh) Render(t float64) {
	m.time = float32(t)
	m.uniforms["Time"] = m.time
}

// Time returns the last time uniform value.
func (m *Mesh) Time() float32 {
	return m.time
}

// Resize marks the mesh node dirty so its world matrix is recomputed against
// the parent's new layout.
func (m *Mesh) Resize() {
	m.node.MarkDirty()
}

// draw projects the geometry with the node's world matrix and viewProj and
// submits it to dst. Returns the number of triangles drawn.
func (m *Mesh) draw(dst *ebiten.Image, viewProj mgl64.Mat4, viewport Size) int {
	world := m.node.world
	normalMat := world.Mat3()
	if det := normalMat.Det(); det > -1e-12 && det < 1e-12 {
		// Zero scale: nothing to see.
		return 0
	}
	normalMat = normalMat.Inv().Transpose()
	mvp := viewProj.Mul4(world)

	g := m.geometry
	n := len(g.Positions)
	if cap(m.verts) < n {
		m.verts = make([]ebiten.Vertex, n)
		m.depth = make([]float64, n)
	}
	m.verts = m.verts[:n]
	m.depth = m.depth[:n]

	tw := float64(m.matcap.Bounds().Dx())
	th := float64(m.matcap.Bounds().Dy())
	for i, p := range g.Positions {
		clip := mvp.Mul4x1(p.Vec4(1))
		ndc := clip.Vec3().Mul(1 / clip[3])
		nv := normalMat.Mul3x1(g.Normals[i]).Normalize()
		m.verts[i] = ebiten.Vertex{
			DstX:   float32((ndc[0] + 1) / 2 * viewport.W),
			DstY:   float32((1 - ndc[1]) / 2 * viewport.H),
			SrcX:   float32((nv[0]*0.5 + 0.5) * (tw - 1)),
			SrcY:   float32((0.5 - nv[1]*0.5) * (th - 1)),
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		}
		m.depth[i] = ndc[2]
	}

	m.sortTriangles()

	m.shaderOp.Images[0] = m.matcap
	m.shaderOp.Images[1] = m.light
	m.shaderOp.Uniforms = m.uniforms
	dst.DrawTrianglesShader(m.verts, m.sorted, m.shader, &m.shaderOp)
	return len(m.sorted) / 3
}

// sortTriangles fills m.sorted with the geometry's triangles ordered far to
// near (painter's algorithm; there is no depth buffer).
func (m *Mesh) sortTriangles() {
	idx := m.geometry.Indices
	tris := len(idx) / 3
	if cap(m.order) < tris {
		m.order = make([]int, tris)
	}
	m.order = m.order[:tris]
	for i := range m.order {
		m.order[i] = i
	}
	triDepth := func(t int) float64 {
		return m.depth[idx[3*t]] + m.depth[idx[3*t+1]] + m.depth[idx[3*t+2]]
	}
	slices.SortStableFunc(m.order, func(a, b int) int {
		da, db := triDepth(a), triDepth(b)
		switch {
		case da > db:
			return -1
		case da < db:
			return 1
		}
		return 0
	})
	m.sorted = m.sorted[:0]
	for _, t := range m.order {
		m.sorted = append(m.sorted, idx[3*t], idx[3*t+1], idx[3*t+2])
	}
}
