package scene

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"deferred-engine/core"
)

// ErrNoGeometry is returned when an asset contains no drawable object.
var ErrNoGeometry = errors.New("no geometry")

// Mesh holds CPU-side vertex/index data.
// GPU upload is managed by the renderer backend.
type Mesh struct {
	Name     string
	Vertices []core.Vertex
	Indices  []uint32 // empty: draw Vertices as a triangle list

	// GPUData is set by the renderer backend (e.g. *opengl.gpuMesh).
	GPUData interface{}

	bounds    AABB
	hasBounds bool
}

func CreateMeshFromData(name string, vertices []core.Vertex, indices []uint32) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
}

// DrawCount is the number of vertices a draw call submits.
func (m *Mesh) DrawCount() int {
	if len(m.Indices) > 0 {
		return len(m.Indices)
	}
	return len(m.Vertices)
}

// Bounds is the local-space AABB of the vertices, computed on first use.
// Vertices must not change afterwards.
func (m *Mesh) Bounds() AABB {
	if m.hasBounds || len(m.Vertices) == 0 {
		return m.bounds
	}
	first := m.Vertices[0].Position
	m.bounds = AABB{Min: first, Max: first}
	for i := 1; i < len(m.Vertices); i++ {
		m.bounds.extend(m.Vertices[i].Position)
	}
	m.hasBounds = true
	return m.bounds
}

// Triangle returns the positions of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c mgl32.Vec3) {
	idx := func(k int) int {
		if len(m.Indices) > 0 {
			return int(m.Indices[k])
		}
		return k
	}
	return m.Vertices[idx(3*i)].Position,
		m.Vertices[idx(3*i+1)].Position,
		m.Vertices[idx(3*i+2)].Position
}

// Object is a mesh placed in the world with a flat surface color.
type Object struct {
	Mesh     *Mesh
	World    mgl32.Mat4
	Albedo   mgl32.Vec3
	Specular float32 // written to the G-buffer albedo alpha
}
