package scene

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeGLTF saves a document with one position-only indexed triangle and,
// optionally, a point-list primitive that the loader must skip.
func writeGLTF(t *testing.T, withPoints bool) string {
	t.Helper()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {0, 0, 1}, {1, 0, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})

	prims := []*gltf.Primitive{{
		Indices:    gltf.Index(idx),
		Attributes: gltf.PrimitiveAttributes{gltf.POSITION: pos},
	}}
	if withPoints {
		prims = append(prims, &gltf.Primitive{
			Mode:       gltf.PrimitivePoints,
			Attributes: gltf.PrimitiveAttributes{gltf.POSITION: pos},
		})
	}
	doc.Meshes = []*gltf.Mesh{{Name: "tri", Primitives: prims}}

	path := filepath.Join(t.TempDir(), "tri.gltf")
	require.NoError(t, gltf.Save(doc, path))
	return path
}

func TestLoadGLTFGeneratesNormals(t *testing.T) {
	m, err := LoadMesh(writeGLTF(t, true))
	require.NoError(t, err)

	assert.Equal(t, "tri_p0", m.Name)
	assert.Equal(t, []uint32{0, 1, 2}, m.Indices)
	require.Len(t, m.Vertices, 3)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, m.Vertices[2].Position)
	for i, v := range m.Vertices {
		assert.True(t, v.Normal.ApproxEqual(mgl32.Vec3{0, 1, 0}), "vertex %d normal %v", i, v.Normal)
	}
}

func TestLoadGLTFSkipsNonTriangles(t *testing.T) {
	meshes, err := LoadGLTF(writeGLTF(t, true))
	require.NoError(t, err)
	assert.Len(t, meshes, 1, "the point-list primitive is dropped")
}

func TestLoadGLTFErrors(t *testing.T) {
	_, err := LoadGLTF(filepath.Join(t.TempDir(), "missing.gltf"))
	assert.Error(t, err)

	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}})
	doc.Meshes = []*gltf.Mesh{{Primitives: []*gltf.Primitive{{
		Mode:       gltf.PrimitivePoints,
		Attributes: gltf.PrimitiveAttributes{gltf.POSITION: pos},
	}}}}
	path := filepath.Join(t.TempDir(), "points.gltf")
	require.NoError(t, gltf.Save(doc, path))

	_, err = LoadGLTF(path)
	assert.True(t, errors.Is(err, ErrNoGeometry), "got %v", err)
}
