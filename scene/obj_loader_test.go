package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadOBJ = `
# two objects sharing one vertex pool
o Quad
v -1 0 -1
v  1 0 -1
v  1 0  1
v -1 0  1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 1 0
f 1/1/1 4/4/1 3/3/1 2/2/1
o Tri
v 0 1 0
f -3 -2 -1
`

func TestParseOBJObjects(t *testing.T) {
	meshes, err := ParseOBJ(strings.NewReader(quadOBJ))
	require.NoError(t, err)
	require.Len(t, meshes, 2)

	quad := meshes[0]
	assert.Equal(t, "Quad", quad.Name)
	assert.Len(t, quad.Vertices, 4)
	assert.Len(t, quad.Indices, 6, "quad fan-triangulates to two triangles")
	for _, v := range quad.Vertices {
		assert.Equal(t, float32(1), v.Normal[1])
	}
	assert.Equal(t, float32(1), quad.Vertices[2].UV[0])

	tri := meshes[1]
	assert.Equal(t, "Tri", tri.Name)
	require.Len(t, tri.Indices, 3)
	a, b, c := tri.Triangle(0)
	assert.Equal(t, float32(1), a[0]) // v 3 via -3
	assert.Equal(t, float32(-1), b[0])
	assert.Equal(t, float32(1), c[1])
}

func TestParseOBJGeneratesNormals(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	meshes, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, meshes, 1)
	for _, v := range meshes[0].Vertices {
		assert.InDeltaSlice(t, []float32{0, 0, 1}, v.Normal[:], 1e-6)
	}
}

func TestParseOBJErrors(t *testing.T) {
	_, err := ParseOBJ(strings.NewReader("v 1 2 3\n"))
	assert.ErrorIs(t, err, ErrNoGeometry)

	_, err = ParseOBJ(strings.NewReader("v 1 nope 3\nf 1 1 1\n"))
	assert.Error(t, err)

	_, err = ParseOBJ(strings.NewReader("vt 1\n"))
	assert.Error(t, err)
}

func TestLoadMeshPicksFirstObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.obj")
	require.NoError(t, os.WriteFile(path, []byte(quadOBJ), 0o644))

	m, err := LoadMesh(path)
	require.NoError(t, err)
	assert.Equal(t, "Quad", m.Name)

	_, err = LoadMesh(filepath.Join(t.TempDir(), "scene.fbx"))
	assert.Error(t, err)
}
