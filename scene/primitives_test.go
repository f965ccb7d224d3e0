package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolumeSphereContainsUnitSphere(t *testing.T) {
	for _, res := range [][2]int{{16, 8}, {12, 6}, {24, 12}} {
		m := CreateVolumeSphere(res[0], res[1])
		require.Zero(t, len(m.Indices)%3)
		for i := 0; i < len(m.Indices)/3; i++ {
			a, b, c := m.Triangle(i)
			n := b.Sub(a).Cross(c.Sub(a))
			require.Greater(t, n.Len(), float32(1e-6), "degenerate triangle %d", i)
			n = n.Normalize()
			// outward winding, and the face plane never cuts into the unit sphere
			assert.Greater(t, n.Dot(a), float32(0), "triangle %d winds inward", i)
			assert.GreaterOrEqual(t, n.Dot(a), float32(1-1e-4), "triangle %d plane inside unit sphere", i)
		}
	}
}

func TestPrimitivesWindOutward(t *testing.T) {
	meshes := []*Mesh{
		CreateSphere(2, 16, 8),
		CreateBox(1, 0.5, 2),
	}
	for _, m := range meshes {
		for i := 0; i < len(m.Indices)/3; i++ {
			a, b, c := m.Triangle(i)
			n := b.Sub(a).Cross(c.Sub(a))
			centroid := a.Add(b).Add(c).Mul(1.0 / 3)
			assert.Greater(t, n.Dot(centroid), float32(0), "%s triangle %d", m.Name, i)
		}
	}
}

func TestBoxExtents(t *testing.T) {
	m := CreateBox(1, 0.5, 2)
	assert.Len(t, m.Vertices, 24)
	assert.Len(t, m.Indices, 36)
	for _, v := range m.Vertices {
		assert.InDelta(t, 1, abs32(v.Position[0]), 1e-6)
		assert.InDelta(t, 0.5, abs32(v.Position[1]), 1e-6)
		assert.InDelta(t, 2, abs32(v.Position[2]), 1e-6)
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
