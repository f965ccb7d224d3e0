package scene

import (
	stdmath "math"

	"github.com/go-gl/mathgl/mgl32"

	"deferred-engine/core"
)

// All generators emit counter-clockwise triangles when viewed from outside.

// CreateSphere generates a UV-sphere mesh
func CreateSphere(radius float32, segments, rings int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	var vertices []core.Vertex
	var indices []uint32

	for ring := 0; ring <= rings; ring++ {
		phi := float64(ring) * stdmath.Pi / float64(rings)
		sinPhi := float32(stdmath.Sin(phi))
		cosPhi := float32(stdmath.Cos(phi))

		for seg := 0; seg <= segments; seg++ {
			theta := float64(seg) * 2.0 * stdmath.Pi / float64(segments)
			normal := mgl32.Vec3{
				sinPhi * float32(stdmath.Cos(theta)),
				cosPhi,
				sinPhi * float32(stdmath.Sin(theta)),
			}
			vertices = append(vertices, core.Vertex{
				Position: normal.Mul(radius),
				Normal:   normal,
				UV:       mgl32.Vec2{float32(seg) / float32(segments), float32(ring) / float32(rings)},
			})
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint32(ring*(segments+1) + seg)
			next := current + uint32(segments+1)

			// the pole rows would only produce zero-area triangles
			if ring != 0 {
				indices = append(indices, current, current+1, next)
			}
			if ring != rings-1 {
				indices = append(indices, current+1, next+1, next)
			}
		}
	}

	return CreateMeshFromData("Sphere", vertices, indices)
}

// CreateVolumeSphere returns a low-poly sphere that fully contains the unit
// sphere. Light volumes are drawn with it scaled to the effect radius, so no
// lit pixel can fall between the tessellated faces and the true sphere.
func CreateVolumeSphere(segments, rings int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}
	step := stdmath.Max(stdmath.Pi/float64(rings), 2*stdmath.Pi/float64(segments))
	m := CreateSphere(float32(1/stdmath.Cos(step)), segments, rings)
	m.Name = "LightVolume"
	return m
}

// CreateTorus generates a torus lying in the XZ plane.
func CreateTorus(majorRadius, minorRadius float32, majorSegments, minorSegments int) *Mesh {
	if majorSegments < 3 {
		majorSegments = 3
	}
	if minorSegments < 3 {
		minorSegments = 3
	}

	var vertices []core.Vertex
	var indices []uint32

	for i := 0; i <= majorSegments; i++ {
		theta := float64(i) * 2.0 * stdmath.Pi / float64(majorSegments)
		cosTheta := float32(stdmath.Cos(theta))
		sinTheta := float32(stdmath.Sin(theta))

		for j := 0; j <= minorSegments; j++ {
			phi := float64(j) * 2.0 * stdmath.Pi / float64(minorSegments)
			cosPhi := float32(stdmath.Cos(phi))
			sinPhi := float32(stdmath.Sin(phi))

			ring := majorRadius + minorRadius*cosPhi
			vertices = append(vertices, core.Vertex{
				Position: mgl32.Vec3{ring * cosTheta, minorRadius * sinPhi, ring * sinTheta},
				Normal:   mgl32.Vec3{cosPhi * cosTheta, sinPhi, cosPhi * sinTheta}.Normalize(),
				UV:       mgl32.Vec2{float32(i) / float32(majorSegments), float32(j) / float32(minorSegments)},
			})
		}
	}

	for i := 0; i < majorSegments; i++ {
		for j := 0; j < minorSegments; j++ {
			current := uint32(i*(minorSegments+1) + j)
			next := uint32((i+1)*(minorSegments+1) + j)

			indices = append(indices, current, current+1, next)
			indices = append(indices, current+1, next+1, next)
		}
	}

	return CreateMeshFromData("Torus", vertices, indices)
}

// CreateBox generates an axis-aligned box centred on the origin with flat
// per-face normals.
func CreateBox(halfX, halfY, halfZ float32) *Mesh {
	faces := []struct {
		normal, u, v mgl32.Vec3
	}{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	}
	half := mgl32.Vec3{halfX, halfY, halfZ}
	scale := func(v mgl32.Vec3) mgl32.Vec3 {
		return mgl32.Vec3{v[0] * half[0], v[1] * half[1], v[2] * half[2]}
	}

	vertices := make([]core.Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		base := uint32(len(vertices))
		corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
		for _, c := range corners {
			p := f.normal.Add(f.u.Mul(c[0])).Add(f.v.Mul(c[1]))
			vertices = append(vertices, core.Vertex{
				Position: scale(p),
				Normal:   f.normal,
				UV:       mgl32.Vec2{(c[0] + 1) / 2, (c[1] + 1) / 2},
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return CreateMeshFromData("Box", vertices, indices)
}
