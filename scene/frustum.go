package scene

import "github.com/go-gl/mathgl/mgl32"

// Plane represents a half-space: Normal·p + D >= 0 is inside.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// DistanceTo returns the signed distance from a point to the plane.
// Positive means on the inside.
func (p Plane) DistanceTo(pt mgl32.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum holds the six clip planes of a view frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumFromVP extracts the six frustum planes from a column-major
// view-projection matrix (Gribb/Hartmann). The planes are normalized so
// DistanceTo returns a true distance in world units.
func FrustumFromVP(vp mgl32.Mat4) Frustum {
	r0, r1, r2, r3 := vp.Row(0), vp.Row(1), vp.Row(2), vp.Row(3)

	var f Frustum
	f.Planes[0] = planeFrom(r3.Add(r0))
	f.Planes[1] = planeFrom(r3.Sub(r0))
	f.Planes[2] = planeFrom(r3.Add(r1))
	f.Planes[3] = planeFrom(r3.Sub(r1))
	f.Planes[4] = planeFrom(r3.Add(r2))
	f.Planes[5] = planeFrom(r3.Sub(r2))
	return f
}

func planeFrom(v mgl32.Vec4) Plane {
	n := v.Vec3()
	l := n.Len()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: n.Mul(1 / l), D: v[3] / l}
}

// IntersectsSphere returns false if the sphere is completely outside.
func (f *Frustum) IntersectsSphere(center mgl32.Vec3, radius float32) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceTo(center) < -radius {
			return false
		}
	}
	return true
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// IntersectsFrustum returns false if the AABB is completely outside the frustum.
// For each plane only the corner furthest along the normal is tested.
func (box AABB) IntersectsFrustum(f *Frustum) bool {
	for i := range f.Planes {
		p := f.Planes[i]
		var pv mgl32.Vec3
		for axis := 0; axis < 3; axis++ {
			pv[axis] = box.Max[axis]
			if p.Normal[axis] < 0 {
				pv[axis] = box.Min[axis]
			}
		}
		if p.DistanceTo(pv) < 0 {
			return false
		}
	}
	return true
}

// Transform returns the world-space box enclosing the 8 transformed corners.
func (box AABB) Transform(m mgl32.Mat4) AABB {
	mn, mx := box.Min, box.Max
	var out AABB
	for i := 0; i < 8; i++ {
		corner := mgl32.Vec3{mn[0], mn[1], mn[2]}
		if i&1 != 0 {
			corner[0] = mx[0]
		}
		if i&2 != 0 {
			corner[1] = mx[1]
		}
		if i&4 != 0 {
			corner[2] = mx[2]
		}
		wp := mgl32.TransformCoordinate(corner, m)
		if i == 0 {
			out = AABB{Min: wp, Max: wp}
			continue
		}
		out.extend(wp)
	}
	return out
}

func (box *AABB) extend(p mgl32.Vec3) {
	for axis := 0; axis < 3; axis++ {
		box.Min[axis] = min(box.Min[axis], p[axis])
		box.Max[axis] = max(box.Max[axis], p[axis])
	}
}

// ComputeAABB computes the world-space AABB for a mesh transformed by
// worldMatrix from the mesh's cached local bounds.
func ComputeAABB(mesh *Mesh, worldMatrix mgl32.Mat4) AABB {
	return mesh.Bounds().Transform(worldMatrix)
}
