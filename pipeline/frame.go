package pipeline

import (
	"github.com/go-gl/mathgl/mgl32"

	"deferred-engine/core"
	"deferred-engine/scene"
)

// Frame is everything a backend consumes to draw one frame. Lights must
// already be updated for this frame; nothing rewrites them until the next.
type Frame struct {
	Plan        Plan
	Objects     []scene.Object
	Lights      []scene.Light
	Attenuation scene.Attenuation

	View      mgl32.Mat4
	Proj      mgl32.Mat4
	CameraPos mgl32.Vec3
}

// Environment is the light that does not come from the point lights. Both
// modes use the same values so switching modes does not change the base
// image.
type Environment struct {
	Ambient  mgl32.Vec3
	SunDir   mgl32.Vec3 // towards the sun
	SunColor mgl32.Vec3
	Clear    mgl32.Vec3 // lighting buffer clear color
}

func DefaultEnvironment() Environment {
	return Environment{
		Ambient:  mgl32.Vec3{0.05, 0.05, 0.06},
		SunDir:   mgl32.Vec3{0.3, 1, 0.2}.Normalize(),
		SunColor: mgl32.Vec3{0.1, 0.1, 0.09},
		Clear:    core.ColorSky.Vec3(),
	}
}

// Culler drops the lights and objects a frame cannot show. It reuses its
// slices between frames, so a culled Frame is only valid until the next
// call.
type Culler struct {
	lights  []scene.Light
	objects []scene.Object
}

// Cull returns f restricted to lights whose effect sphere and objects whose
// bounds touch the view frustum. A light entirely outside the frustum cannot
// light a visible pixel, and its marker lies inside the same sphere.
func (c *Culler) Cull(f Frame) Frame {
	fr := scene.FrustumFromVP(f.Proj.Mul4(f.View))

	c.lights = c.lights[:0]
	for i := range f.Lights {
		if fr.IntersectsSphere(f.Lights[i].Position, f.Lights[i].Radius) {
			c.lights = append(c.lights, f.Lights[i])
		}
	}
	c.objects = c.objects[:0]
	for i := range f.Objects {
		o := &f.Objects[i]
		if scene.ComputeAABB(o.Mesh, o.World).IntersectsFrustum(&fr) {
			c.objects = append(c.objects, *o)
		}
	}
	f.Lights, f.Objects = c.lights, c.objects
	return f
}
