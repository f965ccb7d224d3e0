package pipeline

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// stencilRaster is a CPU reference for the light-volume loop. The camera
// sits at the origin looking down -Z; every pixel is one ray. Depth is kept
// as distance along the ray, which orders fragments the same way a depth
// buffer does.
type stencilRaster struct {
	w, h    int
	near    float32
	dirs    []mgl32.Vec3
	depth   []float32 // +Inf = cleared (no geometry)
	stencil []uint8
	color   []int // additive shade count

	spheres []testSphere
	state   PassState
	stats   []volumeStats
	clears  int
}

type testSphere struct {
	center mgl32.Vec3 // view space
	radius float32
}

type volumeStats struct {
	marked int // pixels with stencil > 0 after the mark subpass
	shaded int // fragments that passed both tests in the shade subpass
}

func newStencilRaster(w, h int, fovDeg float32) *stencilRaster {
	r := &stencilRaster{
		w: w, h: h,
		near:    0.1,
		dirs:    make([]mgl32.Vec3, w*h),
		depth:   make([]float32, w*h),
		stencil: make([]uint8, w*h),
		color:   make([]int, w*h),
		state:   DefaultState,
	}
	tanHalf := float32(math.Tan(float64(mgl32.DegToRad(fovDeg)) / 2))
	aspect := float32(w) / float32(h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			u := (float32(x)+0.5)/float32(w)*2 - 1
			v := (float32(y)+0.5)/float32(h)*2 - 1
			r.dirs[y*w+x] = mgl32.Vec3{u * tanHalf * aspect, v * tanHalf, -1}.Normalize()
		}
	}
	for i := range r.depth {
		r.depth[i] = float32(math.Inf(1))
	}
	return r
}

// wall fills the depth buffer with a plane facing the camera at z = -dist.
func (r *stencilRaster) wall(dist float32) {
	for i, d := range r.dirs {
		r.depth[i] = dist / -d[2]
	}
}

func (r *stencilRaster) addSphere(center mgl32.Vec3, radius float32) {
	r.spheres = append(r.spheres, testSphere{center, radius})
	r.stats = append(r.stats, volumeStats{})
}

// hit returns the near and far ray distances of sphere s along pixel i.
func (r *stencilRaster) hit(s testSphere, i int) (t0, t1 float32, ok bool) {
	oc := s.center.Mul(-1)
	b := r.dirs[i].Dot(oc)
	c := oc.Dot(oc) - s.radius*s.radius
	disc := b*b - c
	if disc < 0 {
		return 0, 0, false
	}
	sq := float32(math.Sqrt(float64(disc)))
	return -b - sq, -b + sq, true
}

func (r *stencilRaster) ClearStencil() {
	clear(r.stencil)
	r.clears++
}

func (r *stencilRaster) Apply(state PassState) { r.state = state }

func (r *stencilRaster) DrawVolume(light int, sub Subpass) {
	s := r.spheres[light]
	st := &r.stats[light]

	for i := range r.dirs {
		t0, t1, ok := r.hit(s, i)
		if !ok {
			continue
		}
		// culling back faces leaves the near surface, culling front faces the far one
		frag := t0
		if r.state.Cull == CullFront {
			frag = t1
		}
		if frag < r.near {
			continue // clipped by the near plane
		}
		r.fragment(i, frag, st)
	}

	if sub == SubpassMark {
		for _, v := range r.stencil {
			if v > 0 {
				st.marked++
			}
		}
	}
}

func (r *stencilRaster) fragment(i int, z float32, st *volumeStats) {
	ss := r.state.Stencil
	stencilPass := true
	if ss.Test {
		ref := float32(ss.Ref & ss.ReadMask)
		stored := float32(r.stencil[i] & ss.ReadMask)
		stencilPass = ss.Func.Test(ref, stored)
	}
	depthPass := !r.state.Depth.Test || r.state.Depth.Func.Test(z, r.depth[i])

	if ss.Test {
		op := ss.ZPass
		switch {
		case !stencilPass:
			op = ss.SFail
		case !depthPass:
			op = ss.ZFail
		}
		next := op.Apply(r.stencil[i], ss.Ref)
		r.stencil[i] = (r.stencil[i] &^ ss.WriteMask) | (next & ss.WriteMask)
	}
	if !stencilPass || !depthPass {
		return
	}
	if r.state.Depth.Write {
		r.depth[i] = z
	}
	if r.state.ColorWrite {
		r.color[i]++
		st.shaded++
	}
}

// footprint counts the pixels the sphere covers on screen.
func (r *stencilRaster) footprint(light int) int {
	n := 0
	for i := range r.dirs {
		if _, t1, ok := r.hit(r.spheres[light], i); ok && t1 >= r.near {
			n++
		}
	}
	return n
}

// insideCount is the analytic answer: pixels whose geometry lies within the
// sphere along the ray, where the near surface is behind the camera or in
// front of the geometry.
func (r *stencilRaster) insideCount(light int) int {
	s := r.spheres[light]
	n := 0
	for i := range r.dirs {
		t0, t1, ok := r.hit(s, i)
		if !ok || t1 < r.near {
			continue
		}
		d := r.depth[i]
		if d <= t1 && (t0 < r.near || t0 <= d) {
			n++
		}
	}
	return n
}
