package pipeline

import "fmt"

// Subpass tells a VolumeTarget which half of the stencil technique a draw
// belongs to, so it can bind the matching program.
type Subpass int

const (
	SubpassMark Subpass = iota
	SubpassShade
)

func (s Subpass) String() string {
	if s == SubpassMark {
		return "mark"
	}
	return "shade"
}

// VolumeTarget is a surface the light-volume loop draws into: the GL
// lighting framebuffer, or a CPU raster in tests.
type VolumeTarget interface {
	ClearStencil()
	Apply(state PassState)
	DrawVolume(light int, sub Subpass)
}

// StencilScope is exclusive use of the shared stencil buffer for one light.
// Acquiring it clears the stencil, so no light sees another light's marks.
type StencilScope struct {
	target VolumeTarget
	light  int
	marked bool
}

func AcquireStencil(t VolumeTarget, light int) *StencilScope {
	t.ClearStencil()
	return &StencilScope{target: t, light: light}
}

// Mark runs the stencil-only subpass.
func (s *StencilScope) Mark() {
	s.target.Apply(VolumeMarkState)
	s.target.DrawVolume(s.light, SubpassMark)
	s.marked = true
}

// Shade runs the additive lighting subpass. It panics if Mark has not run in
// this scope: shading against a stale stencil leaks light.
func (s *StencilScope) Shade() {
	if !s.marked {
		panic(fmt.Sprintf("light volume %d shaded before its stencil was marked", s.light))
	}
	s.target.Apply(VolumeShadeState)
	s.target.DrawVolume(s.light, SubpassShade)
}

// RunVolumes shades count lights one at a time in index order and restores
// DefaultState afterwards. Lights never interleave: each one owns the
// stencil from clear to shade.
func RunVolumes(t VolumeTarget, count int) {
	if count <= 0 {
		return
	}
	for i := 0; i < count; i++ {
		scope := AcquireStencil(t, i)
		scope.Mark()
		scope.Shade()
	}
	t.Apply(DefaultState)
}
