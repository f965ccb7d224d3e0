package pipeline

// CompareFunc is a depth or stencil comparison. Test reports whether an
// incoming value passes against the stored one, with GL semantics
// (incoming OP stored).
type CompareFunc int

const (
	CompareNever CompareFunc = iota
	CompareLess
	CompareLessEqual
	CompareEqual
	CompareGreater
	CompareGreaterEqual
	CompareNotEqual
	CompareAlways
)

func (f CompareFunc) Test(incoming, stored float32) bool {
	switch f {
	case CompareLess:
		return incoming < stored
	case CompareLessEqual:
		return incoming <= stored
	case CompareEqual:
		return incoming == stored
	case CompareGreater:
		return incoming > stored
	case CompareGreaterEqual:
		return incoming >= stored
	case CompareNotEqual:
		return incoming != stored
	case CompareAlways:
		return true
	}
	return false
}

type StencilOp int

const (
	StencilKeep StencilOp = iota
	StencilZero
	StencilReplace
	StencilIncr // saturating
	StencilDecr // saturating
)

// Apply returns the new stencil value.
func (op StencilOp) Apply(v, ref uint8) uint8 {
	switch op {
	case StencilZero:
		return 0
	case StencilReplace:
		return ref
	case StencilIncr:
		if v < 0xff {
			return v + 1
		}
	case StencilDecr:
		if v > 0 {
			return v - 1
		}
	}
	return v
}

// CullFace names the faces that are discarded.
type CullFace int

const (
	CullNone CullFace = iota
	CullBack
	CullFront
)

type BlendMode int

const (
	BlendNone     BlendMode = iota
	BlendAdditive           // ONE, ONE
	BlendAlpha              // SRC_ALPHA, ONE_MINUS_SRC_ALPHA
)

type DepthState struct {
	Test  bool
	Func  CompareFunc
	Write bool
}

type StencilState struct {
	Test      bool
	Func      CompareFunc
	Ref       uint8
	ReadMask  uint8
	WriteMask uint8
	// ops for stencil fail, depth fail, depth pass
	SFail, ZFail, ZPass StencilOp
}

// PassState is the fixed-function state a pass draws with. The GL backend
// applies it verbatim; tests evaluate it on a CPU raster.
type PassState struct {
	Name       string
	Depth      DepthState
	Stencil    StencilState
	Cull       CullFace
	Blend      BlendMode
	ColorWrite bool
}

var stencilOff = StencilState{Func: CompareAlways, ReadMask: 0xff, WriteMask: 0xff}

// DefaultState is what every pass may assume on entry and what the light
// volume loop restores on exit.
var DefaultState = PassState{
	Name:       "default",
	Depth:      DepthState{Test: true, Func: CompareLess, Write: true},
	Stencil:    stencilOff,
	Cull:       CullBack,
	ColorWrite: true,
}

var GeometryState = DefaultState.named("geometry")

// FullscreenCoverState draws a quad at depth 1 that only lands on pixels
// with geometry in front of the cleared far depth. Used by the lighting and
// SSAO passes.
var FullscreenCoverState = PassState{
	Name:       "fullscreen-cover",
	Depth:      DepthState{Test: true, Func: CompareGreater, Write: false},
	Stencil:    stencilOff,
	Cull:       CullNone,
	ColorWrite: true,
}

// VolumeMarkState rasterizes the near faces of a light volume and counts
// pixels whose geometry lies in front of them.
var VolumeMarkState = PassState{
	Name:  "volume-mark",
	Depth: DepthState{Test: true, Func: CompareLessEqual, Write: false},
	Stencil: StencilState{
		Test:      true,
		Func:      CompareAlways,
		ReadMask:  0xff,
		WriteMask: 0xff,
		SFail:     StencilKeep,
		ZFail:     StencilIncr,
		ZPass:     StencilKeep,
	},
	Cull:       CullBack,
	ColorWrite: false,
}

// VolumeShadeState rasterizes the far faces and shades pixels whose
// geometry lies in front of them and was not marked.
var VolumeShadeState = PassState{
	Name:  "volume-shade",
	Depth: DepthState{Test: true, Func: CompareGreaterEqual, Write: false},
	Stencil: StencilState{
		Test:      true,
		Func:      CompareEqual,
		Ref:       0,
		ReadMask:  0xff,
		WriteMask: 0xff,
	},
	Cull:       CullFront,
	Blend:      BlendAdditive,
	ColorWrite: true,
}

var ForwardDepthState = PassState{
	Name:    "forward-depth",
	Depth:   DepthState{Test: true, Func: CompareLess, Write: true},
	Stencil: stencilOff,
	Cull:    CullBack,
}

var ForwardBaseState = PassState{
	Name:       "forward-base",
	Depth:      DepthState{Test: true, Func: CompareLessEqual, Write: false},
	Stencil:    stencilOff,
	Cull:       CullBack,
	ColorWrite: true,
}

var ForwardLightState = PassState{
	Name:       "forward-light",
	Depth:      DepthState{Test: true, Func: CompareLessEqual, Write: false},
	Stencil:    stencilOff,
	Cull:       CullBack,
	Blend:      BlendAdditive,
	ColorWrite: true,
}

var MarkerState = PassState{
	Name:       "markers",
	Depth:      DepthState{Test: true, Func: CompareLess, Write: true},
	Stencil:    stencilOff,
	Cull:       CullNone,
	ColorWrite: true,
}

var ToneMapState = PassState{
	Name:       "tonemap",
	Depth:      DepthState{Test: false, Func: CompareAlways},
	Stencil:    stencilOff,
	Cull:       CullNone,
	ColorWrite: true,
}

// OverlayState draws alpha-blended HUD quads over the tone-mapped image.
var OverlayState = PassState{
	Name:       "overlay",
	Depth:      DepthState{Test: false, Func: CompareAlways},
	Stencil:    stencilOff,
	Cull:       CullNone,
	Blend:      BlendAlpha,
	ColorWrite: true,
}

func (s PassState) named(name string) PassState {
	s.Name = name
	return s
}
