package pipeline

// Mode selects which closed set of passes renders a frame.
type Mode int

const (
	ModeDeferred Mode = iota
	ModeForward
)

func (m Mode) String() string {
	switch m {
	case ModeDeferred:
		return "deferred"
	case ModeForward:
		return "forward"
	default:
		return "unknown"
	}
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeForward {
		return ModeDeferred
	}
	return ModeForward
}

// Pass identifies one stage of a frame.
type Pass int

const (
	PassGeometry Pass = iota
	PassSSAO
	PassLighting
	PassLightVolumes
	PassForward
	PassMarkers
	PassExposure
)

var passNames = [...]string{
	PassGeometry:     "geometry",
	PassSSAO:         "ssao",
	PassLighting:     "lighting",
	PassLightVolumes: "light-volumes",
	PassForward:      "forward",
	PassMarkers:      "markers",
	PassExposure:     "exposure",
}

func (p Pass) String() string {
	if p < 0 || int(p) >= len(passNames) {
		return "unknown"
	}
	return passNames[p]
}

// Plan is read once per frame to pick the passes that run.
type Plan struct {
	Mode Mode
	SSAO bool // deferred only
}

// Passes returns the ordered pass list. Every pass that reads depth comes
// after the pass that writes it, and exposure is always last.
func (p Plan) Passes() []Pass {
	if p.Mode == ModeForward {
		return []Pass{PassForward, PassMarkers, PassExposure}
	}
	passes := []Pass{PassGeometry}
	if p.SSAO {
		passes = append(passes, PassSSAO)
	}
	return append(passes, PassLighting, PassLightVolumes, PassMarkers, PassExposure)
}
