package renderer

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"deferred-engine/config"
	"deferred-engine/core"
	"deferred-engine/pipeline"
	"deferred-engine/scene"
)

type fakeBackend struct {
	frames    []pipeline.Frame
	resizes   [][2]int
	resizeErr error
	text      [][]string
	destroyed bool
}

func (b *fakeBackend) Render(f pipeline.Frame) { b.frames = append(b.frames, f) }

func (b *fakeBackend) Resize(w, h int) error {
	if b.resizeErr != nil {
		return b.resizeErr
	}
	b.resizes = append(b.resizes, [2]int{w, h})
	return nil
}

func (b *fakeBackend) Exposure() float32 { return 1.5 }

func (b *fakeBackend) DrawText(lines []string, x, y int, c core.Color) {
	b.text = append(b.text, lines)
}

func (b *fakeBackend) Screenshot(dir string) (string, error) { return dir + "/shot.png", nil }

func (b *fakeBackend) Destroy() { b.destroyed = true }

func newTestEngine(t *testing.T, mutate func(*config.Config)) (*Engine, *fakeBackend, *observer.ObservedLogs) {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	obsCore, logs := observer.New(zapcore.DebugLevel)
	backend := &fakeBackend{}
	e := New(cfg, backend, nil, 1280, 720, zap.New(obsCore))
	return e, backend, logs
}

// nearPlane recovers the near distance from an OpenGL perspective matrix.
func nearPlane(m mgl32.Mat4) float32 {
	return m[14] / (m[10] - 1)
}

func TestEngineLightScenario(t *testing.T) {
	e, _, logs := newTestEngine(t, nil)
	require.Equal(t, 20, e.Lights().Len())

	e.AddLights(10)
	assert.Equal(t, 30, e.Lights().Len())

	assert.Equal(t, 30, e.RemoveLights(100))
	assert.Equal(t, 0, e.Lights().Len())
	warns := logs.FilterMessage("no more lights to remove").All()
	require.Len(t, warns, 1)
	assert.Equal(t, int64(100), warns[0].ContextMap()["requested"])
	assert.Equal(t, int64(30), warns[0].ContextMap()["available"])

	assert.Equal(t, 0, e.RemoveLights(5))
	assert.Equal(t, 0, e.Lights().Len())
	assert.Equal(t, 2, logs.FilterMessage("no more lights to remove").Len())
}

func TestEngineRemoveAllIsQuiet(t *testing.T) {
	e, _, logs := newTestEngine(t, nil)
	assert.Equal(t, 20, e.RemoveAllLights())
	assert.Zero(t, e.Lights().Len())
	assert.Zero(t, logs.FilterMessage("no more lights to remove").Len())
}

func TestEngineToggleForwardMode(t *testing.T) {
	e, backend, _ := newTestEngine(t, nil)
	cam := scene.NewCamera(mgl32.Vec3{0, 10, 25}, 0, 20)

	e.Render(e.Lights().Lights(), cam)
	assert.Equal(t, pipeline.ModeForward, e.ToggleForwardMode())
	e.Render(e.Lights().Lights(), cam)
	assert.Equal(t, pipeline.ModeDeferred, e.ToggleForwardMode())

	require.Len(t, backend.frames, 2)
	deferred, forward := backend.frames[0], backend.frames[1]

	assert.Equal(t, pipeline.Plan{Mode: pipeline.ModeDeferred, SSAO: true}, deferred.Plan)
	assert.Equal(t, pipeline.Plan{Mode: pipeline.ModeForward, SSAO: false}, forward.Plan)
	assert.InDelta(t, 0.1, nearPlane(deferred.Proj), 1e-4)
	assert.InDelta(t, 0.5, nearPlane(forward.Proj), 1e-4)
	assert.Equal(t, cam.View(), forward.View)
	assert.Len(t, forward.Lights, 20)
}

func TestEngineStartsInForwardMode(t *testing.T) {
	e, _, _ := newTestEngine(t, func(c *config.Config) { c.Forward = true })
	assert.Equal(t, pipeline.ModeForward, e.Mode())
}

func TestEngineToggleSSAO(t *testing.T) {
	e, backend, _ := newTestEngine(t, nil)
	cam := scene.NewCamera(mgl32.Vec3{}, 0, 0)

	assert.False(t, e.ToggleSSAO())
	e.Render(nil, cam)
	assert.False(t, backend.frames[0].Plan.SSAO)
	assert.NotContains(t, backend.frames[0].Plan.Passes(), pipeline.PassSSAO)
}

func TestEngineResize(t *testing.T) {
	e, backend, logs := newTestEngine(t, nil)
	cam := scene.NewCamera(mgl32.Vec3{}, 0, 0)

	require.NoError(t, e.Resize(0, 0))
	assert.Empty(t, backend.resizes, "zero-area resize never reaches the backend")
	assert.Equal(t, 1, logs.FilterMessage("ignoring zero-area resize").Len())

	e.Render(nil, cam)
	assert.Empty(t, backend.frames, "minimized surface draws nothing")

	require.NoError(t, e.Resize(800, 600))
	assert.Equal(t, [][2]int{{800, 600}}, backend.resizes)
	assert.Equal(t, core.Viewport{Width: 800, Height: 600}, e.Viewport())

	require.NoError(t, e.Resize(800, 600))
	assert.Len(t, backend.resizes, 1, "same size is a no-op")

	e.Render(nil, cam)
	require.Len(t, backend.frames, 1)
	assert.Equal(t, uint64(1), e.Frames())
}

func TestEngineResizeError(t *testing.T) {
	e, backend, _ := newTestEngine(t, nil)
	backend.resizeErr = pipeline.ErrIncompleteFramebuffer

	err := e.Resize(640, 480)
	assert.True(t, errors.Is(err, pipeline.ErrIncompleteFramebuffer))
	assert.Equal(t, core.Viewport{Width: 1280, Height: 720}, e.Viewport())
}

func TestEngineTextQueue(t *testing.T) {
	e, backend, _ := newTestEngine(t, nil)
	e.DrawText([]string{"a"}, 0, 0, core.ColorWhite)
	e.DrawText([]string{"b", "c"}, 0, 20, core.ColorWhite)
	e.Present()
	assert.Equal(t, [][]string{{"a"}, {"b", "c"}}, backend.text)

	e.Present()
	assert.Len(t, backend.text, 2, "queue is flushed once")
}

func TestEngineUpdateMovesLights(t *testing.T) {
	e, _, _ := newTestEngine(t, nil)
	before := e.Lights().Lights()[0].Position
	e.Update(1)
	assert.NotEqual(t, before, e.Lights().Lights()[0].Position)
	assert.InDelta(t, 1.5, e.Exposure(), 1e-6)

	e.Destroy()
}
