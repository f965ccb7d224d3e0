package core

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GL calls must stay on the thread that owns the context.
	runtime.LockOSThread()
}

type Window struct {
	Handle *glfw.Window
	Width  int // framebuffer pixels
	Height int
	Title  string

	fullscreen bool
	// windowed placement saved while fullscreen
	savedX, savedY, savedW, savedH int

	onResize func(width, height int)
	onKey    func(key int, mods ModifierKey)
}

type WindowConfig struct {
	Width      int
	Height     int
	Title      string
	Resizable  bool
	VSync      bool
	Fullscreen bool
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:     1280,
		Height:    720,
		Title:     "Deferred Engine",
		Resizable: true,
		VSync:     true,
	}
}

// NewWindow opens a window with a current OpenGL 4.1 core context carrying a
// 24-bit depth and 8-bit stencil default framebuffer.
func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.StencilBits, 8)
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))

	monitor := (*glfw.Monitor)(nil)
	width, height := config.Width, config.Height
	if config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()
		width, height = mode.Width, mode.Height
	}

	handle, err := glfw.CreateWindow(width, height, config.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()
	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	window := &Window{
		Handle:     handle,
		Title:      config.Title,
		fullscreen: config.Fullscreen,
		savedW:     config.Width,
		savedH:     config.Height,
	}
	window.Width, window.Height = handle.GetFramebufferSize()

	handle.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		window.Width = width
		window.Height = height
		if window.onResize != nil {
			window.onResize(width, height)
		}
	})
	handle.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press || window.onKey == nil {
			return
		}
		window.onKey(int(key), ModifierKey(mods))
	})

	return window, nil
}

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

func (w *Window) SetShouldClose(v bool) {
	w.Handle.SetShouldClose(v)
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

func (w *Window) GetFramebufferSize() (int, int) {
	return w.Handle.GetFramebufferSize()
}

func (w *Window) Viewport() Viewport {
	return Viewport{Width: w.Width, Height: w.Height}
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

func (w *Window) IsKeyPressed(key int) bool {
	return w.Handle.GetKey(glfw.Key(key)) == glfw.Press
}

func (w *Window) SetTitle(title string) {
	w.Handle.SetTitle(title)
	w.Title = title
}

func (w *Window) GetCursorPos() (float64, float64) {
	return w.Handle.GetCursorPos()
}

// OnResize registers the framebuffer-size handler. Sizes may be zero while
// the window is minimized.
func (w *Window) OnResize(cb func(width, height int)) {
	w.onResize = cb
}

// OnKeyPress registers a handler called once per key press (repeats ignored).
func (w *Window) OnKeyPress(cb func(key int, mods ModifierKey)) {
	w.onKey = cb
}

// SetCursorCaptured hides and locks the cursor for mouse look.
func (w *Window) SetCursorCaptured(captured bool) {
	mode := glfw.CursorNormal
	if captured {
		mode = glfw.CursorDisabled
	}
	w.Handle.SetInputMode(glfw.CursorMode, mode)
	if captured && glfw.RawMouseMotionSupported() {
		w.Handle.SetInputMode(glfw.RawMouseMotion, glfw.True)
	}
}

func (w *Window) IsFullscreen() bool {
	return w.fullscreen
}

// ToggleFullscreen switches between the primary monitor and the last
// windowed placement. The framebuffer-size callback fires afterwards.
func (w *Window) ToggleFullscreen() {
	if w.fullscreen {
		w.Handle.SetMonitor(nil, w.savedX, w.savedY, w.savedW, w.savedH, glfw.DontCare)
		w.fullscreen = false
		return
	}
	w.savedX, w.savedY = w.Handle.GetPos()
	w.savedW, w.savedH = w.Handle.GetSize()
	monitor := glfw.GetPrimaryMonitor()
	mode := monitor.GetVideoMode()
	w.Handle.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	w.fullscreen = true
}

// Time returns seconds since GLFW was initialised.
func Time() float64 {
	return glfw.GetTime()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

type ModifierKey int

// ModShift is set in the mods of a key press made while Shift is held.
const ModShift = ModifierKey(glfw.ModShift)

const (
	KeyMinus        = int(glfw.KeyMinus)
	KeyEqual        = int(glfw.KeyEqual)
	Key0            = int(glfw.Key0)
	KeyA            = int(glfw.KeyA)
	KeyD            = int(glfw.KeyD)
	KeyF            = int(glfw.KeyF)
	KeyH            = int(glfw.KeyH)
	KeyO            = int(glfw.KeyO)
	KeyS            = int(glfw.KeyS)
	KeyW            = int(glfw.KeyW)
	KeyLeftBracket  = int(glfw.KeyLeftBracket)
	KeyRightBracket = int(glfw.KeyRightBracket)
	KeyEscape       = int(glfw.KeyEscape)
	KeyF10          = int(glfw.KeyF10)
	KeyF12          = int(glfw.KeyF12)
	KeyLeftShift    = int(glfw.KeyLeftShift)
	KeyLeftControl  = int(glfw.KeyLeftControl)
	KeyLeftAlt      = int(glfw.KeyLeftAlt)
	KeyRightAlt     = int(glfw.KeyRightAlt)
)
