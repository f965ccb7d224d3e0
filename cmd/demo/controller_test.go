package main

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"deferred-engine/core"
	"deferred-engine/scene"
)

type fakeInput struct {
	keys   map[int]bool
	cx, cy float64
}

func (in *fakeInput) IsKeyPressed(key int) bool        { return in.keys[key] }
func (in *fakeInput) GetCursorPos() (float64, float64) { return in.cx, in.cy }

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	assert.True(t, want.ApproxEqualThreshold(got, 1e-4), "want %v, got %v", want, got)
}

func TestCameraControllerMove(t *testing.T) {
	cc := NewCameraController(4, 0.1)
	in := &fakeInput{keys: map[int]bool{core.KeyW: true}}
	cam := scene.NewCamera(mgl32.Vec3{}, 0, 0)

	cc.Update(in, cam, 0.05)
	assertVec(t, mgl32.Vec3{0, 0, -0.2}, cam.Position)

	in.keys = map[int]bool{core.KeyD: true, core.KeyLeftShift: true}
	cc.Update(in, cam, 0.05)
	assertVec(t, mgl32.Vec3{0.8, 0, -0.2}, cam.Position)

	in.keys = map[int]bool{core.KeyS: true, core.KeyA: true, core.KeyLeftControl: true}
	cc.Update(in, cam, 0.05)
	assertVec(t, mgl32.Vec3{0.75, 0, -0.15}, cam.Position)
}

func TestCameraControllerClampsDelta(t *testing.T) {
	cc := NewCameraController(1, 0.1)
	in := &fakeInput{keys: map[int]bool{core.KeyW: true}}
	cam := scene.NewCamera(mgl32.Vec3{}, 0, 0)

	cc.Update(in, cam, 5)
	assertVec(t, mgl32.Vec3{0, 0, -0.1}, cam.Position)
}

func TestCameraControllerMouseLook(t *testing.T) {
	cc := NewCameraController(1, 0.1)
	in := &fakeInput{cx: 100, cy: 100}
	cam := scene.NewCamera(mgl32.Vec3{}, 0, 0)

	// not captured: cursor motion is ignored
	in.cx = 500
	cc.Update(in, cam, 0.016)
	assert.Zero(t, cam.Yaw)

	cc.SetCaptured(true)
	cc.Update(in, cam, 0.016)
	assert.Zero(t, cam.Yaw, "first captured sample only anchors")

	in.cx, in.cy = 510, 120
	cc.Update(in, cam, 0.016)
	assert.InDelta(t, 1, cam.Yaw, 1e-4)
	assert.InDelta(t, 2, cam.Pitch, 1e-4)

	cc.SetCaptured(false)
	assert.False(t, cc.Captured())
}
