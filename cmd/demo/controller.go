package main

import (
	"deferred-engine/core"
	"deferred-engine/scene"
)

// input is the part of core.Window the controller polls.
type input interface {
	IsKeyPressed(key int) bool
	GetCursorPos() (float64, float64)
}

// CameraController flies the camera with WASD and looks around with the
// mouse while the cursor is captured.
type CameraController struct {
	moveSpeed float32 // units per second
	lookSpeed float32 // degrees per pixel

	captured   bool
	firstMouse bool
	lastMouseX float64
	lastMouseY float64
}

func NewCameraController(moveSpeed, lookSpeed float32) *CameraController {
	return &CameraController{
		moveSpeed:  moveSpeed,
		lookSpeed:  lookSpeed,
		firstMouse: true,
	}
}

// SetCaptured enables mouse look. The next cursor sample only re-anchors.
func (cc *CameraController) SetCaptured(captured bool) {
	cc.captured = captured
	cc.firstMouse = true
}

func (cc *CameraController) Captured() bool { return cc.captured }

func (cc *CameraController) Update(in input, camera *scene.Camera, deltaTime float32) {
	// long stalls (window drag, breakpoints) would teleport the camera
	if deltaTime > 0.1 {
		deltaTime = 0.1
	}

	if cc.captured {
		mouseX, mouseY := in.GetCursorPos()
		if cc.firstMouse {
			cc.lastMouseX, cc.lastMouseY = mouseX, mouseY
			cc.firstMouse = false
		}
		dx := float32(mouseX - cc.lastMouseX)
		dy := float32(mouseY - cc.lastMouseY)
		cc.lastMouseX, cc.lastMouseY = mouseX, mouseY
		if dx != 0 || dy != 0 {
			camera.Rotate(dx*cc.lookSpeed, dy*cc.lookSpeed)
		}
	}

	speed := cc.moveSpeed
	if in.IsKeyPressed(core.KeyLeftShift) {
		speed *= 4
	}
	if in.IsKeyPressed(core.KeyLeftControl) {
		speed /= 4
	}
	step := speed * deltaTime

	var forward, right float32
	if in.IsKeyPressed(core.KeyW) {
		forward += step
	}
	if in.IsKeyPressed(core.KeyS) {
		forward -= step
	}
	if in.IsKeyPressed(core.KeyD) {
		right += step
	}
	if in.IsKeyPressed(core.KeyA) {
		right -= step
	}
	if forward != 0 || right != 0 {
		camera.Move(forward, right, 0)
	}
}
