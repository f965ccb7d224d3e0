package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCameraFront(t *testing.T) {
	c := NewCamera(mgl32.Vec3{}, 0, 0)
	f := c.Front()
	assert.InDeltaSlice(t, []float32{0, 0, -1}, f[:], 1e-6)

	c.Yaw = 90
	f = c.Front()
	assert.InDeltaSlice(t, []float32{1, 0, 0}, f[:], 1e-6)

	c.Yaw, c.Pitch = 0, 45
	f = c.Front()
	assert.Less(t, f[1], float32(0), "positive pitch looks down")
	assert.InDelta(t, 1, f.Len(), 1e-6)
}

func TestCameraPitchClamp(t *testing.T) {
	c := NewCamera(mgl32.Vec3{}, 0, 120)
	assert.InDelta(t, 89.9, c.Pitch, 1e-4)
	c.Rotate(0, -500)
	assert.InDelta(t, -89.9, c.Pitch, 1e-4)
}

func TestCameraViewMovesWorldOpposite(t *testing.T) {
	c := NewCamera(mgl32.Vec3{0, 10, 25}, 0, 0)
	p := c.View().Mul4x1(mgl32.Vec4{0, 10, 0, 1})
	// a point straight ahead ends up on -Z in view space
	assert.InDeltaSlice(t, []float32{0, 0, -25, 1}, p[:], 1e-4)
}

func TestCameraMove(t *testing.T) {
	c := NewCamera(mgl32.Vec3{}, 0, 0)
	c.Move(2, 1, 0)
	assert.InDeltaSlice(t, []float32{1, 0, -2}, c.Position[:], 1e-6)
}
