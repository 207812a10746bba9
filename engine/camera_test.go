package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCameraApplyClampsPitch(t *testing.T) {
	c := NewCamera()
	c.Apply(CameraInput{PitchDelta: 1e6})
	assert.InDelta(t, MaxCameraPitch, c.Pitch, 1e-9)

	c.Apply(CameraInput{PitchDelta: -1e6})
	assert.InDelta(t, -MaxCameraPitch, c.Pitch, 1e-9)
}

func TestCameraApplyMovesForward(t *testing.T) {
	c := NewCamera()
	c.Apply(CameraInput{DeltaTimeMs: 16, MoveForward: 1})

	assert.InDelta(t, MovementSpeed, c.Position.Z, 1e-9)
	assert.InDelta(t, 0, c.Position.X, 1e-9)
}

func TestCameraApplySprintMultipliesSpeed(t *testing.T) {
	c := NewCamera()
	c.Apply(CameraInput{DeltaTimeMs: 16, MoveForward: 1, Sprint: true})

	assert.InDelta(t, MovementSpeed*4, c.Position.Z, 1e-9)
}

func TestCameraProjectCentersOriginForwardPoint(t *testing.T) {
	c := NewCamera()
	sx, sy := c.Project(Vec3{0, 0, 1}, 200, 100)

	assert.InDelta(t, 100, sx, 1e-9)
	assert.InDelta(t, 50, sy, 1e-9)
}

func TestCameraToViewSpaceRoundTripsWithForward(t *testing.T) {
	c := NewCamera()
	c.Yaw = math.Pi / 3
	c.Pitch = 0.2

	world := c.Position.Add(c.ForwardVector().Scale(10))
	view := c.ToViewSpace(world)

	assert.InDelta(t, 0, view.X, 1e-9)
	assert.InDelta(t, 0, view.Y, 1e-9)
	assert.InDelta(t, 10, view.Z, 1e-9)
}
