package engine

// Camera holds the viewing position and projection parameters. Pitch is
// clamped to +/-89 degrees; yaw is unbounded.
type Camera struct {
	Position    Vec3
	Pitch, Yaw  float64
	FOV         float64 // degrees
	NearClip    float64
	Visibility  float64
}

// NewCamera returns a camera with sane defaults facing +Z.
func NewCamera() *Camera {
	return &Camera{
		Position:   Vec3{},
		FOV:        90,
		NearClip:   NearPlaneDistance,
		Visibility: 3000,
	}
}

// RotationMatrix returns the camera's composed rotation, Z*Y*X order.
func (c *Camera) RotationMatrix() RotationMatrix {
	return RotationFromEuler(c.Pitch, c.Yaw, 0)
}

// ToViewSpace transforms a world-space point into camera space: translate
// by the negated camera position, then rotate by the inverse (transpose)
// of the camera's rotation matrix.
func (c *Camera) ToViewSpace(world Vec3) Vec3 {
	rel := world.Sub(c.Position)
	return c.RotationMatrix().Transpose().Apply(rel)
}

// ForwardVector returns the normalized direction the camera is looking.
func (c *Camera) ForwardVector() Vec3 {
	return c.RotationMatrix().Apply(Vec3{0, 0, 1})
}

// RightVector returns the camera's local right axis.
func (c *Camera) RightVector() Vec3 {
	return c.RotationMatrix().Apply(Vec3{1, 0, 0})
}

// UpVector returns the camera's local up axis.
func (c *Camera) UpVector() Vec3 {
	return c.RotationMatrix().Apply(Vec3{0, 1, 0})
}

// CameraInput is the per-frame pose delta produced by the input
// collaborator (spec.md §6); the core never reads a keyboard or window
// system directly.
type CameraInput struct {
	DeltaTimeMs float64
	YawDelta    float64
	PitchDelta  float64
	MoveForward float64 // -1, 0, +1 axis flags
	MoveRight   float64
	Sprint      bool
}

// lookUnitFactor converts raw look deltas using the spec's 1/500 factor.
const lookUnitFactor = 1.0 / 500.0

// Apply advances the camera pose by one frame of input, clamping pitch to
// +/-89 degrees and scaling movement by MOVEMENT_SPEED and the sprint
// multiplier.
func (c *Camera) Apply(in CameraInput) {
	c.Yaw += in.YawDelta * lookUnitFactor
	c.Pitch += in.PitchDelta * lookUnitFactor

	if c.Pitch > MaxCameraPitch {
		c.Pitch = MaxCameraPitch
	}
	if c.Pitch < -MaxCameraPitch {
		c.Pitch = -MaxCameraPitch
	}

	speed := MovementSpeed * (in.DeltaTimeMs / 16.0)
	if in.Sprint {
		speed *= 4
	}

	forward := c.ForwardVector()
	right := c.RightVector()

	c.Position = c.Position.Add(forward.Scale(in.MoveForward * speed))
	c.Position = c.Position.Add(right.Scale(in.MoveRight * speed))
}

// Project computes screen coordinates for a camera-space unit direction
// vector u (u = t/|t|, where t is the camera-space position).
// scale = max(W,H) * (180/fov).
func (c *Camera) Project(unit Vec3, width, height int) (screenX, screenY float64) {
	scale := float64(maxInt(width, height)) * (180.0 / c.FOV)
	screenX = scale*unit.X/unit.Z + float64(width)/2
	screenY = scale*-unit.Y/unit.Z + float64(height)/2
	return
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
