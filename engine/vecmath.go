package engine

import "math"

// Vec3 is a value type; hot-path code never mutates a Vec3 in place.
type Vec3 struct {
	X, Y, Z float64
}

func (a Vec3) Add(b Vec3) Vec3   { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3   { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Mul(b Vec3) Vec3   { return Vec3{a.X * b.X, a.Y * b.Y, a.Z * b.Z} }

func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) Magnitude() float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z)
}

// Unit normalizes the vector, guarding against near-zero length by
// returning world-up rather than propagating NaNs.
func (a Vec3) Unit() Vec3 {
	length := a.Magnitude()
	if length < 1e-10 {
		return Vec3{0, 1, 0}
	}
	return Vec3{a.X / length, a.Y / length, a.Z / length}
}

func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return Vec3{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}

// Vec2 is used for UV coordinates.
type Vec2 struct {
	X, Y float64
}

func (a Vec2) Lerp(b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }

func (a Vec2) Div(s float64) Vec2 {
	if s == 0 {
		return Vec2{}
	}
	return Vec2{a.X / s, a.Y / s}
}

// Coordinate is an integer screen-space position.
type Coordinate struct {
	X, Y int
}

// Color channels saturate at [0,255]; all arithmetic must clamp.
type Color struct {
	R, G, B uint8
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Ratios returns each channel as a fraction of the color's own maximum
// channel, used by Light to scale incident intensity per-channel.
func (c Color) Ratios() Vec3 {
	max := c.R
	if c.G > max {
		max = c.G
	}
	if c.B > max {
		max = c.B
	}
	if max == 0 {
		return Vec3{}
	}
	return Vec3{
		X: float64(c.R) / float64(max),
		Y: float64(c.G) / float64(max),
		Z: float64(c.B) / float64(max),
	}
}

// Mul scales each channel by the matching component of intensity,
// saturating at 255.
func (c Color) Mul(intensity Vec3) Color {
	return Color{
		R: clampChannel(float64(c.R) * intensity.X),
		G: clampChannel(float64(c.G) * intensity.Y),
		B: clampChannel(float64(c.B) * intensity.Z),
	}
}

// Lerp interpolates between two colors, converting to float64 before
// subtracting to avoid uint8 wraparound.
func (c Color) Lerp(other Color, t float64) Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return Color{
		R: clampChannel(float64(c.R) + t*(float64(other.R)-float64(c.R))),
		G: clampChannel(float64(c.G) + t*(float64(other.G)-float64(c.G))),
		B: clampChannel(float64(c.B) + t*(float64(other.B)-float64(c.B))),
	}
}

// RotationMatrix is a row-major 3x3 matrix.
type RotationMatrix struct {
	M [9]float64
}

// IdentityRotation returns the 3x3 identity.
func IdentityRotation() RotationMatrix {
	return RotationMatrix{M: [9]float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}}
}

func rotationX(angle float64) RotationMatrix {
	s, c := math.Sin(angle), math.Cos(angle)
	return RotationMatrix{M: [9]float64{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}}
}

func rotationY(angle float64) RotationMatrix {
	s, c := math.Sin(angle), math.Cos(angle)
	return RotationMatrix{M: [9]float64{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}}
}

func rotationZ(angle float64) RotationMatrix {
	s, c := math.Sin(angle), math.Cos(angle)
	return RotationMatrix{M: [9]float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}}
}

// Multiply composes two rotations; non-commutative, r applied first then
// the receiver (i.e. result = m * r).
func (m RotationMatrix) Multiply(r RotationMatrix) RotationMatrix {
	var out RotationMatrix
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += m.M[row*3+k] * r.M[k*3+col]
			}
			out.M[row*3+col] = sum
		}
	}
	return out
}

// Apply rotates a vector by the matrix.
func (m RotationMatrix) Apply(v Vec3) Vec3 {
	return Vec3{
		X: m.M[0]*v.X + m.M[1]*v.Y + m.M[2]*v.Z,
		Y: m.M[3]*v.X + m.M[4]*v.Y + m.M[5]*v.Z,
		Z: m.M[6]*v.X + m.M[7]*v.Y + m.M[8]*v.Z,
	}
}

// Transpose is the inverse of a pure rotation matrix.
func (m RotationMatrix) Transpose() RotationMatrix {
	return RotationMatrix{M: [9]float64{
		m.M[0], m.M[3], m.M[6],
		m.M[1], m.M[4], m.M[7],
		m.M[2], m.M[5], m.M[8],
	}}
}

// RotationFromEuler composes the camera's rotation matrix as Z*Y*X
// (applied to a vector: pitch first, then yaw, then roll), per the spec's
// explicit composition order.
func RotationFromEuler(pitch, yaw, roll float64) RotationMatrix {
	return rotationZ(roll).Multiply(rotationY(yaw)).Multiply(rotationX(pitch))
}

// AxisAngleQuaternion represents a rotation around a unit axis.
type AxisAngleQuaternion struct {
	W, X, Y, Z float64
}

// NewAxisAngleQuaternion builds a quaternion from a (not necessarily unit)
// axis and an angle in radians.
func NewAxisAngleQuaternion(axis Vec3, angle float64) AxisAngleQuaternion {
	a := axis.Unit()
	half := angle / 2
	s := math.Sin(half)
	return AxisAngleQuaternion{
		W: math.Cos(half),
		X: a.X * s,
		Y: a.Y * s,
		Z: a.Z * s,
	}
}

// ToRotationMatrix converts the quaternion into a 3x3 rotation matrix.
func (q AxisAngleQuaternion) ToRotationMatrix() RotationMatrix {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	return RotationMatrix{M: [9]float64{
		1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y),
		2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x),
		2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y),
	}}
}
