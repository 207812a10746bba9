package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func cv(z float64) ClipVertex {
	return ClipVertex{Position: Vec3{0, 0, z}, Color: Color{R: 100, G: 100, B: 100}}
}

func TestClipTriangleToNearPlaneAllInFront(t *testing.T) {
	const near = 30.0
	tri := [3]ClipVertex{cv(100), cv(80), cv(60)}

	result := ClipTriangleToNearPlane(tri, near)

	assert.Len(t, result.Triangles, 1)
	assert.Equal(t, tri, result.Triangles[0])
}

func TestClipTriangleToNearPlaneAllBehind(t *testing.T) {
	const near = 30.0
	tri := [3]ClipVertex{cv(10), cv(5), cv(1)}

	result := ClipTriangleToNearPlane(tri, near)

	assert.Empty(t, result.Triangles)
}

func TestClipTriangleToNearPlaneTwoBehindProducesOneTriangle(t *testing.T) {
	const near = 30.0
	tri := [3]ClipVertex{cv(100), cv(10), cv(5)}

	result := ClipTriangleToNearPlane(tri, near)

	assert.Len(t, result.Triangles, 1)
	out := result.Triangles[0]
	assert.InDelta(t, 100, out[0].Position.Z, 1e-9)
	assert.InDelta(t, near, out[1].Position.Z, 1e-6)
	assert.InDelta(t, near, out[2].Position.Z, 1e-6)
}

func TestClipTriangleToNearPlaneOneBehindProducesTwoTriangles(t *testing.T) {
	const near = 30.0
	tri := [3]ClipVertex{cv(100), cv(50), cv(10)}

	result := ClipTriangleToNearPlane(tri, near)

	assert.Len(t, result.Triangles, 2)

	// Every synthesized vertex must sit exactly on the near plane; the
	// two untouched vertices (v0, v1 in descending-z order) must not.
	var onPlane, inFront int
	for _, tri := range result.Triangles {
		for _, v := range tri {
			if v.Position.Z > near+1e-6 {
				inFront++
			} else {
				assert.InDelta(t, near, v.Position.Z, 1e-6)
				onPlane++
			}
		}
	}
	assert.Equal(t, 3, onPlane) // q2 appears in both triangles, q3 once
	assert.Equal(t, 3, inFront) // v0 appears in both triangles, v1 once
}

func TestClipTriangleToNearPlaneIdempotentWhenFullyInFront(t *testing.T) {
	const near = 30.0
	tri := [3]ClipVertex{cv(40), cv(35), cv(31)}

	first := ClipTriangleToNearPlane(tri, near)
	assert.Len(t, first.Triangles, 1)

	second := ClipTriangleToNearPlane(first.Triangles[0], near)
	assert.Equal(t, first.Triangles[0], second.Triangles[0])
}

func TestLerpClipVertexInterpolatesColorAndNormal(t *testing.T) {
	a := ClipVertex{Position: Vec3{0, 0, 0}, Color: Color{R: 0, G: 0, B: 0}, Normal: Vec3{1, 0, 0}}
	b := ClipVertex{Position: Vec3{10, 0, 0}, Color: Color{R: 100, G: 0, B: 0}, Normal: Vec3{0, 1, 0}}

	mid := lerpClipVertex(a, b, 0.5)

	assert.InDelta(t, 5, mid.Position.X, 1e-9)
	assert.Equal(t, uint8(50), mid.Color.R)
	assert.InDelta(t, 1, mid.Normal.Magnitude(), 1e-9)
}
