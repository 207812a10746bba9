package engine

// ClipVertex is the camera-space working vertex used during near-plane
// clipping, carrying the per-vertex attributes that are linearly
// interpolated at a clip intersection: camera-space position, uv, color,
// normal, and world position. Morph-target positions are not carried; a
// clipped vertex holds only the single position it was projected from.
type ClipVertex struct {
	Position Vec3
	UV       Vec2
	Color    Color
	Normal   Vec3
	World    Vec3
}

// lerpClipVertex linearly interpolates every attribute of a ClipVertex by
// t, used at a near-plane intersection.
func lerpClipVertex(a, b ClipVertex, t float64) ClipVertex {
	return ClipVertex{
		Position: a.Position.Lerp(b.Position, t),
		UV:       a.UV.Lerp(b.UV, t),
		Color:    a.Color.Lerp(b.Color, t),
		Normal:   a.Normal.Lerp(b.Normal, t).Unit(),
		World:    a.World.Lerp(b.World, t),
	}
}

// ClipResult is 0, 1, or 2 synthetic triangles' worth of ClipVertex
// triples produced by near-plane clipping.
type ClipResult struct {
	Triangles [][3]ClipVertex
}

// ClipTriangleToNearPlane clips a camera-space triangle against the near
// plane z = nearDistance. The three input vertices are assumed to already
// be ordered matching the polygon's winding; clipping internally sorts by
// descending z as spec.md §4.1d prescribes, producing either:
//   - 0 triangles if all three vertices are behind the near plane,
//   - 1 synthetic triangle if exactly two are behind (near == 2), or
//   - 2 synthetic triangles if exactly one is behind (near == 1).
// If none are behind, the input triangle passes through unclipped and the
// caller should skip calling this function entirely (near == 0 case).
func ClipTriangleToNearPlane(v [3]ClipVertex, nearDistance float64) ClipResult {
	behind := 0
	for _, vert := range v {
		if vert.Position.Z < nearDistance {
			behind++
		}
	}

	switch behind {
	case 0:
		return ClipResult{Triangles: [][3]ClipVertex{v}}
	case 3:
		return ClipResult{}
	case 2:
		return clipTwoVerticesBehind(v, nearDistance)
	case 1:
		return clipOneVertexBehind(v, nearDistance)
	default:
		return ClipResult{}
	}
}

// sortDescendingZ returns the three vertices ordered by descending
// camera-space z.
func sortDescendingZ(v [3]ClipVertex) [3]ClipVertex {
	out := v
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if out[j].Position.Z > out[i].Position.Z {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out
}

// intersectNear finds the parametric t along the edge from a to b where
// camera-space z == d, guarding against a degenerate (near-zero
// denominator) edge by clamping t into [0,1].
func intersectNear(a, b ClipVertex, d float64) float64 {
	denom := a.Position.Z - b.Position.Z
	if denom == 0 {
		return 0
	}
	t := (a.Position.Z - d) / denom
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return t
}

// clipTwoVerticesBehind handles near == 2: v0 is the sole vertex in
// front; v1' and v2' are interpolated from v0 toward v1 and v2 at the
// near-plane intersection, producing exactly one synthetic triangle.
func clipTwoVerticesBehind(v [3]ClipVertex, d float64) ClipResult {
	sorted := sortDescendingZ(v)
	v0, v1, v2 := sorted[0], sorted[1], sorted[2]

	t1 := intersectNear(v0, v1, d)
	t2 := intersectNear(v0, v2, d)

	v1p := lerpClipVertex(v0, v1, t1)
	v2p := lerpClipVertex(v0, v2, t2)

	return ClipResult{Triangles: [][3]ClipVertex{{v0, v1p, v2p}}}
}

// clipOneVertexBehind handles near == 1: v0 and v1 remain; a quad
// {v0, v1, lerp(v1,v2,alpha), lerp(v0,v2,beta)} is built and split into
// two synthetic triangles.
func clipOneVertexBehind(v [3]ClipVertex, d float64) ClipResult {
	sorted := sortDescendingZ(v)
	v0, v1, v2 := sorted[0], sorted[1], sorted[2]

	alpha := intersectNear(v1, v2, d)
	beta := intersectNear(v0, v2, d)

	q2 := lerpClipVertex(v1, v2, alpha)
	q3 := lerpClipVertex(v0, v2, beta)

	return ClipResult{Triangles: [][3]ClipVertex{
		{v0, v1, q2},
		{v0, q2, q3},
	}}
}
