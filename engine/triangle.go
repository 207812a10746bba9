package engine

// Vertex2d is a screen-projected vertex. Screen coordinates may land
// off-window; the rasterizer clips against the pixel buffer bounds.
type Vertex2d struct {
	Screen Coordinate

	Z            float64 // camera-space depth
	InverseDepth float64 // 1/z

	PerspectiveUV Vec2 // uv * inverse_depth
	Color         Color
	TextureIntensity Vec3

	World  Vec3
	Normal Vec3
}

// Triangle is pool-allocated per frame; its lifetime is exactly one
// frame. IsSynthetic is true iff the triangle was produced by near-plane
// clipping, in which case it skips the static-light cache.
type Triangle struct {
	Vertices [3]Vertex2d

	SourcePolygon *Polygon
	FresnelScalar float64
	IsSynthetic   bool
}

// MaxZ returns the greatest camera-space depth among the triangle's
// vertices, used by the RasterFilter to bucket it into a zone.
func (t *Triangle) MaxZ() float64 {
	z := t.Vertices[0].Z
	if t.Vertices[1].Z > z {
		z = t.Vertices[1].Z
	}
	if t.Vertices[2].Z > z {
		z = t.Vertices[2].Z
	}
	return z
}

// BoundingBox returns the screen-space bounding box of the triangle.
func (t *Triangle) BoundingBox() (minX, minY, maxX, maxY int) {
	minX, maxX = t.Vertices[0].Screen.X, t.Vertices[0].Screen.X
	minY, maxY = t.Vertices[0].Screen.Y, t.Vertices[0].Screen.Y

	for _, v := range t.Vertices[1:] {
		if v.Screen.X < minX {
			minX = v.Screen.X
		}
		if v.Screen.X > maxX {
			maxX = v.Screen.X
		}
		if v.Screen.Y < minY {
			minY = v.Screen.Y
		}
		if v.Screen.Y > maxY {
			maxY = v.Screen.Y
		}
	}
	return
}
