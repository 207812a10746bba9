package engine

// Cover is a registered large, frontmost triangle used to prove that
// later, farther triangles are fully hidden. Valid for the remainder of
// the frame it was registered in.
type Cover struct {
	C0, C1, C2 Coordinate
	Zone       int
	Clockwise  bool
}

// RasterFilter buckets triangles into zones by depth, tracks large
// on-screen triangles as covers, and emits triangles in zone order,
// suppressing those fully occluded by closer covers. Single-threaded;
// runs on the projector thread (spec.md §4.2).
//
// Ground truth: original_source/Source/Graphics/RasterFilter.cpp.
type RasterFilter struct {
	width, height int

	zones [MaxRasterFilterZones][]*Triangle
	covers []Cover

	currentZoneIndex   int
	highestZoneIndex   int
	currentElementIndex int
}

// NewRasterFilter returns a filter sized to a width x height raster.
func NewRasterFilter(width, height int) *RasterFilter {
	return &RasterFilter{width: width, height: height}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// isPointInsideEdge tests the half-plane sign of (x,y) against the
// directed edge (ex1,ey1)->(ex2,ey2).
func isPointInsideEdge(x, y, ex1, ey1, ex2, ey2 int) bool {
	return (x-ex1)*(ey2-ey1)-(y-ey1)*(ex2-ex1) >= 0
}

func isTriangleClockwise(t *Triangle) bool {
	c0, c1, c2 := t.Vertices[0].Screen, t.Vertices[1].Screen, t.Vertices[2].Screen
	return isPointInsideEdge(c2.X, c2.Y, c0.X, c0.Y, c1.X, c1.Y)
}

// isTriangleCoverable reports whether t is large enough, and visible
// enough, to register as an occluder: its source object must allow
// occlusion, and its bounding box must be at least MIN_COVER_TRIANGLE_SIZE
// on both axes and overlap the inner raster by that same margin.
func (f *RasterFilter) isTriangleCoverable(t *Triangle) bool {
	if t.SourcePolygon == nil || t.SourcePolygon.SourceObject == nil || !t.SourcePolygon.SourceObject.CanOccludeSurfaces {
		return false
	}

	minX, minY, maxX, maxY := t.BoundingBox()

	if (maxX - minX) < MinCoverTriangleSize {
		return false
	}
	if (maxY - minY) < MinCoverTriangleSize {
		return false
	}

	return (minX < (f.width-MinCoverTriangleSize) && maxX > MinCoverTriangleSize) &&
		(minY < (f.height-MinCoverTriangleSize) && maxY > MinCoverTriangleSize)
}

func (f *RasterFilter) addCover(t *Triangle, zone int) {
	f.covers = append(f.covers, Cover{
		C0:        t.Vertices[0].Screen,
		C1:        t.Vertices[1].Screen,
		C2:        t.Vertices[2].Screen,
		Zone:      zone,
		Clockwise: isTriangleClockwise(t),
	})
}

// AddTriangle buckets t into its zone (by max camera-space depth), and
// registers a Cover if it qualifies.
func (f *RasterFilter) AddTriangle(t *Triangle) {
	zoneIndex := clampInt(int(t.MaxZ()/RasterFilterZoneRange), 0, MaxRasterFilterZones-1)

	if zoneIndex > f.highestZoneIndex {
		f.highestZoneIndex = zoneIndex
	}

	if f.isTriangleCoverable(t) {
		f.addCover(t, zoneIndex)
	}

	f.zones[zoneIndex] = append(f.zones[zoneIndex], t)
}

func (f *RasterFilter) isTriangleOnScreen(t *Triangle) bool {
	minX, minY, maxX, maxY := t.BoundingBox()
	if minX >= f.width || maxX < 0 {
		return false
	}
	return minY < f.height && maxY > 0
}

// isTriangleOccluded reports whether every vertex of t tests inside every
// edge of cover, using the cover's winding to pick edge order. Clockwise
// covers are tested against edges v0->v2, v2->v1, v1->v0; counter-
// clockwise covers against v0->v1, v1->v2, v2->v0 — exactly
// original_source's isTriangleOccluded.
func isTriangleOccluded(t *Triangle, cover Cover) bool {
	for i := 0; i < 3; i++ {
		c := t.Vertices[i].Screen

		var outside bool
		if cover.Clockwise {
			outside = isPointInsideEdge(c.X, c.Y, cover.C0.X, cover.C0.Y, cover.C2.X, cover.C2.Y) ||
				isPointInsideEdge(c.X, c.Y, cover.C2.X, cover.C2.Y, cover.C1.X, cover.C1.Y) ||
				isPointInsideEdge(c.X, c.Y, cover.C1.X, cover.C1.Y, cover.C0.X, cover.C0.Y)
		} else {
			outside = isPointInsideEdge(c.X, c.Y, cover.C0.X, cover.C0.Y, cover.C1.X, cover.C1.Y) ||
				isPointInsideEdge(c.X, c.Y, cover.C1.X, cover.C1.Y, cover.C2.X, cover.C2.Y) ||
				isPointInsideEdge(c.X, c.Y, cover.C2.X, cover.C2.Y, cover.C0.X, cover.C0.Y)
		}

		if outside {
			return false
		}
	}
	return true
}

func (f *RasterFilter) isTriangleVisible(t *Triangle) bool {
	if !f.isTriangleOnScreen(t) {
		return false
	}
	for _, cover := range f.covers {
		if cover.Zone < f.currentZoneIndex && isTriangleOccluded(t, cover) {
			return false
		}
	}
	return true
}

// Next dispenses the next visible triangle in zone order (low zone =
// near). Once every zone has been exhausted it resets the filter for the
// next frame and returns nil.
func (f *RasterFilter) Next() *Triangle {
	zone := f.zones[f.currentZoneIndex]

	if f.currentElementIndex >= len(zone) {
		f.zones[f.currentZoneIndex] = zone[:0]
		f.currentElementIndex = 0

		if f.currentZoneIndex < f.highestZoneIndex {
			f.currentZoneIndex++
			return f.Next()
		}

		f.Reset()
		return nil
	}

	t := zone[f.currentElementIndex]
	f.currentElementIndex++

	if f.isTriangleVisible(t) {
		return t
	}
	return f.Next()
}

// Reset clears zones and covers and restores cursors for the next frame.
func (f *RasterFilter) Reset() {
	for i := range f.zones {
		f.zones[i] = f.zones[i][:0]
	}
	f.currentZoneIndex = 0
	f.highestZoneIndex = 0
	f.currentElementIndex = 0
	f.covers = f.covers[:0]
}
