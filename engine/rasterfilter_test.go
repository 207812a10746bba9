package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func screenTriangle(occluder *Object, a, b, c Coordinate, z float64) *Triangle {
	var poly *Polygon
	if occluder != nil {
		poly = &Polygon{SourceObject: occluder}
	}
	return &Triangle{
		SourcePolygon: poly,
		Vertices: [3]Vertex2d{
			{Screen: a, Z: z},
			{Screen: b, Z: z},
			{Screen: c, Z: z},
		},
	}
}

func TestRasterFilterBucketsIntoZoneByDepth(t *testing.T) {
	f := NewRasterFilter(800, 600)

	near := screenTriangle(nil, Coordinate{0, 0}, Coordinate{10, 0}, Coordinate{0, 10}, 50)
	far := screenTriangle(nil, Coordinate{0, 0}, Coordinate{10, 0}, Coordinate{0, 10}, 600)

	f.AddTriangle(far)
	f.AddTriangle(near)

	// Zone order is near-to-far regardless of insertion order.
	first := f.Next()
	second := f.Next()

	assert.Same(t, near, first)
	assert.Same(t, far, second)
	assert.Nil(t, f.Next())
}

func TestRasterFilterSuppressesFullyOccludedFartherTriangle(t *testing.T) {
	f := NewRasterFilter(800, 600)

	occluder := &Object{CanOccludeSurfaces: true}
	cover := screenTriangle(occluder, Coordinate{0, 0}, Coordinate{800, 0}, Coordinate{0, 600}, 50)
	hidden := screenTriangle(nil, Coordinate{50, 50}, Coordinate{60, 50}, Coordinate{50, 60}, 300)
	visible := screenTriangle(nil, Coordinate{750, 550}, Coordinate{760, 550}, Coordinate{750, 560}, 300)

	f.AddTriangle(cover)
	f.AddTriangle(hidden)
	f.AddTriangle(visible)

	var emitted []*Triangle
	for tri := f.Next(); tri != nil; tri = f.Next() {
		emitted = append(emitted, tri)
	}

	assert.Contains(t, emitted, cover)
	assert.Contains(t, emitted, visible)
	assert.NotContains(t, emitted, hidden)
}

func TestRasterFilterDoesNotRegisterSmallTrianglesAsCovers(t *testing.T) {
	f := NewRasterFilter(800, 600)

	occluder := &Object{CanOccludeSurfaces: true}
	tiny := screenTriangle(occluder, Coordinate{0, 0}, Coordinate{10, 0}, Coordinate{0, 10}, 50)

	f.AddTriangle(tiny)

	assert.Empty(t, f.covers)
}

func TestRasterFilterResetClearsStateForNextFrame(t *testing.T) {
	f := NewRasterFilter(800, 600)

	occluder := &Object{CanOccludeSurfaces: true}
	cover := screenTriangle(occluder, Coordinate{0, 0}, Coordinate{800, 0}, Coordinate{0, 600}, 50)
	f.AddTriangle(cover)
	f.Next() // emits the cover
	f.Next() // finds the single zone drained, triggers the internal reset, returns nil

	assert.Empty(t, f.covers)
	assert.Equal(t, 0, f.currentZoneIndex)
	assert.Equal(t, 0, f.highestZoneIndex)
}

func TestRasterFilterOffscreenTriangleNeverEmitted(t *testing.T) {
	f := NewRasterFilter(800, 600)

	offscreen := screenTriangle(nil, Coordinate{900, 900}, Coordinate{950, 900}, Coordinate{900, 950}, 50)
	f.AddTriangle(offscreen)

	assert.Nil(t, f.Next())
}
