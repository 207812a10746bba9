package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mirstar13/softcore/engine"
)

type fakeGeometrySource struct {
	positions []engine.Vec3
	uvs       []engine.Vec2
	faces     []Face
}

func (f fakeGeometrySource) Positions() []engine.Vec3 { return f.positions }
func (f fakeGeometrySource) UVs() []engine.Vec2       { return f.uvs }
func (f fakeGeometrySource) Faces() []Face            { return f.faces }

func TestBuildObjectNegatesXAndFlipsV(t *testing.T) {
	src := fakeGeometrySource{
		positions: []engine.Vec3{{X: 1, Y: 2, Z: 3}},
		uvs:       []engine.Vec2{{X: 0.25, Y: 0.75}},
		faces: []Face{
			{VertexIndex: [3]int{1, 1, 1}, UVIndex: [3]int{1, 1, 1}},
		},
	}

	obj := BuildObject(src)

	assert.Len(t, obj.Vertices, 1)
	assert.Equal(t, engine.Vec3{X: -1, Y: 2, Z: 3}, obj.Vertices[0].Position)
	assert.Equal(t, engine.Vec2{X: 0.25, Y: 0.25}, obj.Vertices[0].UV)
}

func TestBuildObjectDedupesSharedPositionDistinctUV(t *testing.T) {
	// Two faces sharing vertex 1 but with different UVs must become two
	// distinct renderer vertices sharing a position.
	src := fakeGeometrySource{
		positions: []engine.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
		uvs:       []engine.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}},
		faces: []Face{
			{VertexIndex: [3]int{1, 2, 3}, UVIndex: [3]int{1, 1, 1}},
			{VertexIndex: [3]int{1, 2, 3}, UVIndex: [3]int{2, 1, 1}},
		},
	}

	obj := BuildObject(src)

	// Vertex 1 appears with two distinct UVs across the two faces, so it
	// must be split into two renderer vertices; vertices 2 and 3 are
	// shared identically and should be deduped to one each.
	assert.Len(t, obj.Vertices, 4)
	assert.Len(t, obj.Polygons, 2)
}

func TestBuildObjectFacesWithoutUVsShareOneVertexPerPosition(t *testing.T) {
	src := fakeGeometrySource{
		positions: []engine.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
		faces: []Face{
			{VertexIndex: [3]int{1, 2, 3}},
		},
	}

	obj := BuildObject(src)

	assert.Len(t, obj.Vertices, 3)
	assert.Equal(t, engine.Vec2{}, obj.Vertices[0].UV)
}
