package assets

import "github.com/mirstar13/softcore/engine"

// Face is a single triangle of 1-indexed (vertex, uv) pairs, matching the
// OBJ-like collaborator spec.md §6 describes.
type Face struct {
	VertexIndex [3]int
	UVIndex     [3]int // 0 means "no uv"
}

// GeometrySource is the asset-decoder interface for mesh data: a vector
// of vertex positions, an optional vector of uv coordinates, and an
// ordered face list. Positions are right-handed on the wire; importers
// negate x to convert to the engine's left-handed screen space, and flip
// v (v' = 1-v).
type GeometrySource interface {
	Positions() []engine.Vec3
	UVs() []engine.Vec2 // may be empty
	Faces() []Face
}

// BuildObject converts a GeometrySource into an engine.Object. When UVs
// are present, unique (vertexIndex, uvIndex) pairs become distinct
// renderer vertices sharing position but having distinct uv, per
// spec.md §6.
func BuildObject(src GeometrySource) *engine.Object {
	positions := src.Positions()
	uvs := src.UVs()
	faces := src.Faces()

	obj := &engine.Object{}

	type key struct{ v, vt int }
	seen := make(map[key]int)

	vertexFor := func(vIdx, vtIdx int) int {
		k := key{vIdx, vtIdx}
		if existing, ok := seen[k]; ok {
			return existing
		}

		pos := negateX(positions[vIdx-1])
		var uv engine.Vec2
		if vtIdx > 0 && len(uvs) > 0 {
			uv = flipV(uvs[vtIdx-1])
		}

		index := len(obj.Vertices)
		obj.Vertices = append(obj.Vertices, engine.Vertex3d{Position: pos, UV: uv})
		seen[k] = index
		return index
	}

	for _, f := range faces {
		var tri engine.Polygon
		for i := 0; i < 3; i++ {
			tri.Vertices[i] = vertexFor(f.VertexIndex[i], f.UVIndex[i])
		}
		tri.SourceObject = obj
		obj.Polygons = append(obj.Polygons, tri)
	}

	return obj
}

func negateX(v engine.Vec3) engine.Vec3 {
	return engine.Vec3{X: -v.X, Y: v.Y, Z: v.Z}
}

func flipV(uv engine.Vec2) engine.Vec2 {
	return engine.Vec2{X: uv.X, Y: 1 - uv.Y}
}
