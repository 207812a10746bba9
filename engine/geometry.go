package engine

// Vertex3d is owned by exactly one Object. PolygonRefs is a lookup index
// into the owning Object's polygon list, computed once at build time
// (equivalent to a back-reference list) rather than a mutable graph edge —
// see spec.md §9 "cyclic ownership".
type Vertex3d struct {
	Position Vec3
	UV       Vec2
	Color    Color
	Normal   Vec3

	MorphTargets []Vec3
	PolygonRefs  []int
}

// Polygon holds three ordered indices into its source Object's vertex
// slice, winding CCW in world space. CachedVertexIntensities is valid iff
// the source object is static and scene lighting is static-compatible.
type Polygon struct {
	Vertices [3]int // indices into Object.Vertices
	Normal   Vec3

	SourceObject *Object

	CachedVertexIntensities [3]Vec3
}

// RecomputeNormal sets Normal = unit((v1-v0) x (v2-v0)).
func (p *Polygon) RecomputeNormal(obj *Object) {
	v0 := obj.Vertices[p.Vertices[0]].Position
	v1 := obj.Vertices[p.Vertices[1]].Position
	v2 := obj.Vertices[p.Vertices[2]].Position

	p.Normal = v1.Sub(v0).Cross(v2.Sub(v0)).Unit()
}

// RecomputeVertexNormals averages each polygon's face normal into every
// vertex it references, then normalizes: vertex normal = unit sum of
// normals of incident polygons.
func RecomputeVertexNormals(obj *Object) {
	accum := make([]Vec3, len(obj.Vertices))

	for pi := range obj.Polygons {
		poly := &obj.Polygons[pi]
		poly.RecomputeNormal(obj)

		for _, vi := range poly.Vertices {
			accum[vi] = accum[vi].Add(poly.Normal)
		}
	}

	for vi := range obj.Vertices {
		obj.Vertices[vi].Normal = accum[vi].Unit()
	}
}

// BuildPolygonRefs rebuilds each vertex's PolygonRefs lookup index from the
// current polygon list. Call after the polygon list changes shape.
func BuildPolygonRefs(obj *Object) {
	for vi := range obj.Vertices {
		obj.Vertices[vi].PolygonRefs = obj.Vertices[vi].PolygonRefs[:0]
	}
	for pi := range obj.Polygons {
		for _, vi := range obj.Polygons[pi].Vertices {
			obj.Vertices[vi].PolygonRefs = append(obj.Vertices[vi].PolygonRefs, pi)
		}
	}
}
