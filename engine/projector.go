package engine

import "math"

// Projector transforms polygons from world to camera to screen space,
// performs near-plane clipping, and hands triangles to the RasterFilter.
// Runs on the main thread (spec.md §4.1).
type Projector struct {
	Scene  *Scene
	Filter *RasterFilter
	Buffer *TriangleBuffer

	Width, Height int
}

// NewProjector wires a projector to its scene, raster filter, and
// double-buffered triangle sink.
func NewProjector(scene *Scene, filter *RasterFilter, buffer *TriangleBuffer, width, height int) *Projector {
	return &Projector{Scene: scene, Filter: filter, Buffer: buffer, Width: width, Height: height}
}

// ProjectFrame projects every visible object's polygons for the current
// camera pose, in object list order (spec.md §4.1).
func (p *Projector) ProjectFrame() error {
	cam := p.Scene.Camera

	for _, obj := range p.Scene.Objects() {
		if !p.Scene.IsObjectVisible(obj) {
			continue
		}

		rel := obj.Position.Sub(cam.Position)
		dist := rel.Magnitude()
		target := obj.SelectLOD(dist)

		if err := p.projectObject(target, obj, rel); err != nil {
			return err
		}
	}

	return nil
}

const frustumSinHalfFOVMargin = 0.05

// projectObject projects every polygon of target (an LOD variant, or the
// object itself), using rel = object.position - camera.position to place
// its vertices relative to the camera.
func (p *Projector) projectObject(target, sourceObject *Object, rel Vec3) error {
	cam := p.Scene.Camera
	camRotInv := cam.RotationMatrix().Transpose()
	sinHalfFOV := math.Sin(cam.FOV * math.Pi / 180 / 2)
	nearClip := sourceObject.NearClipDistance()

	for pi := range target.Polygons {
		poly := &target.Polygons[pi]

		v0 := target.Vertices[poly.Vertices[0]]
		normalizedDot := poly.Normal.Dot(rel.Add(v0.Position).Unit())
		if normalizedDot >= 0.05 {
			continue
		}

		var clipVerts [3]ClipVertex
		nearCount, farCount, leftCount, rightCount, topCount, bottomCount := 0, 0, 0, 0, 0, 0

		for i := 0; i < 3; i++ {
			v := target.Vertices[poly.Vertices[i]]
			camSpace := camRotInv.Apply(rel.Add(v.Position))
			unit := camSpace.Unit()
			world := sourceObject.Position.Add(v.Position)

			if camSpace.Z < nearClip {
				nearCount++
			}
			if camSpace.Z > cam.Visibility {
				farCount++
			}
			if unit.X < -sinHalfFOV {
				leftCount++
			}
			if unit.X > sinHalfFOV {
				rightCount++
			}
			if unit.Y < -sinHalfFOV {
				bottomCount++
			}
			if unit.Y > sinHalfFOV {
				topCount++
			}

			clipVerts[i] = ClipVertex{
				Position: camSpace,
				UV:       v.UV,
				Color:    v.Color,
				Normal:   v.Normal,
				World:    world,
			}
		}

		if nearCount == 3 || farCount == 3 || leftCount == 3 || rightCount == 3 || topCount == 3 || bottomCount == 3 {
			continue
		}

		fresnel := 0.0
		if sourceObject.FresnelFactor > 0 {
			fresnel = math.Cos(normalizedDot*math.Pi/2) * sourceObject.FresnelFactor
		}

		result := ClipTriangleToNearPlane(clipVerts, nearClip)
		isSynthetic := nearCount != 0

		for _, tri := range result.Triangles {
			if err := p.emitTriangle(tri, poly, fresnel, isSynthetic); err != nil {
				return err
			}
		}
	}

	return nil
}

// emitTriangle projects a clip-space triangle to screen space and hands
// it to the raster filter.
func (p *Projector) emitTriangle(tri [3]ClipVertex, poly *Polygon, fresnel float64, synthetic bool) error {
	cam := p.Scene.Camera

	t, err := p.Buffer.RequestTriangle()
	if err != nil {
		return err
	}

	t.SourcePolygon = poly
	t.FresnelScalar = fresnel
	t.IsSynthetic = synthetic

	for i := 0; i < 3; i++ {
		unit := tri[i].Position.Unit()
		sx, sy := cam.Project(unit, p.Width, p.Height)

		inverseDepth := 0.0
		if tri[i].Position.Z != 0 {
			inverseDepth = 1 / tri[i].Position.Z
		}

		t.Vertices[i] = Vertex2d{
			Screen:        Coordinate{X: int(sx), Y: int(sy)},
			Z:             tri[i].Position.Z,
			InverseDepth:  inverseDepth,
			PerspectiveUV: tri[i].UV.Scale(inverseDepth),
			Color:         tri[i].Color,
			World:         tri[i].World,
			Normal:        tri[i].Normal,
		}
	}

	p.Filter.AddTriangle(t)
	return nil
}
