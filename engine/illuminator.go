package engine

import "math"

// Illuminator computes per-vertex color-intensity scalars from ambient
// and per-light contributions, honoring the static-intensity cache.
//
// Ground truth: original_source/Source/Graphics/Illuminator.cpp. The
// per-channel accumulation is multiplicative
// (colorIntensity.c *= 1 + intensity*ratio/brightness), not additive.
type Illuminator struct {
	Scene *Scene
}

// NewIlluminator binds an Illuminator to the scene whose settings and
// lights it reads.
func NewIlluminator(scene *Scene) *Illuminator {
	return &Illuminator{Scene: scene}
}

func getIncidence(dot float64) float64 {
	return math.Cos((1 + dot) * math.Pi / 2)
}

// computeAmbientLightColorIntensity folds the scene's ambient light into
// colorIntensity in place, when the ambient factor is enabled and the
// surface faces away from the ambient vector (dot < 0).
func (il *Illuminator) computeAmbientLightColorIntensity(normal Vec3, fresnel float64, colorIntensity *Vec3) {
	s := &il.Scene.Settings
	if s.AmbientLightFactor <= 0 {
		return
	}

	dot := normal.Dot(s.AmbientLightVector.Unit())
	if dot >= 0 {
		return
	}

	incidence := getIncidence(dot)
	intensity := incidence * s.AmbientLightFactor * (1 + fresnel)
	ratios := s.AmbientLightColor.Ratios()

	colorIntensity.X *= 1 + (intensity*ratios.X)/s.Brightness
	colorIntensity.Y *= 1 + (intensity*ratios.Y)/s.Brightness
	colorIntensity.Z *= 1 + (intensity*ratios.Z)/s.Brightness
}

// computeLightColorIntensity folds a single light's contribution into
// colorIntensity in place, early-rejecting disabled/zero-power/out-of-
// range lights and back-facing or behind-direction vertices.
func (il *Illuminator) computeLightColorIntensity(light *Object, vertexPosition, normal Vec3, fresnel float64, colorIntensity *Vec3) {
	ld := light.LightData
	if ld == nil || ld.IsDisabled || ld.Power == 0 {
		return
	}

	lightPos := light.Position
	if math.Abs(lightPos.X-vertexPosition.X) > ld.Range ||
		math.Abs(lightPos.Y-vertexPosition.Y) > ld.Range ||
		math.Abs(lightPos.Z-vertexPosition.Z) > ld.Range {
		return
	}

	s := &il.Scene.Settings
	toVertex := vertexPosition.Sub(lightPos)
	distance := toVertex.Magnitude()

	if distance > ld.Range {
		return
	}
	if distance == 0 {
		return
	}
	lightSourceVector := toVertex.Scale(1 / distance)

	normalDot := normal.Dot(lightSourceVector)
	if normalDot >= 0 {
		return
	}

	var directionalDot float64
	if ld.IsDirectional {
		directionalDot = ld.Direction().Dot(lightSourceVector.Scale(-1))
		if directionalDot >= 0 {
			return
		}
	}

	incidence := getIncidence(normalDot)
	if ld.IsDirectional {
		incidence *= directionalDot * directionalDot * directionalDot * directionalDot
	}

	illuminance := math.Pow(1-distance/ld.Range, 2)
	intensity := ld.Power * incidence * illuminance * (1 + fresnel)
	ratios := ld.ColorRatios()

	colorIntensity.X *= 1 + (intensity*ratios.X)/s.Brightness
	colorIntensity.Y *= 1 + (intensity*ratios.Y)/s.Brightness
	colorIntensity.Z *= 1 + (intensity*ratios.Z)/s.Brightness
}

// getTriangleVertexColorIntensity computes the accumulated color
// intensity for one vertex of a buffered triangle, starting from either
// the polygon's static-intensity cache (static, non-synthetic triangles)
// or flat brightness.
func (il *Illuminator) getTriangleVertexColorIntensity(t *Triangle, vertexIndex int) Vec3 {
	vertex := &t.Vertices[vertexIndex]
	obj := t.SourcePolygon.SourceObject

	normal := vertex.Normal
	if obj.IsFlatShaded {
		normal = t.SourcePolygon.Normal
	}

	s := &il.Scene.Settings
	isStatic := !t.IsSynthetic && obj.IsStatic

	var colorIntensity Vec3
	if isStatic {
		colorIntensity = t.SourcePolygon.CachedVertexIntensities[vertexIndex]
	} else {
		colorIntensity = Vec3{s.Brightness, s.Brightness, s.Brightness}
	}

	if s.Brightness <= 0 {
		return colorIntensity
	}

	if s.AmbientLightFactor > 0 && (!isStatic || !s.HasStaticAmbientLight) {
		il.computeAmbientLightColorIntensity(normal, t.FresnelScalar, &colorIntensity)
	}

	for _, light := range il.Scene.Lights() {
		shouldRecompute := !isStatic || !light.IsStatic
		if !shouldRecompute {
			continue
		}
		il.computeLightColorIntensity(light, vertex.World, normal, t.FresnelScalar, &colorIntensity)
	}

	return colorIntensity
}

// IlluminateTriangle applies lighting to a buffered triangle: texture
// path writes vertex.TextureIntensity for the rasterizer to multiply per
// sample; color path multiplies vertex.Color directly and fades toward
// background by visibility.
func (il *Illuminator) IlluminateTriangle(t *Triangle) {
	obj := t.SourcePolygon.SourceObject

	if !obj.HasLighting {
		il.resetTriangleLighting(t)
		return
	}

	if obj.Texture != nil {
		il.illuminateTextureTriangle(t)
	} else {
		il.illuminateColorTriangle(t)
	}
}

func (il *Illuminator) illuminateColorTriangle(t *Triangle) {
	s := &il.Scene.Settings

	for i := 0; i < 3; i++ {
		vertex := &t.Vertices[i]
		intensity := il.getTriangleVertexColorIntensity(t, i)

		vertex.Color = vertex.Color.Mul(intensity)

		visibilityRatio := vertex.Z / s.Visibility
		if visibilityRatio > 1 {
			visibilityRatio = 1
		}
		vertex.Color = vertex.Color.Lerp(s.BackgroundColor, visibilityRatio)
	}
}

func (il *Illuminator) illuminateTextureTriangle(t *Triangle) {
	for i := 0; i < 3; i++ {
		t.Vertices[i].TextureIntensity = il.getTriangleVertexColorIntensity(t, i)
	}
}

func (il *Illuminator) resetTriangleLighting(t *Triangle) {
	for i := range t.Vertices {
		t.Vertices[i].TextureIntensity = Vec3{1, 1, 1}
	}
}

// PrecomputeStaticLighting iterates every polygon of every static, lit
// object and writes polygon.CachedVertexIntensities using only static
// ambient (if enabled) and static lights, without fresnel. Must run
// before the first frame of a scene, and after any command-line mutation
// that changes scene lighting (spec.md §4.4).
func (il *Illuminator) PrecomputeStaticLighting() {
	s := &il.Scene.Settings

	for _, obj := range il.Scene.Objects() {
		if !obj.IsStatic || !obj.HasLighting {
			continue
		}

		for pi := range obj.Polygons {
			poly := &obj.Polygons[pi]

			for i := 0; i < 3; i++ {
				vertexPosition := obj.Position.Add(obj.Vertices[poly.Vertices[i]].Position)

				normal := obj.Vertices[poly.Vertices[i]].Normal
				if obj.IsFlatShaded {
					normal = poly.Normal
				}

				colorIntensity := Vec3{s.Brightness, s.Brightness, s.Brightness}

				if s.HasStaticAmbientLight && s.AmbientLightFactor > 0 {
					il.computeAmbientLightColorIntensity(normal, 0, &colorIntensity)
				}

				for _, light := range il.Scene.Lights() {
					if light.IsStatic {
						il.computeLightColorIntensity(light, vertexPosition, normal, 0, &colorIntensity)
					}
				}

				poly.CachedVertexIntensities[i] = colorIntensity
			}
		}
	}
}
