package engine

// Scanline is queued by the dispatch phase and consumed by the scanline
// phase. Length > 0; Y must be in [0,height).
type Scanline struct {
	X, Y   int
	Length int

	ColorStart, ColorEnd Color

	InverseDepthStart, InverseDepthEnd float64

	UVStart, UVEnd Vec2 // perspective-divided uv (uv * inverse_depth)

	TexIntensityStart, TexIntensityEnd Vec3

	Texture *Texture
}

// scanVertex is the interpolated per-row edge endpoint used while
// walking a sub-triangle's vertical span.
type scanVertex struct {
	X            float64
	Z            float64
	InverseDepth float64
	UV           Vec2
	Color        Color
	TexIntensity Vec3
}

func lerpScanVertex(a, b scanVertex, t float64) scanVertex {
	return scanVertex{
		X:            a.X + (b.X-a.X)*t,
		Z:            a.Z + (b.Z-a.Z)*t,
		InverseDepth: a.InverseDepth + (b.InverseDepth-a.InverseDepth)*t,
		UV:           a.UV.Lerp(b.UV, t),
		Color:        a.Color.Lerp(b.Color, t),
		TexIntensity: a.TexIntensity.Add(b.TexIntensity.Sub(a.TexIntensity).Scale(t)),
	}
}

func vertexToScan(v Vertex2d) scanVertex {
	return scanVertex{
		X:            float64(v.Screen.X),
		Z:            v.Z,
		InverseDepth: v.InverseDepth,
		UV:           v.PerspectiveUV,
		Color:        v.Color,
		TexIntensity: v.TextureIntensity,
	}
}

// DispatchTriangle is the serial dispatch phase (spec.md §4.5): sort
// vertices ascending by screen-y, reject triangles fully above or below
// the raster, split into flat-top/flat-bottom halves around a
// synthesized mid-row vertex, and emit one Scanline per visible row.
// height bounds the valid Y range [0,height).
func DispatchTriangle(t *Triangle, height, width int, textured bool, out *[]Scanline) {
	verts := t.Vertices

	// Sort ascending by screen-y (simple 3-element sort).
	if verts[0].Screen.Y > verts[1].Screen.Y {
		verts[0], verts[1] = verts[1], verts[0]
	}
	if verts[1].Screen.Y > verts[2].Screen.Y {
		verts[1], verts[2] = verts[2], verts[1]
	}
	if verts[0].Screen.Y > verts[1].Screen.Y {
		verts[0], verts[1] = verts[1], verts[0]
	}

	yTop, yBottom := verts[0].Screen.Y, verts[2].Screen.Y
	if yTop >= height || yBottom < 0 {
		return
	}

	if yTop == yBottom {
		// Degenerate: all three vertices share a y-coordinate. No
		// mid-vertex synthesis; nothing to rasterize as a span.
		return
	}

	top, mid, bottom := vertexToScan(verts[0]), vertexToScan(verts[1]), vertexToScan(verts[2])
	var texture *Texture
	if t.SourcePolygon != nil {
		texture = t.SourcePolygon.SourceObject.Texture
	}

	// Synthesize the mid-row vertex on the long edge (top -> bottom) at
	// the same y as mid.
	var longT float64
	if bottom.X == top.X && verts[2].Screen.Y == verts[0].Screen.Y {
		longT = 0
	} else if verts[2].Screen.Y != verts[0].Screen.Y {
		longT = float64(verts[1].Screen.Y-verts[0].Screen.Y) / float64(verts[2].Screen.Y-verts[0].Screen.Y)
	}
	longMid := lerpScanVertex(top, bottom, longT)

	if verts[0].Screen.Y != verts[1].Screen.Y {
		emitFlatSpan(top, mid, top, longMid, verts[0].Screen.Y, verts[1].Screen.Y, height, width, texture, out)
	}
	if verts[1].Screen.Y != verts[2].Screen.Y {
		emitFlatSpan(mid, bottom, longMid, bottom, verts[1].Screen.Y, verts[2].Screen.Y, height, width, texture, out)
	}
}

// emitFlatSpan walks the rows [yStart, yEnd) of one flat-top or
// flat-bottom sub-triangle, bounded by the edge aStart->aEnd and the edge
// bStart->bEnd (each running from row yStart to row yEnd), interpolating
// the attribute ranges along both edges and emitting one Scanline per
// visible row.
func emitFlatSpan(aStart, aEnd, bStart, bEnd scanVertex, yStart, yEnd, height, width int, texture *Texture, out *[]Scanline) {
	rows := yEnd - yStart
	if rows == 0 {
		return
	}

	for y := yStart; y < yEnd; y++ {
		if y < 0 || y >= height {
			continue
		}
		rowT := float64(y-yStart) / float64(rows)

		left := lerpScanVertex(aStart, aEnd, rowT)
		right := lerpScanVertex(bStart, bEnd, rowT)

		if right.X < left.X {
			left, right = right, left
		}

		x0, x1 := int(left.X), int(right.X)
		if x1 <= x0 {
			if x1 == x0 {
				x1 = x0 + 1
			} else {
				continue
			}
		}
		if x1 <= 0 || x0 >= width {
			continue
		}

		clippedX0, clippedX1 := x0, x1
		if clippedX0 < 0 {
			clippedX0 = 0
		}
		if clippedX1 > width {
			clippedX1 = width
		}
		if clippedX1 <= clippedX0 {
			continue
		}

		span := float64(x1 - x0)
		t0 := float64(clippedX0-x0) / span
		t1 := float64(clippedX1-x0) / span

		startV := lerpScanVertex(left, right, t0)
		endV := lerpScanVertex(left, right, t1)

		*out = append(*out, Scanline{
			X:                 clippedX0,
			Y:                 y,
			Length:            clippedX1 - clippedX0,
			ColorStart:        startV.Color,
			ColorEnd:          endV.Color,
			InverseDepthStart: startV.InverseDepth,
			InverseDepthEnd:   endV.InverseDepth,
			UVStart:           startV.UV,
			UVEnd:             endV.UV,
			TexIntensityStart: startV.TexIntensity,
			TexIntensityEnd:   endV.TexIntensity,
			Texture:           texture,
		})
	}
}
