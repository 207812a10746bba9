package engine

// Rasterizer owns the pixel and depth buffers and performs the two-phase
// per-frame draw: a serial dispatch phase that splits triangles into
// scanlines, and a parallel scanline phase that paints them.
//
// Depth convention: the buffer stores float inverse-depth; a larger value
// means nearer. Cleared to 0 (representing infinity) every frame.
type Rasterizer struct {
	Width, Height int

	Pixels [][]Color // ARGB without alpha channel tracked separately; row-major
	Depth  [][]float64

	BackgroundColor Color
	Visibility      float64

	Wireframe bool

	scanlines []Scanline
}

// NewRasterizer allocates pixel and depth buffers sized width x height.
func NewRasterizer(width, height int) *Rasterizer {
	r := &Rasterizer{Width: width, Height: height}
	r.Pixels = make([][]Color, height)
	r.Depth = make([][]float64, height)
	for y := 0; y < height; y++ {
		r.Pixels[y] = make([]Color, width)
		r.Depth[y] = make([]float64, width)
	}
	return r
}

// Clear resets the pixel buffer to the background color and the depth
// buffer to 0 (infinity).
func (r *Rasterizer) Clear() {
	for y := 0; y < r.Height; y++ {
		row := r.Pixels[y]
		depthRow := r.Depth[y]
		for x := 0; x < r.Width; x++ {
			row[x] = r.BackgroundColor
			depthRow[x] = 0
		}
	}
}

// Dispatch runs the serial dispatch phase over triangles in the order
// given (approximate front-to-back, per raster-filter zone order),
// producing the frame's scanline queue. Wireframe mode bypasses the
// queue entirely and draws directly.
func (r *Rasterizer) Dispatch(triangles []*Triangle) {
	r.scanlines = r.scanlines[:0]

	for _, t := range triangles {
		if r.Wireframe {
			r.drawWireframe(t)
			continue
		}

		textured := t.SourcePolygon != nil && t.SourcePolygon.SourceObject.Texture != nil
		DispatchTriangle(t, r.Height, r.Width, textured, &r.scanlines)
	}
}

// Scanlines returns the dispatch phase's output queue.
func (r *Rasterizer) Scanlines() []Scanline { return r.scanlines }

// RasterizeScanline paints a single scanline: steps inverse-depth across
// the span, depth-tests each pixel ("greater is nearer"), samples texture
// or interpolates flat color, fades toward background by visibility, and
// writes pixel + depth.
func (r *Rasterizer) RasterizeScanline(s Scanline) {
	if s.Length <= 0 || s.Y < 0 || s.Y >= r.Height {
		return
	}

	depthRow := r.Depth[s.Y]
	pixelRow := r.Pixels[s.Y]

	invDepthDelta := (s.InverseDepthEnd - s.InverseDepthStart) / float64(s.Length)

	var colorLerpInterval int
	var lastColor Color
	if s.Texture == nil {
		meanDelta := (absFloat(float64(s.ColorEnd.R)-float64(s.ColorStart.R)) +
			absFloat(float64(s.ColorEnd.G)-float64(s.ColorStart.G)) +
			absFloat(float64(s.ColorEnd.B)-float64(s.ColorStart.B))) / 3
		colorLerpInterval = MinColorLerpInterval
		if meanDelta > 0 {
			interval := int(float64(s.Length) / meanDelta)
			if interval > colorLerpInterval {
				colorLerpInterval = interval
			}
		}
		lastColor = s.ColorStart
	}

	for i := 0; i < s.Length; i++ {
		x := s.X + i
		if x < 0 || x >= r.Width {
			continue
		}

		inverseDepth := s.InverseDepthStart + invDepthDelta*float64(i)
		if inverseDepth <= depthRow[x] {
			continue
		}

		t := float64(i) / float64(s.Length)

		var color Color
		if s.Texture != nil {
			uv := s.UVStart.Lerp(s.UVEnd, t)
			if inverseDepth != 0 {
				uv = uv.Div(inverseDepth)
			}

			depth := 0.0
			if inverseDepth != 0 {
				depth = 1 / inverseDepth
			}
			level := s.Texture.MipmapLevelForDepth(depth)
			texel := s.Texture.Sample(uv.X, uv.Y, level)

			intensity := s.TexIntensityStart.Lerp(s.TexIntensityEnd, t)
			color = texel.Mul(intensity)
		} else {
			if i%colorLerpInterval == 0 {
				lastColor = s.ColorStart.Lerp(s.ColorEnd, t)
			}
			color = lastColor
		}

		if inverseDepth > 0 && r.Visibility > 0 {
			fade := 1 / (inverseDepth * r.Visibility)
			if fade > 1 {
				fade = 1
			}
			color = color.Lerp(r.BackgroundColor, fade)
		}

		pixelRow[x] = color
		depthRow[x] = inverseDepth
	}
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// drawWireframe draws three lines for a triangle directly into the pixel
// buffer, bypassing illumination and the scanline pipeline.
func (r *Rasterizer) drawWireframe(t *Triangle) {
	a, b, c := t.Vertices[0].Screen, t.Vertices[1].Screen, t.Vertices[2].Screen
	color := t.Vertices[0].Color

	r.drawLine(a, b, color)
	r.drawLine(b, c, color)
	r.drawLine(c, a, color)
}

// drawLine is a Bresenham line rasterizer clipped to the pixel buffer.
func (r *Rasterizer) drawLine(p0, p1 Coordinate, color Color) {
	x0, y0, x1, y1 := p0.X, p0.Y, p1.X, p1.Y

	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		if x0 >= 0 && x0 < r.Width && y0 >= 0 && y0 < r.Height {
			r.Pixels[y0][x0] = color
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
