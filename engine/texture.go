package engine

// Texture is an opaque, loaded surface: a tightly packed ARGB8888 source
// image plus a precomputed mipmap chain. Confirmed is false until a
// loader successfully decodes image data (spec.md §7, "texture file
// missing" is non-fatal: sampling returns transparent black instead).
type Texture struct {
	Confirmed bool

	levels [][]Color
	widths  []int
	heights []int
}

// NewTextureFromARGB builds a Texture and its mipmap chain from a base
// level of tightly packed, row-major Color data. Texture is opaque RGB:
// texels of the {255,0,255} color key are stored and sampled like any
// other color, and alpha handling is left to the caller.
func NewTextureFromARGB(width, height int, pixels []Color) *Texture {
	t := &Texture{Confirmed: true}
	t.levels = append(t.levels, pixels)
	t.widths = append(t.widths, width)
	t.heights = append(t.heights, height)
	t.generateMipmapChain()
	return t
}

// generateMipmapChain builds successive levels via 2x2 box downsampling
// until either dimension would drop below 1px.
func (t *Texture) generateMipmapChain() {
	for {
		w, h := t.widths[len(t.widths)-1], t.heights[len(t.heights)-1]
		if w <= 1 || h <= 1 {
			return
		}
		nw, nh := w/2, h/2
		if nw < 1 {
			nw = 1
		}
		if nh < 1 {
			nh = 1
		}

		src := t.levels[len(t.levels)-1]
		next := make([]Color, nw*nh)

		for y := 0; y < nh; y++ {
			for x := 0; x < nw; x++ {
				sx, sy := x*2, y*2
				c00 := src[sy*w+sx]
				c10 := src[sy*w+minInt(sx+1, w-1)]
				c01 := src[minInt(sy+1, h-1)*w+sx]
				c11 := src[minInt(sy+1, h-1)*w+minInt(sx+1, w-1)]

				next[y*nw+x] = Color{
					R: uint8((int(c00.R) + int(c10.R) + int(c01.R) + int(c11.R)) / 4),
					G: uint8((int(c00.G) + int(c10.G) + int(c01.G) + int(c11.G)) / 4),
					B: uint8((int(c00.B) + int(c10.B) + int(c01.B) + int(c11.B)) / 4),
				}
			}
		}

		t.levels = append(t.levels, next)
		t.widths = append(t.widths, nw)
		t.heights = append(t.heights, nh)
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// LevelCount returns the number of mipmap levels available.
func (t *Texture) LevelCount() int { return len(t.levels) }

// MipmapLevelForDepth selects a level by camera-space depth, per
// spec.md §4.5: level = floor(depth / MIPMAP_DISTANCE_INTERVAL), clamped
// to the available levels.
func (t *Texture) MipmapLevelForDepth(depth float64) int {
	level := int(depth / MipmapDistanceInterval)
	if level < 0 {
		level = 0
	}
	if max := t.LevelCount() - 1; level > max {
		level = max
	}
	return level
}

// Sample returns the nearest texel at (u, v) for the given mipmap level.
// Unconfirmed textures (load failed or pending) sample as transparent
// black, per spec.md §7's recoverable-asset policy.
func (t *Texture) Sample(u, v float64, level int) Color {
	if !t.Confirmed || len(t.levels) == 0 {
		return Color{}
	}
	if level < 0 {
		level = 0
	}
	if level >= len(t.levels) {
		level = len(t.levels) - 1
	}

	w, h := t.widths[level], t.heights[level]
	u = wrapUV(u)
	v = wrapUV(v)

	x := minInt(int(u*float64(w)), w-1)
	y := minInt(int(v*float64(h)), h-1)
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	return t.levels[level][y*w+x]
}

// wrapUV repeats texture coordinates outside [0,1).
func wrapUV(v float64) float64 {
	v -= float64(int(v))
	if v < 0 {
		v += 1
	}
	return v
}
