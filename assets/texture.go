// Package assets implements the external collaborators spec.md §6 names
// but leaves unspecified beyond an interface: texture and geometry
// decoders. None of this package is imported by the rendering core
// (engine); it exists to produce the engine.Texture / vertex data the
// core consumes.
package assets

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/mirstar13/softcore/engine"
)

// TextureSource is the asset-decoder interface spec.md §6 describes:
// "an opaque handle with sample(u, v, level)". The engine only ever sees
// the resulting *engine.Texture; this interface exists for loader
// implementations to target.
type TextureSource interface {
	Decode() (*engine.Texture, error)
}

// ImageTextureSource adapts a standard library image.Image into an
// engine.Texture. Texels of the {255,0,255} color key keep their decoded
// color; they are not made transparent (the engine's Color has no alpha
// channel).
type ImageTextureSource struct {
	Image image.Image
}

// Decode converts the source image to a tightly packed ARGB8888 surface
// and builds the engine's mipmap chain. Non-power-of-two sources are
// first resized up to the next power of two on each axis using
// x/image/draw's Catmull-Rom scaler, supplementing the engine's plain 2x2
// box downsample for the base level.
func (s ImageTextureSource) Decode() (*engine.Texture, error) {
	if s.Image == nil {
		return nil, fmt.Errorf("assets: nil source image")
	}

	bounds := s.Image.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("assets: zero-sized source image")
	}

	pow2W, pow2H := nextPowerOfTwo(width), nextPowerOfTwo(height)

	src := s.Image
	if pow2W != width || pow2H != height {
		scaled := image.NewRGBA(image.Rect(0, 0, pow2W, pow2H))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), s.Image, bounds, draw.Over, nil)
		src = scaled
		width, height = pow2W, pow2H
	}

	pixels := make([]engine.Color, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			pixels[y*width+x] = engine.Color{
				R: uint8(r >> 8),
				G: uint8(g >> 8),
				B: uint8(b >> 8),
			}
		}
	}

	return engine.NewTextureFromARGB(width, height, pixels), nil
}

func nextPowerOfTwo(v int) int {
	p := 1
	for p < v {
		p *= 2
	}
	return p
}
