package engine

import "math"

// Bit-exact engine constants, carried over from the original engine's
// Constants.h. Keep these names; tests pin several of them directly.
const (
	NearPlaneDistance    = 30.0
	LODDistanceThreshold = 2500.0
	MipmapDistanceInterval = 800.0
	MovementSpeed        = 5.0
	MaxCameraPitch       = 89.0 * math.Pi / 180.0

	MaxRasterFilterZones   = 50
	RasterFilterZoneRange  = 250.0
	MinCoverTriangleSize   = 150

	TrianglePoolSize = 100000

	SerialIlluminationNonstaticTriangleLimit = 2500

	GlobalSectorID = -1

	MinColorLerpInterval  = 2
	MaxTextureSampleInterval = 4
)

// ColorKeyTransparent is the {255,0,255} texture color key. No loader or
// rasterizer path checks for it; texels of this color are stored and
// drawn like any other.
var ColorKeyTransparent = Color{R: 255, G: 0, B: 255}

// Flags is the bitset described by the engine's runtime configuration.
type Flags uint32

const (
	FlagDebugStats Flags = 1 << iota
	FlagDebugCommandLine
	FlagShowWireframe
	FlagPixelFilter
	FlagDisableMultithreading
	FlagFPS30
	FlagDisableWindowResize
)

func (f Flags) Has(flag Flags) bool { return f&flag != 0 }
