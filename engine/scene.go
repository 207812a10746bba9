package engine

import (
	"fmt"
	"strconv"
)

// Settings holds the mutable lighting/visibility parameters a scene's
// runtime command line can change (spec.md §6). Static precomputation must
// re-run whenever a mutation touches lighting.
type Settings struct {
	AmbientLightColor  Color
	AmbientLightVector Vec3
	AmbientLightFactor float64
	HasStaticAmbientLight bool

	BackgroundColor Color
	Brightness      float64
	Visibility      float64

	Flags Flags
}

// DefaultSettings mirrors the original engine's baseline configuration.
func DefaultSettings() Settings {
	return Settings{
		AmbientLightVector: Vec3{0, -1, 0},
		Brightness:         1.0,
		Visibility:         3000,
		BackgroundColor:    Color{0, 0, 0},
	}
}

// Scene owns its objects, lights, sectors, camera, and settings
// exclusively. A string-keyed map stores an integer index into the
// object list, per spec.md §9's resolved open question (key by string
// value, not pointer identity).
type Scene struct {
	Camera   *Camera
	Settings Settings

	objects []*Object
	lights  []*Object // subset of objects whose Kind is a light variant

	sectors []*Sector

	keyToIndex map[string]int

	occupiedSectors map[int]bool
}

// NewScene returns an empty scene with default settings and a fresh
// camera.
func NewScene() *Scene {
	return &Scene{
		Camera:          NewCamera(),
		Settings:        DefaultSettings(),
		keyToIndex:      make(map[string]int),
		occupiedSectors: make(map[int]bool),
	}
}

// Add pushes an object onto the ordered object list, registering it under
// key for later lookup/removal, adding it to the lights list when
// applicable, syncing LOD mirror flags, pointing every polygon of the
// object and of its LODs back at its owner, and recomputing surface
// normals.
func (s *Scene) Add(key string, obj *Object) {
	index := len(s.objects)
	s.objects = append(s.objects, obj)
	s.keyToIndex[key] = index

	if obj.Kind == KindLight || obj.Kind == KindDirectionalLight {
		s.lights = append(s.lights, obj)
	}

	obj.SyncLODFlags()
	for _, owner := range append([]*Object{obj}, obj.LODs...) {
		for pi := range owner.Polygons {
			owner.Polygons[pi].SourceObject = owner
		}
	}
	RecomputeVertexNormals(obj)
	BuildPolygonRefs(obj)
}

// AddSector registers a Sector for camera-occupancy tests.
func (s *Scene) AddSector(sector *Sector) {
	s.sectors = append(s.sectors, sector)
}

// Remove deletes the object registered under key, also removing it from
// the lights list if applicable. A missing key is a silent no-op
// (spec.md §7, "Ignored").
//
// Removal uses the index the key map holds for key rather than
// re-deriving a position from the object's identity, then shifts every
// later key's index down by one so the map stays in step with the object
// list, resolving the staleness risk spec.md §9 flags for the original
// engine's remove paths.
func (s *Scene) Remove(key string) {
	index, ok := s.keyToIndex[key]
	if !ok {
		return
	}

	removed := s.objects[index]
	s.objects = append(s.objects[:index], s.objects[index+1:]...)
	delete(s.keyToIndex, key)

	for k, idx := range s.keyToIndex {
		if idx > index {
			s.keyToIndex[k] = idx - 1
		}
	}

	for i, light := range s.lights {
		if light == removed {
			s.lights = append(s.lights[:i], s.lights[i+1:]...)
			break
		}
	}
}

// Get returns the object registered under key, or nil.
func (s *Scene) Get(key string) *Object {
	index, ok := s.keyToIndex[key]
	if !ok {
		return nil
	}
	return s.objects[index]
}

// Objects returns the ordered object list.
func (s *Scene) Objects() []*Object { return s.objects }

// Lights returns the subset of objects that are light variants.
func (s *Scene) Lights() []*Object { return s.lights }

// RebuildOccupiedSectors tests the camera position against every
// registered sector's AABB, per spec.md §4.6.
func (s *Scene) RebuildOccupiedSectors(cameraPos Vec3) {
	for id := range s.occupiedSectors {
		delete(s.occupiedSectors, id)
	}
	for _, sector := range s.sectors {
		if sector.Contains(cameraPos) {
			s.occupiedSectors[sector.ID] = true
		}
	}
}

// IsObjectVisible reports whether obj should be considered this frame:
// objects with sector_id == GlobalSectorID are always visible; otherwise
// only when their sector is among those currently containing the camera.
func (s *Scene) IsObjectVisible(obj *Object) bool {
	if obj.SectorID == GlobalSectorID {
		return true
	}
	return s.occupiedSectors[obj.SectorID]
}

// ApplyCommand mutates scene settings from a runtime command line
// (spec.md §6), recovered from original_source/Source/System/CommandLine.cpp.
// Returns an error for unknown commands or malformed arguments; static
// light precomputation is the caller's responsibility to re-run afterward
// when it reports lightingChanged == true.
func (s *Scene) ApplyCommand(name string, args []string) (lightingChanged bool, err error) {
	parseFloat := func(i int) (float64, error) {
		if i >= len(args) {
			return 0, fmt.Errorf("command %q: missing argument %d", name, i)
		}
		return strconv.ParseFloat(args[i], 64)
	}
	parseColor := func() (Color, error) {
		if len(args) != 3 {
			return Color{}, fmt.Errorf("command %q: expected R,G,B", name)
		}
		var c [3]uint8
		for i := 0; i < 3; i++ {
			v, err := strconv.Atoi(args[i])
			if err != nil {
				return Color{}, fmt.Errorf("command %q: %w", name, err)
			}
			c[i] = uint8(v)
		}
		return Color{R: c[0], G: c[1], B: c[2]}, nil
	}

	switch name {
	case "ambientLightColor":
		c, perr := parseColor()
		if perr != nil {
			return false, perr
		}
		s.Settings.AmbientLightColor = c
		return true, nil
	case "ambientLightVector":
		if len(args) != 3 {
			return false, fmt.Errorf("command %q: expected x,y,z", name)
		}
		var v [3]float64
		for i := 0; i < 3; i++ {
			f, perr := strconv.ParseFloat(args[i], 64)
			if perr != nil {
				return false, fmt.Errorf("command %q: %w", name, perr)
			}
			v[i] = f
		}
		s.Settings.AmbientLightVector = Vec3{v[0], v[1], v[2]}
		return true, nil
	case "ambientLightFactor":
		f, perr := parseFloat(0)
		if perr != nil {
			return false, perr
		}
		s.Settings.AmbientLightFactor = f
		return true, nil
	case "backgroundColor":
		c, perr := parseColor()
		if perr != nil {
			return false, perr
		}
		s.Settings.BackgroundColor = c
		return false, nil
	case "brightness":
		f, perr := parseFloat(0)
		if perr != nil {
			return false, perr
		}
		s.Settings.Brightness = f
		return true, nil
	case "visibility":
		f, perr := parseFloat(0)
		if perr != nil {
			return false, perr
		}
		s.Settings.Visibility = f
		return false, nil
	default:
		return false, fmt.Errorf("unknown command %q", name)
	}
}
