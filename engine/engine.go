package engine

import "time"

// Engine wires Scene, Projector, RasterFilter, TriangleBuffer,
// Illuminator, and Rasterizer/RenderDriver into the three-stage pipeline
// described in spec.md §2 and §5: the caller's goroutine plays the role
// of the main/projector thread, projecting frame N while the render
// driver's workers illuminate and rasterize frame N-1 concurrently.
type Engine struct {
	Scene  *Scene
	Filter *RasterFilter
	Buffer *TriangleBuffer
	Projector *Projector

	Illuminator *Illuminator
	Rasterizer  *Rasterizer
	Driver      *RenderDriver

	Alert func(kind, message string)

	startedFirstFrame bool
}

// Config bundles the engine's fixed startup parameters.
type Config struct {
	Width, Height         int
	DisableMultithreading bool
}

// New constructs an Engine around a caller-provided, already-populated
// scene. PrecomputeStaticLighting should be called once more before the
// first frame if lighting-affecting settings change afterward.
func New(scene *Scene, cfg Config) *Engine {
	filter := NewRasterFilter(cfg.Width, cfg.Height)
	buffer := NewTriangleBuffer()
	projector := NewProjector(scene, filter, buffer, cfg.Width, cfg.Height)

	illuminator := NewIlluminator(scene)
	rasterizer := NewRasterizer(cfg.Width, cfg.Height)
	rasterizer.Visibility = scene.Settings.Visibility
	rasterizer.BackgroundColor = scene.Settings.BackgroundColor

	driver := NewRenderDriver(illuminator, rasterizer, cfg.DisableMultithreading)

	illuminator.PrecomputeStaticLighting()

	return &Engine{
		Scene:       scene,
		Filter:      filter,
		Buffer:      buffer,
		Projector:   projector,
		Illuminator: illuminator,
		Rasterizer:  rasterizer,
		Driver:      driver,
	}
}

// alert reports a failure through the Alert hook, if set, and always
// returns the original error so callers can decide whether to terminate.
func (e *Engine) alert(kind string, err error) error {
	if e.Alert != nil && err != nil {
		e.Alert(kind, err.Error())
	}
	return err
}

// RunFrame advances the pipeline by one frame: applies camera input,
// rebuilds sector occupancy, projects and filters the new frame's
// triangles into the triangle buffer, waits for the previous frame's
// render to finish, then starts that render asynchronously while
// returning the pixel buffer for the frame that just finished (nil on
// the very first call, since the render thread idles with no prior
// frame per spec.md §4.7).
func (e *Engine) RunFrame(dt float64, input CameraInput) ([][]Color, error) {
	e.Scene.Camera.Apply(input)
	e.Scene.RebuildOccupiedSectors(e.Scene.Camera.Position)

	if err := e.Projector.ProjectFrame(); err != nil {
		if fatal, ok := err.(*FatalCapacityError); ok {
			return nil, e.alert("fatal-capacity", fatal)
		}
		return nil, err
	}

	for t := e.Filter.Next(); t != nil; t = e.Filter.Next() {
		e.Buffer.BufferTriangle(t)
	}

	for e.Driver.IsRendering() {
		time.Sleep(spinSleep)
	}

	var presented [][]Color
	if e.startedFirstFrame {
		presented = clonePixels(e.Rasterizer.Pixels)
	}

	e.Buffer.Reset()
	triangles := e.Buffer.GetBufferedTriangles()

	e.Rasterizer.Clear()
	// Mark the render in flight before the goroutine starts, so the next
	// RunFrame or Shutdown cannot miss it.
	e.Driver.isRendering.Store(true)
	go e.Driver.RenderFrame(triangles)

	e.startedFirstFrame = true

	return presented, nil
}

func clonePixels(src [][]Color) [][]Color {
	out := make([][]Color, len(src))
	for y, row := range src {
		out[y] = append([]Color(nil), row...)
	}
	return out
}

// Shutdown stops every render worker. Render-driver and workers exit
// within one spin cycle (spec.md §5).
func (e *Engine) Shutdown() {
	for e.Driver.IsRendering() {
		time.Sleep(spinSleep)
	}
	e.Driver.Shutdown()
}
