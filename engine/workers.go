package engine

import (
	"runtime"
	"sync/atomic"
	"time"
)

// workStep is the discriminated union of task kinds a worker can be
// assigned, per spec.md §9's "multi-stage parallelism" note.
type workStep int32

const (
	stepNone workStep = iota
	stepIllumination
	stepScanline
)

const spinSleep = time.Millisecond

// worker is one of the N = max(1, cpu_count-2) render worker threads. It
// owns no state beyond the atomics the render driver flips to hand it
// work; it reads triangles/scanlines from the driver it belongs to by
// strided index.
type worker struct {
	id int

	isWorking atomic.Bool
	step      atomic.Int32
	isDone    atomic.Bool
}

func (w *worker) run(driver *RenderDriver) {
	for {
		if w.isDone.Load() {
			return
		}
		if !w.isWorking.Load() {
			time.Sleep(spinSleep)
			continue
		}

		switch workStep(w.step.Load()) {
		case stepIllumination:
			driver.runIlluminationShare(w.id)
		case stepScanline:
			driver.runScanlineShare(w.id)
		}

		w.isWorking.Store(false)
	}
}

// RenderDriver orchestrates illumination and scanline rasterization on a
// fixed pool of worker threads, striding work by index modulo worker
// count. If the host has fewer than 3 CPUs, multithreading is disabled
// and every stage runs serially on the calling goroutine instead
// (spec.md §5).
type RenderDriver struct {
	Illuminator *Illuminator
	Rasterizer  *Rasterizer

	workers []*worker

	triangles []*Triangle

	isRendering atomic.Bool
	isDone      atomic.Bool
}

// NewRenderDriver sizes the worker pool to max(1, NumCPU-2), or disables
// multithreading entirely when NumCPU < 3 or disableMultithreading is set.
func NewRenderDriver(il *Illuminator, ras *Rasterizer, disableMultithreading bool) *RenderDriver {
	d := &RenderDriver{Illuminator: il, Rasterizer: ras}

	n := runtime.NumCPU() - 2
	if n < 1 || disableMultithreading {
		n = 0
	}

	d.workers = make([]*worker, n)
	for i := range d.workers {
		w := &worker{id: i}
		d.workers[i] = w
		go w.run(d)
	}

	return d
}

// WorkerCount returns the number of live worker goroutines (0 means
// every stage runs serially on the calling goroutine).
func (d *RenderDriver) WorkerCount() int { return len(d.workers) }

// Shutdown signals is_done to every worker; they exit within one spin
// cycle.
func (d *RenderDriver) Shutdown() {
	for _, w := range d.workers {
		w.isDone.Store(true)
	}
}

// RenderFrame illuminates and rasterizes a frame's worth of buffered
// triangles. It sets is_rendering true for the duration so the caller
// (typically the main/projector thread) can busy-spin on it before
// presenting the previous frame's pixel buffer.
func (d *RenderDriver) RenderFrame(triangles []*Triangle) {
	d.isRendering.Store(true)
	defer d.isRendering.Store(false)

	d.triangles = triangles

	d.runStage(stepIllumination, len(triangles) > SerialIlluminationNonstaticTriangleLimit)

	d.Rasterizer.Dispatch(triangles)
	d.runStage(stepScanline, true)
}

// IsRendering reports whether a frame is currently mid-flight; the main
// thread busy-spins on this going false before presenting.
func (d *RenderDriver) IsRendering() bool { return d.isRendering.Load() }

// runStage hands the given step to every worker and busy-spins until all
// have cleared is_working, or — if there are no workers, or the stage is
// ineligible for parallelism — runs the entire share serially in-line.
func (d *RenderDriver) runStage(step workStep, allowParallel bool) {
	if len(d.workers) == 0 || !allowParallel {
		d.runSerial(step)
		return
	}

	for _, w := range d.workers {
		w.step.Store(int32(step))
		w.isWorking.Store(true)
	}

	for _, w := range d.workers {
		for w.isWorking.Load() {
			time.Sleep(spinSleep)
		}
	}
}

func (d *RenderDriver) runSerial(step workStep) {
	switch step {
	case stepIllumination:
		for _, t := range d.triangles {
			d.Illuminator.IlluminateTriangle(t)
		}
	case stepScanline:
		for _, s := range d.Rasterizer.Scanlines() {
			d.Rasterizer.RasterizeScanline(s)
		}
	}
}

// runIlluminationShare illuminates every triangle whose index in the
// frame's triangle queue mod worker count equals workerID.
func (d *RenderDriver) runIlluminationShare(workerID int) {
	n := len(d.workers)
	for i, t := range d.triangles {
		if i%n == workerID {
			d.Illuminator.IlluminateTriangle(t)
		}
	}
}

// runScanlineShare rasterizes every scanline whose row (y) mod worker
// count equals workerID; each worker owns a disjoint set of rows, so
// pixel/depth writes never collide.
func (d *RenderDriver) runScanlineShare(workerID int) {
	n := len(d.workers)
	for _, s := range d.Rasterizer.Scanlines() {
		if s.Y%n == workerID {
			d.Rasterizer.RasterizeScanline(s)
		}
	}
}
