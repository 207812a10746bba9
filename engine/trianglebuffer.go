package engine

import (
	"fmt"
)

// TriangleBuffer provides two fixed Triangle pools and two queues. A
// single flip bit selects which pool/queue pair is "primary" (written by
// the projector) versus "secondary" (read by the renderer), keeping the
// pool selection and queue selection coupled together — see
// original_source/Source/Graphics/TriangleBuffer.cpp, where both the
// pool and the buffer swap on the same isSwapped flag.
//
// This is the synchronization boundary between projection of frame N and
// rendering of frame N-1 (spec.md §4.3, §5).
type TriangleBuffer struct {
	poolA, poolB []Triangle
	queueA, queueB []*Triangle

	isSwapped bool
	requested int
}

// NewTriangleBuffer allocates both fixed-size pools.
func NewTriangleBuffer() *TriangleBuffer {
	return &TriangleBuffer{
		poolA: make([]Triangle, TrianglePoolSize),
		poolB: make([]Triangle, TrianglePoolSize),
	}
}

// FatalCapacityError marks errors that must terminate the process.
type FatalCapacityError struct {
	Message string
}

func (e *FatalCapacityError) Error() string { return e.Message }

// RequestTriangle returns a fresh slot from the primary pool. Overflow is
// fatal: the pool size must be chosen for the peak scene (spec.md §4.8).
func (b *TriangleBuffer) RequestTriangle() (*Triangle, error) {
	if b.requested >= TrianglePoolSize {
		return nil, &FatalCapacityError{Message: fmt.Sprintf("triangle buffer overflow: requested beyond pool size %d", TrianglePoolSize)}
	}

	pool := b.poolA
	if b.isSwapped {
		pool = b.poolB
	}
	tri := &pool[b.requested]
	*tri = Triangle{}
	b.requested++
	return tri, nil
}

// BufferTriangle pushes a projected, filtered triangle into the primary
// queue.
func (b *TriangleBuffer) BufferTriangle(t *Triangle) {
	if b.isSwapped {
		b.queueB = append(b.queueB, t)
	} else {
		b.queueA = append(b.queueA, t)
	}
}

// GetBufferedTriangles returns the secondary queue for consumption by the
// rendering pipeline.
func (b *TriangleBuffer) GetBufferedTriangles() []*Triangle {
	if b.isSwapped {
		return b.queueA
	}
	return b.queueB
}

// TotalRequested reports how many triangles were requested from the
// current primary pool this frame.
func (b *TriangleBuffer) TotalRequested() int { return b.requested }

// Reset resets the requested-triangle counter, flips primary/secondary,
// and clears the new primary queue so the next frame's projector can
// write into it.
func (b *TriangleBuffer) Reset() {
	b.requested = 0
	b.isSwapped = !b.isSwapped

	if b.isSwapped {
		b.queueB = b.queueB[:0]
	} else {
		b.queueA = b.queueA[:0]
	}
}
