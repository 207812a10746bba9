package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTriangleBufferRequestAndBufferRoundTrip(t *testing.T) {
	buf := NewTriangleBuffer()

	tri, err := buf.RequestTriangle()
	assert.NoError(t, err)
	assert.NotNil(t, tri)

	tri.FresnelScalar = 0.5
	buf.BufferTriangle(tri)

	assert.Equal(t, 1, buf.TotalRequested())
	// The secondary queue is empty until the buffer flips.
	assert.Empty(t, buf.GetBufferedTriangles())
}

func TestTriangleBufferFlipExposesPriorFrame(t *testing.T) {
	buf := NewTriangleBuffer()

	first, _ := buf.RequestTriangle()
	first.FresnelScalar = 1
	buf.BufferTriangle(first)

	buf.Reset()

	buffered := buf.GetBufferedTriangles()
	assert.Len(t, buffered, 1)
	assert.Equal(t, 1.0, buffered[0].FresnelScalar)
	assert.Equal(t, 0, buf.TotalRequested())
}

func TestTriangleBufferOverflowIsFatal(t *testing.T) {
	buf := NewTriangleBuffer()

	var lastErr error
	for i := 0; i < TrianglePoolSize+1; i++ {
		_, err := buf.RequestTriangle()
		if err != nil {
			lastErr = err
			break
		}
	}

	assert.Error(t, lastErr)
	var fatal *FatalCapacityError
	assert.ErrorAs(t, lastErr, &fatal)
}

func TestTriangleBufferDoubleBufferingAlternatesPools(t *testing.T) {
	buf := NewTriangleBuffer()

	a, _ := buf.RequestTriangle()
	a.FresnelScalar = 10
	buf.BufferTriangle(a)
	buf.Reset() // frame 1 -> primary becomes B, secondary (A) exposed

	assert.Equal(t, 10.0, buf.GetBufferedTriangles()[0].FresnelScalar)

	b, _ := buf.RequestTriangle()
	b.FresnelScalar = 20
	buf.BufferTriangle(b)
	buf.Reset() // frame 2 -> primary becomes A again, secondary (B) exposed

	assert.Equal(t, 20.0, buf.GetBufferedTriangles()[0].FresnelScalar)
}
