package assets

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mirstar13/softcore/engine"
)

type stubTextureSource struct {
	tex *engine.Texture
	err error
}

func (s stubTextureSource) Decode() (*engine.Texture, error) { return s.tex, s.err }

func TestLoadTexturesConcurrentlyLeavesFailuresUnconfirmedNotFatal(t *testing.T) {
	ok := engine.NewTextureFromARGB(1, 1, []engine.Color{{R: 1, G: 2, B: 3}})

	sources := []TextureSource{
		stubTextureSource{tex: ok},
		stubTextureSource{err: errors.New("boom")},
	}

	results, err := LoadTexturesConcurrently(context.Background(), sources)
	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Same(t, ok, results[0])
	assert.Nil(t, results[1])
}

func TestLoadTexturesConcurrentlyEmptyBatch(t *testing.T) {
	results, err := LoadTexturesConcurrently(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, results)
}
