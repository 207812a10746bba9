package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestControllerPushActivatesAndSuspendsPrevious(t *testing.T) {
	c := &Controller{}

	first := &SceneEntry{Scene: NewScene()}
	assert.NoError(t, c.Push(first))
	assert.Equal(t, SceneActive, first.Lifecycle)

	second := &SceneEntry{Scene: NewScene()}
	assert.NoError(t, c.Push(second))

	assert.Equal(t, SceneSuspended, first.Lifecycle)
	assert.Equal(t, SceneActive, second.Lifecycle)
	assert.Same(t, second, c.Top())
}

func TestControllerPopResumesPrevious(t *testing.T) {
	c := &Controller{}
	first := &SceneEntry{Scene: NewScene()}
	second := &SceneEntry{Scene: NewScene()}
	c.Push(first)
	c.Push(second)

	c.Pop()

	assert.Equal(t, SceneDisposed, second.Lifecycle)
	assert.Equal(t, SceneActive, first.Lifecycle)
	assert.Same(t, first, c.Top())
	assert.Equal(t, 1, c.Depth())
}

func TestControllerPopOnEmptyStackIsNoop(t *testing.T) {
	c := &Controller{}
	assert.NotPanics(t, func() { c.Pop() })
	assert.Nil(t, c.Top())
}

func TestControllerPushBeyondDepthLimitIsFatal(t *testing.T) {
	c := &Controller{}
	for i := 0; i < maxSceneStackDepth; i++ {
		assert.NoError(t, c.Push(&SceneEntry{Scene: NewScene()}))
	}

	err := c.Push(&SceneEntry{Scene: NewScene()})
	assert.Error(t, err)
	var overflow *SceneStackOverflowError
	assert.ErrorAs(t, err, &overflow)
}

func TestControllerPushRunsOnLoadOnce(t *testing.T) {
	c := &Controller{}
	loadCount := 0
	entry := &SceneEntry{
		Scene: NewScene(),
		onLoad: func(*Scene) {
			loadCount++
		},
	}

	assert.NoError(t, c.Push(entry))
	assert.Equal(t, 1, loadCount)

	c.Pop()
	assert.NoError(t, c.Push(entry))
	// Lifecycle is no longer SceneUnloaded on the second push, so onLoad
	// must not run again.
	assert.Equal(t, 1, loadCount)
}
