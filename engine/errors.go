package engine

// FatalAssetError marks an asset failure severe enough to terminate the
// process (spec.md §7), e.g. a required icon or font load failure. This
// is distinct from a missing texture, which is a recoverable-asset error
// handled by Texture.Confirmed instead.
type FatalAssetError struct {
	Message string
}

func (e *FatalAssetError) Error() string { return e.Message }

// SceneStackOverflowError marks the scene controller stack exceeding its
// depth limit (spec.md §7, §4.7); fatal.
type SceneStackOverflowError struct {
	Depth int
}

func (e *SceneStackOverflowError) Error() string {
	return "scene stack depth exceeds limit"
}

const maxSceneStackDepth = 10
