package assets

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/mirstar13/softcore/engine"
)

// LoadTexturesConcurrently decodes a batch of texture sources in
// parallel, bounding the number of in-flight decodes to runtime.NumCPU()
// via a weighted semaphore. A source that fails to decode yields a nil
// *engine.Texture at its slot rather than aborting the batch — per
// spec.md §7, a missing/invalid texture is a recoverable-asset error;
// an unconfirmed engine.Texture already samples as transparent black.
func LoadTexturesConcurrently(ctx context.Context, sources []TextureSource) ([]*engine.Texture, error) {
	results := make([]*engine.Texture, len(sources))
	sem := semaphore.NewWeighted(int64(runtime.NumCPU()))

	var wg sync.WaitGroup

	for i, src := range sources {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return results, fmt.Errorf("assets: acquiring load slot: %w", err)
		}

		wg.Add(1)
		go func(i int, src TextureSource) {
			defer wg.Done()
			defer sem.Release(1)

			tex, err := src.Decode()
			if err != nil {
				slog.Warn("texture decode failed, leaving unconfirmed", "index", i, "error", err)
				return
			}
			results[i] = tex
		}(i, src)
	}

	wg.Wait()
	return results, nil
}
