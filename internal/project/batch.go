package project

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BatchItem is the outcome of one project in a batch.
type BatchItem struct {
	Path   string
	Result *Result
	Err    error
}

// LoadAll processes projects concurrently, at most limit at a time. Each
// project gets its own district; nothing is shared between goroutines. Items
// come back in input order. A failing project does not stop the others; the
// returned error is non-nil only when ctx is cancelled.
func LoadAll(ctx context.Context, paths []string, limit int) ([]BatchItem, error) {
	items := make([]BatchItem, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, path := range paths {
		i, path := i, path
		items[i].Path = path
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			res, err := Load(path)
			items[i].Result = res
			items[i].Err = err
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return items, err
	}
	return items, nil
}
