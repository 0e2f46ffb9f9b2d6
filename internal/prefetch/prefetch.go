// Package prefetch concurrently warms a manifest tree's lazily-materialized
// durable links ahead of a bulk read, so that a subsequent walk of those
// paths does not pay for store round-trips one at a time.
package prefetch

import (
	"context"

	"github.com/nicolagi/treemanifest/manifest"
	"golang.org/x/sync/errgroup"
)

// maxConcurrency bounds the number of in-flight store fetches, mirroring
// the semaphore-channel fan-out used by the paired store's background
// propagation loop.
const maxConcurrency = 16

// Prefetch materializes, for each path in paths, every durable link along
// the root-to-path walk, concurrently across paths. It does the same work
// a later Tree.Get or cursor traversal of those paths would do lazily,
// just ahead of time.
//
// Callers are expected to pass paths already known to resolve (e.g. from a
// prior Files() or diff listing); Prefetch makes no attempt to distinguish
// a genuinely absent path from a store outage; both surface as the first
// error, which cancels the remaining work.
func Prefetch(ctx context.Context, tree *manifest.Tree, paths []manifest.RepoPath) error {
	g, ctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, maxConcurrency)

	for _, path := range paths {
		path := path
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			return g.Wait()
		}
		g.Go(func() error {
			defer func() { <-sem }()
			_, err := tree.Get(path)
			return err
		})
	}

	return g.Wait()
}
