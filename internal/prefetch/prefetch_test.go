package prefetch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fortytw2/leaktest"
	"github.com/nicolagi/treemanifest/internal/prefetch"
	"github.com/nicolagi/treemanifest/manifest"
	"github.com/stretchr/testify/require"
)

func meta(b byte) manifest.FileMetadata {
	var n manifest.NodeID
	n[0] = b
	return manifest.FileMetadata{Node: n, FileType: manifest.Regular}
}

func TestPrefetchMaterializesDurableLinksAlongEachPath(t *testing.T) {
	defer leaktest.Check(t)()

	store := manifest.NewTestStore()
	seed := manifest.Ephemeral(store)
	require.NoError(t, seed.Insert(manifest.MustRepoPath("a/b/c"), meta(1)))
	require.NoError(t, seed.Insert(manifest.MustRepoPath("a/d"), meta(2)))
	root, err := seed.Flush()
	require.NoError(t, err)

	tree := manifest.Durable(store, root)
	err = prefetch.Prefetch(context.Background(), tree, []manifest.RepoPath{
		manifest.MustRepoPath("a/b/c"),
		manifest.MustRepoPath("a/d"),
	})
	require.NoError(t, err)

	m, err := tree.Get(manifest.MustRepoPath("a/b/c"))
	require.NoError(t, err)
	require.Equal(t, meta(1), m)
}

func TestPrefetchPropagatesUnexpectedErrors(t *testing.T) {
	defer leaktest.Check(t)()

	emptyStore := manifest.NewTestStore()
	tree := manifest.Durable(emptyStore, func() manifest.NodeID {
		var n manifest.NodeID
		n[0] = 7
		return n
	}())

	err := prefetch.Prefetch(context.Background(), tree, []manifest.RepoPath{
		manifest.MustRepoPath("anything"),
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, manifest.ErrStoreNotFound))
}
