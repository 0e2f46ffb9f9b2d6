package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSeedTree(t *testing.T, store Store) *Tree {
	t.Helper()
	tr := Ephemeral(store)
	require.NoError(t, tr.Insert(MustRepoPath("a1/b1/c1/d1"), meta(10)))
	require.NoError(t, tr.Insert(MustRepoPath("a1/b2"), meta(20)))
	require.NoError(t, tr.Insert(MustRepoPath("a2/b2/c2"), meta(30)))
	return tr
}

// Seed scenario 5: flush round-trip.
func TestFlushRoundTrip(t *testing.T) {
	store := NewTestStore()
	tr := buildSeedTree(t, store)

	n, err := tr.Flush()
	require.NoError(t, err)

	fresh := Durable(store, n)

	m, err := fresh.Get(MustRepoPath("a1/b1/c1/d1"))
	require.NoError(t, err)
	assert.Equal(t, meta(10), m)
	m, err = fresh.Get(MustRepoPath("a1/b2"))
	require.NoError(t, err)
	assert.Equal(t, meta(20), m)
	m, err = fresh.Get(MustRepoPath("a2/b2/c2"))
	require.NoError(t, err)
	assert.Equal(t, meta(30), m)

	var paths []string
	for _, f := range filesOf(t, fresh) {
		paths = append(paths, f.Path.String())
	}
	assert.Equal(t, []string{"a1/b1/c1/d1", "a1/b2", "a2/b2/c2"}, paths)
}

// P7: flush idempotence.
func TestFlushIdempotent(t *testing.T) {
	store := NewTestStore()
	tr := buildSeedTree(t, store)

	n1, err := tr.Flush()
	require.NoError(t, err)
	n2, err := tr.Flush()
	require.NoError(t, err)
	assert.Equal(t, n1, n2)
}

// P8: flush determinism.
func TestFlushDeterministic(t *testing.T) {
	store1 := NewTestStore()
	store2 := NewTestStore()
	n1, err := buildSeedTree(t, store1).Flush()
	require.NoError(t, err)
	n2, err := buildSeedTree(t, store2).Flush()
	require.NoError(t, err)
	assert.Equal(t, n1, n2)
}
