// Package blobstore adapts a byte-oriented, content-addressed key/value
// store (internal/storage.Store) into a manifest.Store: the capability the
// pure manifest core needs to materialize durable directory links and to
// persist freshly flushed ones.
package blobstore

import (
	"github.com/nicolagi/treemanifest/internal/storage"
	"github.com/nicolagi/treemanifest/manifest"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Store implements manifest.Store over a storage.Store. Keys are the
// lowercase hex of the node id: the backing store is genuinely
// content-addressed, so path is accepted only for interface conformance
// and included in log fields and error messages, and does not participate
// in the key.
type Store struct {
	delegate storage.Store
}

var _ manifest.Store = (*Store)(nil)

// New wraps delegate as a manifest.Store.
func New(delegate storage.Store) *Store {
	return &Store{delegate: delegate}
}

// Insert serializes entry and writes it under node's hex key. If a blob
// already exists at that key, its bytes are compared against the freshly
// serialized entry: identical bytes are a no-op (idempotent re-insertion),
// differing bytes fail with manifest.ErrStoreConflict — two different
// directory shapes cannot legitimately hash to the same node id, so this
// signals either a hash collision or, far more likely, a bug upstream.
func (s *Store) Insert(path manifest.RepoPath, node manifest.NodeID, entry manifest.Entry) error {
	body, err := entry.Serialize()
	if err != nil {
		return errors.Wrapf(err, "blobstore.Store.Insert: %s@%s: serialize", path, node)
	}
	key := storage.Key(node.Hex())
	existing, err := s.delegate.Get(key)
	switch {
	case err == nil:
		if !byteSliceEqual(existing, body) {
			return errors.Wrapf(manifest.ErrStoreConflict, "blobstore.Store.Insert: %s@%s", path, node)
		}
		return nil
	case errors.Is(err, storage.ErrNotFound):
		// Fall through to write.
	default:
		return errors.Wrapf(err, "blobstore.Store.Insert: %s@%s: get existing", path, node)
	}
	if err := s.delegate.Put(key, body); err != nil {
		return errors.Wrapf(err, "blobstore.Store.Insert: %s@%s: put", path, node)
	}
	log.WithFields(log.Fields{
		"path": path.String(),
		"node": node.Hex(),
	}).Debug("blobstore: inserted directory entry")
	return nil
}

// Get fetches and decodes the entry at node's hex key. A decode failure
// (§7.3 of the invariant set: unsorted or duplicate element names) is
// reported as manifest.ErrInvariantBreach by manifest.ParseEntry, not
// folded into a not-found error.
func (s *Store) Get(path manifest.RepoPath, node manifest.NodeID) (manifest.Entry, error) {
	body, err := s.delegate.Get(storage.Key(node.Hex()))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return manifest.Entry{}, errors.Wrapf(manifest.ErrStoreNotFound, "blobstore.Store.Get: %s@%s", path, node)
		}
		return manifest.Entry{}, errors.Wrapf(err, "blobstore.Store.Get: %s@%s", path, node)
	}
	entry, err := manifest.ParseEntry(body)
	if err != nil {
		return manifest.Entry{}, errors.Wrapf(err, "blobstore.Store.Get: %s@%s", path, node)
	}
	return entry, nil
}

func byteSliceEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
