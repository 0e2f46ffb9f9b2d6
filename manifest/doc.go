// Package manifest implements a content-addressed tree manifest: an
// in-memory representation of the state of a repository's file tree at one
// revision, mapping repository-relative paths to file identities.
//
// A Tree is either ephemeral (freshly created, fully in memory) or rooted at
// a durable node id (lazily materialized from a Store on demand). Insert and
// Remove mutate the in-memory shape; Flush serializes the mutated subtrees
// back into the store and returns the tree's new identity. Diff compares two
// trees without reading more of the store than necessary.
package manifest
