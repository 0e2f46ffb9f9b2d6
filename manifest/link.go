package manifest

import (
	"fmt"
	"sort"
	"sync"
)

type linkKind uint8

const (
	kindLeaf linkKind = iota
	kindEphemeral
	kindDurable
)

// durableLink is the shared state behind a Durable Link: the directory's
// node id, and a lazily-materialized, at-most-once children cache shared by
// every clone of the Link that points at it (§3, §5).
type durableLink struct {
	node NodeID

	once     sync.Once
	children map[PathComponent]*Link
	err      error
}

func (d *durableLink) materialize(store Store, path RepoPath) (map[PathComponent]*Link, error) {
	d.once.Do(func() {
		entry, err := store.Get(path, d.node)
		if err != nil {
			d.err = fmt.Errorf("manifest.Link.materialize: %s@%s: %w", path, d.node, err)
			return
		}
		children := make(map[PathComponent]*Link, len(entry.Elements))
		for _, el := range entry.Elements {
			if el.Flag.isDirectory() {
				children[el.Name] = newDurableLink(el.Node)
			} else {
				children[el.Name] = newLeafLink(FileMetadata{Node: el.Node, FileType: el.Flag.FileType})
			}
		}
		d.children = children
	})
	return d.children, d.err
}

// Link is a tagged union: exactly one of Leaf, Ephemeral or Durable (§3).
// The zero value is not a valid Link; use the New*Link constructors.
type Link struct {
	kind linkKind

	leaf FileMetadata

	// Valid when kind == kindEphemeral. A live, mutable, directly shared
	// map (maps are reference types in Go; copying a Link copies the
	// map reference, which is what "promote on mutation" relies on).
	ephemeral map[PathComponent]*Link

	// Valid when kind == kindDurable.
	durable *durableLink
}

func newLeafLink(m FileMetadata) *Link {
	return &Link{kind: kindLeaf, leaf: m}
}

func newEphemeralLink(children map[PathComponent]*Link) *Link {
	if children == nil {
		children = make(map[PathComponent]*Link)
	}
	return &Link{kind: kindEphemeral, ephemeral: children}
}

func newDurableLink(node NodeID) *Link {
	return &Link{kind: kindDurable, durable: &durableLink{node: node}}
}

func (l *Link) isLeaf() bool      { return l.kind == kindLeaf }
func (l *Link) isEphemeral() bool { return l.kind == kindEphemeral }
func (l *Link) isDurable() bool   { return l.kind == kindDurable }

// leafMetadata returns the leaf's metadata; callers must check isLeaf first.
func (l *Link) leafMetadata() FileMetadata { return l.leaf }

// durableNode returns the durable link's node id; callers must check
// isDurable first.
func (l *Link) durableNode() NodeID { return l.durable.node }

// ephemeralChildren returns the live map of an Ephemeral link; callers must
// check isEphemeral first.
func (l *Link) ephemeralChildren() map[PathComponent]*Link { return l.ephemeral }

// sortedNames returns the component names of an Ephemeral link's children,
// in lexicographic order (invariant 6, §3). Callers must check isEphemeral
// first.
func (l *Link) sortedNames() []PathComponent {
	return sortedComponentKeys(l.ephemeral)
}

// sortedComponentKeys returns the keys of m in lexicographic order
// (invariant 6, §3). Shared by the cursor (descent order) and the flush
// engine (entry order).
func sortedComponentKeys(m map[PathComponent]*Link) []PathComponent {
	names := make([]PathComponent, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// children returns this link's children map, fetching and caching a
// Durable link's children from the store on first access. The map is
// unordered; callers that need component-lex order use
// sortedComponentKeys.
// Callers must not call children on a Leaf.
func (l *Link) children(store Store, path RepoPath) (map[PathComponent]*Link, error) {
	switch l.kind {
	case kindEphemeral:
		return l.ephemeral, nil
	case kindDurable:
		return l.durable.materialize(store, path)
	default:
		return nil, fmt.Errorf("manifest.Link.children: %s: %w", path, ErrFileWhereDirectoryExpected)
	}
}

// mutableChildren returns this link's children map as a mutable Ephemeral
// map, promoting a Durable link to Ephemeral first if necessary (§4.4, step
// 2). The promotion materializes the Durable link's children (fetching
// from the store if not already cached) and copies them into a fresh,
// independent map; the shared durable state, and any other clone of l
// pointing at it, is unaffected; *l itself becomes Ephemeral.
//
// Returns ErrFileWhereDirectoryExpected if l is a Leaf.
func (l *Link) mutableChildren(store Store, path RepoPath) (map[PathComponent]*Link, error) {
	switch l.kind {
	case kindEphemeral:
		return l.ephemeral, nil
	case kindDurable:
		cached, err := l.durable.materialize(store, path)
		if err != nil {
			return nil, err
		}
		fresh := make(map[PathComponent]*Link, len(cached))
		for name, child := range cached {
			fresh[name] = child
		}
		l.kind = kindEphemeral
		l.ephemeral = fresh
		l.durable = nil
		return l.ephemeral, nil
	default:
		return nil, fmt.Errorf("manifest.Link.mutableChildren: %s: %w", path, ErrFileWhereDirectoryExpected)
	}
}
