package manifest

// Tree is a content-addressed directory tree: a root Link plus the Store
// needed to materialize Durable links reached from it (§3, §4.3).
//
// The zero value is not valid; use Ephemeral or Durable.
type Tree struct {
	store Store
	root  *Link
}

// Ephemeral returns a new, empty tree with no backing content: its root is
// an Ephemeral link with no children. Suitable as the starting point for
// building up a tree from scratch before the first Flush.
func Ephemeral(store Store) *Tree {
	return &Tree{store: store, root: newEphemeralLink(nil)}
}

// Durable returns a tree rooted at an already-flushed directory node. Its
// contents are not fetched from store until first accessed.
func Durable(store Store, root NodeID) *Tree {
	return &Tree{store: store, root: newDurableLink(root)}
}

// Root returns the tree's root link, mostly for tests and for the flush and
// diff engines, which need to start a Cursor at it.
func (t *Tree) Root() *Link { return t.root }

// rootCursor returns a fresh depth-first cursor over the whole tree.
func (t *Tree) rootCursor() *Cursor {
	return newCursor(t.store, RepoPath{}, t.root)
}

// Files returns an iterator over every file in the tree, in ascending path
// order (P6).
func (t *Tree) Files() *Files {
	return &Files{cursor: t.rootCursor()}
}

// getLink walks path from the root, returning the Link found there. It
// returns ErrFileWhereDirectoryExpected if an intermediate component names
// a file, and a store error if a Durable link along the way fails to
// materialize. A path that does not exist at all is reported by returning
// (nil, nil, false).
func (t *Tree) getLink(path RepoPath) (link *Link, err error, found bool) {
	cur := t.root
	for _, s := range path.steps() {
		children, err := cur.children(t.store, s.parent)
		if err != nil {
			return nil, err, false
		}
		next, ok := children[s.component]
		if !ok {
			return nil, nil, false
		}
		cur = next
	}
	return cur, nil, true
}

// Get returns the metadata of the file at path. It returns
// ErrDirectoryWhereFileExpected if path names a directory.
func (t *Tree) Get(path RepoPath) (FileMetadata, error) {
	link, err, found := t.getLink(path)
	if err != nil {
		return FileMetadata{}, errorf("Tree.Get", "%s: %w", path, err)
	}
	if !found {
		return FileMetadata{}, errorf("Tree.Get", "%s: %w", path, ErrStoreNotFound)
	}
	if !link.isLeaf() {
		return FileMetadata{}, errorf("Tree.Get", "%s: %w", path, ErrDirectoryWhereFileExpected)
	}
	return link.leafMetadata(), nil
}

// Insert places a file's metadata at path, creating intermediate
// directories (as Ephemeral links) as needed, and promoting any Durable
// directory along the way to Ephemeral (§4.4). It returns
// ErrCannotInsertRoot if path is the root, and
// ErrFileWhereDirectoryExpected if an intermediate component already names
// a file or if path itself already names a directory. An existing file at
// path is overwritten.
func (t *Tree) Insert(path RepoPath, metadata FileMetadata) error {
	parent, last, ok := path.SplitLastComponent()
	if !ok {
		return errorf("Tree.Insert", "%w", ErrCannotInsertRoot)
	}
	dir, err := t.mkdirAll(parent)
	if err != nil {
		return errorf("Tree.Insert", "%s: %w", path, err)
	}
	children, err := dir.mutableChildren(t.store, parent)
	if err != nil {
		return errorf("Tree.Insert", "%s: %w", path, err)
	}
	if existing, ok := children[last]; ok && !existing.isLeaf() {
		return errorf("Tree.Insert", "%s: %w", path, ErrFileWhereDirectoryExpected)
	}
	children[last] = newLeafLink(metadata)
	return nil
}

// mkdirAll walks path from the root, creating Ephemeral directory links for
// any component that does not yet exist, and promoting Durable links along
// the way to Ephemeral so the walk can mutate them. It returns the link at
// path. A Leaf found before the last component is an error; the link at
// path itself is not checked and may be a Leaf, which the caller's
// mutableChildren then reports.
func (t *Tree) mkdirAll(path RepoPath) (*Link, error) {
	cur := t.root
	for _, s := range path.steps() {
		children, err := cur.mutableChildren(t.store, s.parent)
		if err != nil {
			return nil, err
		}
		next, ok := children[s.component]
		if !ok {
			next = newEphemeralLink(nil)
			children[s.component] = next
		}
		cur = next
	}
	return cur, nil
}

// Remove deletes the file at path, then prunes every ancestor directory
// that becomes empty as a result, all the way up to (but never including)
// the root link itself. It returns ErrRemoveDirectory if path names an
// existing directory. A path that does not exist, at any level, is
// already removed: Remove returns nil and leaves the tree untouched.
func (t *Tree) Remove(path RepoPath) error {
	parent, last, ok := path.SplitLastComponent()
	if !ok {
		return errorf("Tree.Remove", "%s: %w", path, ErrRemoveDirectory)
	}

	// ancestors[0] is the root; ancestors[i] is reached from
	// ancestors[i-1] via components[i-1]. ancestorPaths[i] is the
	// repository path of ancestors[i].
	ancestors := []*Link{t.root}
	ancestorPaths := []RepoPath{{}}
	var components []PathComponent
	cur := t.root
	for _, s := range parent.steps() {
		children, err := cur.mutableChildren(t.store, s.parent)
		if err != nil {
			return errorf("Tree.Remove", "%s: %w", path, err)
		}
		next, ok := children[s.component]
		if !ok {
			// Missing intermediate directory: the path is already gone.
			return nil
		}
		cur = next
		ancestors = append(ancestors, cur)
		ancestorPaths = append(ancestorPaths, s.parent.Join(s.component))
		components = append(components, s.component)
	}

	children, err := cur.mutableChildren(t.store, parent)
	if err != nil {
		return errorf("Tree.Remove", "%s: %w", path, err)
	}
	victim, ok := children[last]
	if !ok {
		// Missing leaf: the path is already gone.
		return nil
	}
	if !victim.isLeaf() {
		return errorf("Tree.Remove", "%s: %w", path, ErrRemoveDirectory)
	}
	delete(children, last)

	// Prune empty ancestor directories bottom-up, stopping at the root
	// (which has no parent to be removed from, and is never itself
	// deleted).
	for i := len(ancestors) - 1; i > 0; i-- {
		if len(ancestors[i].ephemeralChildren()) > 0 {
			break
		}
		parentChildren, err := ancestors[i-1].mutableChildren(t.store, ancestorPaths[i-1])
		if err != nil {
			return errorf("Tree.Remove", "%s: %w", path, err)
		}
		delete(parentChildren, components[i-1])
	}

	return nil
}
