package manifest

import "crypto/sha1"

// Flush rewrites every Ephemeral subtree into a Durable equivalent,
// writing freshly-computed directory entries to the store bottom-up, and
// returns the new root node id (§4.7).
//
// Flush is deterministic (P8) and idempotent on an already fully-durable
// tree (P7). It is not cancellable partway: a failure mid-flush leaves
// some entries already written to the store (harmless, since the store is
// content-addressed) but the in-memory tree should be discarded rather
// than reused.
func (t *Tree) Flush() (NodeID, error) {
	node, _, err := t.flushLink(RepoPath{}, t.root)
	if err != nil {
		return NodeID{}, errorf("Tree.Flush", "%w", err)
	}
	return node, nil
}

// flushLink flushes link (located at path) post-order, returning its node
// id and whether it is a file or a directory.
func (t *Tree) flushLink(path RepoPath, link *Link) (NodeID, Flag, error) {
	switch {
	case link.isLeaf():
		m := link.leafMetadata()
		return m.Node, fileFlag(m.FileType), nil

	case link.isDurable():
		return link.durableNode(), directoryFlag(), nil

	default:
		return t.flushEphemeral(path, link)
	}
}

func (t *Tree) flushEphemeral(path RepoPath, link *Link) (NodeID, Flag, error) {
	children := link.ephemeralChildren()
	names := sortedComponentKeys(children)

	elements := make([]Element, 0, len(names))
	for _, name := range names {
		childNode, flag, err := t.flushLink(path.Join(name), children[name])
		if err != nil {
			return NodeID{}, Flag{}, err
		}
		elements = append(elements, Element{Name: name, Node: childNode, Flag: flag})
	}

	entry, err := NewEntry(elements)
	if err != nil {
		return NodeID{}, Flag{}, err
	}
	body, err := entry.Serialize()
	if err != nil {
		return NodeID{}, Flag{}, err
	}
	node := computeNode(NullNodeID, NullNodeID, body)

	if err := t.store.Insert(path, node, entry); err != nil {
		return NodeID{}, Flag{}, err
	}

	*link = *newDurableLink(node)
	link.durable.once.Do(func() {})
	link.durable.children = children

	return node, directoryFlag(), nil
}

// computeNode is the directory node hash (§6): SHA-1 of the two parent
// node ids in byte-lexicographic order, followed by the serialized entry.
// This specification always passes the null node id for both parents.
func computeNode(p1, p2 NodeID, body []byte) NodeID {
	lo, hi := p1, p2
	if p2.Less(p1) {
		lo, hi = p2, p1
	}
	h := sha1.New()
	h.Write(lo[:])
	h.Write(hi[:])
	h.Write(body)
	var n NodeID
	copy(n[:], h.Sum(nil))
	return n
}
