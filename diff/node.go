package diff

import (
	"bytes"
)

// Node is something that can be diffed: a file-like position whose textual
// content can be compared against another. SameAs is an optional shortcut
// to comparing nodes by content hash rather than content bytes, which
// matters when Content is expensive to produce. ByteNode and StringNode
// hold their content in memory and compare it directly.
type Node interface {
	// SameAs reports whether the two nodes are known to hold identical
	// content, without necessarily fetching it. If no shortcut is
	// possible, it returns (false, nil) and Unified falls back to
	// comparing Content.
	SameAs(Node) (bool, error)

	// Content returns the content of the node.
	Content() (string, error)
}

type ByteNode []byte

func (b ByteNode) SameAs(node Node) (bool, error) {
	other, ok := node.(ByteNode)
	if !ok {
		return false, nil
	}
	return bytes.Equal(b, other), nil
}

func (b ByteNode) Content() (string, error) {
	return string(b), nil
}

type StringNode string

func (s StringNode) SameAs(node Node) (bool, error) {
	other, ok := node.(StringNode)
	if !ok {
		return false, nil
	}
	return string(s) == string(other), nil
}

func (s StringNode) Content() (string, error) {
	return string(s), nil
}
