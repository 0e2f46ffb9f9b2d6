package manifest

import (
	"encoding/hex"
	"fmt"
)

// NodeIDLen is the fixed width, in bytes, of a NodeID: a SHA-1 digest.
const NodeIDLen = 20

// NodeID is a fixed-width content hash identifying a file blob or a
// directory entry.
type NodeID [NodeIDLen]byte

// NullNodeID is the hash that does not point to anything. It is used as the
// stand-in parent hash in the directory node hash computation (§6, §9).
var NullNodeID NodeID

// NodeIDFromHex parses the 40-hex-character lowercase representation of a
// NodeID.
func NodeIDFromHex(s string) (NodeID, error) {
	var n NodeID
	b, err := hex.DecodeString(s)
	if err != nil {
		return n, fmt.Errorf("manifest.NodeIDFromHex: %q: %w", s, err)
	}
	if len(b) != NodeIDLen {
		return n, fmt.Errorf("manifest.NodeIDFromHex: %q: want %d bytes, got %d", s, NodeIDLen, len(b))
	}
	copy(n[:], b)
	return n, nil
}

// Hex returns the lowercase hex representation of the node id.
func (n NodeID) Hex() string {
	return hex.EncodeToString(n[:])
}

func (n NodeID) String() string {
	return n.Hex()
}

// IsNull reports whether n is the null node id.
func (n NodeID) IsNull() bool {
	return n == NullNodeID
}

// Less reports whether n sorts before m, byte-lexicographically. Used to
// order the two (stand-in) parent hashes in the flush hash computation.
func (n NodeID) Less(m NodeID) bool {
	for i := range n {
		if n[i] != m[i] {
			return n[i] < m[i]
		}
	}
	return false
}

// FileType distinguishes the three kinds of file a Leaf can describe.
type FileType uint8

const (
	Regular FileType = iota
	Executable
	Symlink
)

func (t FileType) String() string {
	switch t {
	case Regular:
		return "regular"
	case Executable:
		return "executable"
	case Symlink:
		return "symlink"
	default:
		return fmt.Sprintf("FileType(%d)", uint8(t))
	}
}

// flagByte is the one-byte encoding used by the store entry wire format
// (§6) for this file type.
func (t FileType) flagByte() (byte, error) {
	switch t {
	case Regular:
		return 'r', nil
	case Executable:
		return 'x', nil
	case Symlink:
		return 'l', nil
	default:
		return 0, fmt.Errorf("manifest.FileType.flagByte: %v: unrecognized file type", t)
	}
}

func fileTypeFromFlagByte(b byte) (FileType, error) {
	switch b {
	case 'r':
		return Regular, nil
	case 'x':
		return Executable, nil
	case 'l':
		return Symlink, nil
	default:
		return 0, fmt.Errorf("manifest.fileTypeFromFlagByte: %q: unrecognized flag byte", b)
	}
}

// FileMetadata identifies a file: its content hash and its type.
type FileMetadata struct {
	Node     NodeID
	FileType FileType
}

func (m FileMetadata) String() string {
	return fmt.Sprintf("%s@%s", m.FileType, m.Node)
}
