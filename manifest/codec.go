package manifest

import (
	"bytes"
	"fmt"
)

// FlagKind distinguishes a directory element that is itself a file from one
// that is a directory.
type FlagKind uint8

const (
	FlagFile FlagKind = iota
	FlagDirectory
)

// Flag is the per-element tag in an Entry: either a file (carrying its
// FileType) or a directory.
type Flag struct {
	Kind     FlagKind
	FileType FileType
}

func fileFlag(t FileType) Flag      { return Flag{Kind: FlagFile, FileType: t} }
func directoryFlag() Flag           { return Flag{Kind: FlagDirectory} }
func (f Flag) isDirectory() bool    { return f.Kind == FlagDirectory }

func (f Flag) byteValue() (byte, error) {
	if f.Kind == FlagDirectory {
		return 't', nil
	}
	return f.FileType.flagByte()
}

func flagFromByte(b byte) (Flag, error) {
	if b == 't' {
		return directoryFlag(), nil
	}
	ft, err := fileTypeFromFlagByte(b)
	if err != nil {
		return Flag{}, err
	}
	return fileFlag(ft), nil
}

// Element is one child of a directory Entry: a name, the child's node id,
// and whether the child is a file or a directory.
type Element struct {
	Name PathComponent
	Node NodeID
	Flag Flag
}

// Entry is the wire form of one directory's immediate children: an ordered
// list of Elements, sorted by Name, with no duplicate names (§3, §6).
type Entry struct {
	Elements []Element
}

// NewEntry builds an Entry from elements already in component-lex order,
// validating invariant 3 and 6 of §3 (unique names, sorted order). The
// flush engine (§4.7) always presents elements in this order, since the
// ephemeral map it walks is already ordered; this validation is what turns
// a programming error into an early, precise failure instead of a corrupt
// store entry discovered later by a reader.
func NewEntry(elements []Element) (Entry, error) {
	for i := 1; i < len(elements); i++ {
		switch {
		case elements[i-1].Name == elements[i].Name:
			return Entry{}, fmt.Errorf("manifest.NewEntry: duplicate name %q: %w", elements[i].Name, ErrInvariantBreach)
		case elements[i-1].Name > elements[i].Name:
			return Entry{}, fmt.Errorf("manifest.NewEntry: %q out of order after %q: %w", elements[i].Name, elements[i-1].Name, ErrInvariantBreach)
		}
	}
	return Entry{Elements: elements}, nil
}

// Serialize renders the entry per the store wire format (§6):
//
//	name_bytes || NUL || hex(node_id) || flag_char || LF
//
// one record per element, concatenated in the entry's (already sorted)
// order.
func (e Entry) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	for _, el := range e.Elements {
		if bytes.IndexByte([]byte(el.Name), 0) != -1 {
			return nil, fmt.Errorf("manifest.Entry.Serialize: name %q contains NUL", el.Name)
		}
		buf.WriteString(string(el.Name))
		buf.WriteByte(0)
		buf.WriteString(el.Node.Hex())
		b, err := el.Flag.byteValue()
		if err != nil {
			return nil, fmt.Errorf("manifest.Entry.Serialize: %w", err)
		}
		buf.WriteByte(b)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// ParseEntry is the inverse of Entry.Serialize. It validates invariant 3
// (unique names) and invariant 6 (sorted order): a store entry failing
// either check is an invariant breach (§7.3), not a malformed-but-usable
// entry.
func ParseEntry(b []byte) (Entry, error) {
	var elements []Element
	for len(b) > 0 {
		nul := bytes.IndexByte(b, 0)
		if nul == -1 {
			return Entry{}, fmt.Errorf("manifest.ParseEntry: missing NUL separator: %w", ErrInvariantBreach)
		}
		name := PathComponent(b[:nul])
		b = b[nul+1:]
		// 40 hex characters for the node id, plus one flag byte, plus LF.
		const tailLen = NodeIDLen*2 + 1 + 1
		if len(b) < tailLen {
			return Entry{}, fmt.Errorf("manifest.ParseEntry: truncated record for %q: %w", name, ErrInvariantBreach)
		}
		node, err := NodeIDFromHex(string(b[:NodeIDLen*2]))
		if err != nil {
			return Entry{}, fmt.Errorf("manifest.ParseEntry: %q: %w: %v", name, ErrInvariantBreach, err)
		}
		flag, err := flagFromByte(b[NodeIDLen*2])
		if err != nil {
			return Entry{}, fmt.Errorf("manifest.ParseEntry: %q: %w: %v", name, ErrInvariantBreach, err)
		}
		if b[NodeIDLen*2+1] != '\n' {
			return Entry{}, fmt.Errorf("manifest.ParseEntry: %q: missing line terminator: %w", name, ErrInvariantBreach)
		}
		elements = append(elements, Element{Name: name, Node: node, Flag: flag})
		b = b[tailLen:]
	}
	return NewEntry(elements)
}
