package manifest

// DiffKind distinguishes the three shapes a DiffEntry can take (§4.8).
type DiffKind uint8

const (
	LeftOnly DiffKind = iota
	RightOnly
	Changed
)

// DiffEntry is one path-level difference between two trees. Left is valid
// for LeftOnly and Changed; Right is valid for RightOnly and Changed.
type DiffEntry struct {
	Path  RepoPath
	Kind  DiffKind
	Left  FileMetadata
	Right FileMetadata
}

// DiffIterator drives two cursors in lock-step, yielding file-level
// differences in ascending path order (§4.8).
type DiffIterator struct {
	left, right *Cursor

	leftDone, rightDone bool
	advanceLeft         bool
	advanceRight        bool

	err error
}

// Diff returns an iterator over the differences between two trees. A diff
// is keyed on file paths only; directories are never reported. Two Durable
// directories with equal node ids at the same path are skipped on both
// sides without a store access (P12).
func Diff(left, right *Tree) *DiffIterator {
	return &DiffIterator{
		left:         left.rootCursor(),
		right:        right.rootCursor(),
		advanceLeft:  true,
		advanceRight: true,
	}
}

// Err returns the first error encountered by either cursor, if any. Once
// set, Next always returns (DiffEntry{}, false).
func (d *DiffIterator) Err() error { return d.err }

// Next returns the next difference, or false when the diff is exhausted or
// an error has occurred (distinguish the two with Err()).
func (d *DiffIterator) Next() (DiffEntry, bool) {
	for {
		if d.err != nil {
			return DiffEntry{}, false
		}

		if d.advanceLeft && !d.leftDone {
			if step := d.left.step(); step == StepErr {
				d.err = d.left.Err()
				return DiffEntry{}, false
			} else if step == StepEnd {
				d.leftDone = true
			}
			d.advanceLeft = false
		}
		if d.advanceRight && !d.rightDone {
			if step := d.right.step(); step == StepErr {
				d.err = d.right.Err()
				return DiffEntry{}, false
			} else if step == StepEnd {
				d.rightDone = true
			}
			d.advanceRight = false
		}

		switch {
		case d.leftDone && d.rightDone:
			return DiffEntry{}, false

		case d.leftDone:
			d.advanceRight = true
			if entry, ok := d.emitRightOnly(); ok {
				return entry, true
			}
			continue

		case d.rightDone:
			d.advanceLeft = true
			if entry, ok := d.emitLeftOnly(); ok {
				return entry, true
			}
			continue
		}

		switch d.left.Path().Compare(d.right.Path()) {
		case -1:
			d.advanceLeft = true
			if entry, ok := d.emitLeftOnly(); ok {
				return entry, true
			}

		case 1:
			d.advanceRight = true
			if entry, ok := d.emitRightOnly(); ok {
				return entry, true
			}

		default:
			d.advanceLeft = true
			d.advanceRight = true
			if entry, ok := d.emitEqualPath(); ok {
				return entry, true
			}
		}
	}
}

func (d *DiffIterator) emitLeftOnly() (DiffEntry, bool) {
	link := d.left.Link()
	if !link.isLeaf() {
		return DiffEntry{}, false
	}
	return DiffEntry{Path: d.left.Path(), Kind: LeftOnly, Left: link.leafMetadata()}, true
}

func (d *DiffIterator) emitRightOnly() (DiffEntry, bool) {
	link := d.right.Link()
	if !link.isLeaf() {
		return DiffEntry{}, false
	}
	return DiffEntry{Path: d.right.Path(), Kind: RightOnly, Right: link.leafMetadata()}, true
}

func (d *DiffIterator) emitEqualPath() (DiffEntry, bool) {
	l, r := d.left.Link(), d.right.Link()
	path := d.left.Path()

	switch {
	case l.isLeaf() && r.isLeaf():
		lm, rm := l.leafMetadata(), r.leafMetadata()
		if lm == rm {
			return DiffEntry{}, false
		}
		return DiffEntry{Path: path, Kind: Changed, Left: lm, Right: rm}, true

	case l.isLeaf():
		return DiffEntry{Path: path, Kind: LeftOnly, Left: l.leafMetadata()}, true

	case r.isLeaf():
		return DiffEntry{Path: path, Kind: RightOnly, Right: r.leafMetadata()}, true

	case l.isDurable() && r.isDurable() && l.durableNode() == r.durableNode():
		d.left.SkipSubtree()
		d.right.SkipSubtree()
		return DiffEntry{}, false

	default:
		return DiffEntry{}, false
	}
}
