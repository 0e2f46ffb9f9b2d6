package manifest

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced at the manifest package boundary. Use errors.Is
// against these; the errors returned by exported functions wrap one of
// these with path-specific context (see the Open Question in §9 of
// SPEC_FULL.md: the offending path is always included).
var (
	ErrFileWhereDirectoryExpected = errors.New("file where directory expected")
	ErrDirectoryWhereFileExpected = errors.New("directory where file expected")
	ErrCannotInsertRoot           = errors.New("cannot insert file metadata for the repository root")
	ErrRemoveDirectory            = errors.New("asked to remove a directory")
	ErrStoreNotFound              = errors.New("not found in store")
	ErrStoreConflict              = errors.New("conflicting entry already in store")
	ErrInvariantBreach            = errors.New("corrupt store entry")
)

func errorf(typeMethod, format string, a ...interface{}) error {
	return fmt.Errorf("manifest."+typeMethod+": "+format, a...)
}
