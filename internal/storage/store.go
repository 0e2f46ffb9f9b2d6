package storage

import (
	"errors"
	"fmt"

	"github.com/nicolagi/treemanifest/internal/config"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrNotImplemented = errors.New("not implemented")
)

// Key identifies a value in a Store. The blob store built on top of a
// Store (see package blobstore) uses the hex node id as the key.
type Key string

// Value is the opaque byte content associated with a Key.
type Value []byte

// Store is the capability a content-addressed blob store needs from its
// backing implementation: get, put, delete by opaque key. Multiple
// implementations (disk, S3, in-memory, RPC, a fast/slow pair) are plugged
// in by composition.
type Store interface {
	Get(Key) (Value, error)
	Put(Key, Value) error
	Delete(Key) error
}

// Lister is implemented by stores that can enumerate their remote keys
// without a local index, e.g. s3Store.
type Lister interface {
	List() (keys chan string, err error)
}

// Enumerable is a Store that can also enumerate and test for membership,
// e.g. DiskStore.
type Enumerable interface {
	Store
	Contains(Key) (bool, error)
	ForEach(func(Key) error) error
}

// NewStore builds the Store configured by c.
func NewStore(c *config.C) (Store, error) {
	switch c.Storage {
	case "disk":
		return NewDiskStore(c.DiskStoreDir), nil
	case "null":
		return NullStore{}, nil
	case "s3":
		return newS3Store(c)
	case "paired":
		slow, err := newS3Store(c)
		if err != nil {
			return nil, fmt.Errorf("paired store: slow leg: %w", err)
		}
		fast := NewDiskStore(c.DiskStoreDir)
		return NewPaired(fast, slow, c.PropagationLogFilePath())
	case "remote":
		return NewRemoteStore(c.RemoteNetwork, c.RemoteAddress)
	default:
		return nil, fmt.Errorf("%q: %w", c.Storage, ErrNotImplemented)
	}
}
