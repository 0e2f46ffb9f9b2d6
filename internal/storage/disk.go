package storage

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"syscall"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// DiskStore is the on-disk backend for a manifest blob store: every
// flushed directory node (keyed by its hex node id) lands as one file,
// sharded by the first two hex characters of the key so no directory
// holds more than a few thousand entries even for a large tree.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

func (s *DiskStore) Get(k Key) (Value, error) {
	b, err := ioutil.ReadFile(s.pathFor(k))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%q: %w", k, ErrNotFound)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "disk store: read %q", k)
	}
	return b, nil
}

// Put writes v to a sibling ".new" file and renames it into place, so a
// reader never observes a partially-written node.
func (s *DiskStore) Put(k Key, v Value) error {
	p := s.pathFor(k)
	pnew := p + ".new"
	err := os.WriteFile(pnew, v, 0666)
	if err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrapf(err, "disk store: write %q", k)
		}
		if err = os.MkdirAll(filepath.Dir(pnew), 0777); err != nil {
			return errors.Wrapf(err, "disk store: mkdir for %q", k)
		}
		err = os.WriteFile(pnew, v, 0666)
	}
	if err != nil {
		return errors.Wrapf(err, "disk store: write %q", k)
	}
	if err := syscall.Rename(pnew, p); err != nil {
		return errors.Wrapf(err, "disk store: rename into place for %q", k)
	}
	log.WithField("key", k).Debug("disk store: wrote node")
	return nil
}

func (s *DiskStore) Delete(k Key) error {
	err := os.Remove(s.pathFor(k))
	if err != nil {
		perr, ok := err.(*os.PathError)
		if ok {
			serr, ok := perr.Err.(syscall.Errno)
			if ok && serr == syscall.ENOENT {
				return errors.Wrapf(ErrNotFound, "could not delete %v", k)
			}
		}
		return errors.Wrapf(err, "disk store: delete %q", k)
	}
	return nil
}

func (s *DiskStore) ForEach(cb func(Key) error) error {
	var kk []Key
	err := filepath.Walk(s.dir, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.IsDir() {
			kk = append(kk, Key(filepath.Base(p)))
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, k := range kk {
		if err := cb(k); err != nil {
			return err
		}
	}
	return nil
}

func (s *DiskStore) Contains(k Key) (bool, error) {
	_, err := os.Stat(s.pathFor(k))
	if os.IsNotExist(err) {
		return false, nil
	}
	return true, err
}

func (s *DiskStore) pathFor(key Key) string {
	k := string(key)
	return filepath.Join(s.dir, k[:2], k)
}
