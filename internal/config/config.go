package config

import (
	"bufio"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var (
	// DefaultBaseDirectoryPath is where manifest commands store
	// configuration and data. It defaults to $MANIFEST_BASE if set,
	// otherwise $HOME/lib/manifest. Commands override this via the -base
	// flag.
	DefaultBaseDirectoryPath string
)

func init() {
	if base := os.Getenv("MANIFEST_BASE"); base != "" {
		DefaultBaseDirectoryPath = base
	} else {
		DefaultBaseDirectoryPath = os.ExpandEnv("$HOME/lib/manifest")
	}
}

// C is the configuration for a manifest command line tool: where its blob
// store lives, and how that store is backed.
type C struct {
	// Permanent storage type - can be "s3", "disk", "null", "paired", or
	// "remote" at present.
	Storage string

	// These only make sense if the storage type is "s3", or is "paired"
	// with s3 as the slow store.
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Profile   string

	// These only make sense if the storage type is "disk", or is "paired"
	// with disk as the fast store.
	// If the path is relative, it will be assumed relative to the base dir.
	DiskStoreDir string

	// These only make sense if the storage type is "remote": the address
	// of a running "manifest serve" instance to dial over net/rpc.
	RemoteNetwork string
	RemoteAddress string

	// Path to cache. Defaults to $base/cache.
	CacheDirectory string

	// Directory holding the config file and other files.
	// Other directories and files are derived from this.
	base string
}

// Load loads the configuration from the file called "config" in the
// provided base directory.
func Load(base string) (*C, error) {
	filename := filepath.Join(base, "config")
	if fi, err := os.Stat(filename); err != nil {
		return nil, errorf("Load", "%w", err)
	} else if fi.Mode()&0077 != 0 {
		return nil, errorf("Load", "%q: mode is %#o, want at most %#o",
			filename, fi.Mode()&0777, fi.Mode()&0700)
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, errorf("Load", "%w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	c, err := load(f)
	if err != nil {
		return nil, err
	}
	c.base = base
	if c.DiskStoreDir != "" && !filepath.IsAbs(c.DiskStoreDir) {
		c.DiskStoreDir = filepath.Clean(filepath.Join(c.base, c.DiskStoreDir))
	}
	return c, nil
}

func load(f io.Reader) (*C, error) {
	c := C{}
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		i := strings.IndexAny(line, " \t")
		if i == -1 {
			return nil, errorf("load", "no separator in %q", line)
		}
		switch key, val := line[:i], strings.TrimSpace(line[i:]); key {
		case "cache-directory":
			c.CacheDirectory = val
		case "disk-store-dir":
			c.DiskStoreDir = val
		case "s3-bucket":
			c.S3Bucket = val
		case "s3-access-key":
			c.S3AccessKey = val
		case "s3-secret-key":
			c.S3SecretKey = val
		case "s3-profile":
			c.S3Profile = val
		case "s3-region":
			c.S3Region = val
		case "remote-network":
			c.RemoteNetwork = val
		case "remote-address":
			c.RemoteAddress = val
		case "storage":
			c.Storage = val
		default:
			return nil, errorf("load", "unknown key %q", key)
		}
	}
	if err := s.Err(); err != nil {
		return nil, errorf("load", "%w", err)
	}
	return &c, nil
}

func (c *C) CacheDirectoryPath() string {
	if c.CacheDirectory != "" {
		return c.CacheDirectory
	}
	return path.Join(c.base, "cache")
}

// PropagationLogFilePath is where an instance of storage.Paired logs keys
// to propagate from the fast store to the slow store. This ensures all
// data is eventually copied to the slow store, even across restarts.
func (c *C) PropagationLogFilePath() string {
	return path.Join(c.base, "propagation.log")
}

// Initialize generates an initial configuration at the given directory.
func Initialize(baseDir string) error {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return errorf("Initialize", "%q: could not mkdir: %w", baseDir, err)
	}
	p := filepath.Join(baseDir, "config")
	if _, err := os.Stat(p); err == nil {
		return errorf("Initialize", "%q: already exists", p)
	} else if !os.IsNotExist(err) {
		return errorf("Initialize", "%q: could not determine if it exists: %w", p, err)
	}
	const contents = "storage disk\ndisk-store-dir permanent\n"
	if err := os.WriteFile(p, []byte(contents), 0600); err != nil {
		return errorf("Initialize", "%q: %w", p, err)
	}
	return nil
}
