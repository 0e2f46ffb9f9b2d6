// Command manifest is a batch/one-shot CLI over the manifest package: it
// opens trees rooted at node ids given on the command line, against a
// store configured by the same config file format and flags throughout
// this module's commands.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/gops/agent"
	"github.com/nicolagi/treemanifest/blobstore"
	"github.com/nicolagi/treemanifest/internal/config"
	"github.com/nicolagi/treemanifest/internal/storage"
	"github.com/nicolagi/treemanifest/manifest"
	log "github.com/sirupsen/logrus"
)

var version = "unknown"

var globalContext struct {
	base string
	gops bool
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.StringVar(&globalContext.base, "base", config.DefaultBaseDirectoryPath, "`directory` for configuration and cache")
	fs.BoolVar(&globalContext.gops, "gops", false, "start a gops diagnostics agent")
	return fs
}

func exitUsage(msg string) {
	if msg != "" {
		_, _ = fmt.Fprintln(os.Stderr, msg)
	}
	_, _ = fmt.Fprintf(os.Stderr, `Usage: %s COMMAND [ARGS]

Commands:

	ls -root HEX: print every (path, metadata) pair in the tree rooted at HEX
	diff -left HEX -right HEX [-verbose]: print the differences between two trees
	flush -input PATH: build a tree from path/node/flag lines and print its root
	serve -network NET -address ADDR: share this command's store over net/rpc
	version: show version information

All commands accept -base DIR (defaults to %s) and -gops (starts a
diagnostics agent).
`, os.Args[0], config.DefaultBaseDirectoryPath)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		exitUsage("command name required")
	}

	var lsContext struct{ root string }
	lsFlags := newFlagSet("ls")
	lsFlags.StringVar(&lsContext.root, "root", "", "`hex` node id of the tree root")

	var diffContext struct {
		left, right string
		verbose     bool
	}
	diffFlags := newFlagSet("diff")
	diffFlags.StringVar(&diffContext.left, "left", "", "`hex` node id of the left tree root")
	diffFlags.StringVar(&diffContext.right, "right", "", "`hex` node id of the right tree root")
	diffFlags.BoolVar(&diffContext.verbose, "verbose", false, "show a unified-diff-style summary of changed metadata")

	var flushContext struct{ input string }
	flushFlags := newFlagSet("flush")
	flushFlags.StringVar(&flushContext.input, "input", "", "`path` to read path/node/flag lines from, or \"-\" for stdin")

	var serveContext struct{ network, address string }
	serveFlags := newFlagSet("serve")
	serveFlags.StringVar(&serveContext.network, "network", "unix", "`network` to listen on, e.g. unix or tcp")
	serveFlags.StringVar(&serveContext.address, "address", "", "`address` to listen on")

	versionFlags := newFlagSet("version")

	cmd := os.Args[1]
	switch cmd {
	case "ls":
		_ = lsFlags.Parse(os.Args[2:])
	case "diff":
		_ = diffFlags.Parse(os.Args[2:])
	case "flush":
		_ = flushFlags.Parse(os.Args[2:])
	case "serve":
		_ = serveFlags.Parse(os.Args[2:])
	case "version":
		_ = versionFlags.Parse(os.Args[2:])
		fmt.Println(version)
		return
	default:
		exitUsage(fmt.Sprintf("%q: command not recognized", cmd))
	}

	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.JSONFormatter{})

	if globalContext.gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			log.WithField("cause", err).Fatal("could not start gops agent")
		}
	}

	cfg, err := config.Load(globalContext.base)
	if err != nil {
		log.WithFields(log.Fields{"base": globalContext.base, "cause": err}).Fatal("could not load configuration")
	}
	backend, err := storage.NewStore(cfg)
	if err != nil {
		log.WithField("cause", err).Fatal("could not build backing store")
	}
	store := blobstore.New(backend)

	switch cmd {
	case "ls":
		runLS(store, lsContext.root)
	case "diff":
		runDiff(store, diffContext.left, diffContext.right, diffContext.verbose)
	case "flush":
		runFlush(store, flushContext.input)
	case "serve":
		runServe(backend, serveContext.network, serveContext.address)
	}
}

func mustNode(flagName, hex string) manifest.NodeID {
	if hex == "" {
		exitUsage(fmt.Sprintf("-%s is required", flagName))
	}
	n, err := manifest.NodeIDFromHex(hex)
	if err != nil {
		exitUsage(fmt.Sprintf("-%s: %v", flagName, err))
	}
	return n
}
