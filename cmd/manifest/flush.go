package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nicolagi/treemanifest/manifest"
	log "github.com/sirupsen/logrus"
)

// runFlush reads "path<TAB>hex-node<TAB>flag" lines from input (or stdin
// when input is "-" or empty), inserts each as a file into a fresh
// ephemeral tree, flushes it, and prints the resulting root node id.
func runFlush(store manifest.Store, input string) {
	r, closeFn, err := openFlushInput(input)
	if err != nil {
		log.WithFields(log.Fields{"input": input, "cause": err}).Fatal("could not open input")
	}
	defer closeFn()

	tree := manifest.Ephemeral(store)
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			log.WithField("line", line).Fatal("expected path<TAB>hex-node<TAB>flag")
		}
		path, err := manifest.RepoPathFromString(fields[0])
		if err != nil {
			log.WithFields(log.Fields{"line": line, "cause": err}).Fatal("invalid path")
		}
		node, err := manifest.NodeIDFromHex(fields[1])
		if err != nil {
			log.WithFields(log.Fields{"line": line, "cause": err}).Fatal("invalid node id")
		}
		fileType, err := fileTypeFromFlag(fields[2])
		if err != nil {
			log.WithFields(log.Fields{"line": line, "cause": err}).Fatal("invalid flag")
		}
		if err := tree.Insert(path, manifest.FileMetadata{Node: node, FileType: fileType}); err != nil {
			log.WithFields(log.Fields{"line": line, "cause": err}).Fatal("could not insert")
		}
	}
	if err := s.Err(); err != nil {
		log.WithField("cause", err).Fatal("error scanning input")
	}

	root, err := tree.Flush()
	if err != nil {
		log.WithField("cause", err).Fatal("could not flush tree")
	}
	fmt.Println(root.Hex())
}

func openFlushInput(input string) (io.Reader, func(), error) {
	if input == "" || input == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(input)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func fileTypeFromFlag(flag string) (manifest.FileType, error) {
	switch flag {
	case "r":
		return manifest.Regular, nil
	case "x":
		return manifest.Executable, nil
	case "l":
		return manifest.Symlink, nil
	default:
		return 0, fmt.Errorf("%q: unrecognized flag", flag)
	}
}
