package main

import (
	"fmt"

	"github.com/nicolagi/treemanifest/diff"
	"github.com/nicolagi/treemanifest/manifest"
	log "github.com/sirupsen/logrus"
)

func runDiff(store manifest.Store, leftHex, rightHex string, verbose bool) {
	left := manifest.Durable(store, mustNode("left", leftHex))
	right := manifest.Durable(store, mustNode("right", rightHex))

	it := manifest.Diff(left, right)
	for {
		entry, ok := it.Next()
		if !ok {
			break
		}
		switch entry.Kind {
		case manifest.LeftOnly:
			fmt.Printf("- %s\t%s\n", entry.Path, entry.Left)
		case manifest.RightOnly:
			fmt.Printf("+ %s\t%s\n", entry.Path, entry.Right)
		case manifest.Changed:
			fmt.Printf("! %s\t%s -> %s\n", entry.Path, entry.Left, entry.Right)
			if verbose {
				printVerboseChange(entry)
			}
		}
	}
	if err := it.Err(); err != nil {
		log.WithField("cause", err).Fatal("could not diff trees")
	}
}

// printVerboseChange renders the before/after FileMetadata strings as a
// unified diff using the diff.Node abstraction, which is built for
// comparing file content rather than single metadata lines, but reduces to
// one hunk (a header, one removed line, one added line) for a one-line
// input.
func printVerboseChange(entry manifest.DiffEntry) {
	out, err := diff.Unified(diff.StringNode(entry.Left.String()), diff.StringNode(entry.Right.String()), 0)
	if err != nil {
		log.WithFields(log.Fields{"path": entry.Path.String(), "cause": err}).Warning("could not render verbose diff")
		return
	}
	fmt.Print(out)
}
