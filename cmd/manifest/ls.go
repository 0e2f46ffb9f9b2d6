package main

import (
	"fmt"

	"github.com/nicolagi/treemanifest/manifest"
	log "github.com/sirupsen/logrus"
)

func runLS(store manifest.Store, rootHex string) {
	root := mustNode("root", rootHex)
	tree := manifest.Durable(store, root)
	files := tree.Files()
	for {
		entry, ok := files.Next()
		if !ok {
			break
		}
		fmt.Printf("%s\t%s\n", entry.Path, entry.Metadata)
	}
	if err := files.Err(); err != nil {
		log.WithFields(log.Fields{"root": root, "cause": err}).Fatal("could not list tree")
	}
}
