package main

import (
	"net/http"
	"net/rpc"

	"github.com/nicolagi/treemanifest/internal/netutil"
	"github.com/nicolagi/treemanifest/internal/storage"
	log "github.com/sirupsen/logrus"
)

// runServe exposes backend over net/rpc so that other manifest invocations
// (potentially on other hosts, for a tcp network) can share one store
// process rather than each opening their own disk or S3 connection.
func runServe(backend storage.Store, network, address string) {
	if address == "" {
		log.Fatal("-address is required")
	}

	server := rpc.NewServer()
	if err := server.RegisterName("StoreService", storage.NewStoreService(backend)); err != nil {
		log.WithField("cause", err).Fatal("could not register store service")
	}
	mux := http.NewServeMux()
	mux.Handle(rpc.DefaultRPCPath, server)

	listener, err := netutil.Listen(network, address)
	if err != nil {
		log.WithFields(log.Fields{"network": network, "address": address, "cause": err}).Fatal("could not listen")
	}
	log.WithFields(log.Fields{"network": network, "address": address}).Info("serving store")
	if err := http.Serve(listener, mux); err != nil {
		log.WithField("cause", err).Fatal("serve exited")
	}
}
