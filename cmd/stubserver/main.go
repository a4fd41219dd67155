package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/smazurs/peerpoint/internal/logging"
	"github.com/smazurs/peerpoint/internal/stubserver"
)

func main() {

	addr := flag.String("a", ":8080", "address and port to listen on")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := stubserver.New(stubserver.Options{Addr: *addr}, logging.NewDefault())
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
