package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/campusrfid/ledger/internal/config"
	"github.com/campusrfid/ledger/internal/forwarder"
	"go.bug.st/serial"
)

func main() {
	config.Load()
	cfg := config.LoadForwarderConfig()

	port, err := serial.Open(cfg.Port, &serial.Mode{BaudRate: cfg.Baud})
	if err != nil {
		log.Fatalf("Failed to open serial port %s: %v", cfg.Port, err)
	}
	defer port.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Unblock the pending read on shutdown.
	go func() {
		<-ctx.Done()
		port.Close()
	}()

	log.Printf("Listening on %s at %d baud, forwarding to %s", cfg.Port, cfg.Baud, cfg.Server)

	fwd := forwarder.New(cfg.Server, &http.Client{Timeout: cfg.Timeout})
	n, err := fwd.Run(ctx, port)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Forwarder stopped: %v", err)
	}
	log.Printf("Forwarder stopped after %d scans", n)
}
