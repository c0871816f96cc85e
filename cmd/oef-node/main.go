// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oef-foundation/oef-node/internal/oefserver"
	"github.com/oef-foundation/oef-node/internal/wire"
	"github.com/oef-foundation/oef-node/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		address      string
		threadCount  int
		backlog      int
		writeTimeout time.Duration
		maxFrameSize uint
		showVersion  bool
	)

	flag.StringVar(&address, "address", ":10000", "TCP address to listen on")
	flag.IntVar(&threadCount, "thread-count", 4, "maximum number of sessions served concurrently")
	flag.IntVar(&backlog, "backlog", 128, "listen backlog hint (stored, not applied; the system default is used)")
	flag.DurationVar(&writeTimeout, "write-timeout", 10*time.Second, "per-frame write timeout")
	flag.UintVar(&maxFrameSize, "max-frame-size", wire.DefaultMaxFrameSize, "maximum CBOR frame size in bytes")
	flag.BoolVar(&showVersion, "version", false, "print version information and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("oef-node %s\n", version.Info())
		return nil
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := oefserver.New(oefserver.Config{
		Address:      address,
		ThreadCount:  threadCount,
		Backlog:      backlog,
		WriteTimeout: writeTimeout,
		MaxFrameSize: uint32(maxFrameSize),
		Logger:       logger,
	})

	logger.Info("oef-node starting", "version", version.Short(), "address", address)
	return srv.Run(ctx)
}
