// Copyright 2026 The OEF Node Authors
// SPDX-License-Identifier: Apache-2.0

// Package oefserver owns the node's listening socket and its
// acceptor loop: a fixed-size worker pool is modeled as a buffered
// channel semaphore sized ThreadCount, so at most ThreadCount sessions
// run their dispatch loop concurrently regardless of how many
// connections have been accepted.
package oefserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/oef-foundation/oef-node/internal/directory"
	"github.com/oef-foundation/oef-node/internal/session"
)

// Config configures a Server.
type Config struct {
	// Address is the TCP address to listen on, e.g. ":10000".
	Address string

	// ThreadCount bounds the number of sessions that may run their
	// dispatch loop concurrently. Additional accepted connections queue
	// behind the semaphore until a slot frees up.
	ThreadCount int

	// Backlog is the listen backlog hint. It is stored but not applied:
	// Run listens with the operating system's default backlog.
	Backlog int

	// WriteTimeout bounds every frame write a session performs. Zero
	// means 10 seconds.
	WriteTimeout time.Duration

	// MaxFrameSize bounds every frame a session reads or writes, in
	// bytes. Zero means wire.DefaultMaxFrameSize.
	MaxFrameSize uint32

	Logger *slog.Logger
}

// Server is the node's acceptor: a listening socket, a worker-pool
// semaphore, and the two directories every session shares.
type Server struct {
	cfg      Config
	agents   *directory.AgentDirectory
	services *directory.ServiceDirectory
	handler  *session.Handler

	mu       sync.Mutex
	listener net.Listener
	sem      chan struct{}
	wg       sync.WaitGroup
}

// New constructs a Server. Call Run to start accepting connections.
func New(cfg Config) *Server {
	if cfg.ThreadCount <= 0 {
		cfg.ThreadCount = 4
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	agents := directory.NewAgentDirectory()
	services := directory.NewServiceDirectory()

	handler := session.NewHandler(agents, services, cfg.Logger, cfg.WriteTimeout)
	handler.MaxFrameSize = cfg.MaxFrameSize

	return &Server{
		cfg:      cfg,
		agents:   agents,
		services: services,
		handler:  handler,
		sem:      make(chan struct{}, cfg.ThreadCount),
	}
}

// Agents returns the server's agent directory, primarily for tests and
// diagnostics.
func (s *Server) Agents() *directory.AgentDirectory { return s.agents }

// Services returns the server's service directory, primarily for
// tests and diagnostics.
func (s *Server) Services() *directory.ServiceDirectory { return s.services }

// Addr returns the listener's local address, or nil if Run has not yet
// started listening. Useful in tests that bind to ":0" and need the
// chosen port.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Run listens on cfg.Address and accepts connections until ctx is
// cancelled. Each accepted connection acquires a semaphore slot before
// its session lifetime begins; Run blocks until every in-flight
// session has returned before it returns.
func (s *Server) Run(ctx context.Context) error {
	lc := net.ListenConfig{}
	listener, err := lc.Listen(ctx, "tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("oefserver: listening on %s: %w", s.cfg.Address, err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	s.cfg.Logger.Info("listening", "address", s.cfg.Address, "thread_count", s.cfg.ThreadCount)

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}
			s.cfg.Logger.Error("accept failed", "error", err)
			continue
		}

		select {
		case s.sem <- struct{}{}:
		case <-ctx.Done():
			conn.Close()
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer func() { <-s.sem }()
			s.handler.Run(conn)
		}()
	}

	s.wg.Wait()
	return nil
}

// Stop closes the listening socket, unblocking Accept. It does not
// close in-flight sessions, and neither does cancelling the context
// passed to Run: in both cases Run returns only after every session
// has ended on its own (its peer disconnected or an I/O error).
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}
