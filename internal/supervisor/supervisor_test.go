// Gathermap - Community Activity Tracking and Participant Home Mapping
// Copyright 2026 K. Weston (kweston)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kweston/gathermap

package supervisor

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kweston/gathermap/internal/logging"
)

// stubServer simulates http.Server lifecycle for service tests.
type stubServer struct {
	serveErr    error
	shutdownErr error
	shutdowns   atomic.Int32
	release     chan struct{}
}

func newStubServer() *stubServer {
	return &stubServer{release: make(chan struct{})}
}

func (s *stubServer) ListenAndServe() error {
	<-s.release
	if s.serveErr != nil {
		return s.serveErr
	}
	return http.ErrServerClosed
}

func (s *stubServer) Shutdown(context.Context) error {
	s.shutdowns.Add(1)
	close(s.release)
	return s.shutdownErr
}

func TestHTTPServerServiceGracefulShutdown(t *testing.T) {
	server := newStubServer()
	svc := NewHTTPServerService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}

	if server.shutdowns.Load() != 1 {
		t.Errorf("expected exactly one Shutdown call, got %d", server.shutdowns.Load())
	}
}

func TestHTTPServerServiceStartupFailure(t *testing.T) {
	server := newStubServer()
	server.serveErr = errors.New("listen tcp: address already in use")
	close(server.release)

	err := NewHTTPServerService(server, time.Second).Serve(context.Background())
	if err == nil || !errors.Is(err, server.serveErr) {
		t.Errorf("Serve() = %v, want wrapped startup error", err)
	}
}

func TestTreeServesAndStops(t *testing.T) {
	tree := NewTree(logging.NewSlogLogger(), DefaultTreeConfig())

	server := newStubServer()
	tree.AddAPIService(NewHTTPServerService(server, time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	// Give the tree a moment to start the service, then stop it.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("tree terminated with %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("tree did not stop after cancellation")
	}
}
