package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/desertthunder/spotify-proxy/internal/shared"
)

func TestServer(t *testing.T) {
	t.Run("Serve And Shutdown", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatalf("failed to listen: %v", err)
		}

		cfg := shared.DefaultConfig().Server
		srv := New(cfg, HealthHandler{}, shared.NewLogger(io.Discard))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- srv.Serve(ctx, ln) }()

		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.StatusCode)
		}

		cancel()

		select {
		case err := <-done:
			if err != nil {
				t.Errorf("expected clean shutdown, got %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("server did not shut down")
		}
	})

	t.Run("Run Fails On Bad Address", func(t *testing.T) {
		cfg := shared.DefaultConfig().Server
		cfg.Port = -1

		srv := New(cfg, HealthHandler{}, shared.NewLogger(io.Discard))
		if err := srv.Run(context.Background()); err == nil {
			t.Error("expected listen error")
		}
	})

	t.Run("Applies Timeouts", func(t *testing.T) {
		cfg := shared.DefaultConfig().Server
		srv := New(cfg, HealthHandler{}, shared.NewLogger(io.Discard))

		if srv.httpServer.ReadTimeout != 15*time.Second {
			t.Errorf("expected 15s read timeout, got %v", srv.httpServer.ReadTimeout)
		}
		if srv.httpServer.WriteTimeout != 30*time.Second {
			t.Errorf("expected 30s write timeout, got %v", srv.httpServer.WriteTimeout)
		}
		if srv.addr != "127.0.0.1:8080" {
			t.Errorf("expected default addr, got %s", srv.addr)
		}
	})
}
