package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/go-klokku-bridge/internal/config"
	"github.com/MKhiriev/go-klokku-bridge/internal/logger"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

type httpServer struct {
	server *http.Server
	logger *logger.Logger

	mu       sync.Mutex
	listener net.Listener
	done     chan struct{}
}

// NewServer returns an HTTP server for router listening on
// cfg.HTTPAddress.
func NewServer(router http.Handler, cfg config.Server, log *logger.Logger) (Server, error) {
	if cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	log.Info().Str("address", cfg.HTTPAddress).Msg("creating new server...")

	return &httpServer{
		server: &http.Server{
			Addr:              cfg.HTTPAddress,
			Handler:           router,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		logger: log,
	}, nil
}

func (h *httpServer) Start(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.listener != nil {
		return errAlreadyStarted
	}

	ln, err := (&net.ListenConfig{}).Listen(ctx, "tcp", h.server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", h.server.Addr, err)
	}
	h.listener = ln
	h.done = make(chan struct{})
	h.server.BaseContext = func(net.Listener) context.Context { return ctx }

	h.logger.Info().Str("address", ln.Addr().String()).Msg("Launching HTTP server")

	go func(done chan struct{}) {
		defer close(done)
		if err := h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.logger.Error().Err(err).Msg("HTTP server Serve")
		}
	}(h.done)

	return nil
}

func (h *httpServer) Stop() {
	h.mu.Lock()
	done := h.done
	started := h.listener != nil
	h.mu.Unlock()

	if !started {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("HTTP server Shutdown")
	}
	<-done

	h.logger.Info().Msg("server shutdown gracefully")
}

func (h *httpServer) Addr() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.listener == nil {
		return h.server.Addr
	}
	return h.listener.Addr().String()
}
