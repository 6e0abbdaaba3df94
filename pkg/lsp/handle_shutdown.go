package lsp

import (
	"context"

	"github.com/creachadair/jrpc2"
)

func (h *Handler) handleShutdown(ctx context.Context, req *jrpc2.Request) (any, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.shutdown = true
	h.files = make(map[DocumentURI]*File)
	return nil, nil
}

func (h *Handler) handleExit(ctx context.Context, req *jrpc2.Request) (any, error) {
	h.mu.Lock()
	srv := h.srv
	h.mu.Unlock()
	if srv != nil {
		go srv.Stop()
	}
	return nil, nil
}

// IsShutdown reports whether the client requested a shutdown.
func (h *Handler) IsShutdown() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.shutdown
}
