package lsp

import (
	"context"
	"log/slog"

	"github.com/creachadair/jrpc2"
)

func (h *Handler) handleWorkspaceDidChangeWorkspaceFolders(ctx context.Context, req *jrpc2.Request) (any, error) {
	if !req.HasParams() {
		return nil, jrpc2.Errorf(jrpc2.InvalidParams, "missing parameters")
	}

	var params DidChangeWorkspaceFoldersParams
	if err := req.UnmarshalParams(&params); err != nil {
		return nil, err
	}

	for _, folder := range params.Event.Removed {
		if path, err := fromURI(folder.URI); err == nil {
			h.removeFolder(path)
		}
	}
	for _, folder := range params.Event.Added {
		path, err := fromURI(folder.URI)
		if err != nil {
			continue
		}
		if err := h.addFolder(path); err != nil {
			slog.WarnContext(ctx, "failed to add workspace folder", "path", path, "error", err)
			h.logMessage(ctx, MessageError, "fennec: "+err.Error())
		}
	}
	return nil, nil
}
