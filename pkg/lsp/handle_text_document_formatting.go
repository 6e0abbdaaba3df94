package lsp

import (
	"context"
	"log/slog"

	"github.com/creachadair/jrpc2"
)

func (h *Handler) handleTextDocumentFormatting(ctx context.Context, req *jrpc2.Request) (any, error) {
	if !req.HasParams() {
		return nil, jrpc2.Errorf(jrpc2.InvalidParams, "missing parameters")
	}

	var params DocumentFormattingParams
	if err := req.UnmarshalParams(&params); err != nil {
		return nil, err
	}

	f, ok := h.file(params.TextDocument.URI)
	if !ok {
		return nil, jrpc2.Errorf(jrpc2.InvalidParams, "document not found: %v", params.TextDocument.URI)
	}
	path, err := fromURI(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	w, err := h.workspaceFor(path)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	text := f.Text
	h.mu.Unlock()

	formatted, err := w.format.FormatSource(w.name(path), text)
	if err != nil {
		// The parse error is already published as a diagnostic.
		slog.DebugContext(ctx, "not formatting", "path", path, "error", err)
		return []TextEdit{}, nil
	}
	if formatted == text {
		return []TextEdit{}, nil
	}

	return []TextEdit{{
		Range: Range{
			Start: Position{Line: 0, Character: 0},
			End:   endPosition(text),
		},
		NewText: formatted,
	}}, nil
}
