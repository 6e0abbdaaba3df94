package lsp

import (
	"context"
	"log/slog"

	"github.com/creachadair/jrpc2"
)

func (h *Handler) handleInitialize(ctx context.Context, req *jrpc2.Request) (any, error) {
	if !req.HasParams() {
		return nil, jrpc2.Errorf(jrpc2.InvalidParams, "missing parameters")
	}

	var params InitializeParams
	if err := req.UnmarshalParams(&params); err != nil {
		return nil, err
	}

	folders := params.WorkspaceFolders
	if len(folders) == 0 && params.RootURI != "" {
		folders = []WorkspaceFolder{{URI: params.RootURI}}
	}
	for _, folder := range folders {
		path, err := fromURI(folder.URI)
		if err != nil {
			return nil, jrpc2.Errorf(jrpc2.InvalidParams, "workspace folder: %v", err)
		}
		if err := h.addFolder(path); err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "added workspace folder", "path", path)
	}

	return InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: TextDocumentSyncOptions{
				OpenClose: true,
				Change:    TDSKFull,
				Save:      true,
			},
			DocumentFormattingProvider: true,
			Workspace: &ServerCapabilitiesWorkspace{
				WorkspaceFolders: WorkspaceFoldersServerCapabilities{
					Supported:           true,
					ChangeNotifications: true,
				},
			},
		},
		ServerInfo: &ServerInfo{Name: DiagnosticSource},
	}, nil
}

func (h *Handler) handleInitialized(ctx context.Context, req *jrpc2.Request) (any, error) {
	h.logMessage(ctx, MessageInfo, "fennec language server ready")
	return nil, nil
}
