package lsp

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"

	"github.com/carthage-software/fennec/pkg/config"
	"github.com/carthage-software/fennec/pkg/interner"
	"github.com/carthage-software/fennec/pkg/linter"
	"github.com/carthage-software/fennec/pkg/service"
)

// DiagnosticSource names the server in published diagnostics.
const DiagnosticSource = "fennec"

// Handler serves the language server methods. It implements
// jrpc2.Assigner.
type Handler struct {
	methods handler.Map

	mu         sync.Mutex
	srv        *jrpc2.Server
	files      map[DocumentURI]*File
	workspaces []*workspace
	shutdown   bool
}

// File is an open document.
type File struct {
	LanguageID  string
	Text        string
	Version     int
	Diagnostics []Diagnostic
}

// workspace holds the services configured for one folder.
type workspace struct {
	folder string
	root   string
	format *service.FormatService
	lint   *service.LintService
}

// NewHandler creates a handler with no workspace folders. Documents
// outside every folder use the configuration found next to them.
func NewHandler() *Handler {
	h := &Handler{files: make(map[DocumentURI]*File)}
	h.methods = handler.Map{
		"initialize":                          h.handleInitialize,
		"initialized":                         h.handleInitialized,
		"shutdown":                            h.handleShutdown,
		"exit":                                h.handleExit,
		"textDocument/didOpen":                h.handleTextDocumentDidOpen,
		"textDocument/didChange":              h.handleTextDocumentDidChange,
		"textDocument/didSave":                h.handleTextDocumentDidSave,
		"textDocument/didClose":               h.handleTextDocumentDidClose,
		"textDocument/formatting":             h.handleTextDocumentFormatting,
		"workspace/didChangeWorkspaceFolders": h.handleWorkspaceDidChangeWorkspaceFolders,
	}
	return h
}

// SetServer sets the server used to push notifications to the client.
func (h *Handler) SetServer(srv *jrpc2.Server) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.srv = srv
}

// Assign implements jrpc2.Assigner.
func (h *Handler) Assign(ctx context.Context, method string) jrpc2.Handler {
	return h.methods.Assign(ctx, method)
}

// Names lists the supported methods.
func (h *Handler) Names() []string {
	return h.methods.Names()
}

func isWindowsDrivePath(path string) bool {
	if len(path) < 4 {
		return false
	}
	return unicode.IsLetter(rune(path[0])) && path[1] == ':'
}

func isWindowsDriveURI(uri string) bool {
	if len(uri) < 4 {
		return false
	}
	return uri[0] == '/' && unicode.IsLetter(rune(uri[1])) && uri[2] == ':'
}

func fromURI(uri DocumentURI) (string, error) {
	u, err := url.ParseRequestURI(string(uri))
	if err != nil {
		return "", err
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("only file URIs are supported, got %v", u.Scheme)
	}
	if isWindowsDriveURI(u.Path) {
		u.Path = u.Path[1:]
	}
	return u.Path, nil
}

func toURI(path string) DocumentURI {
	if isWindowsDrivePath(path) {
		path = "/" + path
	}
	return DocumentURI((&url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(path),
	}).String())
}

// newWorkspace loads the configuration governing dir and builds its
// services.
func newWorkspace(dir string) (*workspace, error) {
	path, cfg, err := config.Find(dir)
	if err != nil {
		return nil, err
	}
	slog.Info("workspace configuration", "dir", dir, "config", path)

	settings, err := cfg.LinterSettings()
	if err != nil {
		return nil, err
	}
	in := interner.New()
	l, err := linter.NewDefault(settings, in)
	if err != nil {
		return nil, err
	}
	manager := service.NewManager(cfg.Root, cfg.Source.Extensions, cfg.Source.Excludes)
	return &workspace{
		folder: filepath.Clean(dir),
		root:   cfg.Root,
		format: service.NewFormatService(cfg.Format, in, manager, nil),
		lint:   service.NewLintService(l, in, manager, true),
	}, nil
}

// name returns path relative to the workspace root, as reported in
// issues.
func (w *workspace) name(path string) string {
	if rel, err := filepath.Rel(w.root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}

func (h *Handler) addFolder(dir string) error {
	dir = filepath.Clean(dir)
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, w := range h.workspaces {
		if w.folder == dir {
			return nil
		}
	}
	w, err := newWorkspace(dir)
	if err != nil {
		return err
	}
	h.workspaces = append(h.workspaces, w)
	return nil
}

func (h *Handler) removeFolder(dir string) {
	dir = filepath.Clean(dir)
	h.mu.Lock()
	defer h.mu.Unlock()
	kept := h.workspaces[:0]
	for _, w := range h.workspaces {
		if w.folder != dir {
			kept = append(kept, w)
		}
	}
	h.workspaces = kept
}

// workspaceFor returns the innermost workspace containing path, falling
// back to one built for the file's own directory.
func (h *Handler) workspaceFor(path string) (*workspace, error) {
	h.mu.Lock()
	var best *workspace
	for _, w := range h.workspaces {
		rel, err := filepath.Rel(w.folder, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		if best == nil || len(w.folder) > len(best.folder) {
			best = w
		}
	}
	h.mu.Unlock()
	if best != nil {
		return best, nil
	}
	return newWorkspace(filepath.Dir(path))
}

func (h *Handler) logMessage(ctx context.Context, typ MessageType, message string) {
	h.notify(ctx, "window/logMessage", &LogMessageParams{Type: typ, Message: message})
}

func (h *Handler) notify(ctx context.Context, method string, params any) {
	h.mu.Lock()
	srv := h.srv
	h.mu.Unlock()
	if srv == nil {
		return
	}
	if err := srv.Notify(ctx, method, params); err != nil {
		slog.ErrorContext(ctx, "failed to notify client", "method", method, "error", err)
	}
}

func (h *Handler) file(uri DocumentURI) (*File, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	f, ok := h.files[uri]
	return f, ok
}

func (h *Handler) openFile(uri DocumentURI, languageID string, version int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.files[uri] = &File{LanguageID: languageID, Version: version}
}

func (h *Handler) closeFile(uri DocumentURI) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.files, uri)
}

// updateFile replaces the text of an open document, lints it and
// publishes the resulting diagnostics.
func (h *Handler) updateFile(ctx context.Context, uri DocumentURI, text string, version *int) error {
	h.mu.Lock()
	f, ok := h.files[uri]
	if !ok {
		h.mu.Unlock()
		return fmt.Errorf("document not found: %v", uri)
	}
	f.Text = text
	if version != nil {
		f.Version = *version
	}
	h.mu.Unlock()

	return h.lintFile(ctx, uri)
}

func (h *Handler) lintFile(ctx context.Context, uri DocumentURI) error {
	path, err := fromURI(uri)
	if err != nil {
		return fmt.Errorf("file path from URI: %w", err)
	}
	w, err := h.workspaceFor(path)
	if err != nil {
		return err
	}

	h.mu.Lock()
	f, ok := h.files[uri]
	if !ok {
		h.mu.Unlock()
		return nil
	}
	text, version := f.Text, f.Version
	h.mu.Unlock()

	slog.InfoContext(ctx, "linting document", "path", path)
	diagnostics := toDiagnostics(text, w.lint.LintSource(w.name(path), text))

	h.mu.Lock()
	if f, ok := h.files[uri]; ok && f.Version == version {
		f.Diagnostics = diagnostics
	}
	h.mu.Unlock()

	h.publishDiagnostics(ctx, uri, version, diagnostics)
	return nil
}

func (h *Handler) publishDiagnostics(ctx context.Context, uri DocumentURI, version int, diagnostics []Diagnostic) {
	if diagnostics == nil {
		diagnostics = []Diagnostic{}
	}
	h.notify(ctx, "textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         uri,
		Version:     version,
		Diagnostics: diagnostics,
	})
}
