package lsp

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/dagger/testctx"
	"github.com/dagger/testctx/oteltest"
	"github.com/stretchr/testify/require"

	"github.com/carthage-software/fennec/pkg/reporting"
	"github.com/carthage-software/fennec/pkg/span"
)

func TestMain(m *testing.M) {
	os.Exit(oteltest.Main(m))
}

type LSPSuite struct{}

func TestLSP(tT *testing.T) {
	testctx.New(tT,
		oteltest.WithTracing[*testing.T](),
		oteltest.WithLogging[*testing.T](),
	).RunTests(LSPSuite{})
}

type session struct {
	client      *jrpc2.Client
	diagnostics chan PublishDiagnosticsParams
}

// start serves a fresh handler over an in-memory channel.
func start(t testing.TB) *session {
	t.Helper()
	cch, sch := channel.Direct()

	h := NewHandler()
	srv := jrpc2.NewServer(h, &jrpc2.ServerOptions{AllowPush: true})
	h.SetServer(srv)
	srv.Start(sch)

	s := &session{diagnostics: make(chan PublishDiagnosticsParams, 16)}
	s.client = jrpc2.NewClient(cch, &jrpc2.ClientOptions{
		OnNotify: func(req *jrpc2.Request) {
			if req.Method() != "textDocument/publishDiagnostics" {
				return
			}
			var params PublishDiagnosticsParams
			if err := req.UnmarshalParams(&params); err == nil {
				s.diagnostics <- params
			}
		},
	})
	t.Cleanup(func() {
		s.client.Close()
		srv.Stop()
	})
	return s
}

func (s *session) nextDiagnostics(t testing.TB) PublishDiagnosticsParams {
	t.Helper()
	select {
	case params := <-s.diagnostics:
		return params
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for diagnostics")
		return PublishDiagnosticsParams{}
	}
}

func workspaceDir(t testing.TB, config string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))
	if config != "" {
		require.NoError(t, os.WriteFile(filepath.Join(root, "fennec.toml"), []byte(config), 0644))
	}
	return root
}

func (s *session) initialize(ctx context.Context, t testing.TB, root string) InitializeResult {
	t.Helper()
	var result InitializeResult
	require.NoError(t, s.client.CallResult(ctx, "initialize", InitializeParams{RootURI: toURI(root)}, &result))
	return result
}

func (s *session) open(ctx context.Context, t testing.TB, uri DocumentURI, text string) {
	t.Helper()
	require.NoError(t, s.client.Notify(ctx, "textDocument/didOpen", DidOpenTextDocumentParams{
		TextDocument: TextDocumentItem{URI: uri, LanguageID: "php", Version: 1, Text: text},
	}))
}

func (LSPSuite) TestInitialize(ctx context.Context, t *testctx.T) {
	s := start(t)
	result := s.initialize(ctx, t, workspaceDir(t, ""))

	require.True(t, result.Capabilities.DocumentFormattingProvider)
	require.Equal(t, TDSKFull, result.Capabilities.TextDocumentSync.Change)
	require.True(t, result.Capabilities.TextDocumentSync.OpenClose)
	require.Equal(t, DiagnosticSource, result.ServerInfo.Name)
}

func (LSPSuite) TestDiagnostics(ctx context.Context, t *testctx.T) {
	root := workspaceDir(t, "")
	s := start(t)
	s.initialize(ctx, t, root)

	uri := toURI(filepath.Join(root, "a.php"))
	s.open(ctx, t, uri, "<?php\n\n$a = @foo();\n")

	params := s.nextDiagnostics(t)
	require.Equal(t, uri, params.URI)
	require.Len(t, params.Diagnostics, 1)
	d := params.Diagnostics[0]
	require.Equal(t, "no-error-control-operator", d.Code)
	require.Equal(t, SeverityError, d.Severity)
	require.Equal(t, DiagnosticSource, d.Source)
	require.Equal(t, Range{Start: Position{Line: 2, Character: 5}, End: Position{Line: 2, Character: 6}}, d.Range)

	t.Run("change replaces the document", func(ctx context.Context, t *testctx.T) {
		require.NoError(t, s.client.Notify(ctx, "textDocument/didChange", DidChangeTextDocumentParams{
			TextDocument:   VersionedTextDocumentIdentifier{URI: uri, Version: 2},
			ContentChanges: []TextDocumentContentChangeEvent{{Text: "<?php\n\n$a = foo();\n"}},
		}))
		params := s.nextDiagnostics(t)
		require.Equal(t, 2, params.Version)
		require.Empty(t, params.Diagnostics)
	})

	t.Run("parse errors are reported", func(ctx context.Context, t *testctx.T) {
		require.NoError(t, s.client.Notify(ctx, "textDocument/didChange", DidChangeTextDocumentParams{
			TextDocument:   VersionedTextDocumentIdentifier{URI: uri, Version: 3},
			ContentChanges: []TextDocumentContentChangeEvent{{Text: "<?php\n\n$a = ;\n"}},
		}))
		params := s.nextDiagnostics(t)
		require.Len(t, params.Diagnostics, 1)
		require.Equal(t, "parse-error", params.Diagnostics[0].Code)
		require.Equal(t, SeverityError, params.Diagnostics[0].Severity)
	})

	t.Run("close clears diagnostics", func(ctx context.Context, t *testctx.T) {
		require.NoError(t, s.client.Notify(ctx, "textDocument/didClose", DidCloseTextDocumentParams{
			TextDocument: TextDocumentIdentifier{URI: uri},
		}))
		params := s.nextDiagnostics(t)
		require.Equal(t, uri, params.URI)
		require.Empty(t, params.Diagnostics)
	})
}

func (LSPSuite) TestLinterConfiguration(ctx context.Context, t *testctx.T) {
	root := workspaceDir(t, "[linter]\nlevel = \"off\"\n")
	s := start(t)
	s.initialize(ctx, t, root)

	uri := toURI(filepath.Join(root, "a.php"))
	s.open(ctx, t, uri, "<?php\n\n$a = @foo();\n")
	require.Empty(t, s.nextDiagnostics(t).Diagnostics)
}

func (LSPSuite) TestFormatting(ctx context.Context, t *testctx.T) {
	root := workspaceDir(t, "")
	s := start(t)
	s.initialize(ctx, t, root)

	uri := toURI(filepath.Join(root, "a.php"))
	text := "<?php\n\n$a=1+2;\n"
	s.open(ctx, t, uri, text)
	s.nextDiagnostics(t)

	var edits []TextEdit
	require.NoError(t, s.client.CallResult(ctx, "textDocument/formatting", DocumentFormattingParams{
		TextDocument: TextDocumentIdentifier{URI: uri},
	}, &edits))
	require.Equal(t, []TextEdit{{
		Range:   Range{Start: Position{}, End: Position{Line: 3, Character: 0}},
		NewText: "<?php\n\n$a = 1 + 2;\n",
	}}, edits)

	t.Run("formatted documents need no edits", func(ctx context.Context, t *testctx.T) {
		require.NoError(t, s.client.Notify(ctx, "textDocument/didChange", DidChangeTextDocumentParams{
			TextDocument:   VersionedTextDocumentIdentifier{URI: uri, Version: 2},
			ContentChanges: []TextDocumentContentChangeEvent{{Text: "<?php\n\n$a = 1 + 2;\n"}},
		}))
		s.nextDiagnostics(t)

		var edits []TextEdit
		require.NoError(t, s.client.CallResult(ctx, "textDocument/formatting", DocumentFormattingParams{
			TextDocument: TextDocumentIdentifier{URI: uri},
		}, &edits))
		require.Empty(t, edits)
	})

	t.Run("unknown documents are rejected", func(ctx context.Context, t *testctx.T) {
		var edits []TextEdit
		err := s.client.CallResult(ctx, "textDocument/formatting", DocumentFormattingParams{
			TextDocument: TextDocumentIdentifier{URI: toURI(filepath.Join(root, "missing.php"))},
		}, &edits)
		require.ErrorContains(t, err, "document not found")
	})
}

func TestURI(t *testing.T) {
	path, err := fromURI(toURI("/tmp/project/a.php"))
	require.NoError(t, err)
	require.Equal(t, "/tmp/project/a.php", path)

	_, err = fromURI("https://example.com/a.php")
	require.Error(t, err)
}

func TestPosition(t *testing.T) {
	text := "<?php\n$é = '😀' . @x;\n"
	lines := span.NewLines(text)

	at := span.Position(len("<?php\n$é = '😀' . "))
	// é is one UTF-16 unit, the emoji two.
	require.Equal(t, Position{Line: 1, Character: 12}, position(text, lines, at))
	require.Equal(t, Position{Line: 2, Character: 0}, endPosition(text))
	require.Equal(t, Position{Line: 0, Character: 3}, endPosition("abc"))
}

func TestSeverity(t *testing.T) {
	require.Equal(t, SeverityError, severity(reporting.Error))
	require.Equal(t, SeverityWarning, severity(reporting.Warning))
	require.Equal(t, SeverityInformation, severity(reporting.Note))
	require.Equal(t, SeverityHint, severity(reporting.Help))
}
