package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/spf13/cobra"

	"github.com/carthage-software/fennec/pkg/config"
	"github.com/carthage-software/fennec/pkg/lsp"
	"github.com/carthage-software/fennec/pkg/service"
)

// Config holds the global flags.
type Config struct {
	Debug      bool
	ConfigFile string
	ClearCache bool
	LSP        bool
	LSPLogFile string
}

// errFailed makes the process exit non-zero after the command already
// reported why.
var errFailed = errors.New("failed")

func main() {
	var cfg Config

	rootCmd := &cobra.Command{
		Use:   "fennec [flags]",
		Short: "PHP formatter and linter",
		Long: `Fennec formats and lints PHP source files.

Sources, formatter settings and linter rules are read from the nearest
fennec.toml, searching upwards from the working directory until a .git
directory is found.`,
		Example: `  # Format the configured sources in place
  fennec fmt -w

  # Lint a directory
  fennec lint src/

  # Start the language server
  fennec --lsp`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !cfg.LSP {
				setupLogging(os.Stderr, cfg.Debug)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.LSP {
				return runLSP(cmd.Context(), cfg)
			}

			if cfg.ClearCache {
				if err := service.ClearCache(); err != nil {
					return fmt.Errorf("failed to clear cache: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Format cache cleared successfully")
				return nil
			}

			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&cfg.ConfigFile, "config", "c", "", "Path to fennec.toml (searched for if not specified)")
	rootCmd.Flags().BoolVar(&cfg.ClearCache, "clear-cache", false, "Clear the format cache and exit")
	rootCmd.Flags().BoolVar(&cfg.LSP, "lsp", false, "Run in Language Server Protocol mode")
	rootCmd.Flags().StringVar(&cfg.LSPLogFile, "lsp-log-file", "", "Path to LSP log file (stderr if not specified)")

	rootCmd.AddCommand(fmtCmd(&cfg), lintCmd(&cfg), astCmd())

	ctx := context.Background()
	if err := fang.Execute(ctx, rootCmd,
		fang.WithVersion("v0.1.0"),
		fang.WithCommit("dev"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			if errors.Is(err, errFailed) {
				return
			}
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func setupLogging(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// loadConfig reads the file named by --config, or the fennec.toml
// governing the working directory.
func loadConfig(cfg *Config) (*config.Config, error) {
	if cfg.ConfigFile != "" {
		return config.Load(cfg.ConfigFile)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	path, conf, err := config.Find(cwd)
	if err != nil {
		return nil, err
	}
	if path != "" {
		slog.Debug("loaded configuration", "path", path)
	}
	return conf, nil
}

// newManager collects the sources named on the command line, or the
// configured ones, plus the configured includes as external sources.
func newManager(conf *config.Config, args []string) (*service.Manager, error) {
	m := service.NewManager(conf.Root, conf.Source.Extensions, conf.Source.Excludes)
	paths := args
	if len(paths) == 0 {
		paths = conf.SourcePaths()
	}
	if err := m.Add(paths, false); err != nil {
		return nil, err
	}
	if includes := conf.IncludePaths(); len(includes) > 0 {
		if err := m.Add(includes, true); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func runLSP(ctx context.Context, cfg Config) error {
	var logDest io.Writer
	if cfg.LSPLogFile != "" {
		logFile, err := os.Create(cfg.LSPLogFile)
		if err != nil {
			return fmt.Errorf("open lsp log: %w", err)
		}
		defer logFile.Close() //nolint:errcheck
		logDest = logFile
	} else {
		logDest = os.Stderr
	}

	logger := setupLogging(logDest, cfg.Debug)
	logger.InfoContext(ctx, "starting LSP server")

	handler := lsp.NewHandler()
	srv := jrpc2.NewServer(handler, &jrpc2.ServerOptions{
		AllowPush: true,
		Logger:    func(text string) { logger.Debug(text) },
	})

	handler.SetServer(srv)

	srv.Start(channel.LSP(stdrwc{}, stdrwc{}))

	logger.InfoContext(ctx, "LSP server closed", "error", srv.Wait())
	return nil
}

type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdrwc) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}
