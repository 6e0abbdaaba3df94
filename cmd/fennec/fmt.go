package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/carthage-software/fennec/pkg/interner"
	"github.com/carthage-software/fennec/pkg/service"
)

func fmtCmd(cfg *Config) *cobra.Command {
	var (
		write   bool
		list    bool
		dryRun  bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "fmt [flags] [path...]",
		Short: "Format PHP source files",
		Long: `Format PHP source files according to the configured style.

By default, fmt prints the formatted source to stdout.
Use -w to write the result back to the source file.
Use -l to list files that would be changed.
Use --dry-run to check formatting without writing; it fails when any
file would change.

Without paths, the sources configured in fennec.toml are formatted.`,
		Example: `  # Format a file and print to stdout
  fennec fmt src/index.php

  # Format the configured sources in place
  fennec fmt -w

  # List files that need formatting
  fennec fmt -l src/

  # Fail in CI when a file is not formatted
  fennec fmt --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(cfg)
			if err != nil {
				return err
			}
			manager, err := newManager(conf, args)
			if err != nil {
				return err
			}

			var cache *service.Cache
			if !noCache {
				cache, err = service.OpenCache(service.CachePath(conf.Root), conf.Format)
				if err != nil {
					slog.WarnContext(cmd.Context(), "format cache disabled", "error", err)
					cache = nil
				}
			}

			svc := service.NewFormatService(conf.Format, interner.New(), manager, cache)
			report, err := svc.Run(cmd.Context(), manager.UserDefined(), service.FormatOptions{
				Write:  write,
				DryRun: dryRun,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			changed := report.Changed()
			switch {
			case dryRun:
				for _, result := range changed {
					fmt.Fprintf(out, "would format %s\n", result.Source.Name)
				}
			case list:
				for _, result := range changed {
					fmt.Fprintln(out, result.Source.Name)
				}
			case !write:
				for _, result := range report.Results {
					fmt.Fprint(out, result.Formatted)
				}
			}

			if len(report.Skipped) > 0 {
				return fmt.Errorf("%d file(s) could not be parsed", len(report.Skipped))
			}
			if dryRun && len(changed) > 0 {
				return errFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write result to source file instead of stdout")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "List files that would be formatted")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report files that would change and fail if any would")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Format every file even if the cache says it is formatted")

	return cmd
}
