package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/carthage-software/fennec/pkg/interner"
	"github.com/carthage-software/fennec/pkg/linter"
	"github.com/carthage-software/fennec/pkg/reporting"
	"github.com/carthage-software/fennec/pkg/service"
)

func lintCmd(cfg *Config) *cobra.Command {
	var (
		onlyFixable       bool
		noColor           bool
		fix               bool
		potentiallyUnsafe bool
		unsafe            bool
		dryRun            bool
	)

	cmd := &cobra.Command{
		Use:   "lint [flags] [path...]",
		Short: "Lint PHP source files",
		Long: `Lint PHP source files with the rules configured in fennec.toml.

Issues are printed with source snippets. The command fails when an
issue of level error is found.

With --fix, the fixes attached to issues are applied. Only safe fixes
are applied unless --potentially-unsafe or --unsafe is given.`,
		Example: `  # Lint the configured sources
  fennec lint

  # Apply safe fixes
  fennec lint --fix src/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(cfg)
			if err != nil {
				return err
			}
			settings, err := conf.LinterSettings()
			if err != nil {
				return err
			}
			manager, err := newManager(conf, args)
			if err != nil {
				return err
			}

			in := interner.New()
			l, err := linter.NewDefault(settings, in)
			if err != nil {
				return err
			}
			svc := service.NewLintService(l, in, manager, conf.Linter.External)
			report, err := svc.Run(cmd.Context(), manager.Sources())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if fix {
				safety := reporting.Safe
				switch {
				case unsafe:
					safety = reporting.Unsafe
				case potentiallyUnsafe:
					safety = reporting.PotentiallyUnsafe
				}
				fixed, err := svc.Fix(cmd.Context(), manager.Sources(), report, safety, dryRun)
				if err != nil {
					return err
				}
				verb := "fixed"
				if dryRun {
					verb = "would fix"
				}
				for _, source := range fixed.Fixed {
					fmt.Fprintf(out, "%s %s\n", verb, source.Name)
				}
				fmt.Fprintf(out, "applied %d fix(es), skipped %d\n", fixed.Applied, fixed.Skipped)
				return nil
			}

			issues := report.Issues
			if onlyFixable {
				issues = issues.Fixable()
			}

			color := !noColor && isatty.IsTerminal(os.Stdout.Fd())
			reporter := reporting.NewReporter(out, color)
			for name, text := range report.Sources {
				reporter.AddSource(name, text)
			}
			if err := reporter.Report(issues); err != nil {
				return err
			}

			if issues.HasMinimumLevel(reporting.Error) {
				return errFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&onlyFixable, "only-fixable", false, "Only report issues that have a fix")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&fix, "fix", false, "Apply the fixes of reported issues")
	cmd.Flags().BoolVar(&potentiallyUnsafe, "potentially-unsafe", false, "With --fix, also apply potentially unsafe fixes")
	cmd.Flags().BoolVar(&unsafe, "unsafe", false, "With --fix, also apply unsafe fixes")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "With --fix, report the files that would change without writing")

	return cmd
}
