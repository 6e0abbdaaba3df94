package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/carthage-software/fennec/pkg/interner"
	"github.com/carthage-software/fennec/pkg/parser"
)

func astCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "ast [flags] <file>",
		Short: "Print the syntax tree of a PHP file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			source, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			program, err := parser.Parse(interner.New(), path, string(source))
			if err != nil {
				return parser.NewSourceError(err, path, string(source))
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(program)
			}
			_, err = pretty.Fprintf(out, "%# v\n", program)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the tree as JSON")

	return cmd
}
