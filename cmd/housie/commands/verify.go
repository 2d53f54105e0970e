package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/dyluth/housie/internal/hoard"
	"github.com/dyluth/housie/internal/printer"
	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "verify FILE",
		Short: "Verify strips written with --format jsonl",
		Long: `Check every strip in a JSONL file against the strip rules:

  • six tickets holding each of 1-90 exactly once
  • every column holds 1-3 ascending numbers from its decade
  • every ticket holds 15 numbers, five in each row

Use '-' to read from standard input.

Examples:
  housie generate -n 1000 --format jsonl | housie verify -
  housie verify strips.jsonl`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader
			if args[0] == "-" {
				in = cmd.InOrStdin()
			} else {
				f, err := os.Open(args[0])
				if err != nil {
					return printer.Error("Cannot open strips file", err.Error(), nil)
				}
				defer f.Close()
				in = f
			}

			records, err := hoard.ParseJSONL(in)
			if err != nil {
				return printer.ErrorWithContext(
					"Malformed strips file",
					err.Error(),
					map[string]string{"File": args[0]},
					[]string{"Files must be produced with 'housie generate --format jsonl'"},
				)
			}

			results := hoard.Verify(records)

			failed := 0
			if quiet {
				for _, r := range results {
					if r.Error != nil {
						failed++
					}
				}
			} else {
				failed, err = hoard.FormatVerifyResults(cmd.OutOrStdout(), results)
				if err != nil {
					return err
				}
			}

			if failed > 0 {
				return printer.Error(
					"Verification failed",
					fmt.Sprintf("%d of %d strips are invalid", failed, len(results)),
					nil,
				)
			}

			printer.Success("All %d strips are valid\n", len(results))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print the final result")
	return cmd
}
