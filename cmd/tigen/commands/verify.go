package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/tigen/internal/artifact"
	"github.com/thoreinstein/tigen/internal/captable"
	"github.com/thoreinstein/tigen/internal/errors"
	"github.com/thoreinstein/tigen/internal/validator"
)

var verifyFormat string

func init() {
	verifyCmd.Flags().StringVarP(&verifyFormat, "format", "f", string(validator.FormatText),
		"output format: text, json, yaml")
	rootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify ARTIFACT",
	Short: "Check the structure of a generated table",
	Long: `Verify reads a C header or Go file generated by tigen compile and checks
that its table holds complete, non-empty, strictly ascending name and value
pairs. It also warns when a forced capability (Co, RGB, TN) is missing.

The command exits non-zero when errors are found.

Examples:
  tigen verify foot-terminfo.h
  tigen verify foot-terminfo.h --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	format, err := validator.ParseFormat(verifyFormat)
	if err != nil {
		return errors.NewUserError(err, "Valid formats: text, json, yaml")
	}

	src, err := readInput(args[0], cmd.InOrStdin())
	if err != nil {
		return classify(err)
	}

	table, _, err := artifact.Extract(src)
	if err != nil {
		return classify(errors.Wrapf(err, "reading table from %s", args[0]))
	}

	return runVerifyWithWriter(cmd.OutOrStdout(), table, format)
}

// runVerifyWithWriter allows injecting a writer for testing.
func runVerifyWithWriter(w io.Writer, table *captable.Table, format validator.Format) error {
	result := table.Verify()
	if err := validator.NewReporter(w, format).Report(result); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "writing report"), "")
	}
	if result.HasErrors() {
		return errors.NewUserError(errors.New("capability table failed verification"),
			"Regenerate it with: tigen compile")
	}
	return nil
}
