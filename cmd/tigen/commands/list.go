package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/tigen/internal/compiler"
	"github.com/thoreinstein/tigen/internal/errors"
	"github.com/thoreinstein/tigen/internal/terminfo"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list SOURCE",
	Short: "List the entries of a terminfo source",
	Long: `List every entry of a terminfo source in declaration order, with the
number of capabilities it holds once use= references are resolved.

Examples:
  # List the entries of foot's terminfo
  tigen list foot.info

  # Output as JSON
  tigen list foot.info --json`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

// entrySummary represents an entry in JSON output format.
type entrySummary struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Capabilities int    `json:"capabilities"`
}

func runList(cmd *cobra.Command, args []string) error {
	set, err := loadSet(cmd.Context(), args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	return runListWithWriter(cmd.OutOrStdout(), set, listJSON)
}

// runListWithWriter allows injecting a writer for testing.
func runListWithWriter(w io.Writer, set *terminfo.Set, asJSON bool) error {
	summaries := make([]entrySummary, 0, set.Len())
	for _, f := range set.Fragments() {
		summaries = append(summaries, entrySummary{
			Name:         f.Name(),
			Description:  f.Description(),
			Capabilities: f.Len(),
		})
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}

	if len(summaries) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, paint(w, colorBold, "NAME")+"\t"+paint(w, colorBold, "CAPS")+"\t"+paint(w, colorBold, "DESCRIPTION"))
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", s.Name, s.Capabilities, truncate(s.Description, 60))
	}
	return tw.Flush()
}

// loadSet reads, parses and resolves a source with the configured mode.
func loadSet(ctx context.Context, path string, stdin io.Reader) (*terminfo.Set, error) {
	mode, err := terminfo.ParseResolveMode(currentConfig().Resolve)
	if err != nil {
		return nil, errors.NewConfigError(err)
	}

	src, err := readInput(path, stdin)
	if err != nil {
		return nil, classify(err)
	}

	set, err := compiler.Load(ctx, bytes.NewReader(src), mode)
	if err != nil {
		return nil, classify(err)
	}
	return set, nil
}
