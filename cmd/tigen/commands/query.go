package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/tigen/internal/artifact"
	"github.com/thoreinstein/tigen/internal/captable"
	"github.com/thoreinstein/tigen/internal/errors"
)

var queryXTGETTCAP bool

func init() {
	queryCmd.Flags().BoolVar(&queryXTGETTCAP, "xtgettcap", false,
		"print the escaped XTGETTCAP reply a terminal would send")
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query ARTIFACT NAME...",
	Short: "Look capabilities up in a generated table",
	Long: `Query reads a C header or Go file generated by tigen compile and looks
up each NAME in its capability table.

With --xtgettcap, the names are hex encoded into one DCS +q request and the
reply the terminal would send is printed with control bytes escaped.

Examples:
  tigen query foot-terminfo.h Co TN setaf
  tigen query foot-terminfo.h Co TN --xtgettcap`,
	Args: cobra.MinimumNArgs(2),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	src, err := readInput(args[0], cmd.InOrStdin())
	if err != nil {
		return classify(err)
	}

	table, _, err := artifact.Extract(src)
	if err != nil {
		return classify(errors.Wrapf(err, "reading table from %s", args[0]))
	}

	return runQueryWithWriter(cmd.OutOrStdout(), table, args[1:], queryXTGETTCAP)
}

// runQueryWithWriter allows injecting a writer for testing.
func runQueryWithWriter(w io.Writer, table *captable.Table, names []string, xtgettcap bool) error {
	if xtgettcap {
		for _, name := range names {
			reply := table.XTGETTCAP(captable.Request(name))
			fmt.Fprintln(w, strconv.Quote(reply))
		}
		return nil
	}

	var missing []string
	for _, name := range names {
		value, ok := table.Lookup(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		if value == "" {
			fmt.Fprintln(w, name)
			continue
		}
		fmt.Fprintf(w, "%s=%s\n", name, strconv.Quote(value))
	}

	if len(missing) > 0 {
		return errors.NewUserError(errors.Newf("capabilities not found: %v", missing),
			"Capability names are case sensitive, see: tigen show SOURCE ENTRY")
	}
	return nil
}
