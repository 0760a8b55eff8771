package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/tigen/internal/errors"
	"github.com/thoreinstein/tigen/internal/logging"
	"github.com/thoreinstein/tigen/internal/terminfo"
)

// Output formats of the show command.
const (
	showFormatText = "text"
	showFormatJSON = "json"
	showFormatYAML = "yaml"
	showFormatTOML = "toml"
)

var showFormat string

func init() {
	showCmd.Flags().StringVarP(&showFormat, "format", "f", showFormatText,
		"output format: text, json, yaml, toml")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show SOURCE [ENTRY]",
	Short: "Show the resolved capabilities of an entry",
	Long: `Show the capabilities of one entry of a terminfo source after use=
references are resolved, sorted by name. Overrides are not applied.

Without ENTRY, the entry is picked interactively when running in a terminal.

Examples:
  tigen show foot.info foot
  tigen show foot.info foot --format yaml
  tigen show foot.info`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runShow,
}

// entryView is the structured form of a resolved entry.
type entryView struct {
	Name         string           `json:"name" yaml:"name" toml:"name"`
	Description  string           `json:"description" yaml:"description" toml:"description"`
	Capabilities []capabilityView `json:"capabilities" yaml:"capabilities" toml:"capabilities"`
}

// capabilityView is one capability of an entryView.
type capabilityView struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Kind  string `json:"kind" yaml:"kind" toml:"kind"`
	Value string `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
}

func newEntryView(f *terminfo.Fragment) entryView {
	caps := f.Sorted()
	view := entryView{
		Name:         f.Name(),
		Description:  f.Description(),
		Capabilities: make([]capabilityView, 0, len(caps)),
	}
	for _, c := range caps {
		view.Capabilities = append(view.Capabilities, capabilityView{
			Name:  c.Name(),
			Kind:  c.Kind().String(),
			Value: c.Value(),
		})
	}
	return view
}

func runShow(cmd *cobra.Command, args []string) error {
	set, err := loadSet(cmd.Context(), args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	var entry *terminfo.Fragment
	if len(args) == 2 {
		entry, err = set.Get(args[1])
		if err != nil {
			return classify(err)
		}
	} else {
		if !logging.IsInteractive(os.Stdin, cmd.OutOrStdout()) {
			return errors.NewUserError(errors.New("no entry given"),
				"Pass ENTRY when not running in a terminal, see: tigen list SOURCE")
		}
		entry, err = pickEntry(set)
		if err != nil {
			return err
		}
		if entry == nil {
			return nil
		}
	}

	return runShowWithWriter(cmd.OutOrStdout(), entry, showFormat)
}

// runShowWithWriter allows injecting a writer for testing.
func runShowWithWriter(w io.Writer, entry *terminfo.Fragment, format string) error {
	view := newEntryView(entry)

	switch format {
	case showFormatText:
		return writeEntryText(w, view)
	case showFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case showFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return errors.Wrap(err, "encoding yaml")
		}
		return enc.Close()
	case showFormatTOML:
		return errors.Wrap(toml.NewEncoder(w).Encode(view), "encoding toml")
	default:
		return errors.NewUserError(errors.Newf("unknown format %q", format),
			"Valid formats: text, json, yaml, toml")
	}
}

func writeEntryText(w io.Writer, view entryView) error {
	fmt.Fprintf(w, "%s\n", paint(w, colorBold, view.Name))
	if view.Description != "" {
		fmt.Fprintf(w, "%s\n", paint(w, colorGray, view.Description))
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range view.Capabilities {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, c.Kind, displayValue(c))
	}
	return tw.Flush()
}

// displayValue renders string values with control bytes made visible.
func displayValue(c capabilityView) string {
	if c.Kind != terminfo.KindString.String() {
		return c.Value
	}
	return strconv.Quote(c.Value)
}

// pickEntry lets the user choose an entry. It returns nil when the picker
// is aborted.
func pickEntry(set *terminfo.Set) (*terminfo.Fragment, error) {
	fragments := set.Fragments()
	if len(fragments) == 0 {
		return nil, errors.NewUserError(errors.New("source defines no entries"), "")
	}

	idx, err := fuzzyfinder.Find(
		fragments,
		func(i int) string {
			return fragments[i].Name()
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			f := fragments[i]
			var b strings.Builder
			fmt.Fprintf(&b, "%s\n%s\n\n", f.Name(), f.Description())
			for _, c := range f.Sorted() {
				b.WriteString(c.String())
				b.WriteByte('\n')
			}
			return b.String()
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}

	return fragments[idx], nil
}
