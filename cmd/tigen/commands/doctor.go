package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/tigen/internal/config"
	"github.com/thoreinstein/tigen/internal/doctor"
	"github.com/thoreinstein/tigen/internal/editor"
	"github.com/thoreinstein/tigen/internal/errors"
	"github.com/thoreinstein/tigen/internal/paths"
)

var (
	doctorJSON bool
	doctorAll  bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorAll, "all", false, "show passed checks too")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Annotations: skipConfigCheck,
	Use:         "doctor",
	Short:       "Diagnose configuration issues",
	Long: `Run diagnostic checks on the tigen configuration: the config file, the
config directory, a custom artifact template and the editor used by
"tigen config edit".

Exit codes:
  0 - No errors
  1 - Errors present`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	template := ""
	if cfg != nil {
		template = cfg.Template
	}

	runner := doctor.NewRunner(
		&doctor.ConfigFileCheck{Path: config.Used(), LoadErr: configLoadErr},
		&doctor.ConfigDirCheck{Dir: paths.ConfigDir()},
		&doctor.TemplateCheck{Path: template},
		&doctor.EditorCheck{Command: editor.Command()},
	)

	return writeDoctorReport(cmd.OutOrStdout(), runner.Run(), doctorJSON, doctorAll)
}

// writeDoctorReport prints report and turns errors into a non-zero exit.
func writeDoctorReport(w io.Writer, report *doctor.Report, asJSON, all bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
	} else {
		for _, r := range report.Results {
			if !all && r.Status == doctor.SeverityPass {
				continue
			}
			fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(r.Status), r.Category, r.Name, r.Message)
			if r.FixHint != "" && r.Status != doctor.SeverityPass {
				fmt.Fprintf(w, "  hint: %s\n", paint(w, colorGray, r.FixHint))
			}
		}
		fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
			report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
	}

	if report.HasErrors() {
		return errors.NewUserError(errors.Newf("%d check(s) failed", report.Summary.Errors), "")
	}
	return nil
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return "✓"
	case doctor.SeverityInfo:
		return "ℹ"
	case doctor.SeverityWarning:
		return "⚠"
	case doctor.SeverityError:
		return "✗"
	default:
		return "?"
	}
}
