package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/tigen/cmd"
	"github.com/thoreinstein/tigen/internal/errors"
	"github.com/thoreinstein/tigen/internal/paths"
)

var (
	genDocDir    string
	genDocFormat string
)

var genDocCmd = &cobra.Command{
	Annotations: skipConfigCheck,
	Use:         "gen-doc",
	Short:       "Generate reference documentation for the CLI",
	Hidden:      true,
	Args:        cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		if genDocDir == "" {
			return errors.NewUserError(errors.New("output directory is required"), "Pass --dir")
		}
		if err := paths.EnsureDir(genDocDir, paths.DefaultDirPerm); err != nil {
			return errors.Wrap(err, "creating output directory")
		}

		switch genDocFormat {
		case "markdown":
			if err := doc.GenMarkdownTreeCustom(rootCmd, genDocDir, filePrepender, linkHandler); err != nil {
				return errors.Wrap(err, "generating markdown")
			}
		case "man":
			header := &doc.GenManHeader{
				Title:   "TIGEN",
				Section: "1",
				Source:  "tigen " + cmd.Version,
			}
			if err := doc.GenManTree(rootCmd, header, genDocDir); err != nil {
				return errors.Wrap(err, "generating man pages")
			}
		default:
			return errors.NewUserError(errors.Newf("unknown doc format %q", genDocFormat),
				"Valid formats: markdown, man")
		}

		fmt.Fprintf(c.OutOrStdout(), "Documentation generated in %s\n", genDocDir)
		return nil
	},
}

func init() {
	genDocCmd.Flags().StringVarP(&genDocDir, "dir", "d", "", "output directory for documentation")
	genDocCmd.Flags().StringVar(&genDocFormat, "format", "markdown", "documentation format: markdown, man")
	rootCmd.AddCommand(genDocCmd)
}

func filePrepender(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	// tigen_config_get.md -> tigen config get
	title := strings.ReplaceAll(base, "_", " ")

	return fmt.Sprintf("---\ntitle: %q\ndescription: %q\n---\n", title, "Reference for "+title)
}

func linkHandler(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + "/"
}
