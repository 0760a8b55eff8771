package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/tigen/internal/config"
	"github.com/thoreinstein/tigen/internal/editor"
	"github.com/thoreinstein/tigen/internal/errors"
	"github.com/thoreinstein/tigen/internal/paths"
	"github.com/thoreinstein/tigen/pkg/fileutil"
)

var (
	configWrite bool
	configForce bool
)

func init() {
	configCmd.Flags().BoolVar(&configWrite, "write", false,
		"save the effective configuration to the tigen config directory")
	configCmd.Flags().BoolVar(&configForce, "force", false,
		"overwrite an existing config file with --write")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or save tigen configuration",
	Long: `Print the effective configuration as YAML: defaults, overlaid with the
config file and TIGEN_* environment variables.

With --write, the effective configuration is saved to config.yaml in the
tigen config directory ($XDG_CONFIG_HOME/tigen, or $TIGEN_CONFIG_DIR).`,
	Example: `  # Show the effective configuration
  tigen config

  # Create a config file holding the defaults
  tigen config --write

  # Get a single value
  tigen config get watch.debounce

See Also: tigen compile`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

var configGetCmd = &cobra.Command{
	Annotations: skipConfigCheck,
	Use:         "get <key>",
	Short:       "Get a configuration value",
	Long:        `Get a single configuration value by key. Nested keys use dot notation.`,
	Example: `  tigen config get language
  tigen config get watch.debounce`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigGetWithWriter(cmd.OutOrStdout(), args[0])
	},
}

var configEditCmd = &cobra.Command{
	Annotations: skipConfigCheck,
	Use:         "edit",
	Short:       "Open the config file in $EDITOR",
	Long: `Open the config file in your editor ($EDITOR, then $VISUAL, then nano or
vi). If no config file exists yet, one holding the defaults is created first.`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

func runConfig(cmd *cobra.Command, _ []string) error {
	c := currentConfig()
	if configWrite {
		path := paths.ConfigFile()
		if err := writeConfigFile(path, c, configForce); err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		}
		return nil
	}
	return runConfigListWithWriter(cmd.OutOrStdout(), c, config.Used())
}

// runConfigListWithWriter allows injecting a writer for testing.
func runConfigListWithWriter(w io.Writer, c *config.Config, source string) error {
	if source == "" {
		source = "defaults"
	}
	fmt.Fprintf(w, "# source: %s\n", source)

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	_, err = w.Write(data)
	return err
}

func runConfigGetWithWriter(w io.Writer, key string) error {
	if !viper.IsSet(key) {
		return errors.NewUserError(errors.Newf("unknown config key %q", key),
			"Run: tigen config to list all keys")
	}
	fmt.Fprintln(w, viper.GetString(key))
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := config.Used()
	if path == "" {
		path = paths.ConfigFile()
		if err := writeConfigFile(path, currentConfig(), false); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Location: %s\n", path)
	err := editor.Open(cmd.Context(), path, editor.Streams{
		In:  cmd.InOrStdin(),
		Out: cmd.OutOrStdout(),
		Err: cmd.ErrOrStderr(),
	})
	if err != nil {
		return errors.NewSystemError(err, "Set $EDITOR to your preferred editor")
	}

	// Validate the edited file.
	config.Init()
	if _, err := config.Load(path); err != nil {
		return errors.NewConfigError(err)
	}
	return nil
}

// writeConfigFile saves c to path, refusing to replace an existing file
// unless force is set.
func writeConfigFile(path string, c *config.Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.NewUserError(errors.Newf("config file already exists at %s", path),
				"Pass --force to overwrite it")
		}
	}

	if err := paths.EnsureDir(paths.ConfigDir(), paths.DefaultDirPerm); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "creating config directory"), "")
	}
	if err := fileutil.AtomicWriteYAML(path, c, 0o600); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "writing config file"), "")
	}
	return nil
}
