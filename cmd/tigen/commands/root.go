// Package commands implements the CLI commands for tigen.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/thoreinstein/tigen/cmd"
	"github.com/thoreinstein/tigen/internal/config"
	"github.com/thoreinstein/tigen/internal/errors"
	"github.com/thoreinstein/tigen/internal/logging"
	"github.com/thoreinstein/tigen/internal/paths"
)

// annotationSkipConfigCheck marks commands that run with a broken config.
const annotationSkipConfigCheck = "tigen/skip-config-check"

// skipConfigCheck is the Annotations value for such commands.
var skipConfigCheck = map[string]string{annotationSkipConfigCheck: "true"}

// autoLogFile selects the default log file location for --log-file.
const autoLogFile = "auto"

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configPath holds the value of the --config flag.
var configPath string

// cfg is the loaded configuration; configLoadErr the reason it is missing.
var (
	cfg           *config.Config
	configLoadErr error
)

// openLogFile is closed when Execute returns.
var openLogFile io.Closer

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		`also write JSON logs to this file ("auto" for the XDG state directory)`)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default: ./config.yaml, then the tigen config directory)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("tigen version {{.Version}}\n")

	// Errors are printed by main together with their suggestion.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	cfg, configLoadErr = config.Load(configPath)
}

var rootCmd = &cobra.Command{
	Use:   "tigen",
	Short: "Compile terminfo source into an embeddable capability table",
	Long: `tigen compiles one entry of a terminfo source file into a flattened,
sorted and escaped capability table that a terminal emulator can embed at
build time, for example to answer XTGETTCAP queries without relying on an
installed terminfo database.

The table is written as a C header (or a Go file) holding NUL-terminated
name and value pairs sorted by name.`,
	Example: `  # Generate foot's built-in table
  tigen compile foot foot.info foot foot-terminfo.h

  # Inspect the source
  tigen list foot.info
  tigen show foot.info foot

  # Query the generated table like a terminal would
  tigen query foot-terminfo.h Co TN --xtgettcap

  See Also: tigen compile, tigen verify, tigen config`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("--quiet and --verbose are mutually exclusive"),
			"Pass only one of -q or -v")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence over TIGEN_DEBUG.
		if v == 0 {
			if val, ok := os.LookupEnv("TIGEN_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	var format logging.Format
	switch f := logging.Format(logFormat); f {
	case logging.FormatText, logging.FormatJSON:
		format = f
	default:
		return errors.NewUserError(errors.Newf("unknown log format %q", logFormat),
			"Valid formats: text, json")
	}

	primary := logging.New(logging.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
	}).Handler()

	handlers := []slog.Handler{primary}

	if logFile != "" {
		path := logFile
		if path == autoLogFile {
			path = paths.LogFile()
		}
		if err := paths.EnsureDir(filepath.Dir(path), 0o700); err != nil {
			return errors.NewSystemError(errors.Wrap(err, "creating log directory"), "")
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "Check the --log-file path")
		}
		openLogFile = f
		// File output always uses JSON.
		handlers = append(handlers, logging.New(logging.Config{
			Level:  level,
			Format: logging.FormatJSON,
			Output: f,
		}).Handler())
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig reports a configuration that failed to load.
func checkConfig(cmd *cobra.Command) error {
	if cmd.Name() == "help" || cmd.Annotations[annotationSkipConfigCheck] == "true" {
		return nil
	}
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	return nil
}

// currentConfig returns the loaded configuration, or the defaults when
// none was loaded.
func currentConfig() *config.Config {
	if cfg != nil {
		return cfg
	}
	return &config.Config{
		Version:  1,
		Colors:   config.DefaultColors,
		RGBBits:  config.DefaultRGBBits,
		Language: config.DefaultLanguage,
		Constant: config.DefaultConstant,
		Guard:    config.DefaultGuard,
		Package:  config.DefaultPackage,
		Resolve:  config.DefaultResolve,
		Watch:    config.WatchConfig{Debounce: config.DefaultDebounce},
	}
}

// Execute runs the root command.
func Execute() (err error) {
	defer func() {
		if openLogFile != nil {
			err = multierr.Append(err, openLogFile.Close())
			openLogFile = nil
		}
	}()
	return rootCmd.Execute()
}
