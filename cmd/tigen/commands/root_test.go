package commands

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/tigen/internal/errors"
	"github.com/thoreinstein/tigen/internal/logging"
)

// isolateConfig points config discovery at empty temporary directories and
// returns the config directory.
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TIGEN_CONFIG_DIR", dir)
	t.Chdir(t.TempDir())
	return dir
}

// resetFlags restores every flag of c and its subcommands to its default.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	t.Cleanup(func() {
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		cfg, configLoadErr = nil, nil
	})

	err := Execute()
	return stdout.String(), stderr.String(), err
}

func TestSetupLogging_VerbosityFlags(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	tests := []struct {
		name      string
		verbosity int
		wantLevel slog.Level
	}{
		{"default (0)", 0, slog.LevelWarn},
		{"verbose (1)", 1, slog.LevelInfo},
		{"debug (2)", 2, slog.LevelDebug},
		{"trace (3)", 3, logging.LevelTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = tt.verbosity
			require.NoError(t, setupLogging(rootCmd))

			logger := slog.Default()
			assert.True(t, logger.Enabled(t.Context(), tt.wantLevel))
			if tt.wantLevel > logging.LevelTrace {
				assert.False(t, logger.Enabled(t.Context(), tt.wantLevel-4))
			}
		})
	}
}

func TestSetupLogging_EnvVar(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	tests := []struct {
		name      string
		envVal    string
		wantLevel slog.Level
	}{
		{"TIGEN_DEBUG=1", "1", slog.LevelDebug},
		{"TIGEN_DEBUG=true", "true", slog.LevelDebug},
		{"TIGEN_DEBUG=2", "2", logging.LevelTrace},
		{"TIGEN_DEBUG=0", "0", slog.LevelWarn},
		{"TIGEN_DEBUG=unknown", "foo", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = 0
			t.Setenv("TIGEN_DEBUG", tt.envVal)
			require.NoError(t, setupLogging(rootCmd))

			logger := slog.Default()
			assert.True(t, logger.Enabled(t.Context(), tt.wantLevel))
			if tt.wantLevel == slog.LevelDebug {
				assert.False(t, logger.Enabled(t.Context(), logging.LevelTrace),
					"trace should stay disabled with TIGEN_DEBUG=1")
			}
		})
	}
}

func TestSetupLogging_FlagPrecedence(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	t.Setenv("TIGEN_DEBUG", "2")
	verbosity = 1
	require.NoError(t, setupLogging(rootCmd))

	logger := slog.Default()
	assert.True(t, logger.Enabled(t.Context(), slog.LevelInfo))
	assert.False(t, logger.Enabled(t.Context(), slog.LevelDebug), "flag should override env var")
}

func TestSetupLogging_Quiet(t *testing.T) {
	origQuiet, origVerbosity := quiet, verbosity
	defer func() { quiet, verbosity = origQuiet, origVerbosity }()

	quiet, verbosity = true, 0
	require.NoError(t, setupLogging(rootCmd))

	logger := slog.Default()
	assert.True(t, logger.Enabled(t.Context(), slog.LevelError))
	assert.False(t, logger.Enabled(t.Context(), slog.LevelWarn))
}

func TestSetupLogging_QuietMutualExclusion(t *testing.T) {
	origQuiet, origVerbosity := quiet, verbosity
	defer func() { quiet, verbosity = origQuiet, origVerbosity }()

	quiet, verbosity = true, 1
	err := setupLogging(rootCmd)
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.Code(err))
}

func TestSetupLogging_UnknownFormat(t *testing.T) {
	orig := logFormat
	defer func() { logFormat = orig }()

	logFormat = "xml"
	err := setupLogging(rootCmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestSetupLogging_LogFile(t *testing.T) {
	origFile, origVerbosity := logFile, verbosity
	defer func() {
		logFile, verbosity = origFile, origVerbosity
		if openLogFile != nil {
			_ = openLogFile.Close()
			openLogFile = nil
		}
	}()

	path := filepath.Join(t.TempDir(), "logs", "tigen.log")
	logFile, verbosity = path, 1
	require.NoError(t, setupLogging(rootCmd))

	slog.Info("hello from test", "key", "value")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello from test"`)
	assert.Contains(t, string(data), `"key":"value"`)
}

func TestVersionCommand(t *testing.T) {
	isolateConfig(t)

	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "tigen version dev")
	assert.Contains(t, stdout, "commit:")
}

func TestCheckConfig_InvalidConfig(t *testing.T) {
	dir := isolateConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("version: 1\nlanguage: rust\n"), 0o644))

	_, _, err := execute(t, "", "list", "-")
	require.Error(t, err)

	var exitErr *errors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, "Run: tigen config edit", exitErr.Suggestion)

	// version works regardless.
	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "tigen version")
}
