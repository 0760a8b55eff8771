package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/tigen/internal/artifact"
	"github.com/thoreinstein/tigen/internal/compiler"
	"github.com/thoreinstein/tigen/internal/config"
	"github.com/thoreinstein/tigen/internal/errors"
	"github.com/thoreinstein/tigen/internal/logging"
	"github.com/thoreinstein/tigen/internal/terminfo"
	"github.com/thoreinstein/tigen/internal/watch"
	"github.com/thoreinstein/tigen/pkg/fileutil"
)

var (
	compileLanguage string
	compileConstant string
	compileGuard    string
	compilePackage  string
	compileTemplate string
	compileResolve  string
	compileColors   int64
	compileRGBBits  int64
	compileWatch    bool
)

func init() {
	f := compileCmd.Flags()
	f.StringVar(&compileLanguage, "lang", config.DefaultLanguage, "artifact language: c, go")
	f.StringVar(&compileConstant, "constant", config.DefaultConstant, "name of the generated array or constant")
	f.StringVar(&compileGuard, "guard", config.DefaultGuard, "first line of a C header")
	f.StringVar(&compilePackage, "package", config.DefaultPackage, "package clause of a Go artifact")
	f.StringVar(&compileTemplate, "template", "", "render the artifact with this template file")
	f.StringVar(&compileResolve, "resolve", config.DefaultResolve, "use= resolution: single-pass, fixed-point")
	f.Int64Var(&compileColors, "colors", config.DefaultColors, "value forced for Co")
	f.Int64Var(&compileRGBBits, "rgb-bits", config.DefaultRGBBits, "value forced for RGB")
	f.BoolVarP(&compileWatch, "watch", "w", false, "recompile whenever the source changes")

	rootCmd.AddCommand(compileCmd)
}

var compileCmd = &cobra.Command{
	Use:   "compile SOURCE_ENTRY SOURCE TARGET_ENTRY TARGET",
	Short: "Compile one terminfo entry into a capability table",
	Long: `Compile parses SOURCE, resolves use= inheritance, selects SOURCE_ENTRY and
writes its capabilities to TARGET as a sorted table of NUL-terminated name and
value pairs. Co, RGB and TN (set to TARGET_ENTRY) are forced onto the entry.

Use "-" as SOURCE to read stdin and as TARGET to write stdout. TARGET is only
replaced once the whole artifact has been rendered.`,
	Example: `  tigen compile foot foot.info foot foot-terminfo.h
  tigen compile foot foot.info foot-direct - --colors 16777216
  tigen compile foot foot.info foot terminfo.go --lang go --package term
  tigen compile foot foot.info foot foot-terminfo.h --watch`,
	Args: cobra.ExactArgs(4),
	RunE: runCompile,
}

func runCompile(cmd *cobra.Command, args []string) error {
	job, err := compileJob(cmd, currentConfig(), args)
	if err != nil {
		return err
	}
	job.Stdin = cmd.InOrStdin()
	job.Stdout = cmd.OutOrStdout()

	if !compileWatch {
		_, err := compiler.Run(cmd.Context(), job)
		return classify(err)
	}

	delay, err := currentConfig().Watch.DebounceDelay()
	if err != nil {
		return errors.NewConfigError(err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runCompileWatch(ctx, cmd.ErrOrStderr(), job, delay)
}

// compileJob merges the configuration with the flags the user set.
func compileJob(cmd *cobra.Command, c *config.Config, args []string) (compiler.Job, error) {
	flags := cmd.Flags()
	pick := func(name, flagValue, cfgValue string) string {
		if flags.Changed(name) || cfgValue == "" {
			return flagValue
		}
		return cfgValue
	}
	pickInt := func(name string, flagValue, cfgValue int64) int64 {
		if flags.Changed(name) || cfgValue == 0 {
			return flagValue
		}
		return cfgValue
	}

	lang, err := artifact.ParseLanguage(pick("lang", compileLanguage, c.Language))
	if err != nil {
		return compiler.Job{}, classify(err)
	}
	mode, err := terminfo.ParseResolveMode(pick("resolve", compileResolve, c.Resolve))
	if err != nil {
		return compiler.Job{}, errors.NewUserError(err, "Valid modes: single-pass, fixed-point")
	}

	var tmpl string
	if path := pick("template", compileTemplate, c.Template); path != "" {
		data, err := fileutil.ReadFileWithLimit(path)
		if err != nil {
			return compiler.Job{}, classify(errors.Wrapf(err, "reading template %s", path))
		}
		tmpl = string(data)
	}

	opts := compiler.Options{
		SourceEntry: args[0],
		TargetEntry: args[2],
		Overrides: terminfo.Overrides{
			Colors:  pickInt("colors", compileColors, c.Colors),
			RGBBits: pickInt("rgb-bits", compileRGBBits, c.RGBBits),
		},
		Resolve: mode,
		Artifact: artifact.Options{
			Language: lang,
			Constant: pick("constant", compileConstant, c.Constant),
			Guard:    pick("guard", compileGuard, c.Guard),
			Package:  pick("package", compilePackage, c.Package),
			Template: tmpl,
		},
	}

	return compiler.Job{Source: args[1], Target: args[3], Options: opts}, nil
}

// runCompileWatch builds once and then again after every change to the
// source, until ctx is cancelled.
func runCompileWatch(ctx context.Context, w io.Writer, job compiler.Job, delay time.Duration) error {
	if job.Source == compiler.StdioPath {
		return errors.NewUserError(errors.New("cannot watch stdin"), "Pass a source file path with --watch")
	}

	logger := logging.FromContext(ctx)
	watcher, err := watch.New(job.Source, delay, func(ctx context.Context) error {
		_, err := compiler.Run(ctx, job)
		return err
	})
	if err != nil {
		return classify(err)
	}

	if !quiet {
		fmt.Fprintf(w, "Watching %s (Ctrl-C to stop)\n", job.Source)
	}
	logger.Debug("watching source", "source", job.Source, "debounce", delay)

	return classify(watcher.Run(ctx))
}
