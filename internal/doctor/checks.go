package doctor

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/thoreinstein/tigen/internal/artifact"
	"github.com/thoreinstein/tigen/internal/errors"
	"github.com/thoreinstein/tigen/pkg/fileutil"
)

// Categories of the built-in checks.
const (
	CategoryConfig      = "config"
	CategoryEnvironment = "environment"
)

// ConfigFileCheck reports on the config file that was loaded.
type ConfigFileCheck struct {
	// Path is the file in use, empty when running on defaults.
	Path string
	// LoadErr is the error loading or validating it produced.
	LoadErr error
}

var _ Check = (*ConfigFileCheck)(nil)

// Name returns the unique identifier for this check.
func (c *ConfigFileCheck) Name() string { return "config-file" }

// Category returns the grouping for this check.
func (c *ConfigFileCheck) Category() string { return CategoryConfig }

// Run executes the check.
func (c *ConfigFileCheck) Run() *CheckResult {
	if c.LoadErr != nil {
		return &CheckResult{
			Status:  SeverityError,
			Message: c.LoadErr.Error(),
			Details: map[string]any{"path": c.Path},
			FixHint: "tigen config edit",
		}
	}
	if c.Path == "" {
		return &CheckResult{
			Status:  SeverityInfo,
			Message: "no config file found, using defaults",
			FixHint: "tigen config --write",
		}
	}

	info, err := os.Stat(c.Path)
	if err != nil {
		return &CheckResult{Status: SeverityError, Message: fmt.Sprintf("cannot stat config file: %v", err)}
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o022 != 0 {
		return &CheckResult{
			Status:  SeverityWarning,
			Message: fmt.Sprintf("config file is writable by others (mode %04o)", info.Mode().Perm()),
			Details: map[string]any{"path": c.Path},
			FixHint: "chmod 644 " + c.Path,
		}
	}

	return &CheckResult{
		Status:  SeverityPass,
		Message: "config file is valid",
		Details: map[string]any{"path": c.Path},
	}
}

// ConfigDirCheck verifies that the config directory can be written.
type ConfigDirCheck struct {
	Dir string
}

var _ Check = (*ConfigDirCheck)(nil)

// Name returns the unique identifier for this check.
func (c *ConfigDirCheck) Name() string { return "config-dir" }

// Category returns the grouping for this check.
func (c *ConfigDirCheck) Category() string { return CategoryConfig }

// Run executes the check.
func (c *ConfigDirCheck) Run() *CheckResult {
	details := map[string]any{"path": c.Dir}

	info, err := os.Stat(c.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return &CheckResult{
			Status:  SeverityInfo,
			Message: "config directory does not exist yet",
			Details: details,
		}
	}
	if err != nil {
		return &CheckResult{Status: SeverityError, Message: fmt.Sprintf("cannot stat config directory: %v", err), Details: details}
	}
	if !info.IsDir() {
		return &CheckResult{Status: SeverityError, Message: "expected directory but found file", Details: details}
	}

	if err := probeWritable(c.Dir); err != nil {
		return &CheckResult{
			Status:  SeverityWarning,
			Message: "config directory is not writable",
			Details: details,
			FixHint: "chmod u+w " + c.Dir,
		}
	}

	return &CheckResult{Status: SeverityPass, Message: "config directory is writable", Details: details}
}

// probeWritable creates and removes a temporary file in dir.
func probeWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".tigen-doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		return err
	}
	return os.Remove(name)
}

// TemplateCheck verifies that a configured artifact template parses.
type TemplateCheck struct {
	// Path is the template file; empty selects the built-in templates.
	Path string
}

var _ Check = (*TemplateCheck)(nil)

// Name returns the unique identifier for this check.
func (c *TemplateCheck) Name() string { return "template" }

// Category returns the grouping for this check.
func (c *TemplateCheck) Category() string { return CategoryConfig }

// Run executes the check.
func (c *TemplateCheck) Run() *CheckResult {
	if c.Path == "" {
		return &CheckResult{Status: SeverityPass, Message: "using built-in templates"}
	}

	details := map[string]any{"path": c.Path}
	data, err := fileutil.ReadFileWithLimit(c.Path)
	if err != nil {
		return &CheckResult{
			Status:  SeverityError,
			Message: fmt.Sprintf("cannot read template: %v", err),
			Details: details,
			FixHint: "fix the template path in the config file",
		}
	}
	if _, err := artifact.NewRenderer(artifact.Options{Template: string(data)}); err != nil {
		return &CheckResult{Status: SeverityError, Message: err.Error(), Details: details}
	}

	return &CheckResult{Status: SeverityPass, Message: "template parses", Details: details}
}

// EditorCheck verifies that the editor used by "config edit" is installed.
type EditorCheck struct {
	// Command is the editor command line, possibly with arguments.
	Command string
}

var _ Check = (*EditorCheck)(nil)

// Name returns the unique identifier for this check.
func (c *EditorCheck) Name() string { return "editor" }

// Category returns the grouping for this check.
func (c *EditorCheck) Category() string { return CategoryEnvironment }

// Run executes the check.
func (c *EditorCheck) Run() *CheckResult {
	argv := strings.Fields(c.Command)
	if len(argv) == 0 {
		return &CheckResult{Status: SeverityWarning, Message: "no editor configured", FixHint: "set $EDITOR"}
	}

	path, err := exec.LookPath(argv[0])
	if err != nil {
		return &CheckResult{
			Status:  SeverityWarning,
			Message: fmt.Sprintf("editor %q not found", argv[0]),
			FixHint: "set $EDITOR to an installed editor",
		}
	}

	return &CheckResult{
		Status:  SeverityPass,
		Message: "editor found",
		Details: map[string]any{"editor": path},
	}
}
