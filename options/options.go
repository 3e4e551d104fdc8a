// Package options provides a set of options that configure the behavior of the reqpin program.
package options

import (
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-version"
	"github.com/mattn/go-isatty"

	"github.com/reqpin/reqpin/internal/errors"
	"github.com/reqpin/reqpin/internal/telemetry"
	"github.com/reqpin/reqpin/internal/util"
	"github.com/reqpin/reqpin/pkg/log"
	"github.com/reqpin/reqpin/pkg/log/formatters"
)

const (
	// ResolverDefaultPath takes pip-compile from the PATH.
	ResolverDefaultPath = "pip-compile"

	defaultLogLevel = log.InfoLevel
)

// Options represents options that configure the behavior of the reqpin program.
type Options struct {
	// Logger is the basic log entry.
	Logger log.Logger

	// LogFormatter is the formatter the Logger writes entries with.
	LogFormatter formatters.Formatter

	// Env are the environment variables at runtime.
	Env map[string]string

	// Telemetry are the telemetry collection settings.
	Telemetry *telemetry.Options

	// Writer is where command output goes, os.Stdout unless overridden.
	Writer io.Writer

	// ErrWriter is where logs and errors go, os.Stderr unless overridden.
	ErrWriter io.Writer

	// ReqpinVersion is the version of reqpin.
	ReqpinVersion *version.Version

	// ResolverVersion is the version of the resolver, obtained by running `pip-compile --version`.
	ResolverVersion *version.Version

	// WorkingDir is the root of the directory tree that holds the requirements source files.
	WorkingDir string

	// ConfigPath is an explicit path to a config file. When empty, setup.cfg and
	// reqpin.cfg are discovered in the working directory.
	ConfigPath string

	// ResolverPath is the location of the resolver binary.
	ResolverPath string

	// ResolverArgs are extra arguments passed to the resolver on every invocation.
	ResolverArgs []string

	// LogLevel is the log level.
	LogLevel log.Level

	// DisableLogColors disables colors in logs.
	DisableLogColors bool

	// ForwardResolverOutput streams raw resolver output to the user instead of
	// wrapping it in log entries.
	ForwardResolverOutput bool
}

// NewOptions creates a new Options object with reasonable defaults for real usage.
func NewOptions() *Options {
	return NewOptionsWithWriters(os.Stdout, os.Stderr)
}

// NewOptionsWithWriters creates a new Options object with the given writers in
// place of the standard streams.
func NewOptionsWithWriters(stdout, stderr io.Writer) *Options {
	logFormatter := formatters.NewPrettyFormatter()

	// Colors are for terminals. When logs go to a file or a pipe, ANSI codes
	// only get in the way of whatever parses them next.
	if file, ok := stderr.(*os.File); ok && !isatty.IsTerminal(file.Fd()) {
		logFormatter.DisableColors = true
	}

	return &Options{
		WorkingDir:   ".",
		ResolverPath: ResolverDefaultPath,
		ResolverArgs: []string{},
		LogLevel:     defaultLogLevel,
		LogFormatter: logFormatter,
		Logger:       log.New(log.WithOutput(stderr), log.WithLevel(defaultLogLevel), log.WithFormatter(logFormatter)),
		Env:          map[string]string{},
		Writer:       stdout,
		ErrWriter:    stderr,
		Telemetry:    new(telemetry.Options),
	}
}

// NewOptionsForTest creates a new Options object with reasonable defaults for test usage.
func NewOptionsForTest(workingDir string) *Options {
	opts := NewOptionsWithWriters(io.Discard, io.Discard)
	opts.WorkingDir = workingDir
	opts.LogLevel = log.DebugLevel
	opts.Logger.SetOptions(log.WithLevel(log.DebugLevel))

	return opts
}

// Clone creates a copy of this Options with its own slices and maps, so the copy
// can be modified without affecting the original.
func (opts *Options) Clone() *Options {
	clone := *opts
	clone.ResolverArgs = util.CloneStringList(opts.ResolverArgs)
	clone.Env = util.CloneStringMap(opts.Env)

	return &clone
}

// NormalizeWorkingDir resolves the working directory to an absolute path. The
// current directory is used when the working directory is not set.
func (opts *Options) NormalizeWorkingDir() error {
	workingDir := opts.WorkingDir
	if workingDir == "" {
		currentDir, err := os.Getwd()
		if err != nil {
			return errors.New(err)
		}

		workingDir = currentDir
	}

	workingDir, err := filepath.Abs(workingDir)
	if err != nil {
		return errors.New(err)
	}

	opts.WorkingDir = filepath.ToSlash(workingDir)

	return nil
}
