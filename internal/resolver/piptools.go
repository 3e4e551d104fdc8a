package resolver

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/reqpin/reqpin/internal/errors"
	"github.com/reqpin/reqpin/internal/os/exec"
	"github.com/reqpin/reqpin/internal/telemetry"
	"github.com/reqpin/reqpin/internal/util"
	"github.com/reqpin/reqpin/options"
	"github.com/reqpin/reqpin/pkg/log"
)

// SignalForwardingDelay is the time to wait before forwarding an OS signal to
// the resolver process.
//
// A signal can be sent to the main process (only `reqpin`) as well as the
// process group (`reqpin` and the resolver), for example:
// kill -INT <pid>  # sends SIGINT only to the main process
// kill -INT -<pid> # sends SIGINT to the process group
// Since we cannot know how the signal was sent, the resolver gets time to exit
// on its own before we forward a possibly duplicate signal to it.
const SignalForwardingDelay = time.Second * 15

const (
	noHeaderFlag       = "--no-header"
	outputFlag         = "-o"
	dryRunFlag         = "--dry-run"
	rebuildFlag        = "--rebuild"
	upgradeFlag        = "--upgrade"
	upgradePackageFlag = "--upgrade-package"
	prereleasesFlag    = "--pre"
	verboseFlag        = "-v"
	quietFlag          = "-q"
	versionFlag        = "--version"
)

// PipTools shells out to a pip-compile style resolver binary.
type PipTools struct {
	// Env are the environment variables for the resolver process.
	Env map[string]string

	// Writer and ErrWriter receive the resolver's output streams when
	// ForwardOutput is set.
	Writer    io.Writer
	ErrWriter io.Writer

	// Path is the resolver binary.
	Path string

	// WorkingDir is the directory the resolver runs in.
	WorkingDir string

	// Args are extra arguments included in every invocation.
	Args []string

	// ForwardOutput streams the resolver's output to Writer/ErrWriter instead
	// of wrapping its stderr in log entries.
	ForwardOutput bool
}

// NewPipTools returns a PipTools resolver configured from the given options.
func NewPipTools(opts *options.Options) *PipTools {
	return &PipTools{
		Path:          opts.ResolverPath,
		Args:          opts.ResolverArgs,
		Env:           opts.Env,
		WorkingDir:    opts.WorkingDir,
		Writer:        opts.Writer,
		ErrWriter:     opts.ErrWriter,
		ForwardOutput: opts.ForwardResolverOutput,
	}
}

// Resolve runs the resolver against the given constraints source. A non-zero
// resolver exit is returned as a ConflictError.
func (pipTools *PipTools) Resolve(ctx context.Context, l log.Logger, sourcePath string, opts Options) error {
	output, err := pipTools.run(ctx, l, pipTools.commandArgs(sourcePath, opts))
	if err == nil {
		return nil
	}

	if exitCode, exitCodeErr := util.GetExitCode(err); exitCodeErr == nil && exitCode != 0 {
		return errors.New(&ConflictError{
			Err:        err,
			SourcePath: sourcePath,
			ExitCode:   exitCode,
			Output:     output.Stderr.String(),
		})
	}

	return err
}

// commandArgs converts the given invocation options to the pip-compile
// command line, with the constraints source path last.
func (pipTools *PipTools) commandArgs(sourcePath string, opts Options) []string {
	args := []string{noHeaderFlag}

	if opts.Output != "" {
		args = append(args, outputFlag, opts.Output)
	}

	if opts.DryRun {
		args = append(args, dryRunFlag)
	}

	if opts.Rebuild {
		args = append(args, rebuildFlag)
	}

	if opts.Upgrade {
		args = append(args, upgradeFlag)
	}

	if opts.Prereleases {
		args = append(args, prereleasesFlag)
	}

	if opts.UpgradePackage != "" {
		args = append(args, upgradePackageFlag, opts.UpgradePackage)
	}

	if opts.Verbose {
		args = append(args, verboseFlag)
	} else {
		args = append(args, quietFlag)
	}

	args = append(args, pipTools.Args...)
	args = append(args, opts.ExtraArgs...)

	return append(args, sourcePath)
}

func (pipTools *PipTools) run(ctx context.Context, l log.Logger, args []string) (*util.CmdOutput, error) {
	var (
		output       = util.CmdOutput{}
		resolverName = filepath.Base(pipTools.Path)
	)

	err := telemetry.TelemeterFromContext(ctx).Collect(ctx, "resolve", map[string]any{
		"resolver": pipTools.Path,
		"args":     fmt.Sprintf("%v", args),
		"dir":      pipTools.WorkingDir,
	}, func(ctx context.Context) error {
		l.Debugf("Running resolver: %s %s", pipTools.Path, strings.Join(args, " "))

		var (
			cmdStdout io.Writer = &output.Stdout
			cmdStderr io.Writer = io.MultiWriter(
				&log.Writer{Logger: l.WithField(log.FieldKeyResolver, resolverName), Level: log.StderrLevel},
				&output.Stderr,
			)
		)

		if pipTools.ForwardOutput {
			cmdStdout = io.MultiWriter(pipTools.Writer, &output.Stdout)
			cmdStderr = io.MultiWriter(pipTools.ErrWriter, &output.Stderr)
		}

		env := pipTools.Env

		// Pass the traceparent to the resolver process if it is available in the context.
		if traceParent := telemetry.TraceParentFromContext(ctx); traceParent != "" {
			l.Debugf("Setting trace parent=%q for the resolver", traceParent)

			env = util.CloneStringMap(env)
			env[telemetry.TraceParentEnv] = traceParent
		}

		cmd := exec.Command(ctx, pipTools.Path, args...)
		cmd.Dir = pipTools.WorkingDir
		cmd.Stdout = cmdStdout
		cmd.Stderr = cmdStderr
		cmd.Configure(
			exec.WithLogger(l),
			exec.WithEnv(env),
			exec.WithGracefulShutdownDelay(SignalForwardingDelay),
		)

		if err := cmd.Start(); err != nil { //nolint:contextcheck // context already passed to exec.Command
			err = util.ProcessExecutionError{
				Err:        err,
				Command:    pipTools.Path,
				Args:       args,
				WorkingDir: cmd.Dir,
			}

			return errors.New(err)
		}

		if err := cmd.Wait(); err != nil {
			err = util.ProcessExecutionError{
				Err:        err,
				Command:    pipTools.Path,
				Args:       args,
				Output:     output,
				WorkingDir: cmd.Dir,
			}

			return errors.New(err)
		}

		return nil
	})

	return &output, err
}
