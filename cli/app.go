// Package cli assembles the reqpin command line application.
package cli

import (
	"os"

	"github.com/google/shlex"
	hashicorpversion "github.com/hashicorp/go-version"
	"github.com/urfave/cli/v2"

	"github.com/reqpin/reqpin/cli/commands"
	"github.com/reqpin/reqpin/cli/commands/check"
	"github.com/reqpin/reqpin/cli/commands/compile"
	"github.com/reqpin/reqpin/cli/commands/list"
	"github.com/reqpin/reqpin/cli/commands/pin"
	synccmd "github.com/reqpin/reqpin/cli/commands/sync"
	"github.com/reqpin/reqpin/internal/config"
	"github.com/reqpin/reqpin/internal/errors"
	"github.com/reqpin/reqpin/internal/telemetry"
	"github.com/reqpin/reqpin/internal/version"
	"github.com/reqpin/reqpin/options"
	"github.com/reqpin/reqpin/pkg/env"
	"github.com/reqpin/reqpin/pkg/log"
	"github.com/reqpin/reqpin/pkg/log/formatters"
)

// AppName is the name of the reqpin binary.
const AppName = "reqpin"

const (
	TelemetryTraceExporterEnvName                  = "REQPIN_TELEMETRY_TRACE_EXPORTER"
	TelemetryTraceExporterHTTPEndpointEnvName      = "REQPIN_TELEMETRY_TRACE_EXPORTER_HTTP_ENDPOINT"
	TelemetryTraceExporterInsecureEndpointEnvName  = "REQPIN_TELEMETRY_TRACE_EXPORTER_INSECURE_ENDPOINT"
	TelemetryMetricExporterEnvName                 = "REQPIN_TELEMETRY_METRIC_EXPORTER"
	TelemetryMetricExporterInsecureEndpointEnvName = "REQPIN_TELEMETRY_METRIC_EXPORTER_INSECURE_ENDPOINT"
)

// NewApp creates the reqpin CLI app.
func NewApp(opts *options.Options) *cli.App {
	var telemeter *telemetry.Telemeter

	app := cli.NewApp()
	app.Name = AppName
	app.Usage = "reqpin keeps Python requirements lock files in sync with the sources they were resolved from, and discovers which version pins a requirements set can accept. For documentation, see https://github.com/reqpin/reqpin."
	app.UsageText = "reqpin <command> [options] [FILE]"
	app.Version = version.GetVersion()
	app.Writer = opts.Writer
	app.ErrWriter = opts.ErrWriter
	app.Flags = commands.NewGlobalFlags(opts)
	app.Commands = []*cli.Command{
		compile.NewCommand(opts),
		synccmd.NewCommand(opts),
		check.NewCommand(opts),
		list.NewCommand(opts),
		pin.NewCommand(opts),
	}
	app.Before = func(cliCtx *cli.Context) error {
		if err := initialSetup(cliCtx, opts); err != nil {
			return err
		}

		tlm, err := setupTelemetry(cliCtx, opts)
		if err != nil {
			return err
		}

		telemeter = tlm

		return nil
	}
	app.After = func(cliCtx *cli.Context) error {
		if telemeter == nil {
			return nil
		}

		return telemeter.Shutdown(cliCtx.Context)
	}
	app.ExitErrHandler = func(_ *cli.Context, _ error) {
		// Do nothing. We just need to override this function, as the default
		// handler calls os.Exit, which kills the app (or any automated test)
		// dead in its tracks.
	}

	return app
}

// initialSetup finishes the options off after flag parsing: project config
// defaults are applied to everything the command line and the environment
// left unset, and the logger is reconfigured accordingly.
func initialSetup(cliCtx *cli.Context, opts *options.Options) error {
	opts.Env = env.ParseEnvs(os.Environ())

	if err := opts.NormalizeWorkingDir(); err != nil {
		return err
	}

	cfg, err := config.LoadDefaults(opts.Logger, opts.WorkingDir, opts.ConfigPath)
	if err != nil {
		return err
	}

	if !cliCtx.IsSet(commands.ResolverPathFlagName) && cfg.ResolverPath != "" {
		opts.ResolverPath = cfg.ResolverPath
	}

	resolverArgs := cliCtx.String(commands.ResolverArgsFlagName)
	if !cliCtx.IsSet(commands.ResolverArgsFlagName) && cfg.ResolverArgs != "" {
		resolverArgs = cfg.ResolverArgs
	}

	if resolverArgs != "" {
		args, err := shlex.Split(resolverArgs)
		if err != nil {
			return errors.Errorf("parsing resolver arguments %q: %w", resolverArgs, err)
		}

		opts.ResolverArgs = args
	}

	levelStr := cliCtx.String(commands.LogLevelFlagName)
	if !cliCtx.IsSet(commands.LogLevelFlagName) && cfg.LogLevel != "" {
		levelStr = cfg.LogLevel
	}

	level, err := log.ParseLevel(levelStr)
	if err != nil {
		return errors.New(err)
	}

	opts.LogLevel = level
	opts.Logger.SetOptions(log.WithLevel(level))

	formatStr := cliCtx.String(commands.LogFormatFlagName)
	if !cliCtx.IsSet(commands.LogFormatFlagName) && cfg.LogFormat != "" {
		formatStr = cfg.LogFormat
	}

	if formatStr != "" {
		formatter, err := formatters.ParseFormat(formatStr)
		if err != nil {
			return err
		}

		opts.LogFormatter = formatter
		opts.Logger.SetOptions(log.WithFormatter(formatter))
	}

	if opts.DisableLogColors {
		// Only the pretty formatter colors its output.
		if formatter, ok := opts.LogFormatter.(*formatters.PrettyFormatter); ok {
			formatter.DisableColors = true
		}
	}

	appVersion, err := hashicorpversion.NewVersion(cliCtx.App.Version)
	if err != nil {
		// Malformed reqpin version, fall back to 0.0.
		if appVersion, err = hashicorpversion.NewVersion("0.0"); err != nil {
			return errors.New(err)
		}
	}

	opts.ReqpinVersion = appVersion
	// Log the reqpin version in debug mode. This helps with debugging issues
	// and ensuring a specific version of reqpin used.
	opts.Logger.Debugf("reqpin version: %s", opts.ReqpinVersion)

	return nil
}

// setupTelemetry builds the telemeter selected by the REQPIN_TELEMETRY_*
// environment variables and attaches it to the command context. Without those
// variables the telemeter is a no-op.
func setupTelemetry(cliCtx *cli.Context, opts *options.Options) (*telemetry.Telemeter, error) {
	opts.Telemetry = &telemetry.Options{
		TraceExporter:                  env.GetStringEnv(TelemetryTraceExporterEnvName, ""),
		TraceExporterHTTPEndpoint:      env.GetStringEnv(TelemetryTraceExporterHTTPEndpointEnvName, ""),
		TraceExporterInsecureEndpoint:  env.GetBoolEnv(TelemetryTraceExporterInsecureEndpointEnvName, false),
		TraceParent:                    env.GetStringEnv(telemetry.TraceParentEnv, ""),
		MetricExporter:                 env.GetStringEnv(TelemetryMetricExporterEnvName, ""),
		MetricExporterInsecureEndpoint: env.GetBoolEnv(TelemetryMetricExporterInsecureEndpointEnvName, false),
	}

	telemeter, err := telemetry.NewTelemeter(cliCtx.Context, AppName, cliCtx.App.Version, opts.ErrWriter, opts.Telemetry)
	if err != nil {
		return nil, err
	}

	cliCtx.Context = telemetry.ContextWithTelemeter(cliCtx.Context, telemeter)

	return telemeter, nil
}
