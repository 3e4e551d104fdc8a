// Package commands provides the implementation of the reqpin commands.
package commands

import (
	"github.com/urfave/cli/v2"

	"github.com/reqpin/reqpin/internal/config"
	"github.com/reqpin/reqpin/options"
	"github.com/reqpin/reqpin/pkg/log"
	"github.com/reqpin/reqpin/pkg/log/formatters"
)

const (
	WorkingDirFlagName = "working-dir"
	WorkingDirEnvName  = "REQPIN_WORKING_DIR"

	ConfigFlagName = "config"
	ConfigEnvName  = "REQPIN_CONFIG"

	ResolverPathFlagName = "resolver-path"
	ResolverPathEnvName  = "REQPIN_RESOLVER_PATH"

	ResolverArgsFlagName = "resolver-args"
	ResolverArgsEnvName  = "REQPIN_RESOLVER_ARGS"

	LogLevelFlagName = "log-level"
	LogLevelEnvName  = "REQPIN_LOG_LEVEL"

	LogFormatFlagName = "log-format"
	LogFormatEnvName  = "REQPIN_LOG_FORMAT"

	NoColorFlagName = "no-color"
	NoColorEnvName  = "REQPIN_NO_COLOR"
)

// NewGlobalFlags returns the flags accepted by every reqpin command. Values
// given on the command line or through the environment win over the [reqpin]
// section of a project config file.
func NewGlobalFlags(opts *options.Options) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        WorkingDirFlagName,
			EnvVars:     []string{WorkingDirEnvName},
			Usage:       "The directory that holds the requirements files.",
			Value:       opts.WorkingDir,
			Destination: &opts.WorkingDir,
		},
		&cli.StringFlag{
			Name:        ConfigFlagName,
			EnvVars:     []string{ConfigEnvName},
			Usage:       "Path to a config file with a [" + config.SectionName + "] section. By default " + config.ReqpinCfgName + " and " + config.SetupCfgName + " are looked up in the working directory.",
			Destination: &opts.ConfigPath,
		},
		&cli.StringFlag{
			Name:        ResolverPathFlagName,
			EnvVars:     []string{ResolverPathEnvName},
			Usage:       "Path to the pip-compile binary.",
			Value:       opts.ResolverPath,
			Destination: &opts.ResolverPath,
		},
		&cli.StringFlag{
			Name:    ResolverArgsFlagName,
			EnvVars: []string{ResolverArgsEnvName},
			Usage:   "Extra arguments passed to the resolver on every invocation, as a single shell quoted string.",
		},
		&cli.StringFlag{
			Name:    LogLevelFlagName,
			EnvVars: []string{LogLevelEnvName},
			Usage:   "Log level. Supported levels: " + log.AllLevels.String() + ".",
			Value:   opts.LogLevel.String(),
		},
		&cli.StringFlag{
			Name:    LogFormatFlagName,
			EnvVars: []string{LogFormatEnvName},
			Usage:   "Log format. Supported formats: " + formatters.AllFormatters().String() + ".",
		},
		&cli.BoolFlag{
			Name:        NoColorFlagName,
			EnvVars:     []string{NoColorEnvName},
			Usage:       "Disable color log output.",
			Destination: &opts.DisableLogColors,
		},
	}
}
