// Package config loads reqpin defaults from Python project config files.
//
// Python tooling conventionally reads per-tool sections from setup.cfg, with
// an optional tool specific file taking precedence. reqpin follows suit: the
// [reqpin] section of reqpin.cfg or setup.cfg in the working directory
// provides defaults, and command line flags and environment variables
// override them.
package config

import (
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/reqpin/reqpin/internal/errors"
	"github.com/reqpin/reqpin/internal/util"
	"github.com/reqpin/reqpin/pkg/log"
)

const (
	// SectionName is the section reqpin reads its defaults from.
	SectionName = "reqpin"

	// ReqpinCfgName is the tool specific config file, checked before setup.cfg.
	ReqpinCfgName = "reqpin.cfg"

	// SetupCfgName is the standard Python project config file.
	SetupCfgName = "setup.cfg"
)

// Config holds reqpin defaults read from a project config file.
type Config struct {
	// Path is the file the values were read from. Empty when no config file was found.
	Path string `ini:"-"`

	// ResolverPath is the location of the resolver binary.
	ResolverPath string `ini:"resolver-path"`

	// ResolverArgs are extra resolver arguments as a single shell-quoted string.
	ResolverArgs string `ini:"resolver-args"`

	// LogLevel is the log level name.
	LogLevel string `ini:"log-level"`

	// LogFormat is the log format name, with optional comma separated options.
	LogFormat string `ini:"log-format"`
}

// Discover returns the path of the first project config file that exists in
// the working directory, or an empty string when neither exists.
func Discover(workingDir string) string {
	for _, name := range []string{ReqpinCfgName, SetupCfgName} {
		path := filepath.Join(workingDir, name)
		if util.FileExists(path) {
			return path
		}
	}

	return ""
}

// Load reads the [reqpin] section from the given file. A file without that
// section yields an empty config.
func Load(l log.Logger, path string) (*Config, error) {
	iniFile, err := ini.Load(path)
	if err != nil {
		return nil, errors.New(err)
	}

	cfg := &Config{Path: path}

	section, err := iniFile.GetSection(SectionName)
	if err != nil {
		l.Debugf("No [%s] section in %s", SectionName, path)

		return cfg, nil
	}

	if err := section.MapTo(cfg); err != nil {
		return nil, errors.New(err)
	}

	l.Debugf("Loaded defaults from %s", path)

	return cfg, nil
}

// LoadDefaults loads defaults from the explicitly given config file, or from a
// discovered one. The absence of any config file is not an error, it yields an
// empty config.
func LoadDefaults(l log.Logger, workingDir, explicitPath string) (*Config, error) {
	path := explicitPath
	if path == "" {
		path = Discover(workingDir)
	}

	if path == "" {
		return new(Config), nil
	}

	return Load(l, path)
}
