package log

import (
	"github.com/mgutz/ansi"
)

var (
	// DefaultColorScheme is the color scheme used by formatters unless overridden.
	DefaultColorScheme = &ColorScheme{
		StderrLevelStyle: "red",
		StdoutLevelStyle: "white",
		ErrorLevelStyle:  "red",
		WarnLevelStyle:   "yellow",
		InfoLevelStyle:   "green",
		DebugLevelStyle:  "blue+h",
		TraceLevelStyle:  "white",
		ResolverStyle:    "cyan",
		TimestampStyle:   "black+h",
	}
)

const (
	None ColorStyleName = iota
	StderrLevelStyle
	StdoutLevelStyle
	ErrorLevelStyle
	WarnLevelStyle
	InfoLevelStyle
	DebugLevelStyle
	TraceLevelStyle
	ResolverStyle
	TimestampStyle
)

type ColorStyleName byte

type ColorFunc func(string) string

type ColorStyle string

func (style ColorStyle) ColorFunc() ColorFunc {
	return ansi.ColorFunc(string(style))
}

type ColorScheme map[ColorStyleName]ColorStyle

func (scheme ColorScheme) Compile() CompiledColorScheme {
	compiled := make(CompiledColorScheme, len(scheme))

	for name, style := range scheme {
		compiled[name] = style.ColorFunc()
	}

	return compiled
}

type CompiledColorScheme map[ColorStyleName]ColorFunc

func (scheme CompiledColorScheme) LevelColorFunc(level Level) ColorFunc {
	switch level {
	case StdoutLevel:
		return scheme.ColorFunc(StdoutLevelStyle)
	case StderrLevel:
		return scheme.ColorFunc(StderrLevelStyle)
	case ErrorLevel:
		return scheme.ColorFunc(ErrorLevelStyle)
	case WarnLevel:
		return scheme.ColorFunc(WarnLevelStyle)
	case InfoLevel:
		return scheme.ColorFunc(InfoLevelStyle)
	case DebugLevel:
		return scheme.ColorFunc(DebugLevelStyle)
	case TraceLevel:
		return scheme.ColorFunc(TraceLevelStyle)
	default:
		return scheme.ColorFunc(None)
	}
}

func (scheme CompiledColorScheme) ColorFunc(name ColorStyleName) ColorFunc {
	if colorFunc, ok := scheme[name]; ok {
		return colorFunc
	}

	return func(s string) string { return s }
}
