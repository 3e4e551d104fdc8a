package formatters

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/reqpin/reqpin/internal/errors"
	"github.com/reqpin/reqpin/pkg/log"
)

const (
	PrettyFormatterName = "pretty"

	defaultPrettyFormatterTimestampFormat = "15:04:05.000"
)

// PrettyFormatter implements Formatter.
var _ Formatter = new(PrettyFormatter)

type PrettyFormatter struct {
	// DisableUppercase disables the conversion of the log levels to uppercase.
	DisableUppercase bool

	// DisableTimestamp allows disabling automatic timestamps in output.
	DisableTimestamp bool

	// TimestampFormat to use for display when a full timestamp is printed.
	TimestampFormat string

	// DisableColors force disables colors. For a TTY colors are enabled by default.
	DisableColors bool

	// PrefixStyle is used to assign different styles (colors) to each prefix.
	PrefixStyle PrefixStyle

	// colorScheme to use.
	colorScheme log.CompiledColorScheme

	// keyValueFormatter prints trailing fields in key-value format.
	keyValueFormatter *KeyValueFormatter
}

// NewPrettyFormatter returns a new PrettyFormatter instance with default values.
func NewPrettyFormatter() *PrettyFormatter {
	return &PrettyFormatter{
		TimestampFormat:   defaultPrettyFormatterTimestampFormat,
		PrefixStyle:       NewPrefixStyle(),
		colorScheme:       log.DefaultColorScheme.Compile(),
		keyValueFormatter: &KeyValueFormatter{},
	}
}

func (formatter *PrettyFormatter) SetColorScheme(colorScheme *log.ColorScheme) {
	for name, colorFunc := range colorScheme.Compile() {
		formatter.colorScheme[name] = colorFunc
	}
}

// Name implements Formatter.
func (formatter *PrettyFormatter) Name() string {
	return PrettyFormatterName
}

// SetOption implements Formatter.
func (formatter *PrettyFormatter) SetOption(name string, value any) error {
	switch name {
	case "color":
		if val, ok := optionBoolValue(value); ok {
			formatter.DisableColors = !val
			return nil
		}
	case "timestamp":
		if val, ok := optionBoolValue(value); ok {
			formatter.DisableTimestamp = !val
			return nil
		}
	case "time-format":
		if val, ok := value.(string); ok {
			formatter.TimestampFormat = val
			return nil
		}
	}

	return invalidOptionError(formatter, name, "color", "timestamp", "time-format")
}

// Format implements log.Formatter.
func (formatter *PrettyFormatter) Format(entry *log.Entry) ([]byte, error) {
	buf := entry.Buffer
	if buf == nil {
		buf = new(bytes.Buffer)
	}

	level := fmt.Sprintf("%-6s ", entry.Level)

	if !formatter.DisableUppercase {
		level = strings.ToUpper(level)
	}

	var (
		prefix    string
		resolver  string
		timestamp string
		fields    = entry.Fields
	)

	if val, ok := fields[log.FieldKeyPrefix]; ok && val != nil {
		if val, ok := val.(string); ok && val != "" {
			prefix = fmt.Sprintf("[%s] ", val)
		}
	}

	if val, ok := fields[log.FieldKeyResolver]; ok && val != nil {
		if val, ok := val.(string); ok && val != "" {
			resolver = val + ": "
		}
	}

	if !formatter.DisableTimestamp && formatter.TimestampFormat != "" {
		timestamp = entry.Time.Format(formatter.TimestampFormat) + " "
	}

	if !formatter.DisableColors {
		level = formatter.colorScheme.LevelColorFunc(entry.Level)(level)
		prefix = formatter.PrefixStyle.ColorFunc(prefix)(prefix)
		resolver = formatter.colorScheme.ColorFunc(log.ResolverStyle)(resolver)
		timestamp = formatter.colorScheme.ColorFunc(log.TimestampStyle)(timestamp)
	}

	if _, err := fmt.Fprintf(buf, "%s%s%s%s%s", timestamp, level, prefix, resolver, entry.Message); err != nil {
		return nil, errors.New(err)
	}

	keys := fields.Keys(log.FieldKeyPrefix, log.FieldKeyResolver)
	for _, key := range keys {
		value := fields[key]
		if err := formatter.keyValueFormatter.appendKeyValue(buf, key, value, true); err != nil {
			return nil, err
		}
	}

	if err := buf.WriteByte('\n'); err != nil {
		return nil, errors.New(err)
	}

	return buf.Bytes(), nil
}
