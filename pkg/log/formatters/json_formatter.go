package formatters

import (
	"bytes"
	"encoding/json"

	"github.com/reqpin/reqpin/internal/errors"
	"github.com/reqpin/reqpin/pkg/log"
)

const (
	JSONFormatterName = "json"

	defaultJSONFormatterTimestampFormat = "2006-01-02T15:04:05Z07:00"
)

// JSONFormatter implements Formatter.
var _ Formatter = new(JSONFormatter)

type JSONFormatter struct {
	// DisableTimestamp allows disabling automatic timestamps in output.
	DisableTimestamp bool

	// TimestampFormat to use for display when a full timestamp is printed.
	TimestampFormat string

	// PrettyPrint will indent all JSON logs.
	PrettyPrint bool
}

// NewJSONFormatter returns a new JSONFormatter instance with default values.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{
		TimestampFormat: defaultJSONFormatterTimestampFormat,
	}
}

// Name implements Formatter.
func (formatter *JSONFormatter) Name() string {
	return JSONFormatterName
}

// SetOption implements Formatter.
func (formatter *JSONFormatter) SetOption(name string, value any) error {
	switch name {
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
	case "pretty-print":
		if val, ok := optionBoolValue(value); ok {
			formatter.PrettyPrint = val
			return nil
		}
	}

	return invalidOptionError(formatter, name, "timestamp", "time-format", "pretty-print")
}

// Format implements log.Formatter.
func (formatter *JSONFormatter) Format(entry *log.Entry) ([]byte, error) {
	data := make(log.Fields, len(entry.Fields)+3)

	// Field keys clashing with the reserved ones are prefixed rather than
	// silently overwritten.
	for key, value := range entry.Fields {
		switch key {
		case log.FieldKeyTime, log.FieldKeyLevel, log.FieldKeyMsg:
			data["fields."+key] = value
		default:
			data[key] = value
		}
	}

	if !formatter.DisableTimestamp && formatter.TimestampFormat != "" {
		data[log.FieldKeyTime] = entry.Time.Format(formatter.TimestampFormat)
	}

	data[log.FieldKeyLevel] = entry.Level.String()
	data[log.FieldKeyMsg] = entry.Message

	buf := entry.Buffer
	if buf == nil {
		buf = new(bytes.Buffer)
	}

	encoder := json.NewEncoder(buf)
	if formatter.PrettyPrint {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(data); err != nil {
		return nil, errors.Errorf("failed to marshal fields to JSON: %w", err)
	}

	return buf.Bytes(), nil
}
