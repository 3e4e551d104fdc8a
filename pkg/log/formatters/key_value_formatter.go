package formatters

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/reqpin/reqpin/internal/errors"
	"github.com/reqpin/reqpin/pkg/log"
)

const (
	KeyValueFormatterName = "key-value"

	defaultKeyValueFormatterTimestampFormat = "2006-01-02T15:04:05Z07:00"
)

// KeyValueFormatter implements Formatter.
var _ Formatter = new(KeyValueFormatter)

type KeyValueFormatter struct {
	// DisableTimestamp allows disabling automatic timestamps in output.
	DisableTimestamp bool

	// TimestampFormat to use for display when a full timestamp is printed.
	TimestampFormat string
}

// NewKeyValueFormatter returns a new KeyValueFormatter instance with default values.
func NewKeyValueFormatter() *KeyValueFormatter {
	return &KeyValueFormatter{
		TimestampFormat: defaultKeyValueFormatterTimestampFormat,
	}
}

// Name implements Formatter.
func (formatter *KeyValueFormatter) Name() string {
	return KeyValueFormatterName
}

// SetOption implements Formatter.
func (formatter *KeyValueFormatter) SetOption(name string, value any) error {
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
	}

	return invalidOptionError(formatter, name, "timestamp", "time-format")
}

// Format implements log.Formatter.
func (formatter *KeyValueFormatter) Format(entry *log.Entry) ([]byte, error) {
	buf := entry.Buffer
	if buf == nil {
		buf = new(bytes.Buffer)
	}

	if !formatter.DisableTimestamp && formatter.TimestampFormat != "" {
		if err := formatter.appendKeyValue(buf, log.FieldKeyTime, entry.Time.Format(formatter.TimestampFormat), false); err != nil {
			return nil, err
		}
	}

	if err := formatter.appendKeyValue(buf, log.FieldKeyLevel, entry.Level.String(), true); err != nil {
		return nil, err
	}

	if err := formatter.appendKeyValue(buf, log.FieldKeyMsg, entry.Message, true); err != nil {
		return nil, err
	}

	for _, key := range entry.Fields.Keys() {
		if err := formatter.appendKeyValue(buf, key, entry.Fields[key], true); err != nil {
			return nil, err
		}
	}

	if err := buf.WriteByte('\n'); err != nil {
		return nil, errors.New(err)
	}

	return buf.Bytes(), nil
}

func (formatter *KeyValueFormatter) appendKeyValue(buf *bytes.Buffer, key string, value any, appendSpace bool) error {
	if appendSpace && buf.Len() > 0 {
		if err := buf.WriteByte(' '); err != nil {
			return errors.New(err)
		}
	}

	if _, err := buf.WriteString(key); err != nil {
		return errors.New(err)
	}

	if err := buf.WriteByte('='); err != nil {
		return errors.New(err)
	}

	return formatter.appendValue(buf, value)
}

func (formatter *KeyValueFormatter) appendValue(buf *bytes.Buffer, value any) error {
	str, ok := value.(string)
	if !ok {
		str = fmt.Sprint(value)
	}

	if !needsQuoting(str) {
		if _, err := buf.WriteString(str); err != nil {
			return errors.New(err)
		}

		return nil
	}

	if _, err := buf.WriteString(fmt.Sprintf("%q", str)); err != nil {
		return errors.New(err)
	}

	return nil
}

func needsQuoting(text string) bool {
	if len(text) == 0 {
		return true
	}

	for _, r := range text {
		if !((r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') ||
			r == '-' || r == '.' || r == '_' || r == '/' || r == '@' || r == '^' || r == '+') {
			return true
		}
	}

	return !utf8.ValidString(text)
}
