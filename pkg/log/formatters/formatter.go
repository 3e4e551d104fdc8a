// Package formatters contains the output formats supported by the logger.
package formatters

import (
	"strings"

	"github.com/reqpin/reqpin/internal/errors"
	"github.com/reqpin/reqpin/pkg/log"
)

// Formatter is a log.Formatter that can be selected by name and configured with options.
type Formatter interface {
	log.Formatter

	// Name returns the name by which the formatter is selected, e.g. "pretty".
	Name() string

	// SetOption assigns the named option, e.g. SetOption("color", false).
	SetOption(name string, value any) error
}

type Formatters []Formatter

func (formatters Formatters) Names() []string {
	strs := make([]string, len(formatters))

	for i, formatter := range formatters {
		strs[i] = formatter.Name()
	}

	return strs
}

func (formatters Formatters) String() string {
	return strings.Join(formatters.Names(), ", ")
}

func AllFormatters() Formatters {
	return Formatters{
		NewPrettyFormatter(),
		NewKeyValueFormatter(),
		NewJSONFormatter(),
	}
}

// ParseFormat takes a comma separated string, e.g. "pretty,no-color", and
// returns a Formatter instance with the given options assigned.
func ParseFormat(str string) (Formatter, error) {
	var (
		allFormatters           = AllFormatters()
		formatter     Formatter = allFormatters[0]
	)

	byName := make(map[string]Formatter, len(allFormatters))
	for _, f := range allFormatters {
		byName[f.Name()] = f
	}

	for _, part := range strings.Split(str, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}

		if f, ok := byName[name]; ok {
			formatter = f
			continue
		}

		var value any = true

		if parts := strings.SplitN(name, ":", 2); len(parts) > 1 {
			name = parts[0]
			value = parts[1]
		}

		if strings.HasPrefix(name, "no-") {
			name = strings.TrimPrefix(name, "no-")
			value = false
		}

		if err := formatter.SetOption(name, value); err != nil {
			return nil, err
		}
	}

	return formatter, nil
}

func invalidOptionError(formatter Formatter, name string, supported ...string) error {
	return errors.Errorf("invalid option %q for the format %q, supported options: %s", name, formatter.Name(), strings.Join(supported, ", "))
}

func optionBoolValue(value any) (bool, bool) {
	switch val := value.(type) {
	case bool:
		return val, true
	case string:
		return val == "true" || val == "1", true
	}

	return false, false
}
