package log

import "sort"

const (
	// FieldKeyPrefix names the requirements source a log entry relates to.
	FieldKeyPrefix = "prefix"
	// FieldKeyResolver names the wrapped resolver binary that produced forwarded output.
	FieldKeyResolver = "resolver"
	FieldKeyMsg      = "msg"
	FieldKeyLevel    = "level"
	FieldKeyTime     = "time"
)

// Fields type, used to pass to `WithFields`.
type Fields map[string]interface{}

func (fields Fields) Keys(removeKeys ...string) []string {
	var keys []string

	for key := range fields {
		var skip bool

		for _, removeKey := range removeKeys {
			if key == removeKey {
				skip = true
				break
			}
		}

		if !skip {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	return keys
}
