package cascade

import (
	"fmt"
	"strconv"
)

// ConfigError reports an invalid configuration or zone layout. It is returned
// before any frame is resolved and is never silently clamped.
type ConfigError struct {
	Field  string // offending option or zone, e.g. "overlapFraction" or "zones[2]"
	Value  string // offending value, formatted
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("cascade: invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("cascade: invalid %s %s: %s", e.Field, e.Value, e.Reason)
}

// TransientSampleError describes a viewport height that could not be used
// (zero, negative, NaN or infinite). The sampler recovers from it by keeping
// the last known-good height; it is only ever logged.
type TransientSampleError struct {
	Height   float64
	Fallback float64
}

func (e *TransientSampleError) Error() string {
	return fmt.Sprintf("cascade: unusable viewport height %s, using %s",
		formatFloat(e.Height), formatFloat(e.Fallback))
}

func configErr(field string, value any, reason string) *ConfigError {
	var v string
	switch x := value.(type) {
	case nil:
	case float64:
		v = formatFloat(x)
	case int:
		v = strconv.Itoa(x)
	default:
		v = fmt.Sprint(x)
	}
	return &ConfigError{Field: field, Value: v, Reason: reason}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
