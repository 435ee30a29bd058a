package layout

import "fmt"

// ConfigError reports settings that cannot produce any layout. The caller
// must reject the settings edit instead of rendering a partial result.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
