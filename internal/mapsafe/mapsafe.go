package mapsafe

import "time"

// Get retrieves a typed value from a map[string]any.
// If the key is missing or the type cannot be converted, it returns the default value.
func Get[T any](m map[string]any, key string, defaultValue T) T {
	if val, ok := m[key]; ok {
		switch any(defaultValue).(type) {
		case int:
			switch x := val.(type) {
			case int:
				return any(x).(T)
			case int64:
				return any(int(x)).(T)
			case float64:
				return any(int(x)).(T)
			}
		case int64:
			switch x := val.(type) {
			case int:
				return any(int64(x)).(T)
			case int64:
				return any(x).(T)
			case float64:
				return any(int64(x)).(T)
			}
		case float64:
			switch x := val.(type) {
			case float64:
				return any(x).(T)
			case int:
				return any(float64(x)).(T)
			}
		case string:
			if s, ok := val.(string); ok {
				return any(s).(T)
			}
		case bool:
			if b, ok := val.(bool); ok {
				return any(b).(T)
			}
		case time.Duration:
			// YAML has no duration type: accept "10s" style strings or seconds.
			switch x := val.(type) {
			case string:
				if d, err := time.ParseDuration(x); err == nil {
					return any(d).(T)
				}
			case int:
				return any(time.Duration(x) * time.Second).(T)
			case float64:
				return any(time.Duration(x * float64(time.Second))).(T)
			}
		case []string:
			switch x := val.(type) {
			case []string:
				return any(x).(T)
			case []any:
				out := make([]string, 0, len(x))
				for _, item := range x {
					s, ok := item.(string)
					if !ok {
						return defaultValue
					}
					out = append(out, s)
				}
				return any(out).(T)
			}
		default:
			// fallback: if type matches exactly
			if v2, ok := val.(T); ok {
				return v2
			}
		}
	}
	return defaultValue
}
