package checks

// Params holds the configured parameters of one service, typically decoded
// from YAML.  Lookups are forgiving about value types since YAML decodes
// numbers as int or float64 depending on their spelling.
type Params map[string]interface{}

// Merged overlays p on top of defaults without mutating either.
func (p Params) Merged(defaults Params) Params {
	merged := Params{}
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range p {
		merged[k] = v
	}
	return merged
}

// String returns the string value of key, or fallback when absent or not a
// string.
func (p Params) String(key, fallback string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return fallback
}

// Bool returns the bool value of key, or fallback.
func (p Params) Bool(key string, fallback bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return fallback
}

// Levels reads a two-element warn/crit list.  Nil when the key is absent
// or malformed, which disables the threshold.
func (p Params) Levels(key string) *Levels {
	raw, ok := p[key]
	if !ok || raw == nil {
		return nil
	}
	pair := toSlice(raw)
	if len(pair) != 2 {
		return nil
	}
	warn, okW := toFloat(pair[0])
	crit, okC := toFloat(pair[1])
	if !okW || !okC {
		return nil
	}
	return &Levels{Warn: warn, Crit: crit}
}

func toSlice(v interface{}) []interface{} {
	switch s := v.(type) {
	case []interface{}:
		return s
	case []float64:
		out := make([]interface{}, len(s))
		for i, f := range s {
			out[i] = f
		}
		return out
	case []int:
		out := make([]interface{}, len(s))
		for i, n := range s {
			out[i] = n
		}
		return out
	}
	return nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
