package protocol

// Helpers for pulling typed values out of decoded wire maps. JSON decoding
// turns every number into float64, but hand-built maps (and tests) carry
// native ints, so each numeric accessor takes both.

func stringField(m map[string]interface{}, key string) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", decodeErrorf(key, "missing required field")
	}
	s, ok := v.(string)
	if !ok {
		return "", decodeErrorf(key, "expected string, got %T", v)
	}
	return s, nil
}

func intField(m map[string]interface{}, key string) (int64, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return 0, decodeErrorf(key, "missing required field")
	}
	return asInt64(key, v)
}

// optionalIntField returns (0, false, nil) when the field is absent or null.
func optionalIntField(m map[string]interface{}, key string) (int64, bool, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	n, err := asInt64(key, v)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func asInt64(key string, v interface{}) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		return int64(n), nil
	default:
		return 0, decodeErrorf(key, "expected integer, got %T", v)
	}
}

func boolField(m map[string]interface{}, key string) (bool, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return false, decodeErrorf(key, "missing required field")
	}
	b, ok := v.(bool)
	if !ok {
		return false, decodeErrorf(key, "expected bool, got %T", v)
	}
	return b, nil
}

func mapField(m map[string]interface{}, key string) (map[string]interface{}, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, decodeErrorf(key, "missing required field")
	}
	child, ok := v.(map[string]interface{})
	if !ok {
		return nil, decodeErrorf(key, "expected object, got %T", v)
	}
	return child, nil
}

// optionalStringField returns nil when the field is absent or explicit null,
// preserving the null-vs-empty distinction.
func optionalStringField(m map[string]interface{}, key string) (*string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, decodeErrorf(key, "expected string, got %T", v)
	}
	return &s, nil
}

func optionalBoolField(m map[string]interface{}, key string) (*bool, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil, decodeErrorf(key, "expected bool, got %T", v)
	}
	return &b, nil
}
