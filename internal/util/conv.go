package util

import "strconv"

// IntsToStrings renders question tokens the way the API reports them.
func IntsToStrings(values []int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.Itoa(v)
	}
	return out
}

// IntMapToStrings converts a CO/topic→tokens map for the response shape.
func IntMapToStrings(m map[string][]int) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[k] = IntsToStrings(v)
	}
	return out
}

func ParseBoolDefault(raw string, def bool) bool {
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func ParseFloatDefault(raw string, def float64) float64 {
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}

func ParseIntDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
