package main

import (
	"fmt"
	"strconv"
)

// parseOverrides converts --set name=value pairs to floats.
func parseOverrides(raw map[string]string) (map[string]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(raw))
	for name, s := range raw {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %q", name, s)
		}
		out[name] = v
	}
	return out, nil
}
