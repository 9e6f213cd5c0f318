package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadTunedParams reads a tuned-parameter file: a single line of
// space-separated values where every leading field is a per-class service
// scaling factor (prop), the second-to-last field is the server count, and
// the trailing field is the tuner's score, which is not a queue parameter.
func LoadTunedParams(path string) (props []float64, numServers int, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read params file: %w", err)
	}

	fields := strings.Fields(string(content))
	if len(fields) < 3 {
		return nil, 0, fmt.Errorf("params file %s: expected at least one prop, a server count and a score, got %d field(s)", path, len(fields))
	}

	for i, field := range fields[:len(fields)-2] {
		p, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, 0, fmt.Errorf("params file %s: invalid prop in field %d: %w", path, i+1, err)
		}
		props = append(props, p)
	}

	servers, err := strconv.ParseFloat(fields[len(fields)-2], 64)
	if err != nil {
		return nil, 0, fmt.Errorf("params file %s: invalid server count: %w", path, err)
	}

	return props, int(servers), nil
}
