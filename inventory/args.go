package inventory

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/wippyai/memview/errors"
)

// Args are the key=value arguments of a factory.
type Args map[string]string

// ParseArgs parses a comma-separated key=value list such as
// "size=4096,pages=2". An empty string yields empty Args.
func ParseArgs(s string) (Args, error) {
	args := Args{}
	if strings.TrimSpace(s) == "" {
		return args, nil
	}
	for _, part := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("malformed argument %q", part))
		}
		if _, dup := args[key]; dup {
			return nil, errors.InvalidInput(errors.PhaseConfig, fmt.Sprintf("duplicate argument %q", key))
		}
		args[key] = strings.TrimSpace(value)
	}
	return args, nil
}

// Uint returns the unsigned integer argument key, or def when absent.
// Values accept Go integer literal syntax (0x1000, 1_000).
func (a Args) Uint(key string, def uint64) (uint64, error) {
	s, ok := a[key]
	if !ok {
		return def, nil
	}
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path(key).
			Detail("invalid value %q", s).
			Value(s).
			Cause(err).
			Build()
	}
	return v, nil
}

// Check fails when a key other than allowed is present.
func (a Args) Check(allowed ...string) error {
	var unknown []string
	for k := range a {
		if !slices.Contains(allowed, k) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return errors.InvalidInput(errors.PhaseConfig,
			fmt.Sprintf("unknown arguments %s (accepted: %s)", strings.Join(unknown, ", "), strings.Join(allowed, ", ")))
	}
	return nil
}
