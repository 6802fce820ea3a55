//go:build !linux && !darwin

package probes

import "errors"

// freeSpace is unavailable here; callers treat the error as "unknown"
// and skip the preflight rather than failing the probe.
func freeSpace(path string) (uint64, error) {
	return 0, errors.ErrUnsupported
}
