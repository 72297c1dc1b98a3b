//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly && !windows

package cli

// IsTerminal always reports false on platforms without a terminal ioctl.
func IsTerminal(fd uintptr) bool {
	return false
}
