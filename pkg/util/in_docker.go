package util

import "os"

// IsRunningInDocker reports whether the process runs inside a container,
// detected through the /.dockerenv marker file.
func IsRunningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}

	return false
}
