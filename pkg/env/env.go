package env

import (
	"os"
	"strings"
)

// Get reads an environment variable, returning fallback when it is unset
// or blank.
func Get(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
