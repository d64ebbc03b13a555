package env

import "os"

// Get reads an environment variable, falling back when unset or empty. Real
// configuration goes through envconfig; this covers the few knobs read before
// config loads, like the logger's LOG_FORMAT switch.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
