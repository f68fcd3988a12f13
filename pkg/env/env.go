package env

import "os"

// Get returns the environment value for key, falling back to def when unset.
func Get(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
