package util

import (
	"os"
	"strings"
)

// GetEnvironmentVariables returns the process environment restricted to keys with the prefix
func GetEnvironmentVariables(prefix string) map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		key, value, found := strings.Cut(variable, "=")
		if !found || !strings.HasPrefix(key, prefix) {
			continue
		}

		environmentVariables[key] = value
	}

	return environmentVariables
}
