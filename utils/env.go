package utils

import (
	"html"
	"os"
	"strings"
)

// EnvOrDefault returns the trimmed env value or def when it is empty.
func EnvOrDefault(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func htmlEscape(s string) string { return html.EscapeString(s) }
