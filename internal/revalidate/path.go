package revalidate

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizePath brings a webhook-supplied route into the canonical form used
// as the cache key: unicode NFC, a single leading slash, no trailing slash
// except for the root. Authors paste paths from browsers and documents, so
// composed and decomposed unicode must collapse to one cache entry.
func NormalizePath(path string) string {
	path = norm.NFC.String(strings.TrimSpace(path))

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}

	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	return path
}
