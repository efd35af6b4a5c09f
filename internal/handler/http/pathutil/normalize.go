// Package pathutil normalizes request paths for use as metric labels.
package pathutil

import "strings"

// UnmatchedPath is the label for every path the service does not route.
const UnmatchedPath = "/other"

// knownPaths lists the routed paths. Anything else collapses to UnmatchedPath
// so scanners probing random URLs cannot grow label cardinality.
var knownPaths = map[string]struct{}{
	"/summaries":          {},
	"/summaries/forensic": {},
	"/summaries/options":  {},
	"/health":             {},
	"/live":               {},
	"/metrics":            {},
}

// NormalizePath returns the metric label for path.
//
// Query parameters and trailing slashes are stripped before matching:
//
//	NormalizePath("/summaries")            // "/summaries"
//	NormalizePath("/summaries/?debug=1")   // "/summaries"
//	NormalizePath("/wp-login.php")         // "/other"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if _, ok := knownPaths[path]; ok {
		return path
	}
	return UnmatchedPath
}

// GetExpectedCardinality returns the number of distinct labels NormalizePath
// can produce.
func GetExpectedCardinality() int {
	return len(knownPaths) + 1
}
