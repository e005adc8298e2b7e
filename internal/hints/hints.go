// Package hints provides actionable hints for the warnings the site build
// and the feed sync emit. Hints are formatted consistently as
// "\n  hint: <text>" for appending to log messages.
package hints

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// InCI detects a CI runner from the variables the common providers set.
var InCI = func() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != ""
}

// ForMarkersNotFound explains how to make a host page injectable.
func ForMarkersNotFound(start, end string) string {
	return format("add " + start + " and then " + end + " to the page; content between them is replaced")
}

// ForMissingTemplate suggests where to put a template the build looked for.
func ForMissingTemplate(dir, name string) string {
	return format("create " + filepath.Join(dir, name+".html") + " to control the generated markup")
}

// ForFeedStatus returns hints for a non-success feed response.
func ForFeedStatus(status int) string {
	switch {
	case status == http.StatusNotFound || status == http.StatusGone:
		return format("check feed.username in sitegen.yaml")
	case status == http.StatusForbidden || status == http.StatusTooManyRequests:
		return ForNetwork("the feed host is throttling requests; the next scheduled run retries")
	case status >= 500:
		return format("the feed host is failing; the next scheduled run retries")
	default:
		return ""
	}
}

// ForNetwork returns hints for transport failures, with extra guidance
// when running in CI without a proxy configured.
func ForNetwork(base string) string {
	var hints []string
	if base != "" {
		hints = append(hints, base)
	}
	if InCI() && os.Getenv("HTTPS_PROXY") == "" && os.Getenv("https_proxy") == "" {
		hints = append(hints, "set HTTPS_PROXY if the runner has no direct egress")
	}
	return formatHints(hints)
}

// ForConfigInvalid points at the config file that failed to load.
func ForConfigInvalid(path string) string {
	if path == "" {
		return ""
	}
	return format("fix or remove " + path + "; every key is optional")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
