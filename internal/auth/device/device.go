// Package device turns User-Agent headers into short labels for login audit
// events.
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

const unknownDevice = "Unknown Device"

// ParseUserAgent returns "<browser> on <platform>", e.g. "Chrome on macOS".
func ParseUserAgent(userAgent string) string {
	if strings.TrimSpace(userAgent) == "" {
		return unknownDevice
	}
	ua := useragent.New(userAgent)
	browser, _ := ua.Browser()
	if browser == "" {
		browser = "Unknown Browser"
	}
	platform := ua.OS()
	if platform == "" {
		platform = ua.Platform()
	}
	if platform == "" {
		platform = "Unknown OS"
	}
	if ua.Mobile() && !strings.Contains(platform, ua.Platform()) && ua.Platform() != "" {
		platform = ua.Platform() + " " + platform
	}
	return strings.TrimSpace(browser + " on " + strings.TrimSpace(platform))
}

// IsBot reports crawler traffic, which is labelled but never trusted.
func IsBot(userAgent string) bool {
	return userAgent != "" && useragent.New(userAgent).Bot()
}
