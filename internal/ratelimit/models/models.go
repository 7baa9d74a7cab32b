// Package models holds rate limit decisions and bucket keys.
package models

import (
	"strings"
	"time"
)

// Result is the outcome of one sliding-window check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
	// RetryAfter is whole seconds until a slot frees; set only when denied.
	RetryAfter int
}

const authKeyPrefix = "rl:auth"

// AuthKey buckets auth requests by client IP.
func AuthKey(ip string) string {
	return authKeyPrefix + ":" + sanitize(strings.TrimSpace(ip))
}

// sanitize escapes the key delimiter so IPv6 colons cannot address a
// neighbouring key space.
func sanitize(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}

// RetryAfterSeconds rounds the wait until resetAt up to whole seconds, with
// a floor of one.
func RetryAfterSeconds(now, resetAt time.Time) int {
	d := resetAt.Sub(now)
	secs := int(d / time.Second)
	if d%time.Second > 0 {
		secs++
	}
	return max(secs, 1)
}
