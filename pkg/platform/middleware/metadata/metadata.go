// Package metadata records who is calling: client IP and user agent.
package metadata

import (
	"net"
	"net/http"
	"net/netip"
	"strings"

	"registrar/pkg/requestcontext"
)

const unknownIP = "unknown"

// ClientMetadata stores the client IP and User-Agent in the request context
// for the rate limiter, audit events and login device labels.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithClientMetadata(r.Context(), ClientIPFromRequest(r), r.Header.Get("User-Agent"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientIPFromRequest prefers the first X-Forwarded-For hop, then X-Real-IP,
// then the peer address. Header values that are not IPs are skipped.
func ClientIPFromRequest(r *http.Request) string {
	first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
	for _, candidate := range []string{first, r.Header.Get("X-Real-IP")} {
		if ip, ok := parseIP(candidate); ok {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip, ok := parseIP(host); ok {
		return ip
	}
	return unknownIP
}

func parseIP(s string) (string, bool) {
	addr, err := netip.ParseAddr(strings.Trim(strings.TrimSpace(s), "[]"))
	if err != nil {
		return "", false
	}
	return addr.Unmap().String(), true
}
