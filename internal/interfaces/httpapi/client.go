package httpapi

import (
	"net/http"
	"net/netip"
	"strings"
)

var clientIPHeaders = []string{"Fly-Client-IP", "X-Forwarded-For", "X-Real-IP"}

// clientIP takes the first parseable address from the proxy headers, then
// falls back to the socket peer.
func clientIP(r *http.Request) string {
	for _, header := range clientIPHeaders {
		first, _, _ := strings.Cut(r.Header.Get(header), ",")
		if addr, ok := parseAddr(first); ok {
			return addr
		}
	}
	if addr, ok := parseAddr(r.RemoteAddr); ok {
		return addr
	}
	return ""
}

func parseAddr(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if ap, err := netip.ParseAddrPort(raw); err == nil {
		return ap.Addr().Unmap().String(), true
	}
	if addr, err := netip.ParseAddr(raw); err == nil {
		return addr.Unmap().String(), true
	}
	return "", false
}
