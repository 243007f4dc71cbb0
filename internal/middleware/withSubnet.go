package middleware

import (
	"net"
	"net/http"
)

// WithSubnet guards internal endpoints: the request's X-Real-IP must
// fall within the configured CIDR. An empty subnet rejects everything.
func WithSubnet(subnet string) func(next http.Handler) http.Handler {
	var network *net.IPNet
	if subnet != "" {
		if _, parsed, err := net.ParseCIDR(subnet); err == nil {
			network = parsed
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if network == nil {
				w.WriteHeader(http.StatusForbidden)
				return
			}

			ip := net.ParseIP(r.Header.Get("X-Real-IP"))
			if ip == nil || !network.Contains(ip) {
				w.WriteHeader(http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
