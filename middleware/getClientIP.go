package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// forwardedHeaders are consulted in order before the socket address.
var forwardedHeaders = []string{"X-Forwarded-For", "X-Real-IP"}

// getClientIP returns the rate-limit key for a request: the first valid
// address a proxy reported, else the peer address without its port.
func getClientIP(c *gin.Context) string {
	for _, header := range forwardedHeaders {
		for _, candidate := range strings.Split(c.GetHeader(header), ",") {
			if ip := net.ParseIP(strings.TrimSpace(candidate)); ip != nil {
				return ip.String()
			}
		}
	}
	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}
	return c.Request.RemoteAddr
}
