package utils

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// ClientIP resolves the real client address behind reverse proxies.
// X-Real-IP wins, then the first public entry of X-Forwarded-For, then
// Gin's own resolution for direct connections.
func ClientIP(c *gin.Context) string {
	realIP := strings.TrimSpace(c.Request.Header.Get("X-Real-IP"))
	if isValidIP(realIP) && !isPrivateIP(net.ParseIP(realIP)) {
		return realIP
	}

	forwarded := c.Request.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		ips := strings.Split(forwarded, ",")
		for _, entry := range ips {
			candidate := strings.TrimSpace(entry)
			if isValidIP(candidate) && !isPrivateIP(net.ParseIP(candidate)) && !isLocalhost(candidate) {
				return candidate
			}
		}
		// Every hop was private, take the nearest one
		first := strings.TrimSpace(ips[0])
		if isValidIP(first) {
			return first
		}
	}

	return c.ClientIP()
}

func isValidIP(ip string) bool {
	return net.ParseIP(ip) != nil
}

func isLocalhost(ip string) bool {
	return ip == "127.0.0.1" || ip == "::1"
}

func isPrivateIP(ip net.IP) bool {
	if ip == nil {
		return false
	}
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast()
}
