// Package device derives display names from User-Agent strings so draft
// notifications can say which browser a draft was saved from.
package device

import (
	"fmt"
	"strings"

	"github.com/mssola/useragent"
)

// ParseUserAgent returns a human-readable device name like "Chrome on Mac OS X".
func ParseUserAgent(ua string) string {
	trimmed := strings.TrimSpace(ua)
	if trimmed == "" {
		return "Unknown Device"
	}

	agent := useragent.New(trimmed)
	browser, _ := agent.Browser()
	if browser == "" {
		browser = "Unknown Browser"
	}

	osName := agent.OSInfo().Name
	if osName == "" {
		osName = agent.Platform()
	}
	if osName == "" {
		osName = "Unknown OS"
	}

	return fmt.Sprintf("%s on %s", browser, osName)
}
