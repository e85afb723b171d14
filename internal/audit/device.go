package audit

import (
	"fmt"
	"strings"

	"github.com/mssola/useragent"
)

// DeviceName turns a raw User-Agent header into a short display string for
// audit events, e.g. "Chrome on Mac OS X" or "Safari on iPhone".
func DeviceName(rawUA string) string {
	if strings.TrimSpace(rawUA) == "" {
		return "Unknown Device"
	}

	ua := useragent.New(rawUA)
	browser, _ := ua.Browser()
	os := ua.OS()

	if browser == "" {
		browser = "Unknown Browser"
	}
	if os == "" {
		os = ua.Platform()
	}
	if os == "" {
		os = "Unknown OS"
	}

	return strings.TrimSpace(fmt.Sprintf("%s on %s", browser, os))
}
