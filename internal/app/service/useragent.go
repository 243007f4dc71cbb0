package service

import "strings"

// Device and browser classification by ordered substring matching. The
// precedence is fixed: changing the order changes observable
// classification output for ambiguous user agents (most Chromium-family
// UAs contain "Safari", Edge UAs also contain "Chrome"), so the checks
// below must stay in this exact sequence.

const (
	DeviceMobile  = "Mobile"
	DeviceTablet  = "Tablet"
	DeviceDesktop = "Desktop"
)

// ClassifyDevice buckets a user agent into Mobile, Tablet or Desktop.
// Mobile is checked before Tablet.
func ClassifyDevice(ua string) string {
	switch {
	case strings.Contains(ua, "Mobile"):
		return DeviceMobile
	case strings.Contains(ua, "Tablet"), strings.Contains(ua, "iPad"):
		return DeviceTablet
	default:
		return DeviceDesktop
	}
}

// ClassifyBrowser buckets a user agent by substring precedence:
// Chrome, Firefox, Safari (excluding Chrome), Edge, Opera, Other.
func ClassifyBrowser(ua string) string {
	switch {
	case strings.Contains(ua, "Chrome"):
		return "Chrome"
	case strings.Contains(ua, "Firefox"):
		return "Firefox"
	case strings.Contains(ua, "Safari"):
		return "Safari"
	case strings.Contains(ua, "Edg"):
		return "Edge"
	case strings.Contains(ua, "OPR"), strings.Contains(ua, "Opera"):
		return "Opera"
	default:
		return "Other"
	}
}
