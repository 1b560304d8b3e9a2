package analytics

import "strings"

// Device classes.
const (
	DeviceMobile  = "Mobile"
	DeviceTablet  = "Tablet"
	DeviceDesktop = "Desktop"
	DeviceBot     = "Bot/Other"
)

// ClientProfile is the classified form of a raw user-agent string.
type ClientProfile struct {
	Browser string
	OS      string
	Device  string
}

var botMarkers = []string{
	"bot", "crawler", "spider", "slurp", "curl/", "wget/",
	"python-requests", "go-http-client", "headlesschrome",
}

// ClassifyAgent parses a user-agent string into browser family, OS
// family and device class. Only the raw string is persisted; this runs
// again at read time when the dashboard filters on a client dimension.
func ClassifyAgent(agent string) ClientProfile {
	ua := strings.ToLower(agent)

	for _, marker := range botMarkers {
		if strings.Contains(ua, marker) {
			return ClientProfile{Browser: "Bot", OS: "Other", Device: DeviceBot}
		}
	}
	if agent == "" {
		return ClientProfile{Browser: "Other", OS: "Other", Device: DeviceBot}
	}

	return ClientProfile{
		Browser: browserFamily(ua),
		OS:      osFamily(ua),
		Device:  deviceClass(ua),
	}
}

func browserFamily(ua string) string {
	switch {
	case strings.Contains(ua, "edg/") || strings.Contains(ua, "edge/"):
		return "Edge"
	case strings.Contains(ua, "opr/") || strings.Contains(ua, "opera"):
		return "Opera"
	case strings.Contains(ua, "samsungbrowser"):
		return "Samsung Internet"
	case strings.Contains(ua, "firefox/"):
		return "Firefox"
	case strings.Contains(ua, "chrome/") || strings.Contains(ua, "crios/"):
		return "Chrome"
	case strings.Contains(ua, "safari/"):
		return "Safari"
	case strings.Contains(ua, "msie") || strings.Contains(ua, "trident/"):
		return "Internet Explorer"
	default:
		return "Other"
	}
}

func osFamily(ua string) string {
	switch {
	case strings.Contains(ua, "windows"):
		return "Windows"
	case strings.Contains(ua, "android"):
		return "Android"
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"), strings.Contains(ua, "ipod"):
		return "iOS"
	case strings.Contains(ua, "mac os x"), strings.Contains(ua, "macintosh"):
		return "macOS"
	case strings.Contains(ua, "cros"):
		return "Chrome OS"
	case strings.Contains(ua, "linux"):
		return "Linux"
	default:
		return "Other"
	}
}

func deviceClass(ua string) string {
	switch {
	case strings.Contains(ua, "ipad"), strings.Contains(ua, "tablet"):
		return DeviceTablet
	// Android tablets carry "android" without "mobile".
	case strings.Contains(ua, "android") && !strings.Contains(ua, "mobile"):
		return DeviceTablet
	case strings.Contains(ua, "mobile"), strings.Contains(ua, "iphone"), strings.Contains(ua, "ipod"):
		return DeviceMobile
	default:
		return DeviceDesktop
	}
}
