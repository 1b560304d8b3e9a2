package analytics

import "testing"

func TestClassifyAgent(t *testing.T) {
	tests := []struct {
		name    string
		agent   string
		browser string
		os      string
		device  string
	}{
		{
			"chrome on windows",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Chrome", "Windows", DeviceDesktop,
		},
		{
			"firefox on linux",
			"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
			"Firefox", "Linux", DeviceDesktop,
		},
		{
			"safari on iphone",
			"Mozilla/5.0 (iPhone; CPU iPhone OS 17_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Mobile/15E148 Safari/604.1",
			"Safari", "iOS", DeviceMobile,
		},
		{
			"safari on ipad",
			"Mozilla/5.0 (iPad; CPU OS 16_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.6 Mobile/15E148 Safari/604.1",
			"Safari", "iOS", DeviceTablet,
		},
		{
			"chrome on android phone",
			"Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36",
			"Chrome", "Android", DeviceMobile,
		},
		{
			"chrome on android tablet",
			"Mozilla/5.0 (Linux; Android 13; SM-X200) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
			"Chrome", "Android", DeviceTablet,
		},
		{
			"edge on windows",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.0.0",
			"Edge", "Windows", DeviceDesktop,
		},
		{
			"safari on mac",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
			"Safari", "macOS", DeviceDesktop,
		},
		{
			"googlebot",
			"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
			"Bot", "Other", DeviceBot,
		},
		{
			"curl",
			"curl/8.4.0",
			"Bot", "Other", DeviceBot,
		},
		{
			"empty agent",
			"",
			"Other", "Other", DeviceBot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyAgent(tt.agent)
			if got.Browser != tt.browser || got.OS != tt.os || got.Device != tt.device {
				t.Errorf("ClassifyAgent(%q) = %+v, want {%s %s %s}",
					tt.agent, got, tt.browser, tt.os, tt.device)
			}
		})
	}
}
