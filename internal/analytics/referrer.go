package analytics

import (
	"net/url"
	"strings"
)

// Referrer labels with fixed spellings; the dashboard groups on these.
const (
	LabelInternal    = "Direct / Internal"
	LabelDirectEntry = "Direct Entry"
)

// knownSources maps a substring of the raw referrer to its label.
// Matching is case-insensitive and ordered.
var knownSources = []struct {
	needle string
	label  string
}{
	{"google", "Google Search"},
	{"linkedin", "LinkedIn"},
	{"github", "GitHub"},
}

// ClassifyReferrer maps a raw referrer URL to a human-readable source
// label. Pure: identical inputs always yield identical labels.
//
// Priority order: same-host referrers without an override are internal;
// an override value wins next as a campaign; then known sources by
// substring; an empty referrer is a direct entry; anything else reduces
// to its host component.
func ClassifyReferrer(rawReferrer, requestHost, override string) string {
	refHost := hostOf(rawReferrer)

	if refHost != "" && refHost == requestHost && override == "" {
		return LabelInternal
	}
	if override != "" {
		return "Campaign: " + override
	}

	lower := strings.ToLower(rawReferrer)
	for _, src := range knownSources {
		if strings.Contains(lower, src.needle) {
			return src.label
		}
	}

	if rawReferrer == "" {
		return LabelDirectEntry
	}
	if refHost != "" {
		return refHost
	}
	return rawReferrer
}

func hostOf(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		return u.Host
	}
	// Scheme-less referrers like "blog.dev/post/3" parse with an empty
	// host; retry as a protocol-relative URL.
	u, err := url.Parse("//" + rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
