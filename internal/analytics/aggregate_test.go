package analytics

import (
	"reflect"
	"testing"
	"time"

	dbpkg "pagepulse/internal/db"
)

func TestZeroFilledSeriesAlwaysEightPoints(t *testing.T) {
	now := time.Date(2025, time.June, 10, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		counts map[string]int64
	}{
		{"no events", nil},
		{"one day", map[string]int64{"2025-06-08": 3}},
		{"every day", map[string]int64{
			"2025-06-03": 1, "2025-06-04": 2, "2025-06-05": 3, "2025-06-06": 4,
			"2025-06-07": 5, "2025-06-08": 6, "2025-06-09": 7, "2025-06-10": 8,
		}},
		{"stray day outside window ignored", map[string]int64{"2025-05-01": 99}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := zeroFilledSeries(now, tt.counts)
			if len(got) != seriesPoints {
				t.Fatalf("len = %d, want %d", len(got), seriesPoints)
			}
			if got[0].Label != "Jun 3" || got[len(got)-1].Label != "Jun 10" {
				t.Errorf("span = %s..%s, want Jun 3..Jun 10", got[0].Label, got[len(got)-1].Label)
			}
		})
	}
}

func TestZeroFilledSeriesPlacement(t *testing.T) {
	now := time.Date(2025, time.June, 10, 0, 5, 0, 0, time.UTC)
	got := zeroFilledSeries(now, map[string]int64{
		"2025-06-10": 4,
		"2025-06-07": 2,
	})

	var total int64
	for _, p := range got {
		total += p.Count
	}
	if total != 6 {
		t.Errorf("series sum = %d, want 6", total)
	}
	if got[7].Count != 4 {
		t.Errorf("today = %d, want 4", got[7].Count)
	}
	if got[4].Count != 2 {
		t.Errorf("Jun 7 = %d, want 2", got[4].Count)
	}
}

func TestTopCounts(t *testing.T) {
	byPath := map[string]int64{
		"/":         10,
		"/about":    10,
		"/projects": 7,
		"/a":        1, "/b": 1, "/c": 1, "/d": 1, "/e": 1, "/f": 1, "/g": 1,
	}
	got := topCounts(byPath, topPathLimit)
	if len(got) != topPathLimit {
		t.Fatalf("len = %d, want %d", len(got), topPathLimit)
	}
	want := []dbpkg.PathCount{{Path: "/", Count: 10}, {Path: "/about", Count: 10}, {Path: "/projects", Count: 7}}
	if !reflect.DeepEqual(got[:3], want) {
		t.Errorf("head = %#v, want %#v", got[:3], want)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Count > got[i-1].Count {
			t.Errorf("counts not descending at %d: %v", i, got)
		}
	}
}

// Day buckets are UTC on both the storage and in-memory paths; an event
// shortly after UTC midnight lands in that UTC day even when the local
// zone is still on the previous day.
func TestSeriesBucketsInUTC(t *testing.T) {
	eastern := time.FixedZone("UTC-5", -5*60*60)
	ev := time.Date(2025, time.June, 9, 20, 0, 0, 0, eastern) // 2025-06-10T01:00Z

	if got := dayKey(ev); got != "2025-06-10" {
		t.Fatalf("dayKey = %q, want 2025-06-10", got)
	}

	now := time.Date(2025, time.June, 10, 2, 0, 0, 0, time.UTC)
	series := zeroFilledSeries(now, map[string]int64{dayKey(ev): 1})
	if series[len(series)-1].Count != 1 {
		t.Errorf("event did not land in today's bucket: %+v", series)
	}
}

func TestWindowStartIsUTCMidnight(t *testing.T) {
	eastern := time.FixedZone("UTC-5", -5*60*60)
	local := time.Date(2025, time.June, 9, 22, 0, 0, 0, eastern) // 2025-06-10T03:00Z

	start := windowStart(local)
	want := time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Errorf("windowStart = %v, want %v", start, want)
	}
}

func TestParseDimension(t *testing.T) {
	for _, valid := range []string{"", "path", "referrer", "browser", "os", "device"} {
		if _, ok := ParseDimension(valid); !ok {
			t.Errorf("ParseDimension(%q) rejected", valid)
		}
	}
	if _, ok := ParseDimension("country"); ok {
		t.Error("ParseDimension accepted unknown dimension")
	}
}

func TestFilterDerived(t *testing.T) {
	tests := []struct {
		f    Filter
		want bool
	}{
		{Filter{}, false},
		{Filter{Dimension: DimPath, Value: "/about"}, false},
		{Filter{Dimension: DimReferrer, Value: "Google Search"}, false},
		{Filter{Dimension: DimBrowser, Value: "Chrome"}, true},
		{Filter{Dimension: DimOS, Value: "Linux"}, true},
		{Filter{Dimension: DimDevice, Value: DeviceMobile}, true},
		{Filter{Dimension: DimBrowser, Value: ""}, false},
	}
	for _, tt := range tests {
		if got := tt.f.derived(); got != tt.want {
			t.Errorf("%+v derived = %v, want %v", tt.f, got, tt.want)
		}
	}
}

func TestFilterMatches(t *testing.T) {
	p := ClientProfile{Browser: "Firefox", OS: "Linux", Device: DeviceDesktop}

	tests := []struct {
		f    Filter
		want bool
	}{
		{Filter{}, true},
		{Filter{Dimension: DimBrowser, Value: "Firefox"}, true},
		{Filter{Dimension: DimBrowser, Value: "Chrome"}, false},
		{Filter{Dimension: DimOS, Value: "Linux"}, true},
		{Filter{Dimension: DimDevice, Value: DeviceMobile}, false},
		{Filter{Dimension: DimPath, Value: "/x"}, true},
	}
	for _, tt := range tests {
		if got := tt.f.matches(p); got != tt.want {
			t.Errorf("%+v matches = %v, want %v", tt.f, got, tt.want)
		}
	}
}

func TestFilterStorage(t *testing.T) {
	since := time.Now()

	ef := Filter{Dimension: DimPath, Value: "/about"}.storage(since)
	if ef.Path != "/about" || !ef.SuccessOnly {
		t.Errorf("path filter storage = %+v", ef)
	}

	ef = Filter{Dimension: DimBrowser, Value: "Chrome"}.storage(since)
	if ef.Path != "" || ef.Referrer != "" {
		t.Errorf("derived filter leaked into storage: %+v", ef)
	}
	if !ef.SuccessOnly {
		t.Error("derived filter storage not success-only")
	}
}
