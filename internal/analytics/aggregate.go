package analytics

import (
	"sort"
	"time"

	"gorm.io/gorm"

	dbpkg "pagepulse/internal/db"
)

// Dashboard window constants.
const (
	windowDays   = 7
	seriesPoints = windowDays + 1 // 7 days ago through today, inclusive

	topPathLimit  = 8
	errorLogLimit = 15

	onlineWindow = 5 * time.Minute

	dayKeyLayout   = "2006-01-02"
	dayLabelLayout = "Jan 2"
)

// Dimension names a single filterable breakdown axis. At most one
// dimension is active per query.
type Dimension string

const (
	DimNone     Dimension = ""
	DimPath     Dimension = "path"
	DimReferrer Dimension = "referrer"
	DimBrowser  Dimension = "browser"
	DimOS       Dimension = "os"
	DimDevice   Dimension = "device"
)

// ParseDimension validates a dimension name from a query string.
func ParseDimension(s string) (Dimension, bool) {
	switch Dimension(s) {
	case DimNone, DimPath, DimReferrer, DimBrowser, DimOS, DimDevice:
		return Dimension(s), true
	}
	return DimNone, false
}

// Filter is an optional single-dimension constraint on aggregate queries.
type Filter struct {
	Dimension Dimension
	Value     string
}

// derived reports whether the dimension is not persisted and requires
// re-classifying each event's user-agent: an O(n) scan over the window.
func (f Filter) derived() bool {
	switch f.Dimension {
	case DimBrowser, DimOS, DimDevice:
		return f.Value != ""
	}
	return false
}

func (f Filter) storage(since time.Time) dbpkg.EventFilter {
	ef := dbpkg.EventFilter{Since: since, SuccessOnly: true}
	if f.Value == "" {
		return ef
	}
	switch f.Dimension {
	case DimPath:
		ef.Path = f.Value
	case DimReferrer:
		ef.Referrer = f.Value
	}
	return ef
}

func (f Filter) matches(p ClientProfile) bool {
	switch f.Dimension {
	case DimBrowser:
		return p.Browser == f.Value
	case DimOS:
		return p.OS == f.Value
	case DimDevice:
		return p.Device == f.Value
	}
	return true
}

// Engine computes dashboard aggregates over the event collection.
type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// All window math runs in UTC: windowStart is UTC midnight and dayKey
// buckets by UTC calendar day, matching the storage-side grouping.
func windowStart(now time.Time) time.Time {
	y, m, d := now.UTC().AddDate(0, 0, -windowDays).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayKey(t time.Time) string {
	return t.UTC().Format(dayKeyLayout)
}

// Summary holds the headline dashboard numbers for the trailing window.
type Summary struct {
	TotalHits      int64 `json:"total_hits"`
	UniqueVisitors int64 `json:"unique_visitors"`
	OnlineNow      int64 `json:"online_now"`
}

// Summary returns total hits and unique visitors for successful events
// in the trailing 7-day window under the filter, plus the online-now
// count, which ignores both the filter and the window.
func (e *Engine) Summary(f Filter) (Summary, error) {
	var s Summary
	since := windowStart(time.Now())

	if f.derived() {
		events, err := dbpkg.FindEventsSince(e.db, f.storage(since))
		if err != nil {
			return s, err
		}
		ips := make(map[string]struct{})
		for _, ev := range events {
			if !f.matches(ClassifyAgent(ev.UserAgent)) {
				continue
			}
			s.TotalHits++
			ips[ev.RemoteIP] = struct{}{}
		}
		s.UniqueVisitors = int64(len(ips))
	} else {
		var err error
		if s.TotalHits, err = dbpkg.CountEvents(e.db, f.storage(since)); err != nil {
			return s, err
		}
		if s.UniqueVisitors, err = dbpkg.DistinctVisitors(e.db, f.storage(since)); err != nil {
			return s, err
		}
	}

	online, err := dbpkg.OnlineVisitors(e.db, onlineWindow)
	if err != nil {
		return s, err
	}
	s.OnlineNow = online
	return s, nil
}

// SeriesPoint is one calendar-day bucket of the dashboard chart.
type SeriesPoint struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// DailySeries buckets matching successful events by UTC calendar day for
// the trailing window. The series always has exactly 8 points; days
// without events contribute zero.
func (e *Engine) DailySeries(f Filter) ([]SeriesPoint, error) {
	now := time.Now().UTC()
	counts := make(map[string]int64, seriesPoints)

	if f.derived() {
		events, err := dbpkg.FindEventsSince(e.db, f.storage(windowStart(now)))
		if err != nil {
			return nil, err
		}
		for _, ev := range events {
			if !f.matches(ClassifyAgent(ev.UserAgent)) {
				continue
			}
			counts[dayKey(ev.CreatedAt)]++
		}
	} else {
		rows, err := dbpkg.GroupByDayCounts(e.db, f.storage(windowStart(now)))
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			counts[row.Day] = row.Count
		}
	}

	return zeroFilledSeries(now, counts), nil
}

// zeroFilledSeries lays day counts onto a fixed 8-point series ending today.
func zeroFilledSeries(now time.Time, counts map[string]int64) []SeriesPoint {
	points := make([]SeriesPoint, 0, seriesPoints)
	for i := windowDays; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		points = append(points, SeriesPoint{
			Label: day.Format(dayLabelLayout),
			Count: counts[dayKey(day)],
		})
	}
	return points
}

// TopPaths groups matching successful events by path, most visited
// first, capped at 8.
func (e *Engine) TopPaths(f Filter) ([]dbpkg.PathCount, error) {
	since := windowStart(time.Now())
	if !f.derived() {
		return dbpkg.TopPathCounts(e.db, f.storage(since), topPathLimit)
	}

	events, err := dbpkg.FindEventsSince(e.db, f.storage(since))
	if err != nil {
		return nil, err
	}
	byPath := make(map[string]int64)
	for _, ev := range events {
		if f.matches(ClassifyAgent(ev.UserAgent)) {
			byPath[ev.Path]++
		}
	}
	return topCounts(byPath, topPathLimit), nil
}

func topCounts(byKey map[string]int64, n int) []dbpkg.PathCount {
	rows := make([]dbpkg.PathCount, 0, len(byKey))
	for k, c := range byKey {
		rows = append(rows, dbpkg.PathCount{Path: k, Count: c})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Path < rows[j].Path
	})
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// Referrers groups matching successful events by classified referrer
// label, keeping one example raw URL per label.
func (e *Engine) Referrers(f Filter) ([]dbpkg.ReferrerCount, error) {
	since := windowStart(time.Now())
	if !f.derived() {
		return dbpkg.TopReferrerCounts(e.db, f.storage(since), topPathLimit)
	}

	events, err := dbpkg.FindEventsSince(e.db, f.storage(since))
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64)
	examples := make(map[string]string)
	for _, ev := range events {
		if !f.matches(ClassifyAgent(ev.UserAgent)) {
			continue
		}
		counts[ev.Referrer]++
		if ev.ReferrerURL != "" {
			examples[ev.Referrer] = ev.ReferrerURL
		}
	}
	rows := make([]dbpkg.ReferrerCount, 0, len(counts))
	for label, c := range counts {
		rows = append(rows, dbpkg.ReferrerCount{Referrer: label, Count: c, ExampleURL: examples[label]})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Referrer < rows[j].Referrer
	})
	if len(rows) > topPathLimit {
		rows = rows[:topPathLimit]
	}
	return rows, nil
}

// ClientBreakdown counts matching successful events per browser, OS and
// device class. The dimensions are classified from the stored raw
// user-agent on every call.
type ClientBreakdown struct {
	Browsers map[string]int64 `json:"browsers"`
	Systems  map[string]int64 `json:"systems"`
	Devices  map[string]int64 `json:"devices"`
}

func (e *Engine) Clients(f Filter) (ClientBreakdown, error) {
	b := ClientBreakdown{
		Browsers: make(map[string]int64),
		Systems:  make(map[string]int64),
		Devices:  make(map[string]int64),
	}

	events, err := dbpkg.FindEventsSince(e.db, f.storage(windowStart(time.Now())))
	if err != nil {
		return b, err
	}
	for _, ev := range events {
		p := ClassifyAgent(ev.UserAgent)
		if !f.matches(p) {
			continue
		}
		b.Browsers[p.Browser]++
		b.Systems[p.OS]++
		b.Devices[p.Device]++
	}
	return b, nil
}

// ErrorLog returns the most recent failure events within the trailing
// window, newest first, capped at 15.
func (e *Engine) ErrorLog() ([]dbpkg.Event, error) {
	return dbpkg.FindRecentEvents(e.db, dbpkg.EventFilter{
		Since:       windowStart(time.Now()),
		FailureOnly: true,
	}, errorLogLimit)
}
