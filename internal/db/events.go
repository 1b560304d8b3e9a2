package db

import (
	"time"

	"gorm.io/gorm"
)

// EventFilter narrows event queries at the storage level. Zero values
// mean "no constraint". Path and Referrer are stored columns; browser,
// OS and device are not persisted and must be re-derived by callers.
type EventFilter struct {
	Path     string
	Referrer string

	Since time.Time

	// SuccessOnly keeps status < 400 rows; FailureOnly keeps status >= 400.
	SuccessOnly bool
	FailureOnly bool
}

func (f EventFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Path != "" {
		q = q.Where("path = ?", f.Path)
	}
	if f.Referrer != "" {
		q = q.Where("referrer = ?", f.Referrer)
	}
	if !f.Since.IsZero() {
		q = q.Where("created_at >= ?", f.Since)
	}
	if f.SuccessOnly {
		q = q.Where("status < ?", 400)
	}
	if f.FailureOnly {
		q = q.Where("status >= ?", 400)
	}
	return q
}

// InsertEvent appends one immutable event row.
func InsertEvent(db *gorm.DB, ev *Event) error {
	return db.Create(ev).Error
}

// CountEvents returns the number of events matching the filter.
func CountEvents(db *gorm.DB, f EventFilter) (int64, error) {
	var n int64
	err := f.apply(db.Model(&Event{})).Count(&n).Error
	return n, err
}

// DistinctVisitors counts distinct client addresses among matching events.
func DistinctVisitors(db *gorm.DB, f EventFilter) (int64, error) {
	var n int64
	err := f.apply(db.Model(&Event{})).
		Select("COUNT(DISTINCT remote_ip)").
		Scan(&n).Error
	return n, err
}

// DayCount is a calendar-day bucket with its event count.
type DayCount struct {
	Day   string
	Count int64
}

// GroupByDayCounts buckets matching events by UTC calendar day,
// independent of the DB session timezone, so the keys line up with the
// UTC day keys the series builder uses. Days with no events are absent
// from the result; callers zero-fill.
func GroupByDayCounts(db *gorm.DB, f EventFilter) ([]DayCount, error) {
	var rows []DayCount
	err := f.apply(db.Model(&Event{})).
		Select("to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') as day, count(*) as count").
		Group("to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD')").
		Order("1").
		Scan(&rows).Error
	return rows, err
}

// PathCount is a path with its event count.
type PathCount struct {
	Path  string
	Count int64
}

// TopPathCounts groups matching events by path, most visited first.
func TopPathCounts(db *gorm.DB, f EventFilter, n int) ([]PathCount, error) {
	var rows []PathCount
	err := f.apply(db.Model(&Event{})).
		Select("path as path, count(*) as count").
		Group("path").
		Order("count(*) DESC").
		Limit(n).
		Scan(&rows).Error
	return rows, err
}

// ReferrerCount is a classified referrer label with its count and one
// example raw URL for "view exact link" lookups.
type ReferrerCount struct {
	Referrer   string
	Count      int64
	ExampleURL string
}

// TopReferrerCounts groups matching events by classified referrer label.
func TopReferrerCounts(db *gorm.DB, f EventFilter, n int) ([]ReferrerCount, error) {
	var rows []ReferrerCount
	err := f.apply(db.Model(&Event{})).
		Select("referrer as referrer, count(*) as count, max(referrer_url) as example_url").
		Group("referrer").
		Order("count(*) DESC").
		Limit(n).
		Scan(&rows).Error
	return rows, err
}

// FindRecentEvents returns the newest matching events, newest first.
func FindRecentEvents(db *gorm.DB, f EventFilter, limit int) ([]Event, error) {
	var events []Event
	err := f.apply(db.Model(&Event{})).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// FindEventsSince loads all matching events for an in-memory scan. Used
// when filtering on dimensions that are not persisted (browser, OS,
// device) and must be re-derived from the raw user-agent.
func FindEventsSince(db *gorm.DB, f EventFilter) ([]Event, error) {
	var events []Event
	err := f.apply(db.Model(&Event{})).
		Order("created_at").
		Find(&events).Error
	return events, err
}

// OnlineVisitors counts distinct client addresses across all statuses in
// the trailing window. It ignores every dimension filter: a separate,
// always-unfiltered real-time signal.
func OnlineVisitors(db *gorm.DB, window time.Duration) (int64, error) {
	var n int64
	err := db.Model(&Event{}).
		Where("created_at >= ?", time.Now().Add(-window)).
		Select("COUNT(DISTINCT remote_ip)").
		Scan(&n).Error
	return n, err
}
