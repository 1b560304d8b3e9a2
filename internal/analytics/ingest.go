package analytics

import (
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	dbpkg "pagepulse/internal/db"
)

// Path prefixes that never produce analytics events.
const (
	AdminPrefix  = "/admin"
	StaticPrefix = "/static"
	FaviconPath  = "/favicon.ico"
)

// Recorder appends analytics events for qualifying visits.
type Recorder struct {
	db            *gorm.DB
	retentionDays int
}

func NewRecorder(db *gorm.DB, retentionDays int) *Recorder {
	return &Recorder{db: db, retentionDays: retentionDays}
}

// Visit is everything the recorder needs about one request.
type Visit struct {
	Path      string
	Status    int
	RemoteIP  string
	UserAgent string

	// RawReferrer may be empty. Host is the request host and Campaign
	// the explicit override query value, both inputs to classification.
	RawReferrer string
	Host        string
	Campaign    string
}

// UnderPrefix reports whether path is the prefix itself or inside its
// subtree. A slug that merely starts with the same letters, like
// "/admin-tips", is not under "/admin".
func UnderPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// Qualifies reports whether the path is eligible for analytics at all.
// The admin and static subtrees and the favicon are never recorded.
func Qualifies(path string) bool {
	if UnderPrefix(path, AdminPrefix) || UnderPrefix(path, StaticPrefix) {
		return false
	}
	return path != FaviconPath
}

// Record appends one immutable event for the visit. A non-qualifying
// path is a no-op. Storage failures are logged and swallowed: recording
// must never fail the request it describes.
func (r *Recorder) Record(v Visit) {
	if !Qualifies(v.Path) {
		return
	}

	now := time.Now()
	var expiresAt *time.Time
	if r.retentionDays > 0 {
		t := now.Add(time.Duration(r.retentionDays) * 24 * time.Hour)
		expiresAt = &t
	}

	ev := dbpkg.Event{
		CreatedAt:   now,
		ExpiresAt:   expiresAt,
		Path:        v.Path,
		Status:      v.Status,
		RemoteIP:    v.RemoteIP,
		UserAgent:   v.UserAgent,
		Referrer:    ClassifyReferrer(v.RawReferrer, v.Host, v.Campaign),
		ReferrerURL: v.RawReferrer,
	}

	if err := dbpkg.InsertEvent(r.db, &ev); err != nil {
		log.Printf("analytics insert failed for %s: %v", v.Path, err)
		return
	}
	observeView(v.Path, v.Status)
}
