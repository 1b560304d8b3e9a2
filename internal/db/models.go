package db

import (
	"time"

	"gorm.io/datatypes"
)

// Page is a content page as stored in PostgreSQL. The slug is the sole
// identity: upserts by slug replace every mutable field, last writer wins.
type Page struct {
	ID uint `gorm:"primaryKey"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Slug  string `gorm:"uniqueIndex;size:128;not null"`
	Title string `gorm:"size:255"`

	// Body is the page template. Variables and conditionals in it are
	// substituted by the renderer against the request context.
	Body string `gorm:"type:text"`

	Styles  string `gorm:"type:text"`
	Scripts string `gorm:"type:text"`

	// Logic is an optional stored script run against the request context
	// before rendering. Empty means the page is static.
	Logic string `gorm:"type:text"`
}

// Setting is a singleton configuration document keyed by name. The value
// is a JSON document so new settings don't need schema changes.
type Setting struct {
	Key       string         `gorm:"primaryKey;size:128"`
	Value     datatypes.JSON `gorm:"type:json"`
	UpdatedAt time.Time
}

// Event is one recorded page visit. Rows are append-only and immutable
// once written.
type Event struct {
	ID uint `gorm:"primaryKey"`

	CreatedAt time.Time `gorm:"index"`

	// ExpiresAt is the timestamp after which this event is eligible
	// for deletion by the retention worker. A nil value means the
	// event does not expire.
	ExpiresAt *time.Time `gorm:"index"`

	Path   string `gorm:"index;size:512"`
	Status int    `gorm:"index"`

	RemoteIP  string `gorm:"size:64"`
	UserAgent string `gorm:"size:512"`

	// Referrer is the classified source label. ReferrerURL keeps the raw
	// URL for "view exact link" lookups; it may be empty.
	Referrer    string `gorm:"index;size:255"`
	ReferrerURL string `gorm:"size:1024"`
}

// Counter is a named persistent counter writable from page logic. It is
// the only mutation the logic capability set exposes.
type Counter struct {
	Name      string `gorm:"primaryKey;size:128"`
	Value     int64  `gorm:"not null;default:0"`
	UpdatedAt time.Time
}
