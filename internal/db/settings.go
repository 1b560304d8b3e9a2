package db

import (
	"encoding/json"
	"log"

	"gorm.io/gorm"
)

// Setting document keys.
const (
	SettingMaintenance = "maintenance"
	SettingSite        = "site"
)

// MaintenanceSettings is the singleton maintenance-mode document.
type MaintenanceSettings struct {
	Active bool `json:"active"`
}

// NavLink is one entry in the site navigation bar.
type NavLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// SiteSettings is the singleton branding document.
type SiteSettings struct {
	Title      string    `json:"title"`
	Tagline    string    `json:"tagline"`
	ShowNavbar bool      `json:"show_navbar"`
	NavLinks   []NavLink `json:"nav_links"`
}

// DefaultSiteSettings is what configuration reads fall back to when the
// settings store is unreachable or the document is missing.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{Title: "pagepulse", ShowNavbar: true}
}

// GetSetting unmarshals the named settings document into out. Returns
// (false, nil) when the document does not exist.
func GetSetting(db *gorm.DB, key string, out any) (bool, error) {
	var row Setting
	err := db.Where("key = ?", key).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(row.Value, out); err != nil {
		return false, err
	}
	return true, nil
}

// UpsertSetting stores the named settings document, replacing any
// previous value. Last writer wins.
func UpsertSetting(db *gorm.DB, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	var existing Setting
	err = db.Where("key = ?", key).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return db.Create(&Setting{Key: key, Value: raw}).Error
	}
	if err != nil {
		return err
	}
	return db.Model(&existing).Update("value", raw).Error
}

// PushNavLink appends a navigation link to the site settings document.
func PushNavLink(db *gorm.DB, link NavLink) error {
	site := DefaultSiteSettings()
	if _, err := GetSetting(db, SettingSite, &site); err != nil {
		return err
	}
	site.NavLinks = append(site.NavLinks, link)
	return UpsertSetting(db, SettingSite, site)
}

// MaintenanceActive reports whether maintenance mode is on. A store
// fault fails open to "not in maintenance": availability over strictness
// for configuration reads.
func MaintenanceActive(db *gorm.DB) bool {
	var m MaintenanceSettings
	found, err := GetSetting(db, SettingMaintenance, &m)
	if err != nil {
		log.Printf("maintenance lookup failed, assuming off: %v", err)
		return false
	}
	return found && m.Active
}

// LoadSiteSettings returns the branding document, falling back to
// defaults when the store is unreachable or the document is absent.
func LoadSiteSettings(db *gorm.DB) SiteSettings {
	site := DefaultSiteSettings()
	if _, err := GetSetting(db, SettingSite, &site); err != nil {
		log.Printf("site settings lookup failed, using defaults: %v", err)
		return DefaultSiteSettings()
	}
	return site
}
