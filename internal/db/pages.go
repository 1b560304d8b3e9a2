package db

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// HomeSlug is the reserved slug the empty path resolves to.
const HomeSlug = "home"

// NormalizeSlug strips leading and trailing path separators and maps the
// empty path to the reserved home slug.
func NormalizeSlug(path string) string {
	slug := strings.Trim(path, "/")
	if slug == "" {
		return HomeSlug
	}
	return slug
}

// FindPage looks up a page by slug. Returns (nil, nil) when no page
// exists so callers can distinguish absence from a store fault.
func FindPage(db *gorm.DB, slug string) (*Page, error) {
	var page Page
	err := db.Where("slug = ?", slug).First(&page).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// ListPages returns all pages ordered by slug.
func ListPages(db *gorm.DB) ([]Page, error) {
	var pages []Page
	if err := db.Order("slug").Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// UpsertPage replaces the mutable fields of the page identified by slug,
// creating it if absent. Last writer wins; there is no version check.
func UpsertPage(db *gorm.DB, page *Page) error {
	page.Slug = NormalizeSlug(page.Slug)

	var existing Page
	err := db.Where("slug = ?", page.Slug).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return db.Create(page).Error
	}
	if err != nil {
		return err
	}

	return db.Model(&existing).Updates(map[string]interface{}{
		"title":   page.Title,
		"body":    page.Body,
		"styles":  page.Styles,
		"scripts": page.Scripts,
		"logic":   page.Logic,
	}).Error
}

// DeletePage removes the page with the given slug. Deleting a slug that
// does not exist is not an error.
func DeletePage(db *gorm.DB, slug string) error {
	return db.Where("slug = ?", NormalizeSlug(slug)).Delete(&Page{}).Error
}

// SlugInfo is a slug with its last-modified timestamp, for sitemap output.
type SlugInfo struct {
	Slug      string
	UpdatedAt time.Time
}

// ListSlugsWithLastModified returns every page slug and when it last changed.
func ListSlugsWithLastModified(db *gorm.DB) ([]SlugInfo, error) {
	var infos []SlugInfo
	if err := db.Model(&Page{}).
		Select("slug as slug, updated_at as updated_at").
		Order("slug").
		Scan(&infos).Error; err != nil {
		return nil, err
	}
	return infos, nil
}
