package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"APP_ADMIN_USER", "APP_ADMIN_PASSWORD", "APP_DATABASE_URL",
		"APP_LISTEN_ADDR", "APP_SITE_HOST", "APP_RETENTION_DAYS", "APP_PREVIEW_IMAGE_URL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.AdminUser != "admin" {
		t.Errorf("AdminUser = %q, want admin", cfg.AdminUser)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.SiteHost != "localhost" {
		t.Errorf("SiteHost = %q, want localhost", cfg.SiteHost)
	}
	if cfg.RetentionDays != 90 {
		t.Errorf("RetentionDays = %d, want 90", cfg.RetentionDays)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ADMIN_USER", "owner")
	t.Setenv("APP_SITE_HOST", "example.com")
	t.Setenv("APP_RETENTION_DAYS", "30")

	cfg := Load()
	if cfg.AdminUser != "owner" || cfg.SiteHost != "example.com" || cfg.RetentionDays != 30 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadRetentionDisabled(t *testing.T) {
	t.Setenv("APP_RETENTION_DAYS", "0")
	if cfg := Load(); cfg.RetentionDays != 0 {
		t.Errorf("RetentionDays = %d, want 0", cfg.RetentionDays)
	}
}

func TestLoadRetentionGarbageIgnored(t *testing.T) {
	t.Setenv("APP_RETENTION_DAYS", "forever")
	if cfg := Load(); cfg.RetentionDays != 90 {
		t.Errorf("RetentionDays = %d, want default 90", cfg.RetentionDays)
	}
}
