package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	c := Load()

	if c.AppName == "" || c.Port == "" {
		t.Fatalf("defaults missing: %+v", c)
	}
	if c.AccessTTL <= 0 || c.RefreshTTL <= c.AccessTTL {
		t.Fatalf("token TTL defaults wrong: access=%v refresh=%v", c.AccessTTL, c.RefreshTTL)
	}
	if !c.ModerationResetOnResubmit {
		t.Fatal("moderation reset should default to on")
	}
}

func TestValidateMissingSecrets(t *testing.T) {
	c := Load()
	c.JWTAccessSecret = ""
	c.RedisAddr = ""

	err := c.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestPostgresDSN(t *testing.T) {
	c := &Config{
		DBUser: "app", DBPassword: "secret", DBHost: "db", DBPort: "5432",
		DBName: "alumni", DBSSLMode: "disable",
	}
	want := "postgres://app:secret@db:5432/alumni?sslmode=disable"
	if got := c.PostgresDSN(); got != want {
		t.Fatalf("DSN = %q, want %q", got, want)
	}
}

func TestGoogleRedirectURL(t *testing.T) {
	c := &Config{BaseURL: "https://alumni.example.com/"}
	want := "https://alumni.example.com/auth/callback"
	if got := c.GoogleRedirectURL(); got != want {
		t.Fatalf("redirect = %q, want %q", got, want)
	}
}

func TestCSVSplitting(t *testing.T) {
	c := &Config{
		CORSAllowedOrigins: "https://a.example, https://b.example ,,",
		ElasticsearchAddrs: "http://es1:9200",
	}
	origins := c.CORSOrigins()
	if len(origins) != 2 || origins[0] != "https://a.example" || origins[1] != "https://b.example" {
		t.Fatalf("origins = %v", origins)
	}
	addrs := c.ESAddrs()
	if len(addrs) != 1 || addrs[0] != "http://es1:9200" {
		t.Fatalf("addrs = %v", addrs)
	}
}
