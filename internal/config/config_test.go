package config

import "testing"

func TestLoadServerConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	server, err := loadServerConfig()
	if err != nil {
		t.Fatalf("loadServerConfig err: %v", err)
	}
	if server.Addr != ":8080" {
		t.Fatalf("unexpected default addr %q", server.Addr)
	}
}

func TestLoadServerConfigBarePort(t *testing.T) {
	t.Setenv("PORT", "5000")
	server, err := loadServerConfig()
	if err != nil {
		t.Fatalf("loadServerConfig err: %v", err)
	}
	if server.Addr != ":5000" {
		t.Fatalf("unexpected addr %q", server.Addr)
	}
}

func TestLoadServerConfigFullAddr(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:9000")
	server, err := loadServerConfig()
	if err != nil {
		t.Fatalf("loadServerConfig err: %v", err)
	}
	if server.Addr != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr %q", server.Addr)
	}
}

func TestLoadServerConfigRejectsSpaces(t *testing.T) {
	t.Setenv("PORT", "80 80")
	if _, err := loadServerConfig(); err == nil {
		t.Fatal("expected error for PORT with spaces")
	}
}

func TestKeyPrefix(t *testing.T) {
	long := UpstreamConfig{APIKey: "sk-or-v1-0123456789abcdefghijklmnop"}
	if got := long.KeyPrefix(); got != "sk-or-v1-0123456789a" || len(got) != 20 {
		t.Fatalf("unexpected prefix %q", got)
	}

	short := UpstreamConfig{APIKey: "sk-short"}
	if got := short.KeyPrefix(); got != "sk-short" {
		t.Fatalf("unexpected prefix %q", got)
	}

	empty := UpstreamConfig{}
	if got := empty.KeyPrefix(); got != "" {
		t.Fatalf("expected empty prefix, got %q", got)
	}
	if empty.Enabled() {
		t.Fatal("empty key must not report enabled")
	}
}
