package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	c := Default()
	if c.Server.Addr == "" {
		t.Error("default server addr empty")
	}
	if c.Sessions.Backend != "memory" || c.Diagrams.Backend != "memory" {
		t.Error("default backends should be memory")
	}
	if c.Render.Directive != "flowchart TD" {
		t.Errorf("default directive = %q", c.Render.Directive)
	}
}

func TestLoadMissingPathUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if c.Server.Addr != Default().Server.Addr {
		t.Errorf("addr = %q, want default", c.Server.Addr)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flowview.toml")
	content := `
[server]
addr = ":9000"

[sessions]
backend = "redis"

[sessions.redis]
addr = "redis:6379"

[render]
callback = "onNode"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if c.Server.Addr != ":9000" {
		t.Errorf("addr = %q", c.Server.Addr)
	}
	if c.Sessions.Backend != "redis" || c.Sessions.Redis.Addr != "redis:6379" {
		t.Errorf("sessions = %+v", c.Sessions)
	}
	if c.Render.Callback != "onNode" {
		t.Errorf("callback = %q", c.Render.Callback)
	}
	// Untouched fields keep their defaults.
	if c.Render.Directive != "flowchart TD" {
		t.Errorf("directive = %q, want default preserved", c.Render.Directive)
	}
	if c.Sessions.Redis.TTL.Duration != 24*time.Hour {
		t.Errorf("ttl = %v, want default preserved", c.Sessions.Redis.TTL)
	}
}

func TestLoadBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("not [valid"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load of invalid TOML should fail")
	}
}
