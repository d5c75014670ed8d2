package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

// chdirTemp runs the test in an empty directory so a developer's .env does
// not leak into the result.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 3000 || cfg.Host != "0.0.0.0" {
		t.Errorf("addr = %s, want 0.0.0.0:3000", cfg.Addr())
	}
	if cfg.DBPath != "data/db.json" {
		t.Errorf("db_path = %q, want data/db.json", cfg.DBPath)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"http://localhost:5173"}) {
		t.Errorf("cors_origins = %v", cfg.CORSOrigins)
	}
	if cfg.Backup.Interval != 24*time.Hour || cfg.Backup.RetentionDays != 30 {
		t.Errorf("backup = %+v", cfg.Backup)
	}
}

func TestLoadEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SCHOMPF_PORT", "8081")
	t.Setenv("SCHOMPF_DB_PATH", "/var/lib/schompf/db.sqlite")
	t.Setenv("SCHOMPF_CORS_ORIGINS", "http://a.local, http://b.local")
	t.Setenv("SCHOMPF_BACKUP_BUCKET", "meals")
	t.Setenv("SCHOMPF_BACKUP_INTERVAL", "6h")

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8081 {
		t.Errorf("port = %d, want 8081", cfg.Port)
	}
	if cfg.DBPath != "/var/lib/schompf/db.sqlite" {
		t.Errorf("db_path = %q", cfg.DBPath)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"http://a.local", "http://b.local"}) {
		t.Errorf("cors_origins = %v", cfg.CORSOrigins)
	}
	if cfg.Backup.Bucket != "meals" || cfg.Backup.Interval != 6*time.Hour {
		t.Errorf("backup = %+v", cfg.Backup)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SCHOMPF_LOG_LEVEL=debug\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("SCHOMPF_LOG_LEVEL") })

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadConfigFileAndFlags(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "schompf.yaml")
	yaml := "port: 4000\nlog_format: json\nbackup:\n  retention_days: 7\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	flags.Int("port", 3000, "")
	if err := flags.Parse([]string{"--port=5000"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(path, flags)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 5000 {
		t.Errorf("port = %d, want flag value 5000", cfg.Port)
	}
	if cfg.LogFormat != "json" || cfg.Backup.RetentionDays != 7 {
		t.Errorf("file values not applied: %+v", cfg)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"port", "SCHOMPF_PORT", "70000"},
		{"log format", "SCHOMPF_LOG_FORMAT", "xml"},
		{"interval", "SCHOMPF_BACKUP_INTERVAL", "-1h"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)
			t.Setenv(tt.key, tt.val)
			if _, err := Load("", nil); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.val)
			}
		})
	}
}
