package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/isoview/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Serve.Port != DefaultPort {
		t.Errorf("Serve.Port = %d, want %d", cfg.Serve.Port, DefaultPort)
	}
	if cfg.Serve.Host != DefaultHost {
		t.Errorf("Serve.Host = %q, want %q", cfg.Serve.Host, DefaultHost)
	}
	if cfg.Export.Output != DefaultOutput {
		t.Errorf("Export.Output = %q, want %q", cfg.Export.Output, DefaultOutput)
	}
	if cfg.Placeholder != DefaultPlaceholder {
		t.Errorf("Placeholder = %q, want %q", cfg.Placeholder, DefaultPlaceholder)
	}
	if cfg.Export.Concurrency != DefaultConcurrency {
		t.Errorf("Export.Concurrency = %d, want %d", cfg.Export.Concurrency, DefaultConcurrency)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	if err == nil {
		t.Fatal("Expected error for missing config")
	}
	if code := errors.CodeOf(err); code != "E121" {
		t.Errorf("missing config code = %q, want E121", code)
	}

	configJSON := `{
  "name": "forum",
  "manifest": "site/states.yaml",
  "document": {
    "lang": "de",
    "scripts": ["/static/app.js"]
  },
  "serve": {
    "host": "0.0.0.0",
    "port": 8080,
    "metrics": true
  },
  "export": {
    "concurrency": 2,
    "s3": {"bucket": "forum-site", "prefix": "/www/", "region": "eu-west-1"}
  }
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Name != "forum" {
		t.Errorf("Name = %q, want %q", cfg.Name, "forum")
	}
	if cfg.Document.Title != "forum" {
		t.Errorf("Document.Title = %q, want project name", cfg.Document.Title)
	}
	if cfg.Document.Lang != "de" {
		t.Errorf("Document.Lang = %q, want %q", cfg.Document.Lang, "de")
	}
	if len(cfg.Document.Scripts) != 1 {
		t.Errorf("Document.Scripts len = %d, want 1", len(cfg.Document.Scripts))
	}
	if cfg.ServeAddress() != "0.0.0.0:8080" {
		t.Errorf("ServeAddress = %q, want %q", cfg.ServeAddress(), "0.0.0.0:8080")
	}
	if !cfg.Serve.Metrics {
		t.Error("Serve.Metrics should be true")
	}
	if cfg.Export.Output != DefaultOutput {
		t.Errorf("Export.Output = %q, want default", cfg.Export.Output)
	}
	if !cfg.UseS3() {
		t.Error("UseS3 should be true when a bucket is set")
	}
	if cfg.Export.S3.Prefix != "www" {
		t.Errorf("S3.Prefix = %q, want %q", cfg.Export.S3.Prefix, "www")
	}
	if got, want := cfg.ManifestPath(), filepath.Join(tmpDir, "site/states.yaml"); got != want {
		t.Errorf("ManifestPath = %q, want %q", got, want)
	}
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	if err := os.WriteFile(configPath, []byte("not valid json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(configPath)
	if err == nil {
		t.Fatal("Expected error for invalid JSON")
	}
	if !strings.Contains(err.Error(), "E120") {
		t.Errorf("Expected E120 error, got: %v", err)
	}
}

func TestLoadFile_InvalidPort(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(configPath, []byte(`{"serve":{"port":70000}}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(configPath)
	if code := errors.CodeOf(err); code != "E122" {
		t.Errorf("code = %q, want E122 (err %v)", code, err)
	}
}

func TestSave(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	cfg := New()
	cfg.Serve.Port = 9000
	cfg.Name = "docs"

	if err := cfg.Save(); err == nil {
		t.Error("Expected error when saving without path")
	}

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	loaded, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Serve.Port != 9000 {
		t.Errorf("Serve.Port = %d, want %d", loaded.Serve.Port, 9000)
	}
	if loaded.Name != "docs" {
		t.Errorf("Name = %q, want %q", loaded.Name, "docs")
	}

	loaded.Serve.Port = 9001
	if err := loaded.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	reloaded, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if reloaded.Serve.Port != 9001 {
		t.Errorf("Serve.Port = %d, want %d", reloaded.Serve.Port, 9001)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		code   string
	}{
		{"defaults", func(*Config) {}, ""},
		{"negative port", func(c *Config) { c.Serve.Port = -1 }, "E122"},
		{"port too large", func(c *Config) { c.Serve.Port = 70000 }, "E122"},
		{"negative concurrency", func(c *Config) { c.Export.Concurrency = -2 }, "E120"},
		{"placeholder with space", func(c *Config) { c.Placeholder = "ui view" }, "E120"},
		{"attribute placeholder", func(c *Config) { c.Placeholder = "data-view" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if code := errors.CodeOf(err); code != tt.code {
				t.Errorf("Validate() code = %q, want %q", code, tt.code)
			}
		})
	}
}

func TestPaths(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	cfg := New()
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatal(err)
	}

	if got := cfg.OutputPath(); got != filepath.Join(tmpDir, "dist") {
		t.Errorf("OutputPath = %q, want %q", got, filepath.Join(tmpDir, "dist"))
	}
	if got := cfg.ManifestPath(); got != filepath.Join(tmpDir, DefaultManifest) {
		t.Errorf("ManifestPath = %q, want %q", got, filepath.Join(tmpDir, DefaultManifest))
	}

	if got := cfg.AssetsPath(); got != "" {
		t.Errorf("AssetsPath without assets = %q, want empty", got)
	}
	cfg.Document.Assets = "dist/assets.json"
	if got := cfg.AssetsPath(); got != filepath.Join(tmpDir, "dist/assets.json") {
		t.Errorf("AssetsPath = %q", got)
	}

	cfg.Export.Output = "/absolute/path"
	if got := cfg.OutputPath(); got != "/absolute/path" {
		t.Errorf("OutputPath absolute = %q, want %q", got, "/absolute/path")
	}
}

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()

	if Exists(tmpDir) {
		t.Error("Exists should be false for empty directory")
	}

	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	if !Exists(tmpDir) {
		t.Error("Exists should be true after creating config")
	}
}

func TestFindProjectRoot(t *testing.T) {
	tmpDir := t.TempDir()
	nestedDir := filepath.Join(tmpDir, "a", "b", "c")
	if err := os.MkdirAll(nestedDir, 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := FindProjectRoot(nestedDir); err == nil {
		t.Error("FindProjectRoot should fail when no config exists")
	}

	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, start := range []string{nestedDir, filepath.Join(tmpDir, "a")} {
		root, err := FindProjectRoot(start)
		if err != nil {
			t.Fatalf("FindProjectRoot(%q) error: %v", start, err)
		}
		if root != tmpDir {
			t.Errorf("FindProjectRoot(%q) = %q, want %q", start, root, tmpDir)
		}
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{Name: "shop", Document: DocumentConfig{Title: "Shop Front"}}
	cfg.applyDefaults()

	if cfg.Serve.Port != DefaultPort {
		t.Errorf("Serve.Port = %d, want %d", cfg.Serve.Port, DefaultPort)
	}
	if cfg.Document.Title != "Shop Front" {
		t.Errorf("Document.Title = %q, explicit title must win", cfg.Document.Title)
	}
	if cfg.Document.Lang != DefaultLang {
		t.Errorf("Document.Lang = %q, want %q", cfg.Document.Lang, DefaultLang)
	}
	if cfg.Manifest != DefaultManifest {
		t.Errorf("Manifest = %q, want %q", cfg.Manifest, DefaultManifest)
	}
}
