package core

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestConfigManager_DefaultConfig(t *testing.T) {
	dir := t.TempDir()
	cm := NewConfigManagerWithDir(dir)

	cfg, err := cm.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}
	if cfg.Settings.BlockRepo != DefaultBlockRepo {
		t.Errorf("BlockRepo = %q, want %q", cfg.Settings.BlockRepo, DefaultBlockRepo)
	}
	if cfg.Settings.BlockRef != DefaultBlockRef {
		t.Errorf("BlockRef = %q, want %q", cfg.Settings.BlockRef, DefaultBlockRef)
	}
	if cfg.Settings.BlockTool != DefaultBlockTool {
		t.Errorf("BlockTool = %q, want %q", cfg.Settings.BlockTool, DefaultBlockTool)
	}
	if cfg.Settings.CatalogURL != DefaultCatalogURL {
		t.Errorf("CatalogURL = %q, want %q", cfg.Settings.CatalogURL, DefaultCatalogURL)
	}
	if cfg.Settings.TemplateRepo != "" {
		t.Errorf("TemplateRepo = %q, want empty", cfg.Settings.TemplateRepo)
	}
}

func TestConfigManager_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	cm := NewConfigManagerWithDir(dir)

	cfg := &Config{
		Settings: Settings{
			BlockRepo:    "acme/blocks",
			BlockRef:     "next",
			TemplateRepo: "acme/pro-template",
			NpmRegistry:  "https://registry.npmmirror.com",
			CloneURLOverrides: map[string]string{
				"acme/pro-template": "git@git.acme.dev:acme/pro-template.git",
			},
		},
	}

	if err := cm.Save(cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	// Verify file exists
	if _, err := os.Stat(cm.ConfigPath()); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	// Load back
	loaded, err := cm.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if loaded.Settings.BlockRepo != "acme/blocks" {
		t.Errorf("BlockRepo = %q, want %q", loaded.Settings.BlockRepo, "acme/blocks")
	}
	if loaded.Settings.BlockRef != "next" {
		t.Errorf("BlockRef = %q, want %q", loaded.Settings.BlockRef, "next")
	}
	if loaded.Settings.NpmRegistry != "https://registry.npmmirror.com" {
		t.Errorf("NpmRegistry = %q", loaded.Settings.NpmRegistry)
	}
	// Unset fields fall back to defaults.
	if loaded.Settings.BlockTool != DefaultBlockTool {
		t.Errorf("BlockTool = %q, want %q", loaded.Settings.BlockTool, DefaultBlockTool)
	}
	if !reflect.DeepEqual(loaded.Settings.CloneURLOverrides, cfg.Settings.CloneURLOverrides) {
		t.Errorf("CloneURLOverrides = %v, want %v", loaded.Settings.CloneURLOverrides, cfg.Settings.CloneURLOverrides)
	}

	// No temp file left behind.
	if _, err := os.Stat(cm.ConfigPath() + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file still exists: %v", err)
	}
}

func TestConfigManager_ConfigDir(t *testing.T) {
	dir := t.TempDir()
	cm := NewConfigManagerWithDir(dir)

	if cm.ConfigDir() != dir {
		t.Errorf("ConfigDir() = %q, want %q", cm.ConfigDir(), dir)
	}
	if cm.ConfigPath() != filepath.Join(dir, "config.json") {
		t.Errorf("ConfigPath() = %q, want %q", cm.ConfigPath(), filepath.Join(dir, "config.json"))
	}
}

func TestConfigManager_SaveCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")
	cm := NewConfigManagerWithDir(dir)

	cfg := defaultConfig()
	if err := cm.Save(cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("config directory not created: %v", err)
	}
}

func TestConfigManager_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	cm := NewConfigManagerWithDir(dir)

	// Write invalid JSON
	if err := os.WriteFile(cm.ConfigPath(), []byte("{invalid"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := cm.Load()
	if err == nil {
		t.Error("Load() should return error for corrupt config")
	}
}

func TestSettings_GetSet(t *testing.T) {
	s := defaultConfig().Settings

	if err := s.Set("blockRepo", "acme/blocks"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	got, err := s.Get("blockRepo")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != "acme/blocks" {
		t.Errorf("Get(blockRepo) = %q, want %q", got, "acme/blocks")
	}

	// Empty restores the default.
	if err := s.Set("blockRepo", ""); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if s.BlockRepo != DefaultBlockRepo {
		t.Errorf("BlockRepo = %q, want %q", s.BlockRepo, DefaultBlockRepo)
	}

	if err := s.Set("templateRepo", ""); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if s.TemplateRepo != "" {
		t.Errorf("TemplateRepo = %q, want empty", s.TemplateRepo)
	}

	if _, err := s.Get("nope"); err == nil {
		t.Error("Get(nope) should fail")
	}
	if err := s.Set("nope", "x"); err == nil {
		t.Error("Set(nope) should fail")
	}
}

func TestSettingKeys(t *testing.T) {
	want := []string{"blockRef", "blockRepo", "blockTool", "catalogURL", "npmRegistry", "templateRepo"}
	if got := SettingKeys(); !reflect.DeepEqual(got, want) {
		t.Errorf("SettingKeys() = %v, want %v", got, want)
	}
}
