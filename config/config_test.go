package config

import (
	"strings"
	"testing"
)

func TestValidateYAMLContent_ValidConfig(t *testing.T) {
	content := []byte(`
user:
  name: "Max Mustermann"
  surcharge_percent: 80
  language: hr
storage:
  db: "/tmp/liftec.db"
`)

	cfg, err := ValidateYAMLContent(content)
	if err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	if cfg.User.Name != "Max Mustermann" {
		t.Errorf("name = %q", cfg.User.Name)
	}
	if cfg.User.SurchargePercent != 80 {
		t.Errorf("surcharge percent = %v", cfg.User.SurchargePercent)
	}
	if cfg.User.Language != "hr" {
		t.Errorf("language = %q", cfg.User.Language)
	}
	if cfg.Storage.DB != "/tmp/liftec.db" {
		t.Errorf("db path = %q", cfg.Storage.DB)
	}
}

func TestValidateYAMLContent_DefaultsApply(t *testing.T) {
	cfg, err := ValidateYAMLContent([]byte(`
user:
  name: "Max"
`))
	if err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	if cfg.User.Language != "de" {
		t.Errorf("default language = %q, want de", cfg.User.Language)
	}
	if cfg.Storage.DB != "./liftec.db" {
		t.Errorf("default db path = %q", cfg.Storage.DB)
	}
}

func TestValidateYAMLContent_MissingName(t *testing.T) {
	_, err := ValidateYAMLContent([]byte(`
user:
  surcharge_percent: 50
`))
	if err == nil || !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestValidateYAMLContent_SurchargeOutOfRange(t *testing.T) {
	_, err := ValidateYAMLContent([]byte(`
user:
  name: "Max"
  surcharge_percent: 250
`))
	if err == nil {
		t.Fatal("expected validation failure for surcharge_percent > 200")
	}
}

func TestValidateYAMLContent_UnknownLanguage(t *testing.T) {
	_, err := ValidateYAMLContent([]byte(`
user:
  name: "Max"
  language: fr
`))
	if err == nil {
		t.Fatal("expected validation failure for unsupported language")
	}
}

func TestExampleYAMLIsValid(t *testing.T) {
	if _, err := ValidateYAMLContent([]byte(ExampleYAML())); err != nil {
		t.Fatalf("example config must validate: %v", err)
	}
}
