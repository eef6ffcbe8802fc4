package utils

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ochronus/goimgur/internal/config"
)

func TestConfigTemplateContent(t *testing.T) {
	requiredKeys := []string{
		"client_id",
		"history",
		"api_url",
		"loglevel",
		"timeout",
		"APP_ID",
		"APP_HISTORY",
	}

	for _, key := range requiredKeys {
		if !strings.Contains(configTemplate, key) {
			t.Errorf("configTemplate missing required key: %s", key)
		}
	}
}

func TestRenderConfigLoads(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	content, err := RenderConfig("my-id", "/tmp/history")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(content, "{{") {
		t.Fatalf("rendered config still contains placeholders:\n%s", content)
	}
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("rendered config does not parse: %v", err)
	}
	if cfg.ClientID != "my-id" {
		t.Errorf("expected ClientID 'my-id', got '%s'", cfg.ClientID)
	}
	if cfg.History != "/tmp/history" {
		t.Errorf("expected History '/tmp/history', got '%s'", cfg.History)
	}
	if cfg.APIURL != config.DefaultAPIURL {
		t.Errorf("expected APIURL '%s', got '%s'", config.DefaultAPIURL, cfg.APIURL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("rendered config is invalid: %v", err)
	}
}

func TestRenderConfigEscapesValues(t *testing.T) {
	tests := []struct {
		name     string
		clientID string
		history  string
	}{
		{"windows path", "id", `C:\Users\me\.imgur_history`},
		{"quote in path", "id", `/home/o"brien/.imgur_history`},
		{"quote in client id", `a"b\c`, "/tmp/h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, err := RenderConfig(tt.clientID, tt.history)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			configPath := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				t.Fatalf("rendered config does not parse: %v\n%s", err, content)
			}
			if cfg.ClientID != tt.clientID {
				t.Errorf("expected ClientID %q, got %q", tt.clientID, cfg.ClientID)
			}
			if cfg.History != tt.history {
				t.Errorf("expected History %q, got %q", tt.history, cfg.History)
			}
		})
	}
}

func TestGenerateConfigCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "nested", "config.toml")

	var out bytes.Buffer
	if err := GenerateConfig(configPath, "id", "/tmp/h", &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("config not created: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected permissions 0600, got %o", info.Mode().Perm())
	}
	if !strings.Contains(out.String(), "Writing "+configPath) {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestGenerateConfigBackup(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	originalContent := "original config content"
	if err := os.WriteFile(configPath, []byte(originalContent), 0644); err != nil {
		t.Fatalf("failed to write original config: %v", err)
	}

	var out bytes.Buffer
	if err := GenerateConfig(configPath, "id", "/tmp/h", &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	backupContent, err := os.ReadFile(configPath + ".bak")
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}
	if string(backupContent) != originalContent {
		t.Errorf("backup content mismatch: expected '%s', got '%s'", originalContent, string(backupContent))
	}

	newContent, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read new config: %v", err)
	}
	if !strings.Contains(string(newContent), `client_id = "id"`) {
		t.Errorf("new config missing client id:\n%s", newContent)
	}
	if !strings.Contains(out.String(), "Backing up config") {
		t.Errorf("expected backup message, got %q", out.String())
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect bool
	}{
		{"yes", "y\n", true},
		{"full yes", "YES\n", true},
		{"yes with spaces", "  y  \n", true},
		{"no", "n\n", false},
		{"empty answer declines", "\n", false},
		{"other answer declines", "sure\n", false},
		{"eof declines", "", false},
		{"yes without newline", "y", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var prompt bytes.Buffer
			got, err := Confirm(bufio.NewReader(strings.NewReader(tt.input)), &prompt, "Proceed?")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Errorf("expected %v, got %v", tt.expect, got)
			}
			if !strings.HasPrefix(prompt.String(), "Proceed? [y/N] ") {
				t.Errorf("unexpected prompt %q", prompt.String())
			}
		})
	}
}

func TestConfirmSequential(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("y\nn\n"))
	var prompt bytes.Buffer

	first, _ := Confirm(r, &prompt, "first?")
	second, _ := Confirm(r, &prompt, "second?")
	if !first || second {
		t.Errorf("expected (true, false), got (%v, %v)", first, second)
	}
}
