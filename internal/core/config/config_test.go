// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// TestConfigDefaults verifies that default values are applied correctly.
func TestConfigDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.Comment.Mode != "per-repository" {
		t.Errorf("Expected Comment.Mode to be 'per-repository', got %s", cfg.Comment.Mode)
	}
	if cfg.Copy.Labels || cfg.Copy.Assignees {
		t.Errorf("Expected optional content copying to be off by default, got %+v", cfg.Copy)
	}
}

func TestAcceptedActions(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{"no command accepts new and edited comments", Config{}, []string{"created", "edited"}},
		{"command accepts only new comments", Config{Trigger: TriggerConfig{Command: "/duplicate"}}, []string{"created"}},
		{"explicit actions win", Config{Trigger: TriggerConfig{Command: "/duplicate", Actions: []string{"edited"}}}, []string{"edited"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.AcceptedActions(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("DUPLICATOR_TEST_TOKEN", "secret")

	yamlContent := `
github_token: ${DUPLICATOR_TEST_TOKEN}
target_repositories:
  - repo-a
  - other/repo-b
trigger:
  command: " /duplicate "
comment:
  mode: once
copy:
  labels: true
`
	path := filepath.Join(t.TempDir(), "issue-duplicator.yaml")
	if err := os.WriteFile(path, []byte(yamlContent), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.GitHubToken != "secret" {
		t.Errorf("Expected token to be expanded from env, got '%s'", cfg.GitHubToken)
	}
	if !reflect.DeepEqual(cfg.TargetRepositories, []string{"repo-a", "other/repo-b"}) {
		t.Errorf("Unexpected target repositories: %v", cfg.TargetRepositories)
	}
	if cfg.Trigger.Command != "/duplicate" {
		t.Errorf("Expected trimmed command '/duplicate', got '%s'", cfg.Trigger.Command)
	}

	opts := cfg.DuplicatorOptions()
	if opts.CommentMode != "once" || !opts.CopyLabels || opts.CopyAssignees {
		t.Errorf("Unexpected duplicator options: %+v", opts)
	}

	filter := cfg.FilterOptions()
	if filter.Command != "/duplicate" || !reflect.DeepEqual(filter.Actions, []string{"created"}) {
		t.Errorf("Unexpected filter options: %+v", filter)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	if _, err := parseRaw([]byte("trigger: [unclosed")); err == nil {
		t.Error("Expected error for invalid YAML")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadWithInheritance(t *testing.T) {
	child := `
extends: acme/.github@main
target_repositories:
  - repo-c
`
	path := filepath.Join(t.TempDir(), "issue-duplicator.yaml")
	if err := os.WriteFile(path, []byte(child), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	var fetched string
	fetcher := func(ref string) ([]byte, error) {
		fetched = ref
		return []byte(`
target_repositories:
  - repo-a
trigger:
  command: /duplicate
comment:
  mode: once
`), nil
	}

	cfg, err := LoadWithInheritance(path, fetcher)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if fetched != "acme/.github@main" {
		t.Errorf("Expected parent acme/.github@main to be fetched, got %q", fetched)
	}
	if !reflect.DeepEqual(cfg.TargetRepositories, []string{"repo-c"}) {
		t.Errorf("Expected child targets to win, got %v", cfg.TargetRepositories)
	}
	if cfg.Trigger.Command != "/duplicate" {
		t.Errorf("Expected command inherited from parent, got %q", cfg.Trigger.Command)
	}
	if cfg.Comment.Mode != "once" {
		t.Errorf("Expected comment mode inherited from parent, got %q", cfg.Comment.Mode)
	}

	failing := func(string) ([]byte, error) { return nil, errors.New("not found") }
	if _, err := LoadWithInheritance(path, failing); err == nil {
		t.Error("Expected error when parent cannot be fetched")
	}
}

func TestMergeConfigsBooleans(t *testing.T) {
	parent := &Config{Copy: CopyConfig{Labels: true}, DryRun: true}
	child := &Config{}

	merged := mergeConfigs(parent, child)
	if merged.Copy.Labels || merged.DryRun {
		t.Errorf("Expected child to override booleans, got %+v", merged)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{GitHubToken: "t"}, false},
		{"missing token", Config{}, true},
		{"bad comment mode", Config{GitHubToken: "t", Comment: CommentConfig{Mode: "sometimes"}}, true},
		{"bad action", Config{GitHubToken: "t", Trigger: TriggerConfig{Actions: []string{"closed"}}}, true},
		{"deleted comments cannot trigger", Config{GitHubToken: "t", Trigger: TriggerConfig{Actions: []string{"created", "deleted"}}}, true},
		{"edited comments can trigger", Config{GitHubToken: "t", Trigger: TriggerConfig{Actions: []string{"edited"}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSettingsWithoutToken(t *testing.T) {
	cfg := &Config{}
	if err := cfg.ValidateSettings(); err != nil {
		t.Errorf("Expected settings to be valid without a token, got %v", err)
	}
	if cfg.Comment.Mode != "per-repository" {
		t.Errorf("Expected defaults to be applied, got %q", cfg.Comment.Mode)
	}
}

func TestLoadInputs(t *testing.T) {
	in, err := LoadInputs(map[string]string{
		"INPUT_GITHUBTOKEN":        "legacy",
		"INPUT_TARGETREPOSITORIES": "repo-a,other/repo-b",
		"INPUT_COMMAND":            "/duplicate",
		"INPUT_COMMENT-MODE":       "once",
		"INPUT_COPY-LABELS":        "true",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	cfg := &Config{GitHubToken: "from-file", TargetRepositories: []string{"repo-z"}}
	cfg.ApplyInputs(in)

	if cfg.GitHubToken != "legacy" {
		t.Errorf("Expected input token to override file, got %q", cfg.GitHubToken)
	}
	if !reflect.DeepEqual(cfg.TargetRepositories, []string{"repo-a", "other/repo-b"}) {
		t.Errorf("Unexpected targets: %v", cfg.TargetRepositories)
	}
	if cfg.Trigger.Command != "/duplicate" || cfg.Comment.Mode != "once" || !cfg.Copy.Labels {
		t.Errorf("Unexpected config after inputs: %+v", cfg)
	}
}

func TestApplyInputsTokenPrecedence(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
		want string
	}{
		{"hyphenated input wins", "", map[string]string{"INPUT_GITHUB-TOKEN": "a", "INPUT_GITHUBTOKEN": "b", "GITHUB_TOKEN": "c"}, "a"},
		{"env token is a fallback", "", map[string]string{"GITHUB_TOKEN": "c"}, "c"},
		{"file token beats env fallback", "f", map[string]string{"GITHUB_TOKEN": "c"}, "f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := LoadInputs(tt.env)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			cfg := &Config{GitHubToken: tt.file}
			cfg.ApplyInputs(in)
			if cfg.GitHubToken != tt.want {
				t.Errorf("Expected token %q, got %q", tt.want, cfg.GitHubToken)
			}
		})
	}
}

// TestParseExtendsRef verifies extends reference parsing.
func TestParseExtendsRef(t *testing.T) {
	tests := []struct {
		name        string
		ref         string
		wantOrg     string
		wantRepo    string
		wantBranch  string
		wantPath    string
		expectError bool
	}{
		{
			name:       "valid ref with default path",
			ref:        "org/repo@main",
			wantOrg:    "org",
			wantRepo:   "repo",
			wantBranch: "main",
			wantPath:   ".github/issue-duplicator.yaml",
		},
		{
			name:       "valid ref with custom path",
			ref:        "org/repo@main:custom/path.yaml",
			wantOrg:    "org",
			wantRepo:   "repo",
			wantBranch: "main",
			wantPath:   "custom/path.yaml",
		},
		{
			name:        "invalid ref missing branch",
			ref:         "org/repo",
			expectError: true,
		},
		{
			name:        "invalid ref missing repo",
			ref:         "org@main",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			org, repo, branch, path, err := ParseExtendsRef(tt.ref)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for ref %s, got nil", tt.ref)
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}

			if org != tt.wantOrg {
				t.Errorf("Expected org %s, got %s", tt.wantOrg, org)
			}
			if repo != tt.wantRepo {
				t.Errorf("Expected repo %s, got %s", tt.wantRepo, repo)
			}
			if branch != tt.wantBranch {
				t.Errorf("Expected branch %s, got %s", tt.wantBranch, branch)
			}
			if path != tt.wantPath {
				t.Errorf("Expected path %s, got %s", tt.wantPath, path)
			}
		})
	}
}
