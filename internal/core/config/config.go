// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

// Package config handles loading and merging issue-duplicator configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/similigh/issue-duplicator/internal/core/duplicator"
	"github.com/similigh/issue-duplicator/internal/core/event"
)

// DefaultPath is where the config file lives in a repository.
const DefaultPath = ".github/issue-duplicator.yaml"

// Config is the root configuration structure.
type Config struct {
	// Extends allows inheriting from a remote config (e.g., "org/repo@branch").
	Extends string `yaml:"extends,omitempty"`

	// GitHubToken authenticates REST and GraphQL calls. Usually "${GITHUB_TOKEN}".
	GitHubToken string `yaml:"github_token,omitempty"`

	// TargetRepositories lists "owner/name" or "name" entries. Empty means
	// the repository the comment was posted in.
	TargetRepositories []string `yaml:"target_repositories,omitempty"`

	// Trigger selects which comments start a duplication.
	Trigger TriggerConfig `yaml:"trigger"`

	// Comment controls how the triggering comment is edited.
	Comment CommentConfig `yaml:"comment"`

	// Copy selects optional issue content to copy.
	Copy CopyConfig `yaml:"copy"`

	// DryRun logs writes instead of performing them.
	DryRun bool `yaml:"dry_run,omitempty"`
}

// TriggerConfig holds event filter settings.
type TriggerConfig struct {
	Command string   `yaml:"command,omitempty"`
	Actions []string `yaml:"actions,omitempty"`
}

// CommentConfig holds comment update settings.
type CommentConfig struct {
	Mode string `yaml:"mode"`
}

// CopyConfig holds optional content settings.
type CopyConfig struct {
	Labels    bool `yaml:"labels"`
	Assignees bool `yaml:"assignees"`
}

// Load reads a config file from the given path and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := parseRaw(data)
	if err != nil {
		return nil, err
	}

	// Apply defaults
	cfg.applyDefaults()

	return cfg, nil
}

// parseRaw expands environment variables and decodes YAML without defaults.
func parseRaw(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// LoadWithInheritance loads a config and resolves the 'extends' chain.
// The fetcher function is used to retrieve remote configs.
func LoadWithInheritance(path string, fetcher func(ref string) ([]byte, error)) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Defaults are applied after merging so they never mask parent values.
	cfg, err := parseRaw(data)
	if err != nil {
		return nil, err
	}

	if cfg.Extends == "" {
		cfg.applyDefaults()
		return cfg, nil
	}

	// Fetch and parse the parent config
	parentData, err := fetcher(cfg.Extends)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch parent config '%s': %w", cfg.Extends, err)
	}

	parentCfg, err := parseRaw(parentData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse parent config: %w", err)
	}

	// Merge: child overrides parent
	merged := mergeConfigs(parentCfg, cfg)
	merged.applyDefaults()

	return merged, nil
}

// FindConfigPath searches for a config file in standard locations.
func FindConfigPath(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	// Search in common locations
	candidates := []string{
		DefaultPath,
		".github/issue-duplicator.yml",
		".issue-duplicator.yaml",
		".issue-duplicator.yml",
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			abs, _ := filepath.Abs(c)
			return abs
		}
	}

	return ""
}

// applyDefaults sets default values for unset fields.
func (c *Config) applyDefaults() {
	if c.Comment.Mode == "" {
		c.Comment.Mode = string(duplicator.CommentPerRepository)
	}
	c.Trigger.Command = strings.TrimSpace(c.Trigger.Command)
}

// AcceptedActions returns the configured actions, or the default for the
// trigger mode: only new comments when a command is required, new and edited
// comments otherwise.
func (c *Config) AcceptedActions() []string {
	if len(c.Trigger.Actions) > 0 {
		return c.Trigger.Actions
	}
	if c.Trigger.Command != "" {
		return []string{event.ActionCreated}
	}
	return []string{event.ActionCreated, event.ActionEdited}
}

// FilterOptions builds the event filter settings.
func (c *Config) FilterOptions() event.FilterOptions {
	return event.FilterOptions{
		Actions: c.AcceptedActions(),
		Command: c.Trigger.Command,
	}
}

// DuplicatorOptions builds the orchestrator settings.
func (c *Config) DuplicatorOptions() duplicator.Options {
	return duplicator.Options{
		CommentMode:   duplicator.CommentMode(c.Comment.Mode),
		CopyLabels:    c.Copy.Labels,
		CopyAssignees: c.Copy.Assignees,
	}
}

// Validate checks the settings needed for a run.
func (c *Config) Validate() error {
	if c.GitHubToken == "" {
		return fmt.Errorf("a GitHub token is required (github-token input or GITHUB_TOKEN)")
	}
	return c.ValidateSettings()
}

// ValidateSettings checks everything but credentials.
func (c *Config) ValidateSettings() error {
	c.applyDefaults()

	switch duplicator.CommentMode(c.Comment.Mode) {
	case duplicator.CommentPerRepository, duplicator.CommentOnce:
	default:
		return fmt.Errorf("invalid comment mode %q: expected %q or %q",
			c.Comment.Mode, duplicator.CommentPerRepository, duplicator.CommentOnce)
	}

	// A deleted comment cannot be edited afterwards.
	for _, a := range c.Trigger.Actions {
		switch a {
		case event.ActionCreated, event.ActionEdited:
		default:
			return fmt.Errorf("invalid trigger action %q: expected %q or %q", a, event.ActionCreated, event.ActionEdited)
		}
	}

	return nil
}

// mergeConfigs merges a child config onto a parent config.
// Non-zero values in child override parent.
func mergeConfigs(parent, child *Config) *Config {
	result := *parent

	if child.GitHubToken != "" {
		result.GitHubToken = child.GitHubToken
	}

	// Target repositories: child completely overrides if non-empty
	if len(child.TargetRepositories) > 0 {
		result.TargetRepositories = child.TargetRepositories
	}

	if child.Trigger.Command != "" {
		result.Trigger.Command = child.Trigger.Command
	}
	if len(child.Trigger.Actions) > 0 {
		result.Trigger.Actions = child.Trigger.Actions
	}

	if child.Comment.Mode != "" {
		result.Comment.Mode = child.Comment.Mode
	}

	// Booleans: always take the child value so it can override parent true -> false and vice versa
	result.Copy = child.Copy
	result.DryRun = child.DryRun

	result.Extends = ""

	return &result
}

// ParseExtendsRef parses "org/repo@branch" into components.
func ParseExtendsRef(ref string) (org, repo, branch, path string, err error) {
	// Format: org/repo@branch or org/repo@branch:path
	parts := strings.SplitN(ref, "@", 2)
	if len(parts) != 2 {
		return "", "", "", "", fmt.Errorf("invalid extends reference: %s (expected org/repo@branch)", ref)
	}

	orgRepo := strings.SplitN(parts[0], "/", 2)
	if len(orgRepo) != 2 {
		return "", "", "", "", fmt.Errorf("invalid extends reference: %s (expected org/repo)", ref)
	}

	org = orgRepo[0]
	repo = orgRepo[1]

	// Check for path
	branchPath := strings.SplitN(parts[1], ":", 2)
	branch = branchPath[0]
	if len(branchPath) == 2 {
		path = branchPath[1]
	} else {
		path = DefaultPath
	}

	return org, repo, branch, path, nil
}
