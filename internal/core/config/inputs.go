// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Inputs are the action inputs, as exposed by the Actions runtime through
// INPUT_<NAME> environment variables.
type Inputs struct {
	GitHubToken        string   `env:"INPUT_GITHUB-TOKEN"`
	GitHubTokenLegacy  string   `env:"INPUT_GITHUBTOKEN"`
	EnvToken           string   `env:"GITHUB_TOKEN"`
	TargetRepositories []string `env:"INPUT_TARGETREPOSITORIES" envSeparator:","`
	Command            string   `env:"INPUT_COMMAND"`
	CommentMode        string   `env:"INPUT_COMMENT-MODE"`
	CopyLabels         bool     `env:"INPUT_COPY-LABELS"`
	CopyAssignees      bool     `env:"INPUT_COPY-ASSIGNEES"`
	DryRun             bool     `env:"INPUT_DRY-RUN"`
}

// LoadInputs reads action inputs from environ, or from the process
// environment when environ is nil.
func LoadInputs(environ map[string]string) (*Inputs, error) {
	var in Inputs
	if err := env.ParseWithOptions(&in, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse action inputs: %w", err)
	}
	return &in, nil
}

// Token returns the token passed as an action input, if any.
func (in *Inputs) Token() string {
	if in.GitHubToken != "" {
		return in.GitHubToken
	}
	return in.GitHubTokenLegacy
}

// ApplyInputs overlays non-empty action inputs onto the config.
func (c *Config) ApplyInputs(in *Inputs) {
	if in == nil {
		return
	}
	if token := in.Token(); token != "" {
		c.GitHubToken = token
	} else if c.GitHubToken == "" {
		c.GitHubToken = in.EnvToken
	}
	if len(in.TargetRepositories) > 0 {
		c.TargetRepositories = in.TargetRepositories
	}
	if in.Command != "" {
		c.Trigger.Command = in.Command
	}
	if in.CommentMode != "" {
		c.Comment.Mode = in.CommentMode
	}
	if in.CopyLabels {
		c.Copy.Labels = true
	}
	if in.CopyAssignees {
		c.Copy.Assignees = true
	}
	if in.DryRun {
		c.DryRun = true
	}
}
