// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

// Package event validates inbound GitHub webhook events and turns them into
// triggers for the duplicator.
package event

import (
	"fmt"
	"strings"
)

// Event names and actions understood by the filter.
const (
	KindIssueComment = "issue_comment"

	ActionCreated = "created"
	ActionEdited  = "edited"
)

// Context is the event as handed over by the Actions runtime.
type Context struct {
	// Name is the webhook event name (GITHUB_EVENT_NAME).
	Name string

	// Payload is the raw JSON webhook payload (contents of GITHUB_EVENT_PATH).
	Payload []byte
}

// Repository identifies a GitHub repository.
type Repository struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// String returns the "owner/name" form.
func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepository parses "owner/name" or "name". A bare name gets defaultOwner.
func ParseRepository(ref, defaultOwner string) (Repository, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Repository{}, fmt.Errorf("repository cannot be empty")
	}

	parts := strings.Split(ref, "/")
	switch len(parts) {
	case 1:
		if defaultOwner == "" {
			return Repository{}, fmt.Errorf("repository %q has no owner and no default owner is known", ref)
		}
		return Repository{Owner: defaultOwner, Name: parts[0]}, nil
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return Repository{}, fmt.Errorf("invalid repository %q: owner and name cannot be empty", ref)
		}
		return Repository{Owner: parts[0], Name: parts[1]}, nil
	default:
		return Repository{}, fmt.Errorf("invalid repository %q: expected 'owner/name' or 'name'", ref)
	}
}

// Comment is the comment that triggered the run.
type Comment struct {
	NodeID string `json:"node_id"`
	Body   string `json:"body"`
	Author string `json:"author"`
}

// Issue is the issue the triggering comment was posted on.
type Issue struct {
	NodeID    string   `json:"node_id"`
	Number    int      `json:"number"`
	HTMLURL   string   `json:"html_url"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Labels    []string `json:"labels,omitempty"`
	Assignees []string `json:"assignees,omitempty"`
}

// Trigger is a validated issue_comment event that authorizes duplication.
type Trigger struct {
	Action     string     `json:"action"`
	Comment    Comment    `json:"comment"`
	Issue      Issue      `json:"issue"`
	Repository Repository `json:"repository"`
}
