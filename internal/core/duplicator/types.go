// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package duplicator

import (
	"context"

	"github.com/similigh/issue-duplicator/internal/core/event"
)

// FieldKind is the data type of a Projects v2 field value.
type FieldKind string

const (
	FieldText         FieldKind = "TEXT"
	FieldNumber       FieldKind = "NUMBER"
	FieldDate         FieldKind = "DATE"
	FieldSingleSelect FieldKind = "SINGLE_SELECT"
	FieldIteration    FieldKind = "ITERATION"
)

// Field is one custom field value on the original issue's project item.
type Field struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Kind FieldKind `json:"kind"`

	// Value holds the text, the date (YYYY-MM-DD), the option ID or the
	// iteration ID, depending on Kind.
	Value string `json:"value,omitempty"`

	// Number is only meaningful for FieldNumber.
	Number float64 `json:"number,omitempty"`
}

// Project is a project board the original issue belongs to.
type Project struct {
	ID     string  `json:"id"`
	URL    string  `json:"url"`
	Fields []Field `json:"fields"`
}

// IssueContent is what gets copied onto the duplicate.
type IssueContent struct {
	Title     string
	Body      string
	Labels    []string
	Assignees []string
}

// DuplicatedIssue is the issue created in a target repository.
type DuplicatedIssue struct {
	ID     int64            `json:"id"`
	Number int              `json:"number"`
	URL    string           `json:"url"`
	NodeID string           `json:"node_id"`
	Repo   event.Repository `json:"repository"`
}

// Result is the outcome of a successful run.
type Result struct {
	Duplicates []DuplicatedIssue `json:"duplicates"`
	Comment    string            `json:"comment"`
}

// URLs returns the duplicate URLs in creation order.
func (r *Result) URLs() []string {
	urls := make([]string, 0, len(r.Duplicates))
	for _, d := range r.Duplicates {
		urls = append(urls, d.URL)
	}
	return urls
}

// API is the subset of the GitHub API the orchestrator needs.
type API interface {
	// CreateIssue opens a new issue in repo.
	CreateIssue(ctx context.Context, repo event.Repository, content IssueContent) (*DuplicatedIssue, error)

	// GetProjectFieldValues lists the projects the issue is on, with its field values.
	GetProjectFieldValues(ctx context.Context, issueNodeID string) ([]Project, error)

	// AddIssueToProject adds the issue to a project and returns the item ID.
	AddIssueToProject(ctx context.Context, issueNodeID, projectID string) (string, error)

	// SetProjectFieldValue writes field onto the project item.
	SetProjectFieldValue(ctx context.Context, projectID, itemID string, field Field) error

	// UpdateIssueComment replaces the body of a comment.
	UpdateIssueComment(ctx context.Context, commentNodeID, body string) error
}

// Observer receives progress notifications.
type Observer interface {
	Duplicating(original event.Issue, target event.Repository)
	IssueCreated(issue *DuplicatedIssue)
	ProjectAttached(project Project, itemID string)
	FieldSet(project Project, field Field)
	CommentUpdated(body string)
	Completed(result *Result)
}
