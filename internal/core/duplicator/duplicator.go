// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

// Package duplicator copies an issue, with its project field values, into
// target repositories and leaves a trail on the triggering comment.
package duplicator

import (
	"context"
	"fmt"
	"strings"

	"github.com/similigh/issue-duplicator/internal/core/event"
)

// CommentMode controls when the triggering comment is edited.
type CommentMode string

const (
	// CommentPerRepository edits the comment after each target repository.
	CommentPerRepository CommentMode = "per-repository"

	// CommentOnce edits the comment once, after all duplicates exist.
	CommentOnce CommentMode = "once"
)

// PointerPrefix separates the comment text from each duplicate URL.
const PointerPrefix = " 👉 "

// Options tune the orchestrator.
type Options struct {
	CommentMode   CommentMode
	CopyLabels    bool
	CopyAssignees bool
}

// Orchestrator runs the duplication sequence against an API.
type Orchestrator struct {
	api      API
	observer Observer
	opts     Options
}

// New creates an orchestrator. A nil observer discards progress.
func New(api API, observer Observer, opts Options) *Orchestrator {
	if observer == nil {
		observer = NopObserver{}
	}
	if opts.CommentMode == "" {
		opts.CommentMode = CommentPerRepository
	}
	return &Orchestrator{
		api:      api,
		observer: observer,
		opts:     opts,
	}
}

// Run duplicates the trigger's issue into every target, one at a time.
// The first failing call aborts the run and its error is returned as is.
func (o *Orchestrator) Run(ctx context.Context, trigger *event.Trigger, targets []event.Repository) (*Result, error) {
	if trigger == nil {
		return nil, fmt.Errorf("trigger cannot be nil")
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("at least one target repository is required")
	}

	result := &Result{}
	comment := strings.TrimSpace(trigger.Comment.Body)

	// Field values of the original issue do not change during a run, so they
	// are fetched once, after the first duplicate exists.
	var projects []Project
	discovered := false

	for _, repo := range targets {
		o.observer.Duplicating(trigger.Issue, repo)

		issue, err := o.api.CreateIssue(ctx, repo, o.content(trigger.Issue))
		if err != nil {
			return nil, err
		}
		if issue == nil {
			return nil, fmt.Errorf("creating an issue in %s returned no issue", repo)
		}
		issue.Repo = repo
		result.Duplicates = append(result.Duplicates, *issue)
		o.observer.IssueCreated(issue)

		if !discovered {
			projects, err = o.api.GetProjectFieldValues(ctx, trigger.Issue.NodeID)
			if err != nil {
				return nil, err
			}
			discovered = true
		}

		if err := o.copyProjects(ctx, issue, projects); err != nil {
			return nil, err
		}

		comment += PointerPrefix + issue.URL
		if o.opts.CommentMode == CommentPerRepository {
			if err := o.updateComment(ctx, trigger.Comment.NodeID, comment); err != nil {
				return nil, err
			}
		}
	}

	if o.opts.CommentMode == CommentOnce {
		if err := o.updateComment(ctx, trigger.Comment.NodeID, comment); err != nil {
			return nil, err
		}
	}

	result.Comment = comment
	o.observer.Completed(result)
	return result, nil
}

func (o *Orchestrator) copyProjects(ctx context.Context, issue *DuplicatedIssue, projects []Project) error {
	for _, project := range projects {
		itemID, err := o.api.AddIssueToProject(ctx, issue.NodeID, project.ID)
		if err != nil {
			return err
		}
		o.observer.ProjectAttached(project, itemID)

		for _, field := range project.Fields {
			if err := o.api.SetProjectFieldValue(ctx, project.ID, itemID, field); err != nil {
				return err
			}
			o.observer.FieldSet(project, field)
		}
	}
	return nil
}

func (o *Orchestrator) updateComment(ctx context.Context, nodeID, body string) error {
	if err := o.api.UpdateIssueComment(ctx, nodeID, body); err != nil {
		return err
	}
	o.observer.CommentUpdated(body)
	return nil
}

func (o *Orchestrator) content(issue event.Issue) IssueContent {
	content := IssueContent{
		Title: issue.Title,
		Body:  issue.Body,
	}
	if o.opts.CopyLabels {
		content.Labels = issue.Labels
	}
	if o.opts.CopyAssignees {
		content.Assignees = issue.Assignees
	}
	return content
}

// ParseTargets resolves configured target repositories against the source
// repository. An empty list means the source repository itself.
func ParseTargets(refs []string, source event.Repository) ([]event.Repository, error) {
	var targets []event.Repository
	for _, ref := range refs {
		if strings.TrimSpace(ref) == "" {
			continue
		}
		repo, err := event.ParseRepository(ref, source.Owner)
		if err != nil {
			return nil, err
		}
		targets = append(targets, repo)
	}

	if len(targets) == 0 {
		if source.Owner == "" || source.Name == "" {
			return nil, fmt.Errorf("no target repositories configured and source repository is unknown")
		}
		targets = append(targets, source)
	}
	return targets, nil
}
