// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package github

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/similigh/issue-duplicator/internal/core/duplicator"
	"github.com/similigh/issue-duplicator/internal/core/event"
)

// ProjectReader reads project field values.
type ProjectReader interface {
	GetProjectFieldValues(ctx context.Context, issueNodeID string) ([]duplicator.Project, error)
}

// DryRunClient reads from GitHub but only logs writes.
type DryRunClient struct {
	reader  ProjectReader
	logger  *zap.Logger
	created int
}

var _ duplicator.API = (*DryRunClient)(nil)

// NewDryRunClient wraps reader so no issue, item or comment is written.
func NewDryRunClient(reader ProjectReader, logger *zap.Logger) *DryRunClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DryRunClient{
		reader: reader,
		logger: logger.Named("dry-run"),
	}
}

func (d *DryRunClient) CreateIssue(_ context.Context, repo event.Repository, content duplicator.IssueContent) (*duplicator.DuplicatedIssue, error) {
	d.created++
	d.logger.Info("DRY RUN: would create issue",
		zap.String("repository", repo.String()),
		zap.String("title", content.Title),
		zap.Strings("labels", content.Labels),
		zap.Strings("assignees", content.Assignees),
	)
	return &duplicator.DuplicatedIssue{
		URL:    fmt.Sprintf("https://github.com/%s/issues (dry run #%d)", repo, d.created),
		NodeID: fmt.Sprintf("dry-run-issue-%d", d.created),
		Repo:   repo,
	}, nil
}

func (d *DryRunClient) GetProjectFieldValues(ctx context.Context, issueNodeID string) ([]duplicator.Project, error) {
	return d.reader.GetProjectFieldValues(ctx, issueNodeID)
}

func (d *DryRunClient) AddIssueToProject(_ context.Context, issueNodeID, projectID string) (string, error) {
	d.logger.Info("DRY RUN: would add issue to project",
		zap.String("issue", issueNodeID),
		zap.String("project", projectID),
	)
	return "dry-run-item-" + projectID, nil
}

func (d *DryRunClient) SetProjectFieldValue(_ context.Context, projectID, itemID string, field duplicator.Field) error {
	d.logger.Info("DRY RUN: would set field value",
		zap.String("project", projectID),
		zap.String("item", itemID),
		zap.String("field", field.Name),
		zap.String("kind", string(field.Kind)),
	)
	return nil
}

func (d *DryRunClient) UpdateIssueComment(_ context.Context, commentNodeID, body string) error {
	d.logger.Info("DRY RUN: would update comment",
		zap.String("comment", commentNodeID),
		zap.String("body", body),
	)
	return nil
}
