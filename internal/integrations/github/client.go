// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v60/github"

	"github.com/similigh/issue-duplicator/internal/core/duplicator"
	"github.com/similigh/issue-duplicator/internal/core/event"
)

// Client wraps the GitHub REST and GraphQL APIs.
type Client struct {
	client  *github.Client
	graphql *GraphQLClient
}

var _ duplicator.API = (*Client)(nil)

// CreateIssue opens a new issue in repo with the given content.
func (c *Client) CreateIssue(ctx context.Context, repo event.Repository, content duplicator.IssueContent) (*duplicator.DuplicatedIssue, error) {
	if repo.Owner == "" || repo.Name == "" {
		return nil, fmt.Errorf("invalid repository %q: owner and name cannot be empty", repo.String())
	}
	if strings.TrimSpace(content.Title) == "" {
		return nil, fmt.Errorf("issue title cannot be empty")
	}

	req := &github.IssueRequest{
		Title: github.String(content.Title),
		Body:  github.String(content.Body),
	}
	if len(content.Labels) > 0 {
		req.Labels = &content.Labels
	}
	if len(content.Assignees) > 0 {
		req.Assignees = &content.Assignees
	}

	// go-github errors already name the request URL.
	issue, _, err := c.client.Issues.Create(ctx, repo.Owner, repo.Name, req)
	if err != nil {
		return nil, err
	}

	return &duplicator.DuplicatedIssue{
		ID:     issue.GetID(),
		Number: issue.GetNumber(),
		URL:    issue.GetHTMLURL(),
		NodeID: issue.GetNodeID(),
		Repo:   repo,
	}, nil
}

// GetFileContent fetches a file from a repository at the given ref.
func (c *Client) GetFileContent(ctx context.Context, org, repo, path, ref string) ([]byte, error) {
	opts := &github.RepositoryContentGetOptions{Ref: ref}
	file, _, _, err := c.client.Repositories.GetContents(ctx, org, repo, path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s from %s/%s@%s: %w", path, org, repo, ref, err)
	}
	if file == nil {
		return nil, fmt.Errorf("%s in %s/%s is a directory", path, org, repo)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return []byte(content), nil
}

// GetProjectFieldValues lists the projects an issue belongs to with its field values.
func (c *Client) GetProjectFieldValues(ctx context.Context, issueNodeID string) ([]duplicator.Project, error) {
	if c.graphql == nil {
		return nil, errNoGraphQL
	}
	return c.graphql.GetProjectFieldValues(ctx, issueNodeID)
}

// AddIssueToProject adds an issue to a project and returns the new item ID.
func (c *Client) AddIssueToProject(ctx context.Context, issueNodeID, projectID string) (string, error) {
	if c.graphql == nil {
		return "", errNoGraphQL
	}
	return c.graphql.AddIssueToProject(ctx, issueNodeID, projectID)
}

// SetProjectFieldValue writes a field value onto a project item.
func (c *Client) SetProjectFieldValue(ctx context.Context, projectID, itemID string, field duplicator.Field) error {
	if c.graphql == nil {
		return errNoGraphQL
	}
	return c.graphql.SetProjectFieldValue(ctx, projectID, itemID, field)
}

// UpdateIssueComment replaces the body of an issue comment.
func (c *Client) UpdateIssueComment(ctx context.Context, commentNodeID, body string) error {
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("comment body cannot be empty")
	}
	if c.graphql == nil {
		return errNoGraphQL
	}
	return c.graphql.UpdateIssueComment(ctx, commentNodeID, body)
}
