// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-04
// Last Modified: 2026-10-19

package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const graphQLEndpoint = "https://api.github.com/graphql"

var errNoGraphQL = errors.New("project operations require an authenticated GraphQL client")

// GraphQLClient provides access to GitHub's GraphQL API.
type GraphQLClient struct {
	httpClient *http.Client
	token      string
	endpoint   string
}

// NewGraphQLClient creates a new GraphQL client with the given token.
func NewGraphQLClient(httpClient *http.Client, token string) *GraphQLClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GraphQLClient{
		httpClient: httpClient,
		token:      token,
		endpoint:   graphQLEndpoint,
	}
}

// WithEndpoint points the client at a different GraphQL endpoint.
func (c *GraphQLClient) WithEndpoint(endpoint string) *GraphQLClient {
	c.endpoint = endpoint
	return c
}

// graphQLRequest represents a GraphQL request payload.
type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// graphQLResponse represents a GraphQL response.
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors,omitempty"`
}

// execute sends a GraphQL query/mutation and returns the response data.
func (c *GraphQLClient) execute(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	reqBody := graphQLRequest{
		Query:     query,
		Variables: variables,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// Truncate response body to avoid leaking sensitive data in logs
		truncated := string(respBody)
		if len(truncated) > 200 {
			truncated = truncated[:200] + "..."
		}
		return nil, fmt.Errorf("GraphQL request failed with status %d: %s", resp.StatusCode, truncated)
	}

	var gqlResp graphQLResponse
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(gqlResp.Errors) > 0 {
		return nil, fmt.Errorf("GraphQL error: %s", gqlResp.Errors[0].Message)
	}

	return gqlResp.Data, nil
}

// AddIssueToProject adds content to a Projects v2 board and returns the item ID.
func (c *GraphQLClient) AddIssueToProject(ctx context.Context, issueNodeID, projectID string) (string, error) {
	if issueNodeID == "" || projectID == "" {
		return "", fmt.Errorf("issue and project IDs are required")
	}

	mutation := `
		mutation($projectId: ID!, $contentId: ID!) {
			addProjectV2ItemById(input: {projectId: $projectId, contentId: $contentId}) {
				item {
					id
				}
			}
		}
	`
	variables := map[string]interface{}{
		"projectId": projectID,
		"contentId": issueNodeID,
	}

	data, err := c.execute(ctx, mutation, variables)
	if err != nil {
		return "", err
	}

	var result struct {
		AddProjectV2ItemByID struct {
			Item struct {
				ID string `json:"id"`
			} `json:"item"`
		} `json:"addProjectV2ItemById"`
	}

	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("failed to parse project item: %w", err)
	}

	if result.AddProjectV2ItemByID.Item.ID == "" {
		return "", fmt.Errorf("adding issue to project %s returned no item", projectID)
	}

	return result.AddProjectV2ItemByID.Item.ID, nil
}

// UpdateIssueComment replaces the body of an issue comment.
func (c *GraphQLClient) UpdateIssueComment(ctx context.Context, commentNodeID, body string) error {
	if commentNodeID == "" {
		return fmt.Errorf("comment ID is required")
	}

	mutation := `
		mutation($id: ID!, $body: String!) {
			updateIssueComment(input: {id: $id, body: $body}) {
				issueComment {
					id
				}
			}
		}
	`
	variables := map[string]interface{}{
		"id":   commentNodeID,
		"body": body,
	}

	_, err := c.execute(ctx, mutation, variables)
	return err
}
