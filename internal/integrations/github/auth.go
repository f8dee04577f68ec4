// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"
)

const defaultAPIURL = "https://api.github.com"

// Endpoints are the API roots of a GitHub host, as exported by the runner in
// GITHUB_API_URL and GITHUB_GRAPHQL_URL. Empty fields mean github.com.
type Endpoints struct {
	API     string
	GraphQL string
}

// NewClient creates a new GitHub client using the provided token.
// If token is empty, it returns an unauthenticated client.
func NewClient(ctx context.Context, token string) *Client {
	var tc *http.Client

	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		tc = oauth2.NewClient(ctx, ts)
	}

	client := github.NewClient(tc)

	return &Client{
		client:  client,
		graphql: NewGraphQLClient(tc, token),
	}
}

// NewClientWithEndpoints creates a client for a GitHub Enterprise Server or
// GHE.com host.
func NewClientWithEndpoints(ctx context.Context, token string, ep Endpoints) (*Client, error) {
	c := NewClient(ctx, token)

	if api := strings.TrimSuffix(ep.API, "/"); api != "" && api != defaultAPIURL {
		base, err := url.Parse(api + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid API URL %q: %w", ep.API, err)
		}
		c.client.BaseURL = base
	}
	if ep.GraphQL != "" {
		c.graphql.WithEndpoint(ep.GraphQL)
	}

	return c, nil
}
