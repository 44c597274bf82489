// Package github implements the RepoHost port using the go-github library.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/BIC-DevSphere/devsphere-backend/internal/domain/model"
	"github.com/BIC-DevSphere/devsphere-backend/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.RepoHost = (*Client)(nil)

// Client implements the driven.RepoHost port using the go-github library.
type Client struct {
	gh *gh.Client
}

// NewClient creates a new GitHub API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  3. go-github (GitHub REST API client)
//
// An empty token yields an unauthenticated client, which works for public
// repositories at a lower rate limit.
func NewClient(token string) *Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)

	client := gh.NewClient(rateLimitClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	return &Client{gh: client}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base
// URL. This constructor is intended for testing, allowing injection of an
// httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{gh: client}, nil
}

// ListContributors retrieves every contributor of owner/repo, handling
// pagination automatically. A 404 from the API maps to ErrHostRepoNotFound
// so callers can treat a dangling repository link as expected.
func (c *Client) ListContributors(ctx context.Context, owner, repo string) ([]model.Contributor, error) {
	opts := &gh.ListContributorsOptions{
		ListOptions: gh.ListOptions{
			PerPage: 100,
		},
	}

	var all []model.Contributor

	for {
		contributors, resp, err := c.gh.Repositories.ListContributors(ctx, owner, repo, opts)
		if err != nil {
			var ghErr *gh.ErrorResponse
			if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound {
				return nil, fmt.Errorf("listing contributors for %s/%s: %w", owner, repo, driven.ErrHostRepoNotFound)
			}
			return nil, fmt.Errorf("listing contributors for %s/%s (page %d): %w", owner, repo, opts.Page, err)
		}

		for _, contributor := range contributors {
			all = append(all, model.Contributor{
				Username:   contributor.GetLogin(),
				AvatarURL:  contributor.GetAvatarURL(),
				ProfileURL: contributor.GetHTMLURL(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	if all == nil {
		all = []model.Contributor{}
	}

	return all, nil
}
