// Package github implements the issue tracker port on the GitHub Issues
// API. Import runs post progress comments to a designated issue.
package github

import (
	"context"
	"fmt"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/showroom-labs/vendorsync/internal/core/domain"
	"github.com/showroom-labs/vendorsync/internal/core/ports/driven"
)

// DefaultTimeout is the HTTP request timeout for issue API calls.
const DefaultTimeout = 30 * time.Second

// stateClosed is the issue state set by CloseIssue.
const stateClosed = "closed"

// Ensure IssueTracker implements the interface.
var _ driven.IssueTracker = (*IssueTracker)(nil)

// IssueTracker posts to GitHub issues through an authenticated client.
type IssueTracker struct {
	gh      *gh.Client
	limiter *RateLimiter
}

// NewIssueTracker creates a tracker authenticated with a personal access
// token.
func NewIssueTracker(ctx context.Context, token string) (*IssueTracker, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: github token is empty", domain.ErrConfiguration)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout

	return &IssueTracker{
		gh:      gh.NewClient(tc),
		limiter: NewRateLimiter(),
	}, nil
}

// newWithClient is for tests that point the client at a local server.
func newWithClient(client *gh.Client) *IssueTracker {
	return &IssueTracker{gh: client, limiter: NewRateLimiter()}
}

// PostComment adds a comment to the issue.
func (t *IssueTracker) PostComment(ctx context.Context, repo string, number int, body string) error {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return err
	}
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}

	comment := &gh.IssueComment{Body: gh.Ptr(body)}
	_, resp, err := t.gh.Issues.CreateComment(ctx, owner, name, number, comment)
	t.update(resp)
	if err != nil {
		return fmt.Errorf("%w: comment on %s#%d: %v", domain.ErrRemoteOperation, repo, number, err)
	}
	return nil
}

// AddLabels attaches labels to the issue, creating missing ones.
func (t *IssueTracker) AddLabels(ctx context.Context, repo string, number int, labels []string) error {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return err
	}
	if len(labels) == 0 {
		return nil
	}
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}

	_, resp, err := t.gh.Issues.AddLabelsToIssue(ctx, owner, name, number, labels)
	t.update(resp)
	if err != nil {
		return fmt.Errorf("%w: label %s#%d: %v", domain.ErrRemoteOperation, repo, number, err)
	}
	return nil
}

// CloseIssue closes the issue.
func (t *IssueTracker) CloseIssue(ctx context.Context, repo string, number int) error {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return err
	}
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}

	request := &gh.IssueRequest{State: gh.Ptr(stateClosed)}
	_, resp, err := t.gh.Issues.Edit(ctx, owner, name, number, request)
	t.update(resp)
	if err != nil {
		return fmt.Errorf("%w: close %s#%d: %v", domain.ErrRemoteOperation, repo, number, err)
	}
	return nil
}

func (t *IssueTracker) update(resp *gh.Response) {
	if resp == nil {
		return
	}
	t.limiter.UpdateFromResponse(resp.Response)
}

// splitRepo parses "owner/name".
func splitRepo(repo string) (string, string, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		return "", "", fmt.Errorf("%w: repository %q is not owner/name", domain.ErrConfiguration, repo)
	}
	return owner, name, nil
}
