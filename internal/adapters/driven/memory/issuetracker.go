package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/showroom-labs/vendorsync/internal/core/ports/driven"
)

// Ensure IssueTracker implements the interface.
var _ driven.IssueTracker = (*IssueTracker)(nil)

// Comment is one recorded PostComment call.
type Comment struct {
	Repo   string
	Number int
	Body   string
}

// IssueTracker is an in-memory implementation of driven.IssueTracker
// that records every call for assertion in tests.
type IssueTracker struct {
	mu       sync.Mutex
	comments []Comment
	labels   map[string][]string
	closed   map[string]bool

	// Err, when set, is returned by every operation.
	Err error
}

// NewIssueTracker creates an empty in-memory tracker.
func NewIssueTracker() *IssueTracker {
	return &IssueTracker{
		labels: make(map[string][]string),
		closed: make(map[string]bool),
	}
}

// PostComment records a comment.
func (t *IssueTracker) PostComment(_ context.Context, repo string, number int, body string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return t.Err
	}
	t.comments = append(t.comments, Comment{Repo: repo, Number: number, Body: body})
	return nil
}

// AddLabels records labels for an issue.
func (t *IssueTracker) AddLabels(_ context.Context, repo string, number int, labels []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return t.Err
	}
	key := issueKey(repo, number)
	t.labels[key] = append(t.labels[key], labels...)
	return nil
}

// CloseIssue marks an issue closed.
func (t *IssueTracker) CloseIssue(_ context.Context, repo string, number int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Err != nil {
		return t.Err
	}
	t.closed[issueKey(repo, number)] = true
	return nil
}

// Comments returns the recorded comments.
func (t *IssueTracker) Comments() []Comment {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Comment(nil), t.comments...)
}

// Labels returns the labels recorded for an issue.
func (t *IssueTracker) Labels(repo string, number int) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.labels[issueKey(repo, number)]...)
}

// Closed reports whether an issue was closed.
func (t *IssueTracker) Closed(repo string, number int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed[issueKey(repo, number)]
}

func issueKey(repo string, number int) string {
	return fmt.Sprintf("%s#%d", repo, number)
}
