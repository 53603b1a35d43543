package driven

import "context"

// IssueTracker posts run status to an external issue tracker.
// Implementations are side-effect only; the importer treats every call as
// best effort and never propagates tracker failures into record outcomes.
type IssueTracker interface {
	// PostComment appends a comment to an issue.
	// Repo is "owner/name".
	PostComment(ctx context.Context, repo string, number int, body string) error

	// AddLabels attaches labels to an issue.
	AddLabels(ctx context.Context, repo string, number int, labels []string) error

	// CloseIssue closes an issue.
	CloseIssue(ctx context.Context, repo string, number int) error
}
