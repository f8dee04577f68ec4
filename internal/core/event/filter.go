// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package event

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/go-github/v60/github"
	"go.uber.org/zap"
)

// ErrSkip indicates the event is valid but the comment is not a trigger.
// Callers should exit quietly.
var ErrSkip = errors.New("comment does not match the trigger command")

// FilterOptions configures which events are accepted.
type FilterOptions struct {
	// Actions is the accepted set of issue_comment activity types.
	Actions []string

	// Command, when non-empty, must equal the trimmed comment body.
	Command string
}

// Filter decides whether an inbound event should start a duplication.
type Filter struct {
	opts   FilterOptions
	logger *zap.Logger
}

// NewFilter creates a filter. A nil logger disables logging.
func NewFilter(opts FilterOptions, logger *zap.Logger) *Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(opts.Actions) == 0 {
		opts.Actions = []string{ActionCreated, ActionEdited}
	}
	return &Filter{
		opts:   opts,
		logger: logger,
	}
}

// Apply validates ec. It returns the trigger, ErrSkip for a comment that is not
// a command, or an error when the automation is wired to the wrong event.
func (f *Filter) Apply(ec Context) (*Trigger, error) {
	f.logger.Debug("inbound event",
		zap.String("event", ec.Name),
		zap.ByteString("payload", ec.Payload),
	)

	if ec.Name != KindIssueComment {
		return nil, fmt.Errorf("this action must be used with `%s` event, got %q", KindIssueComment, ec.Name)
	}

	raw, err := github.ParseWebHook(ec.Name, ec.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s payload: %w", ec.Name, err)
	}
	payload, ok := raw.(*github.IssueCommentEvent)
	if !ok {
		return nil, fmt.Errorf("unexpected payload type %T for %s event", raw, ec.Name)
	}

	action := payload.GetAction()
	if !slices.Contains(f.opts.Actions, action) {
		return nil, fmt.Errorf("this action must be used with %s activity type, got %q", describeActions(f.opts.Actions), action)
	}

	if payload.Issue == nil || payload.Comment == nil || payload.Repo == nil {
		return nil, fmt.Errorf("%s payload is missing issue, comment or repository", ec.Name)
	}

	if f.opts.Command != "" {
		body := strings.TrimSpace(payload.Comment.GetBody())
		if body != f.opts.Command {
			f.logger.Debug("comment is not a trigger command", zap.String("command", f.opts.Command))
			return nil, ErrSkip
		}
	}

	return newTrigger(payload), nil
}

func newTrigger(e *github.IssueCommentEvent) *Trigger {
	issue := e.GetIssue()

	var labels []string
	for _, l := range issue.Labels {
		if name := l.GetName(); name != "" {
			labels = append(labels, name)
		}
	}
	var assignees []string
	for _, u := range issue.Assignees {
		if login := u.GetLogin(); login != "" {
			assignees = append(assignees, login)
		}
	}

	return &Trigger{
		Action: e.GetAction(),
		Comment: Comment{
			NodeID: e.GetComment().GetNodeID(),
			Body:   e.GetComment().GetBody(),
			Author: e.GetComment().GetUser().GetLogin(),
		},
		Issue: Issue{
			NodeID:    issue.GetNodeID(),
			Number:    issue.GetNumber(),
			HTMLURL:   issue.GetHTMLURL(),
			Title:     issue.GetTitle(),
			Body:      issue.GetBody(),
			Labels:    labels,
			Assignees: assignees,
		},
		Repository: Repository{
			Owner: e.GetRepo().GetOwner().GetLogin(),
			Name:  e.GetRepo().GetName(),
		},
	}
}

// describeActions renders ["created", "edited"] as "`created` or `edited`".
func describeActions(actions []string) string {
	quoted := make([]string, len(actions))
	for i, a := range actions {
		quoted[i] = "`" + a + "`"
	}
	if len(quoted) == 1 {
		return quoted[0]
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1]
}
