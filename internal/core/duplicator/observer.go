// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package duplicator

import (
	"go.uber.org/zap"

	"github.com/similigh/issue-duplicator/internal/core/event"
)

// NopObserver ignores all notifications.
type NopObserver struct{}

func (NopObserver) Duplicating(event.Issue, event.Repository) {}
func (NopObserver) IssueCreated(*DuplicatedIssue)             {}
func (NopObserver) ProjectAttached(Project, string)           {}
func (NopObserver) FieldSet(Project, Field)                   {}
func (NopObserver) CommentUpdated(string)                     {}
func (NopObserver) Completed(*Result)                         {}

// LogObserver writes progress to a zap logger.
type LogObserver struct {
	logger *zap.Logger
}

// NewLogObserver creates an observer that logs through logger.
func NewLogObserver(logger *zap.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) Duplicating(original event.Issue, target event.Repository) {
	o.logger.Info("duplicating issue",
		zap.String("original", original.HTMLURL),
		zap.String("target", target.String()),
	)
}

func (o *LogObserver) IssueCreated(issue *DuplicatedIssue) {
	o.logger.Info("issue created", zap.String("url", issue.URL))
	o.logger.Debug("new issue", zap.Any("issue", issue))
}

func (o *LogObserver) ProjectAttached(project Project, itemID string) {
	o.logger.Info("added issue to project", zap.String("project", project.URL))
	o.logger.Debug("project item", zap.String("item_id", itemID))
}

func (o *LogObserver) FieldSet(project Project, field Field) {
	o.logger.Info("set field value",
		zap.String("field", field.Name),
		zap.String("kind", string(field.Kind)),
	)
}

func (o *LogObserver) CommentUpdated(body string) {
	o.logger.Debug("comment updated", zap.String("body", body))
}

func (o *LogObserver) Completed(result *Result) {
	o.logger.Info("successfully duplicated", zap.Strings("issues", result.URLs()))
}
