// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package tui

import (
	"fmt"

	"github.com/similigh/issue-duplicator/internal/core/duplicator"
	"github.com/similigh/issue-duplicator/internal/core/event"
)

var _ duplicator.Observer = (*Observer)(nil)

// Observer turns duplication progress into progress lines for the model.
type Observer struct {
	step       string
	statusChan chan<- PipelineStatusMsg
}

// NewObserver creates an observer reporting under the given step name.
func NewObserver(step string, statusChan chan<- PipelineStatusMsg) *Observer {
	return &Observer{step: step, statusChan: statusChan}
}

func (o *Observer) send(format string, args ...interface{}) {
	o.statusChan <- PipelineStatusMsg{
		Step:    o.step,
		Status:  StatusProgress,
		Message: fmt.Sprintf(format, args...),
	}
}

func (o *Observer) Duplicating(original event.Issue, target event.Repository) {
	o.send("duplicating #%d into %s", original.Number, target)
}

func (o *Observer) IssueCreated(issue *duplicator.DuplicatedIssue) {
	o.send("created %s", issue.URL)
}

func (o *Observer) ProjectAttached(project duplicator.Project, _ string) {
	o.send("added to project %s", project.URL)
}

func (o *Observer) FieldSet(_ duplicator.Project, field duplicator.Field) {
	o.send("set %s", field.Name)
}

func (o *Observer) CommentUpdated(string) {
	o.send("updated comment")
}

func (o *Observer) Completed(result *duplicator.Result) {
	o.send("duplicated into %d repositories", len(result.Duplicates))
}
