// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/similigh/issue-duplicator/internal/core/duplicator"
	"github.com/similigh/issue-duplicator/internal/core/event"
)

func update(t *testing.T, m Model, msg interface{}) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Expected tui.Model, got %T", next)
	}
	return model
}

func TestModelTracksStepStatus(t *testing.T) {
	m := NewModel("Issue Duplicator", []string{"event_filter", "duplicate"}, nil)

	m = update(t, m, PipelineStatusMsg{Step: "event_filter", Status: StatusSuccess, Message: "Completed"})
	m = update(t, m, PipelineStatusMsg{Step: "duplicate", Status: StatusStarted})

	if m.status["event_filter"] != StatusSuccess {
		t.Errorf("Expected event_filter to be done, got %q", m.status["event_filter"])
	}
	if m.current != 1 {
		t.Errorf("Expected current step 1, got %d", m.current)
	}
	if !strings.Contains(m.View(), "✓ event_filter") {
		t.Errorf("Expected finished step in view, got:\n%s", m.View())
	}
}

func TestModelProgressOnlyLogs(t *testing.T) {
	m := NewModel("Issue Duplicator", []string{"event_filter", "duplicate"}, nil)
	m = update(t, m, PipelineStatusMsg{Step: "duplicate", Status: StatusStarted})
	m = update(t, m, PipelineStatusMsg{Step: "duplicate", Status: StatusProgress, Message: "created https://github.com/acme/a/issues/2"})

	if m.status["duplicate"] != StatusStarted {
		t.Errorf("Expected progress to keep status started, got %q", m.status["duplicate"])
	}
	if len(m.logs) != 1 || !strings.Contains(m.logs[0], "acme/a/issues/2") {
		t.Errorf("Expected progress log line, got %v", m.logs)
	}
}

func TestModelRecordsError(t *testing.T) {
	m := NewModel("Issue Duplicator", []string{"duplicate"}, nil)
	m = update(t, m, PipelineStatusMsg{Step: "duplicate", Status: StatusError, Message: "boom"})

	if m.err == nil || !strings.Contains(m.err.Error(), "boom") {
		t.Errorf("Expected step error, got %v", m.err)
	}
	if !strings.Contains(m.View(), "boom") {
		t.Errorf("Expected error in view, got:\n%s", m.View())
	}
}

func TestModelResultQuits(t *testing.T) {
	m := NewModel("Issue Duplicator", []string{"duplicate"}, nil)
	m = update(t, m, ResultMsg{Success: true})

	if m.Result() == nil || !m.Result().Success {
		t.Errorf("Expected successful result, got %+v", m.Result())
	}
	if m.View() != "" {
		t.Errorf("Expected empty view after quitting, got %q", m.View())
	}
}

func TestModelIdleTimeout(t *testing.T) {
	m := NewModel("Issue Duplicator", []string{"duplicate"}, make(chan PipelineStatusMsg)).WithIdleTimeout(10 * time.Millisecond)

	msg := m.waitForActivity()()
	result, ok := msg.(ResultMsg)
	if !ok || result.Success || !strings.Contains(result.Output, "timed out") {
		t.Errorf("Expected timeout result, got %#v", msg)
	}
}

func TestObserverSendsProgress(t *testing.T) {
	ch := make(chan PipelineStatusMsg, 10)
	o := NewObserver("duplicate", ch)

	o.Duplicating(event.Issue{Number: 7}, event.Repository{Owner: "acme", Name: "a"})
	o.IssueCreated(&duplicator.DuplicatedIssue{URL: "https://github.com/acme/a/issues/2"})
	o.FieldSet(duplicator.Project{}, duplicator.Field{Name: "Status"})
	close(ch)

	var msgs []string
	for msg := range ch {
		if msg.Step != "duplicate" || msg.Status != StatusProgress {
			t.Errorf("Unexpected message: %+v", msg)
		}
		msgs = append(msgs, msg.Message)
	}

	want := []string{"duplicating #7 into acme/a", "created https://github.com/acme/a/issues/2", "set Status"}
	if strings.Join(msgs, "|") != strings.Join(want, "|") {
		t.Errorf("Expected %v, got %v", want, msgs)
	}
}
