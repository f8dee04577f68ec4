// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package commands

import (
	"bytes"
	"context"
	"io"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/similigh/issue-duplicator/internal/core/config"
	"github.com/similigh/issue-duplicator/internal/core/duplicator"
	"github.com/similigh/issue-duplicator/internal/core/event"
	"github.com/similigh/issue-duplicator/internal/core/pipeline"
)

// blockingAPI blocks CreateIssue until the run is cancelled.
type blockingAPI struct {
	failingAPI
	cancelled chan struct{}
}

func (b *blockingAPI) CreateIssue(ctx context.Context, _ event.Repository, _ duplicator.IssueContent) (*duplicator.DuplicatedIssue, error) {
	<-ctx.Done()
	close(b.cancelled)
	return nil, ctx.Err()
}

func headlessRunner(out io.Writer, idle time.Duration) tuiRunner {
	return tuiRunner{
		out:         out,
		idleTimeout: idle,
		options:     []tea.ProgramOption{tea.WithInput(nil), tea.WithOutput(io.Discard)},
	}
}

func TestTUIRunnerCompletes(t *testing.T) {
	var out bytes.Buffer
	cfg := &config.Config{TargetRepositories: []string{"repo-a"}}
	ev := event.Context{Name: "issue_comment", Payload: []byte(commentPayload)}

	result, err := headlessRunner(&out, time.Minute).run(context.Background(), &pipeline.Dependencies{}, pipeline.ResolveSteps("check"), ev, cfg)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !reflect.DeepEqual(result.Targets, []string{"acme/repo-a"}) {
		t.Errorf("Unexpected targets: %v", result.Targets)
	}
	if !strings.Contains(out.String(), `"acme/repo-a"`) {
		t.Errorf("Expected the result to be printed after the TUI exits, got %q", out.String())
	}
}

func TestTUIRunnerReportsStepFailure(t *testing.T) {
	var out bytes.Buffer
	ev := event.Context{Name: "push", Payload: []byte(`{}`)}

	_, err := headlessRunner(&out, time.Minute).run(context.Background(), &pipeline.Dependencies{}, pipeline.ResolveSteps("check"), ev, &config.Config{})
	if err == nil || !strings.Contains(err.Error(), "issue_comment") {
		t.Fatalf("Expected wrong event error, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Expected no result output on failure, got %q", out.String())
	}
}

func TestTUIRunnerCancelsPipelineOnIdleTimeout(t *testing.T) {
	api := &blockingAPI{cancelled: make(chan struct{})}
	ev := event.Context{Name: "issue_comment", Payload: []byte(commentPayload)}
	deps := &pipeline.Dependencies{API: api}

	finished := make(chan error, 1)
	go func() {
		_, err := headlessRunner(io.Discard, 50*time.Millisecond).run(context.Background(), deps, pipeline.ResolveSteps("duplicate"), ev, &config.Config{})
		finished <- err
	}()

	select {
	case err := <-finished:
		if err == nil || !strings.Contains(err.Error(), "timed out") {
			t.Errorf("Expected idle timeout error, got %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("runner did not return after the idle timeout")
	}

	select {
	case <-api.cancelled:
	default:
		t.Error("Expected the blocked API call to be cancelled")
	}
}
