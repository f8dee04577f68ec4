// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/similigh/issue-duplicator/internal/core/config"
	"github.com/similigh/issue-duplicator/internal/core/event"
	"github.com/similigh/issue-duplicator/internal/core/pipeline"
	"github.com/similigh/issue-duplicator/internal/steps"
	"github.com/similigh/issue-duplicator/internal/tui"
)

// Wrapper step to send status updates
type statusReportingStep struct {
	inner      pipeline.Step
	statusChan chan<- tui.PipelineStatusMsg
}

func (s *statusReportingStep) Name() string {
	return s.inner.Name()
}

func (s *statusReportingStep) Run(ctx *pipeline.Context) error {
	s.statusChan <- tui.PipelineStatusMsg{Step: s.Name(), Status: tui.StatusStarted, Message: "Starting..."}

	err := s.inner.Run(ctx)

	if err != nil {
		if errors.Is(err, pipeline.ErrSkipPipeline) {
			s.statusChan <- tui.PipelineStatusMsg{Step: s.Name(), Status: tui.StatusSkipped, Message: ctx.Result.SkipReason}
			return err
		}
		s.statusChan <- tui.PipelineStatusMsg{Step: s.Name(), Status: tui.StatusError, Message: err.Error()}
		return err
	}

	s.statusChan <- tui.PipelineStatusMsg{Step: s.Name(), Status: tui.StatusSuccess, Message: "Completed"}
	return nil
}

func buildPipeline(deps *pipeline.Dependencies, stepNames []string) (*pipeline.Pipeline, error) {
	registry := pipeline.NewRegistry()
	steps.RegisterAll(registry)
	return registry.BuildFromNames(stepNames, deps)
}

// runDirect runs the pipeline without a TUI.
func runDirect(ctx context.Context, deps *pipeline.Dependencies, stepNames []string, ev event.Context, cfg *config.Config) (*pipeline.Result, error) {
	p, err := buildPipeline(deps, stepNames)
	if err != nil {
		return nil, err
	}

	pCtx := pipeline.NewContext(ctx, ev, cfg)
	if err := p.Run(pCtx); err != nil {
		return nil, err
	}
	return pCtx.Result, nil
}

// tuiRunner runs the pipeline in a goroutine and renders its progress.
type tuiRunner struct {
	out         io.Writer
	idleTimeout time.Duration
	options     []tea.ProgramOption
}

func (r tuiRunner) run(ctx context.Context, deps *pipeline.Dependencies, stepNames []string, ev event.Context, cfg *config.Config) (*pipeline.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	statusChan := make(chan tui.PipelineStatusMsg)
	deps.Observer = tui.NewObserver("duplicate", statusChan)

	built, err := buildPipeline(deps, stepNames)
	if err != nil {
		return nil, err
	}

	// Wrap steps with status reporting
	var wrappedSteps []pipeline.Step
	for _, step := range built.Steps() {
		wrappedSteps = append(wrappedSteps, &statusReportingStep{inner: step, statusChan: statusChan})
	}
	finalPipeline := pipeline.New(wrappedSteps...)

	model := tui.NewModel("Issue Duplicator", stepNames, statusChan).WithIdleTimeout(r.idleTimeout)
	p := tea.NewProgram(model, r.options...)

	pCtx := pipeline.NewContext(ctx, ev, cfg)
	var runErr error
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer close(statusChan)

		if runErr = finalPipeline.Run(pCtx); runErr != nil {
			p.Send(tui.ResultMsg{Success: false, Output: runErr.Error()})
			return
		}

		resultBytes, _ := json.MarshalIndent(pCtx.Result, "", "  ")
		p.Send(tui.ResultMsg{Success: true, Output: string(resultBytes)})
	}()

	final, tuiErr := p.Run()

	// The user may quit, or the model may give up, before the pipeline ends;
	// stop it and drain its remaining updates.
	cancel()
	drain(statusChan)
	<-done

	if tuiErr != nil {
		return nil, fmt.Errorf("error running TUI: %w", tuiErr)
	}

	var reported *tui.ResultMsg
	if m, ok := final.(tui.Model); ok {
		reported = m.Result()
	}

	if runErr != nil {
		// A timeout cancels the run; report why rather than the cancellation.
		if reported != nil && !reported.Success && errors.Is(runErr, context.Canceled) {
			return nil, errors.New(reported.Output)
		}
		return nil, runErr
	}

	if reported != nil && reported.Success && reported.Output != "" {
		fmt.Fprintln(r.out, "\n"+reported.Output)
	}
	return pCtx.Result, nil
}

func drain(ch <-chan tui.PipelineStatusMsg) {
	go func() {
		for range ch {
		}
	}()
}
