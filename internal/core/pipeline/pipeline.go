// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

// Package pipeline provides the step engine that drives a run.
// It defines the Step interface and Context structure used by all pipeline steps.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/similigh/issue-duplicator/internal/core/config"
	"github.com/similigh/issue-duplicator/internal/core/duplicator"
	"github.com/similigh/issue-duplicator/internal/core/event"
)

// ErrSkipPipeline indicates that the pipeline should stop gracefully.
// This is not an error condition, just an early exit (e.g., a comment that is not a command).
var ErrSkipPipeline = errors.New("skip remaining pipeline steps")

// StepError is returned by Run when a step fails. Err is the step's own
// error, unchanged.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step '%s' failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Step defines the interface that all pipeline steps must implement.
type Step interface {
	// Name returns the unique identifier for this step.
	Name() string

	// Run executes the step's logic.
	// It should return ErrSkipPipeline to stop the pipeline gracefully,
	// or any other error to indicate failure.
	Run(ctx *Context) error
}

// Result holds the accumulated results from pipeline execution.
type Result struct {
	Skipped    bool                         `json:"skipped"`
	SkipReason string                       `json:"skip_reason,omitempty"`
	Original   string                       `json:"original,omitempty"`
	Targets    []string                     `json:"targets,omitempty"`
	Duplicates []duplicator.DuplicatedIssue `json:"duplicates,omitempty"`
	Comment    string                       `json:"comment,omitempty"`
}

// Context carries data through the pipeline steps.
type Context struct {
	// Ctx is the Go context for cancellation and timeouts.
	Ctx context.Context

	// Event is the raw event handed over by the runtime.
	Event event.Context

	// Config is the loaded configuration.
	Config *config.Config

	// Trigger is set once the event filter accepted the event.
	Trigger *event.Trigger

	// Targets are the resolved repositories to duplicate into.
	Targets []event.Repository

	// Result accumulates the processing results.
	Result *Result
}

// NewContext creates a new pipeline context for an event.
func NewContext(ctx context.Context, ev event.Context, cfg *config.Config) *Context {
	return &Context{
		Ctx:    ctx,
		Event:  ev,
		Config: cfg,
		Result: &Result{},
	}
}

// Pipeline executes a sequence of steps.
type Pipeline struct {
	steps []Step
}

// New creates a new pipeline with the given steps.
func New(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Run executes all steps in order.
// Stops on the first error (unless it's ErrSkipPipeline, which is graceful).
func (p *Pipeline) Run(ctx *Context) error {
	for _, step := range p.steps {
		if err := step.Run(ctx); err != nil {
			if errors.Is(err, ErrSkipPipeline) {
				// Graceful early exit
				return nil
			}
			return &StepError{Step: step.Name(), Err: err}
		}
	}
	return nil
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// Steps returns the list of steps (for introspection).
func (p *Pipeline) Steps() []Step {
	return p.steps
}
