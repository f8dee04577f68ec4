// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package steps

import (
	"fmt"

	"github.com/similigh/issue-duplicator/internal/core/duplicator"
	"github.com/similigh/issue-duplicator/internal/core/pipeline"
)

// Duplicate copies the triggering issue into every target repository.
type Duplicate struct {
	api      duplicator.API
	observer duplicator.Observer
}

// NewDuplicate creates a new duplicate step.
func NewDuplicate(deps *pipeline.Dependencies) *Duplicate {
	return &Duplicate{
		api:      deps.API,
		observer: deps.Observer,
	}
}

// Name returns the step name.
func (s *Duplicate) Name() string {
	return "duplicate"
}

// Run executes the duplication sequence.
func (s *Duplicate) Run(ctx *pipeline.Context) error {
	if s.api == nil {
		return fmt.Errorf("GitHub client required for duplication")
	}
	if ctx.Trigger == nil {
		return fmt.Errorf("no validated trigger, event_filter must run first")
	}

	orchestrator := duplicator.New(s.api, s.observer, ctx.Config.DuplicatorOptions())
	result, err := orchestrator.Run(ctx.Ctx, ctx.Trigger, ctx.Targets)
	if err != nil {
		return err
	}

	ctx.Result.Duplicates = result.Duplicates
	ctx.Result.Comment = result.Comment
	return nil
}
