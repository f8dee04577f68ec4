// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

// Package steps contains the pipeline steps of a run.
// Each step implements the pipeline.Step interface.
package steps

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/similigh/issue-duplicator/internal/core/duplicator"
	"github.com/similigh/issue-duplicator/internal/core/event"
	"github.com/similigh/issue-duplicator/internal/core/pipeline"
)

// EventFilter accepts or skips the inbound event and resolves target repositories.
type EventFilter struct {
	logger *zap.Logger
}

// NewEventFilter creates a new event filter step.
func NewEventFilter(deps *pipeline.Dependencies) *EventFilter {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventFilter{
		logger: logger.Named("event_filter"),
	}
}

// Name returns the step name.
func (s *EventFilter) Name() string {
	return "event_filter"
}

// Run validates the event against the configured trigger.
func (s *EventFilter) Run(ctx *pipeline.Context) error {
	filter := event.NewFilter(ctx.Config.FilterOptions(), s.logger)

	trigger, err := filter.Apply(ctx.Event)
	if err != nil {
		if errors.Is(err, event.ErrSkip) {
			s.logger.Info("comment is not a trigger, nothing to do")
			ctx.Result.Skipped = true
			ctx.Result.SkipReason = err.Error()
			return pipeline.ErrSkipPipeline
		}
		return err
	}

	targets, err := duplicator.ParseTargets(ctx.Config.TargetRepositories, trigger.Repository)
	if err != nil {
		return fmt.Errorf("invalid target repositories: %w", err)
	}

	ctx.Trigger = trigger
	ctx.Targets = targets
	ctx.Result.Original = trigger.Issue.HTMLURL
	for _, t := range targets {
		ctx.Result.Targets = append(ctx.Result.Targets, t.String())
	}

	s.logger.Info("event accepted",
		zap.String("action", trigger.Action),
		zap.String("issue", trigger.Issue.HTMLURL),
		zap.Strings("targets", ctx.Result.Targets),
	)
	return nil
}
