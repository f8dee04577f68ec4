// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

package steps

import (
	"github.com/similigh/issue-duplicator/internal/core/pipeline"
)

// RegisterAll registers all built-in steps with the registry.
func RegisterAll(r *pipeline.Registry) {
	r.Register("event_filter", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewEventFilter(deps), nil
	})

	r.Register("duplicate", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewDuplicate(deps), nil
	})
}
