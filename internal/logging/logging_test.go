// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package logging

import (
	"testing"

	"go.uber.org/zap"
)

func TestNewLevels(t *testing.T) {
	quiet, err := New(false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if quiet.Core().Enabled(zap.DebugLevel) {
		t.Error("Expected debug to be disabled without verbose")
	}
	if !quiet.Core().Enabled(zap.InfoLevel) {
		t.Error("Expected info to be enabled")
	}

	verbose, err := New(true)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !verbose.Core().Enabled(zap.DebugLevel) {
		t.Error("Expected debug to be enabled with verbose")
	}
}
