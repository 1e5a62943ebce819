package model_test

import (
	"testing"

	"github.com/netcreators/occupancy-audit-worker/internal/model"
)

func TestStatusDisplay(t *testing.T) {
	cases := map[model.ReconciliationStatus]string{
		model.StatusValid:        "✅ Valid",
		model.StatusMismatch:     "❌ Mismatch",
		model.StatusUnregistered: "⚠️ Unregistered",
	}

	for status, expected := range cases {
		if got := status.Display(); got != expected {
			t.Errorf("Expected display '%s' for %s, got '%s'", expected, status, got)
		}
	}
}

func TestStripStatusGlyphs(t *testing.T) {
	for _, status := range []model.ReconciliationStatus{
		model.StatusValid,
		model.StatusMismatch,
		model.StatusUnregistered,
	} {
		stripped := model.StripStatusGlyphs(status.Display())
		if stripped != status.String() {
			t.Errorf("Expected '%s' after stripping, got '%s'", status.String(), stripped)
		}
	}
}

func TestStripStatusGlyphs_PlainTextUnchanged(t *testing.T) {
	if got := model.StripStatusGlyphs("Valid"); got != "Valid" {
		t.Errorf("Expected plain text unchanged, got '%s'", got)
	}
}
