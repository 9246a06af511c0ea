// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError(t *testing.T) {
	t.Run("error message includes operation resource and cause", func(t *testing.T) {
		cause := errors.New("no such file")
		err := NewContext().
			WithOperation("load manifest").
			WithResource("blendpack.cue").
			Wrap(cause).
			Build()

		want := "failed to load manifest: blendpack.cue: no such file"
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	})

	t.Run("unwrap exposes cause to errors.Is", func(t *testing.T) {
		cause := errors.New("boom")
		err := Wrap(fmt.Errorf("wrapped: %w", cause), "stage files", "ui.py")
		if !errors.Is(err, cause) {
			t.Error("errors.Is() did not find the cause through Unwrap")
		}
	})

	t.Run("wrap nil returns nil", func(t *testing.T) {
		if Wrap(nil, "anything", "") != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})

	t.Run("format lists suggestions", func(t *testing.T) {
		err := NewContext().
			WithOperation("package addon").
			WithSuggestion("Check that all required files exist").
			WithSuggestion("Run 'blendpack validate' for details").
			Build()

		out := err.Format(false)
		if !strings.Contains(out, "Check that all required files exist") {
			t.Errorf("Format() missing first suggestion: %q", out)
		}
		if strings.Count(out, "•") != 2 {
			t.Errorf("Format() should render 2 bullets, got: %q", out)
		}
	})

	t.Run("verbose format includes cause chain", func(t *testing.T) {
		inner := errors.New("disk full")
		err := NewContext().
			WithOperation("write archive").
			Wrap(fmt.Errorf("create zip: %w", inner)).
			Build()

		out := err.Format(true)
		if !strings.Contains(out, "Cause chain:") || !strings.Contains(out, "disk full") {
			t.Errorf("verbose Format() missing cause chain: %q", out)
		}
	})
}
