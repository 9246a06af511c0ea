// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

const testSchema = `
#Sample: {
	name:    string
	count:   int
	enabled: bool
}
`

type sampleConfig struct {
	Name    string `json:"name"`
	Count   int    `json:"count"`
	Enabled bool   `json:"enabled"`
}

func TestDecode(t *testing.T) {
	t.Run("valid data decodes", func(t *testing.T) {
		data := []byte(`
name: "lights"
count: 12
enabled: true
`)
		got, err := Decode[sampleConfig](testSchema, data, "#Sample", "sample.cue")
		if err != nil {
			t.Fatalf("Decode() failed: %v", err)
		}
		if got.Name != "lights" || got.Count != 12 || !got.Enabled {
			t.Errorf("Decode() = %+v, want {lights 12 true}", got)
		}
	})

	t.Run("type mismatch reports field path", func(t *testing.T) {
		data := []byte(`
name: "lights"
count: "twelve"
enabled: true
`)
		_, err := Decode[sampleConfig](testSchema, data, "#Sample", "sample.cue")
		if err == nil {
			t.Fatal("Decode() succeeded with a type mismatch")
		}
		if !strings.Contains(err.Error(), "count") {
			t.Errorf("error %q does not mention the offending field", err)
		}
	})

	t.Run("missing field fails concreteness check", func(t *testing.T) {
		data := []byte(`name: "lights"` + "\n" + `enabled: false`)
		if _, err := Decode[sampleConfig](testSchema, data, "#Sample", "sample.cue"); err == nil {
			t.Fatal("Decode() succeeded with a missing required field")
		}
	})

	t.Run("invalid syntax reports filename", func(t *testing.T) {
		_, err := Decode[sampleConfig](testSchema, []byte(`name: "unterminated`), "#Sample", "broken.cue")
		if err == nil {
			t.Fatal("Decode() succeeded on invalid CUE")
		}
		if !strings.Contains(err.Error(), "broken.cue") {
			t.Errorf("error %q does not mention filename", err)
		}
	})

	t.Run("oversized input rejected", func(t *testing.T) {
		big := make([]byte, MaxFileSize+1)
		if _, err := Decode[sampleConfig](testSchema, big, "#Sample", "big.cue"); err == nil {
			t.Fatal("Decode() accepted oversized input")
		}
	})
}
