package cli

import (
	"testing"

	"github.com/matzehuels/pixelforge/pkg/pipeline"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input  string
		name   string
		format string
		want   string
	}{
		{"layouts/garden.toml", "garden", pipeline.FormatJSON, "garden.json"},
		{"layouts/garden.toml", "garden", pipeline.FormatText, "garden.txt"},
		{"layouts/garden.toml", "", pipeline.FormatJSON, "garden.json"},
		{"plot.toml", "", pipeline.FormatText, "plot.txt"},
	}

	for _, tt := range tests {
		got := outputPath(tt.input, tt.name, tt.format)
		if got != tt.want {
			t.Errorf("outputPath(%q, %q, %q) = %q, want %q", tt.input, tt.name, tt.format, got, tt.want)
		}
	}
}
