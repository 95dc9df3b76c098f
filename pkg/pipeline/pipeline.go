// Package pipeline provides the core compilation pipeline for Pixelforge.
//
// This package implements the complete load → compile → emit pipeline that
// can be used by CLI and automation components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Resolve the layout config and decode its source image
//  2. Compile: Walk the image and emit one placement per rule match
//  3. Emit: Serialize the plan in the requested output format
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    ConfigPath: "garden.toml",
//	    Format:     pipeline.FormatJSON,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, err := runner.Emit(result.Plan, opts.Format)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pixelforge/pkg/cache"
	"github.com/matzehuels/pixelforge/pkg/layout"
	"github.com/matzehuels/pixelforge/pkg/plan"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Automation
// =============================================================================

// ToleranceUnset marks the tolerance override as absent; the config's own
// tolerance (or the exact-match default of zero) applies.
const ToleranceUnset = -1.0

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// DefaultFormat is the default output format.
const DefaultFormat = FormatJSON

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatText: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the compilation pipeline.
// This struct supports JSON serialization for automation requests.
type Options struct {
	// Load options
	ConfigPath string `json:"config_path,omitempty"`
	Refresh    bool   `json:"refresh,omitempty"`
	NoCache    bool   `json:"no_cache,omitempty"`

	// Compile options
	Tolerance float64 `json:"tolerance,omitempty"` // Color match tolerance override; ToleranceUnset keeps the config value

	// Emit options
	Format string `json:"format,omitempty"`

	// Runtime options (not serialized)
	Config *layout.Config `json:"-"` // In-memory config; takes precedence over ConfigPath
	Logger *log.Logger    `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this execution.
	RunID string

	// Config is the resolved layout config, image attached.
	Config *layout.Config

	// ImageHash is the content hash of the source raster.
	ImageHash string

	// Plan is the compiled placement plan.
	Plan *plan.Plan

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Pixels      int
	Placements  int
	LoadTime    time.Duration
	CompileTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PlanHit bool // Whether the compiled plan came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, text)", format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for the load stage.
func (o *Options) ValidateForLoad() error {
	if o.Config == nil && o.ConfigPath == "" {
		return fmt.Errorf("config or config_path is required")
	}
	if o.Tolerance != ToleranceUnset && o.Tolerance < 0 {
		return fmt.Errorf("tolerance cannot be negative: %v", o.Tolerance)
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// HasToleranceOverride reports whether an explicit tolerance was requested.
func (o *Options) HasToleranceOverride() bool {
	return o.Tolerance != ToleranceUnset && o.Tolerance >= 0
}

// PlanKeyOpts returns cache key options for the compiled plan.
// The rules hash folds in everything rule-shaped: the plan name, the color
// rules, and the object defaults.
func (o *Options) PlanKeyOpts(cfg *layout.Config) cache.PlanKeyOpts {
	return cache.PlanKeyOpts{
		Spacing:         cfg.Spacing,
		Axes:            string(cfg.Axes),
		RotationEnabled: cfg.Rotation.Enabled,
		RotationAxes:    uint8(cfg.Rotation.Axes),
		Tolerance:       cfg.ColorTolerance,
		RulesHash:       rulesHash(cfg),
	}
}
