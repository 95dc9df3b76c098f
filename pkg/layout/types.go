package layout

import (
	"fmt"

	"github.com/matzehuels/pixelforge/pkg/errors"
	"github.com/matzehuels/pixelforge/pkg/raster"
)

// =============================================================================
// Vectors and Colors
// =============================================================================

// Vec3 is a 3-component vector used for positions and Euler rotations.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Scale returns v multiplied component-wise by m.
func (v Vec3) Scale(m float64) Vec3 {
	return Vec3{X: v.X * m, Y: v.Y * m, Z: v.Z * m}
}

// RGB is a normalized color with channels in [0,1].
// Matching against pixel colors is exact by default; see Config.ColorTolerance.
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Matches reports whether c and other are equal within tolerance.
// A tolerance of exactly 0 requires bit-exact float equality on all
// three channels, which is the default matching mode.
func (c RGB) Matches(other RGB, tolerance float64) bool {
	return within(c.R, other.R, tolerance) &&
		within(c.G, other.G, tolerance) &&
		within(c.B, other.B, tolerance)
}

func within(a, b, tolerance float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}

// =============================================================================
// Axes
// =============================================================================

// AxisMask is a bitset selecting spatial axes.
type AxisMask uint8

// Axis bits for AxisMask.
const (
	AxisX AxisMask = 1 << iota
	AxisY
	AxisZ
)

// Has reports whether the mask includes the given axis bit.
func (m AxisMask) Has(axis AxisMask) bool { return m&axis != 0 }

// BuildAxes selects which two spatial axes pixel coordinates map onto.
type BuildAxes string

// Valid axis-pair selectors.
const (
	BuildXY BuildAxes = "xy"
	BuildXZ BuildAxes = "xz"
	BuildYZ BuildAxes = "yz"
)

// ValidBuildAxes is the set of supported axis-pair selectors.
var ValidBuildAxes = map[BuildAxes]bool{
	BuildXY: true,
	BuildXZ: true,
	BuildYZ: true,
}

// ValidateBuildAxes checks that an axis-pair selector is valid.
func ValidateBuildAxes(axes BuildAxes) error {
	if !ValidBuildAxes[axes] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid build axes: %q (must be one of: xy, xz, yz)", axes)
	}
	return nil
}

// =============================================================================
// Rules and Objects
// =============================================================================

// ColorRule binds an exact pixel color to an object type key.
// Rules are immutable once a compilation run starts. A config may hold
// several rules with the same color; each one fires independently.
type ColorRule struct {
	Color     RGB    `json:"color"`
	ObjectKey string `json:"object"`
}

// ObjectType describes a placeable object kind. DefaultRotation is the
// orientation used for placements when per-pixel rotation is disabled.
type ObjectType struct {
	Key             string `json:"key"`
	DefaultRotation Vec3   `json:"default_rotation"`
}

// RotationConfig controls alpha-driven per-pixel rotation.
// When Enabled is false the axis mask is forced to empty by Validate.
type RotationConfig struct {
	Enabled bool     `json:"enabled"`
	Axes    AxisMask `json:"axes"`
}

// =============================================================================
// Config
// =============================================================================

// Config is the unit of work for Compile and the unit of storage for a
// preset slot. Image is the live raster handle; ImagePath is the
// serializable reference re-resolved after a session reload.
type Config struct {
	Name           string         `json:"name"`
	Spacing        float64        `json:"spacing"`
	Axes           BuildAxes      `json:"axes"`
	Rotation       RotationConfig `json:"rotation"`
	ImagePath      string         `json:"image_path,omitempty"`
	Rules          []ColorRule    `json:"rules"`
	Objects        []ObjectType   `json:"objects,omitempty"`
	ColorTolerance float64        `json:"color_tolerance,omitempty"`

	// Image is resolved at runtime and never serialized. A nil Image on a
	// config with a non-empty ImagePath means "configured but incomplete";
	// Compile refuses it.
	Image raster.Source `json:"-"`
}

// Validate checks config invariants and normalizes dependent fields.
// It forces the rotation axis mask to empty when rotation is disabled and
// defaults the axis-pair selector to XY when unset.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "config is nil")
	}
	if c.Axes == "" {
		c.Axes = BuildXY
	}
	if err := ValidateBuildAxes(c.Axes); err != nil {
		return err
	}
	if err := errors.ValidateSpacing(c.Spacing); err != nil {
		return err
	}
	if c.ColorTolerance < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "color tolerance cannot be negative: %v", c.ColorTolerance)
	}
	if !c.Rotation.Enabled {
		c.Rotation.Axes = 0
	}
	return nil
}

// Clone returns a deep copy of the config. The raster handle is shared;
// it is immutable during compilation and re-resolved after reload anyway.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Rules = append([]ColorRule(nil), c.Rules...)
	cp.Objects = append([]ObjectType(nil), c.Objects...)
	return &cp
}

// defaultRotation returns the default orientation of the object type with
// the given key, or the zero vector when the key is unknown.
func (c *Config) defaultRotation(key string) Vec3 {
	for _, obj := range c.Objects {
		if obj.Key == key {
			return obj.DefaultRotation
		}
	}
	return Vec3{}
}

// =============================================================================
// Placement
// =============================================================================

// Placement is one resolved (position, rotation, object type) triple.
// Placements are produced only by Compile and consumed by the scene
// construction collaborator.
type Placement struct {
	Position  Vec3   `json:"position"`
	Rotation  Vec3   `json:"rotation"`
	ObjectKey string `json:"object"`
}

// String returns a compact human-readable form, used by CLI debug output.
func (p Placement) String() string {
	return fmt.Sprintf("%s @ (%g, %g, %g) rot (%g, %g, %g)",
		p.ObjectKey,
		p.Position.X, p.Position.Y, p.Position.Z,
		p.Rotation.X, p.Rotation.Y, p.Rotation.Z)
}
