package layout

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pixelforge/pkg/errors"
)

// layoutFile is the TOML wire format for a layout config.
//
//	name = "garden"
//	spacing = 2.0
//	axes = "xz"
//	image = "maps/garden.png"
//	color_tolerance = 0.0
//
//	[rotation]
//	enabled = true
//	axes = ["x", "z"]
//
//	[[objects]]
//	key = "tree"
//	default_rotation = [0.0, 90.0, 0.0]
//
//	[[rules]]
//	color = "#FF0000"
//	object = "tree"
type layoutFile struct {
	Name           string       `toml:"name"`
	Spacing        float64      `toml:"spacing"`
	Axes           string       `toml:"axes"`
	Image          string       `toml:"image"`
	ColorTolerance float64      `toml:"color_tolerance"`
	Rotation       rotationFile `toml:"rotation"`
	Objects        []objectFile `toml:"objects"`
	Rules          []ruleFile   `toml:"rules"`
}

type rotationFile struct {
	Enabled bool     `toml:"enabled"`
	Axes    []string `toml:"axes"`
}

type objectFile struct {
	Key             string    `toml:"key"`
	DefaultRotation []float64 `toml:"default_rotation"`
}

type ruleFile struct {
	Color  string `toml:"color"`
	Object string `toml:"object"`
}

// LoadFile reads a TOML layout config from path.
// The returned config is validated but its image is not resolved; callers
// load the raster separately (or let the pipeline do it).
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	var file layoutFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}

	cfg, err := file.toConfig()
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "layout file %s", path)
	}
	return cfg, nil
}

func (f *layoutFile) toConfig() (*Config, error) {
	cfg := &Config{
		Name:           f.Name,
		Spacing:        f.Spacing,
		Axes:           BuildAxes(strings.ToLower(f.Axes)),
		ImagePath:      f.Image,
		ColorTolerance: f.ColorTolerance,
	}

	mask, err := parseAxisMask(f.Rotation.Axes)
	if err != nil {
		return nil, err
	}
	cfg.Rotation = RotationConfig{Enabled: f.Rotation.Enabled, Axes: mask}

	for _, obj := range f.Objects {
		rot, err := parseVec3(obj.DefaultRotation)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "object %q default_rotation", obj.Key)
		}
		cfg.Objects = append(cfg.Objects, ObjectType{Key: obj.Key, DefaultRotation: rot})
	}

	for i, rule := range f.Rules {
		color, err := ParseHexColor(rule.Color)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRule, err, "rule %d", i)
		}
		if rule.Object == "" {
			return nil, errors.New(errors.ErrCodeInvalidRule, "rule %d has no object key", i)
		}
		cfg.Rules = append(cfg.Rules, ColorRule{Color: color, ObjectKey: rule.Object})
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseAxisMask(names []string) (AxisMask, error) {
	var mask AxisMask
	for _, name := range names {
		switch strings.ToLower(name) {
		case "x":
			mask |= AxisX
		case "y":
			mask |= AxisY
		case "z":
			mask |= AxisZ
		default:
			return 0, errors.New(errors.ErrCodeInvalidConfig, "invalid rotation axis: %q (must be x, y, or z)", name)
		}
	}
	return mask, nil
}

func parseVec3(values []float64) (Vec3, error) {
	switch len(values) {
	case 0:
		return Vec3{}, nil
	case 3:
		return Vec3{X: values[0], Y: values[1], Z: values[2]}, nil
	default:
		return Vec3{}, fmt.Errorf("expected 3 components, got %d", len(values))
	}
}

// ParseHexColor parses "#RRGGBB" into a normalized RGB.
// Values are divided by 255, matching how 8-bit image channels normalize,
// so a rule color written in hex matches the same color sampled from an
// 8-bit image bit-exactly.
func ParseHexColor(s string) (RGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q (want #RRGGBB)", s)
	}

	var channels [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("invalid hex color %q: %v", s, err)
		}
		channels[i] = float64(v) / 255
	}

	return RGB{R: channels[0], G: channels[1], B: channels[2]}, nil
}
