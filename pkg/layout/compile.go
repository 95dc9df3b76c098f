package layout

import (
	"github.com/matzehuels/pixelforge/pkg/errors"
)

// Compile walks the config's image and emits one placement per matching
// color rule per pixel. The result ordering is deterministic: rows
// ascending, columns ascending within each row, rules in config order
// within each pixel.
//
// Preconditions: the config must carry a resolved image and at least one
// color rule. Both are checked before traversal starts; a failed
// precondition returns a coded error and no partial result. Once the
// preconditions hold, traversal cannot fail.
func Compile(cfg *Config) ([]Placement, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Image == nil {
		return nil, errors.New(errors.ErrCodeInvalidImage, "layout %q has no resolved image", cfg.Name)
	}
	if len(cfg.Rules) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "layout %q has no color rules", cfg.Name)
	}

	width, height := cfg.Image.Width(), cfg.Image.Height()
	placements := make([]Placement, 0, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := cfg.Image.Sample(x, y)

			// Fully transparent pixels emit nothing, regardless of color.
			if a == 0 {
				continue
			}

			// Rotation and position are computed once per pixel and shared
			// by every rule match on it.
			var pixelRotation Vec3
			if cfg.Rotation.Enabled {
				pixelRotation = DecodeRotation(cfg.Rotation.Axes, AngleForAlpha(a))
			}
			position := MapCoord(cfg.Axes, float64(x), float64(y), cfg.Spacing)

			pixel := RGB{R: r, G: g, B: b}
			for _, rule := range cfg.Rules {
				if !pixel.Matches(rule.Color, cfg.ColorTolerance) {
					continue
				}

				rotation := pixelRotation
				if !cfg.Rotation.Enabled {
					rotation = cfg.defaultRotation(rule.ObjectKey)
				}

				placements = append(placements, Placement{
					Position:  position,
					Rotation:  rotation,
					ObjectKey: rule.ObjectKey,
				})
			}
		}
	}

	return placements, nil
}
