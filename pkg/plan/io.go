package plan

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/pixelforge/pkg/layout"
)

type planFile struct {
	Name       string      `json:"name"`
	Placements []placement `json:"placements"`
}

type placement struct {
	Position [3]float64 `json:"position"`
	Rotation [3]float64 `json:"rotation,omitempty"`
	Object   string     `json:"object"`
}

// WriteJSON encodes a plan as JSON and writes it to w.
// The output preserves placement order and can be re-imported with
// [ReadJSON] for round-trip processing.
func WriteJSON(p *Plan, w io.Writer) error {
	out := planFile{
		Name:       p.Name,
		Placements: make([]placement, len(p.Placements)),
	}
	for i, pl := range p.Placements {
		out.Placements[i] = placement{
			Position: [3]float64{pl.Position.X, pl.Position.Y, pl.Position.Z},
			Rotation: [3]float64{pl.Rotation.X, pl.Rotation.Y, pl.Rotation.Z},
			Object:   pl.ObjectKey,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a JSON plan from r.
//
// The input must be a JSON object with a "name" and a "placements" array;
// each placement has a 3-element "position", an optional 3-element
// "rotation", and an "object" key. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Plan, error) {
	var in planFile
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	p := &Plan{
		Name:       in.Name,
		Placements: make([]layout.Placement, len(in.Placements)),
	}
	for i, pl := range in.Placements {
		p.Placements[i] = layout.Placement{
			Position:  layout.Vec3{X: pl.Position[0], Y: pl.Position[1], Z: pl.Position[2]},
			Rotation:  layout.Vec3{X: pl.Rotation[0], Y: pl.Rotation[1], Z: pl.Rotation[2]},
			ObjectKey: pl.Object,
		}
	}
	return p, nil
}

// ExportJSON writes a plan to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(p *Plan, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(p, f)
}

// ImportJSON reads a JSON file at path and returns the decoded plan.
func ImportJSON(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
