// Package plan defines the placement plan handed to the scene
// construction boundary, plus its JSON wire format.
//
// A [Plan] is the ordered output of one compilation: the container name
// (taken from the layout config) and the placement sequence. The actual
// instantiation of spatial entities is the scene collaborator's job,
// expressed here only as the [Builder] interface.
package plan

import (
	"context"

	"github.com/matzehuels/pixelforge/pkg/layout"
)

// Plan is one compiled layout: a named container plus its ordered
// placements. Placement order is part of the contract; consumers must
// instantiate in sequence.
type Plan struct {
	// Name identifies the container all placements are parented under.
	Name string

	// Placements is the ordered placement sequence.
	Placements []layout.Placement
}

// Count returns the number of placements.
func (p *Plan) Count() int { return len(p.Placements) }

// Builder constructs a scene from a plan: one spatial entity per
// placement, parented under a container named by the plan. Implementations
// live outside this module (engines, exporters); the compiler never
// instantiates anything itself.
type Builder interface {
	Build(ctx context.Context, p *Plan) error
}

// Recorder is a Builder that records the plans it receives.
// Intended for tests and dry runs.
type Recorder struct {
	Plans []*Plan
}

// Build appends the plan to the record.
func (r *Recorder) Build(ctx context.Context, p *Plan) error {
	r.Plans = append(r.Plans, p)
	return nil
}

// Ensure Recorder implements Builder.
var _ Builder = (*Recorder)(nil)
