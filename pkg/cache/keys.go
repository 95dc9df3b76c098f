package cache

// PlanKeyOpts carries every config facet that affects compilation output.
// Two compiles with equal image hashes and equal opts produce the same
// plan, so they share a cache entry.
type PlanKeyOpts struct {
	Spacing         float64 `json:"spacing"`
	Axes            string  `json:"axes"`
	RotationEnabled bool    `json:"rotation_enabled"`
	RotationAxes    uint8   `json:"rotation_axes"`
	Tolerance       float64 `json:"tolerance"`
	RulesHash       string  `json:"rules_hash"`
}

// Keyer generates cache keys for compiled plans.
type Keyer interface {
	// PlanKey generates a key for a compiled plan from the image content
	// hash and the compile-relevant config facets.
	PlanKey(imageHash string, opts PlanKeyOpts) string
}

// DefaultKeyer generates sha256-based keys with type prefixes.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PlanKey generates a key for a compiled plan.
func (k *DefaultKeyer) PlanKey(imageHash string, opts PlanKeyOpts) string {
	return hashKey("plan", imageHash, opts)
}
