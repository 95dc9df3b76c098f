package pipeline

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/pixelforge/pkg/cache"
	"github.com/matzehuels/pixelforge/pkg/layout"
	"github.com/matzehuels/pixelforge/pkg/plan"
	"github.com/matzehuels/pixelforge/pkg/raster"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → compile pipeline with caching.
// Emitting the result in an output format is a separate step; see Emit.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		RunID: uuid.NewString(),
	}

	// Stage 1: Load
	loadStart := time.Now()
	cfg, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Config = cfg
	result.ImageHash = hashSource(cfg.Image)
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Pixels = cfg.Image.Width() * cfg.Image.Height()

	r.Logger.Info("loaded layout",
		"name", cfg.Name,
		"width", cfg.Image.Width(),
		"height", cfg.Image.Height(),
		"rules", len(cfg.Rules),
		"duration", result.Stats.LoadTime)

	// Stage 2: Compile
	compileStart := time.Now()
	p, planHit, err := r.CompileWithCacheInfo(ctx, cfg, result.ImageHash, opts)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	result.Plan = p
	result.Stats.CompileTime = time.Since(compileStart)
	result.Stats.Placements = p.Count()
	result.CacheInfo.PlanHit = planHit

	r.Logger.Info("compiled plan",
		"placements", p.Count(),
		"cached", planHit,
		"duration", result.Stats.CompileTime)

	return result, nil
}

// Load resolves the layout config and attaches its raster source.
// An in-memory config with a resolved image passes through untouched apart
// from the tolerance override.
func (r *Runner) Load(ctx context.Context, opts Options) (*layout.Config, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	cfg := opts.Config
	if cfg == nil {
		loaded, err := layout.LoadFile(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.HasToleranceOverride() {
		cfg.ColorTolerance = opts.Tolerance
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Image == nil {
		src, err := raster.Load(cfg.ImagePath)
		if err != nil {
			return nil, err
		}
		cfg.Image = src
	}

	return cfg, nil
}

// CompileWithCacheInfo compiles the config into a plan with caching and
// returns cache hit info. The image hash must be the content hash of the
// config's raster; pass the value from hashSource via Execute, or an empty
// string to bypass the cache.
func (r *Runner) CompileWithCacheInfo(ctx context.Context, cfg *layout.Config, imageHash string, opts Options) (*plan.Plan, bool, error) {
	useCache := !opts.NoCache && imageHash != ""
	cacheKey := ""
	if useCache {
		cacheKey = r.Keyer.PlanKey(imageHash, opts.PlanKeyOpts(cfg))
	}

	// Try cache first (unless refresh requested)
	if useCache && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := plan.ReadJSON(bytes.NewReader(data))
			if err == nil {
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompile
		}
	}

	placements, err := layout.Compile(cfg)
	if err != nil {
		return nil, false, err
	}
	p := &plan.Plan{Name: cfg.Name, Placements: placements}

	// Cache the result
	if useCache {
		var buf bytes.Buffer
		if err := plan.WriteJSON(p, &buf); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, buf.Bytes(), cache.TTLPlan)
		}
	}

	return p, false, nil // Cache miss
}

// Compile is a convenience wrapper that calls CompileWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Compile(ctx context.Context, cfg *layout.Config, opts Options) (*plan.Plan, error) {
	p, _, err := r.CompileWithCacheInfo(ctx, cfg, hashSource(cfg.Image), opts)
	return p, err
}

// Emit serializes a plan in the given output format.
func (r *Runner) Emit(p *plan.Plan, format string) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		if err := plan.WriteJSON(p, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatText:
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s (%d placements)\n", p.Name, p.Count())
		for _, pl := range p.Placements {
			sb.WriteString(pl.String())
			sb.WriteByte('\n')
		}
		return []byte(sb.String()), nil
	}
	return nil, fmt.Errorf("invalid format: %q", format)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// hashSource computes a content hash over the raster's dimensions and
// sampled pixels. Two sources with identical pixel data hash identically
// regardless of how they were decoded.
func hashSource(src raster.Source) string {
	if src == nil {
		return ""
	}
	w, h := src.Width(), src.Height()
	buf := make([]byte, 0, 16+w*h*32)
	buf = binary.BigEndian.AppendUint64(buf, uint64(w))
	buf = binary.BigEndian.AppendUint64(buf, uint64(h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := src.Sample(x, y)
			for _, v := range [4]float64{r, g, b, a} {
				buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(v))
			}
		}
	}
	return cache.Hash(buf)
}

// rulesHash hashes everything rule-shaped in the config: the plan name,
// the color rules in order, and the object type defaults.
func rulesHash(cfg *layout.Config) string {
	data, _ := json.Marshal(struct {
		Name    string              `json:"name"`
		Rules   []layout.ColorRule  `json:"rules"`
		Objects []layout.ObjectType `json:"objects"`
	}{cfg.Name, cfg.Rules, cfg.Objects})
	return cache.Hash(data)
}
