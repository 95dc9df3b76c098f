package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pixelforge/pkg/pipeline"
)

// compileCommand creates the compile command for turning a layout config
// into a placement plan.
func (c *CLI) compileCommand() *cobra.Command {
	var (
		output    string
		format    string
		tolerance float64
		noCache   bool
		refresh   bool
	)

	cmd := &cobra.Command{
		Use:   "compile [layout.toml]",
		Short: "Compile a layout config into a placement plan",
		Long: `Compile a layout config into a placement plan.

The compile command reads a layout config (TOML), decodes the image it
references, and walks every pixel: the pixel's color selects object types
via the config's color rules, its coordinates map onto the configured build
plane, and its alpha channel optionally drives rotation.

Results are cached locally, keyed by the image content and the config, so
recompiling an unchanged layout is instant. Use --refresh to force a
recompile or --no-cache to disable caching entirely.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(format); err != nil {
				return err
			}
			return c.runCompile(withLogger(cmd.Context(), c.Logger), args[0], pipeline.Options{
				ConfigPath: args[0],
				Format:     format,
				Tolerance:  tolerance,
				NoCache:    noCache,
				Refresh:    refresh,
			}, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: layout name + format extension)")
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatJSON, "output format: json (default), text")
	cmd.Flags().Float64Var(&tolerance, "tolerance", pipeline.ToleranceUnset, "color match tolerance override (0 = exact match)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompile even if a cached plan exists")

	return cmd
}

// runCompile executes the pipeline and writes the emitted plan.
func (c *CLI) runCompile(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	opts.Logger = logger
	prog := newProgress(logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Compiling %s...", filepath.Base(input)))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Compilation failed")
		return fmt.Errorf("compile: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Compiled %d placements", result.Stats.Placements))

	data, err := runner.Emit(result.Plan, opts.Format)
	if err != nil {
		return fmt.Errorf("emit: %w", err)
	}

	path := output
	if path == "" {
		path = outputPath(input, result.Plan.Name, opts.Format)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	printSuccess("Compiled %s", StyleValue.Render(result.Plan.Name))
	printStats(result.Stats.Pixels, result.Stats.Placements, result.CacheInfo.PlanHit)
	printFile(path)
	return nil
}

// outputPath derives the default output file name from the plan name (or
// the input file name when the plan is unnamed) and the output format.
func outputPath(input, name, format string) string {
	base := name
	if base == "" {
		base = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}
	ext := ".json"
	if format == pipeline.FormatText {
		ext = ".txt"
	}
	return base + ext
}
