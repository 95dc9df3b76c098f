package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pixelforge/pkg/layout"
	"github.com/matzehuels/pixelforge/pkg/preset"
	"github.com/matzehuels/pixelforge/pkg/raster"
	"github.com/matzehuels/pixelforge/pkg/session"
)

// presetCommand creates the preset management command.
func (c *CLI) presetCommand() *cobra.Command {
	flags := &storeFlags{}

	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage the saved layout presets",
		Long: `Manage the saved layout presets.

Presets are named layout snapshots stored in a fixed set of ten slots.
Saving into an occupied slot and deleting a preset are destructive, so both
require confirmation (pass --yes). Saving under a name that already lives in
another slot updates that slot instead of creating a duplicate.

The preset registry is part of the session, which persists in a preference
store: a local file by default, or Redis/MongoDB via --store.`,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.Backend, "store", StoreFile, "preference store backend: file (default), redis, mongo")
	pf.StringVar(&flags.RedisAddr, "redis-addr", "localhost:6379", "redis address (host:port)")
	pf.IntVar(&flags.RedisDB, "redis-db", 0, "redis database number")
	pf.StringVar(&flags.MongoURI, "mongo-uri", "mongodb://localhost:27017", "mongodb connection URI")

	cmd.AddCommand(c.presetListCommand(flags))
	cmd.AddCommand(c.presetShowCommand(flags))
	cmd.AddCommand(c.presetSaveCommand(flags))
	cmd.AddCommand(c.presetLoadCommand(flags))
	cmd.AddCommand(c.presetDeleteCommand(flags))

	return cmd
}

// presetListCommand creates the "preset list" subcommand.
func (c *CLI) presetListCommand(flags *storeFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all preset slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), flags, func(ctx context.Context, sess *session.Session) (bool, error) {
				for i, label := range sess.Registry.Labels() {
					if sess.Registry.Occupied(i) {
						fmt.Printf("%2d  %s\n", i, StyleValue.Render(label))
					} else {
						fmt.Printf("%2d  %s\n", i, StyleDim.Render(label))
					}
				}
				printDetail("%d of %d slots used", sess.Registry.OccupiedCount(), preset.Capacity)
				return false, nil
			})
		},
	}
}

// presetShowCommand creates the "preset show" subcommand.
func (c *CLI) presetShowCommand(flags *storeFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show [slot]",
		Short: "Show the config stored in a preset slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseSlotIndex(args[0])
			if err != nil {
				return err
			}
			return c.withSession(cmd.Context(), flags, func(ctx context.Context, sess *session.Session) (bool, error) {
				cfg, ok := sess.Registry.Load(index)
				if !ok {
					printInfo("Slot %d is empty", index)
					return false, nil
				}
				printPresetConfig(sess.Registry.Labels()[index], cfg)
				return false, nil
			})
		},
	}
}

// presetSaveCommand creates the "preset save" subcommand.
func (c *CLI) presetSaveCommand(flags *storeFlags) *cobra.Command {
	var (
		name string
		yes  bool
	)

	cmd := &cobra.Command{
		Use:   "save [slot] [layout.toml]",
		Short: "Save a layout config into a preset slot",
		Long: `Save a layout config into a preset slot.

The slot must be an index from 0 to 9. Saving into an occupied slot
overwrites it, which requires confirmation via --yes. If the preset name is
already used by another slot, that slot is updated instead and the requested
slot is left untouched.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseSlotIndex(args[0])
			if err != nil {
				return err
			}
			cfg, err := layout.LoadFile(args[1])
			if err != nil {
				return err
			}
			if name == "" {
				name = cfg.Name
			}
			return c.withSession(cmd.Context(), flags, func(ctx context.Context, sess *session.Session) (bool, error) {
				return c.savePreset(sess, name, cfg, index, yes)
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "preset name (default: the layout's name)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm overwriting an occupied slot")

	return cmd
}

// savePreset runs the save with arm/confirm handling and prints the outcome.
func (c *CLI) savePreset(sess *session.Session, name string, cfg *layout.Config, index int, yes bool) (bool, error) {
	slot, outcome, err := sess.Registry.Save(name, cfg, index)
	if err != nil {
		return false, err
	}

	if outcome == preset.OutcomePending {
		if !yes {
			printWarning("Slot %d holds %q; pass --yes to overwrite", index, sess.Registry.Labels()[index])
			return false, nil
		}
		slot, outcome, err = sess.Registry.Save(name, cfg, index)
		if err != nil {
			return false, err
		}
	}

	switch outcome {
	case preset.OutcomeSaved:
		printSuccess("Saved %s to slot %d", StyleValue.Render(name), slot)
	case preset.OutcomeOverwritten:
		printSuccess("Overwrote slot %d with %s", slot, StyleValue.Render(name))
	case preset.OutcomeRedirected:
		// No write happened; the existing slot becomes the current config.
		printWarning("Name %q already lives in slot %d; switched to that preset", name, slot)
		if existing, ok := sess.Registry.Load(slot); ok {
			sess.Current = existing
			return true, nil
		}
		return false, nil
	}
	sess.Current = cfg
	return true, nil
}

// presetLoadCommand creates the "preset load" subcommand.
func (c *CLI) presetLoadCommand(flags *storeFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "load [slot]",
		Short: "Load a preset into the current session",
		Long: `Load a preset into the current session.

With a slot index the preset is loaded directly. Without one an interactive
picker opens; only occupied slots can be selected.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), flags, func(ctx context.Context, sess *session.Session) (bool, error) {
				index := -1
				if len(args) == 1 {
					parsed, err := parseSlotIndex(args[0])
					if err != nil {
						return false, err
					}
					index = parsed
				} else {
					picked, err := pickSlot(sess.Registry)
					if err != nil {
						return false, err
					}
					if picked < 0 {
						printInfo("No preset selected")
						return false, nil
					}
					index = picked
				}

				cfg, ok := sess.Registry.Load(index)
				if !ok {
					printInfo("Slot %d is empty", index)
					return false, nil
				}

				sess.Current = cfg
				printSuccess("Loaded %s from slot %d", StyleValue.Render(sess.Registry.Labels()[index]), index)
				if cfg.Image == nil && cfg.ImagePath != "" {
					printWarning("Image %s is not resolved; it will be loaded on the next compile", cfg.ImagePath)
				}
				return true, nil
			})
		},
	}
}

// presetDeleteCommand creates the "preset delete" subcommand.
func (c *CLI) presetDeleteCommand(flags *storeFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete [slot]",
		Short: "Delete the preset in a slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseSlotIndex(args[0])
			if err != nil {
				return err
			}
			return c.withSession(cmd.Context(), flags, func(ctx context.Context, sess *session.Session) (bool, error) {
				label := sess.Registry.Labels()[index]
				outcome, err := sess.Registry.Delete(index)
				if err != nil {
					return false, err
				}

				if outcome == preset.OutcomePending {
					if !yes {
						printWarning("Slot %d holds %q; pass --yes to delete", index, label)
						return false, nil
					}
					outcome, err = sess.Registry.Delete(index)
					if err != nil {
						return false, err
					}
				}

				switch outcome {
				case preset.OutcomeDeleted:
					printSuccess("Deleted %s from slot %d", StyleValue.Render(label), index)
					return true, nil
				case preset.OutcomeSlotEmpty:
					printInfo("Slot %d is already empty", index)
				}
				return false, nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the deletion")

	return cmd
}

// =============================================================================
// Session Plumbing
// =============================================================================

// withSession opens the preference store, loads the session, runs fn, and
// persists the session back when fn reports a mutation.
func (c *CLI) withSession(ctx context.Context, flags *storeFlags, fn func(context.Context, *session.Session) (bool, error)) error {
	ctx = withLogger(ctx, c.Logger)

	st, err := newStore(ctx, *flags)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	sess, err := session.Load(ctx, st)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	for _, path := range sess.Relink(raster.Load) {
		loggerFromContext(ctx).Warn("image could not be resolved", "path", path)
	}

	mutated, err := fn(ctx, sess)
	if err != nil {
		return err
	}
	if mutated {
		if err := sess.Save(ctx, st); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
	}
	return nil
}

// parseSlotIndex parses and range-checks a slot index argument.
func parseSlotIndex(arg string) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil || index < 0 || index >= preset.Capacity {
		return 0, fmt.Errorf("invalid slot index %q: must be an integer from 0 to %d", arg, preset.Capacity-1)
	}
	return index, nil
}

// printPresetConfig prints the details of a stored config.
func printPresetConfig(label string, cfg *layout.Config) {
	fmt.Println(StyleTitle.Render(label))
	printKeyValue("image", cfg.ImagePath)
	printKeyValue("spacing", strconv.FormatFloat(cfg.Spacing, 'g', -1, 64))
	printKeyValue("axes", string(cfg.Axes))
	printKeyValue("rotation", formatRotation(cfg.Rotation))
	printKeyValue("tolerance", strconv.FormatFloat(cfg.ColorTolerance, 'g', -1, 64))
	printKeyValue("rules", strconv.Itoa(len(cfg.Rules)))
	for _, rule := range cfg.Rules {
		printDetail("rgb(%.3g, %.3g, %.3g) %s %s", rule.Color.R, rule.Color.G, rule.Color.B, iconArrow, rule.ObjectKey)
	}
}

// formatRotation renders the rotation config for display.
func formatRotation(r layout.RotationConfig) string {
	if !r.Enabled {
		return "off"
	}
	var axes []string
	if r.Axes.Has(layout.AxisX) {
		axes = append(axes, "x")
	}
	if r.Axes.Has(layout.AxisY) {
		axes = append(axes, "y")
	}
	if r.Axes.Has(layout.AxisZ) {
		axes = append(axes, "z")
	}
	if len(axes) == 0 {
		return "on"
	}
	return "on (" + strings.Join(axes, ", ") + ")"
}
