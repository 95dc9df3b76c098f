package preset

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/pixelforge/pkg/errors"
	"github.com/matzehuels/pixelforge/pkg/layout"
)

func sampleConfig(name string) *layout.Config {
	return &layout.Config{
		Name:    name,
		Spacing: 2,
		Axes:    layout.BuildXZ,
		Rules: []layout.ColorRule{
			{Color: layout.RGB{R: 1}, ObjectKey: "wall"},
		},
	}
}

func TestNewRegistryAllEmpty(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, 0, r.OccupiedCount())
	labels := r.Labels()
	require.Len(t, labels, Capacity)
	for i, label := range labels {
		assert.Equal(t, fmt.Sprintf("[Empty %d]", i), label)
	}
}

func TestSaveToEmptySlot(t *testing.T) {
	r := NewRegistry()

	idx, outcome, err := r.Save("Garden", sampleConfig("Garden"), 2)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSaved, outcome)
	assert.Equal(t, 2, idx)

	assert.True(t, r.Occupied(2))
	assert.Equal(t, "Garden", r.Labels()[2])

	cfg, ok := r.Load(2)
	require.True(t, ok)
	assert.Equal(t, "Garden", cfg.Name)
}

func TestSaveSnapshotsConfig(t *testing.T) {
	r := NewRegistry()
	cfg := sampleConfig("Garden")

	_, _, err := r.Save("Garden", cfg, 0)
	require.NoError(t, err)

	// Mutating the caller's config after Save must not leak into the slot.
	cfg.Rules[0].ObjectKey = "mutated"
	stored, ok := r.Load(0)
	require.True(t, ok)
	assert.Equal(t, "wall", stored.Rules[0].ObjectKey)

	// And mutating a loaded snapshot must not leak back either.
	stored.Rules[0].ObjectKey = "also-mutated"
	again, _ := r.Load(0)
	assert.Equal(t, "wall", again.Rules[0].ObjectKey)
}

func TestOverwriteRequiresConfirmation(t *testing.T) {
	r := NewRegistry()
	_, _, err := r.Save("First", sampleConfig("First"), 0)
	require.NoError(t, err)

	// First overwrite call: pending, no mutation.
	idx, outcome, err := r.Save("Second", sampleConfig("Second"), 0)
	require.NoError(t, err)
	assert.Equal(t, OutcomePending, outcome)
	assert.Equal(t, 0, idx)
	assert.True(t, r.SavePending(0))
	got, _ := r.Load(0)
	assert.Equal(t, "First", got.Name, "pending call must not mutate")

	// Second consecutive call to the same index: overwrite.
	_, outcome, err = r.Save("Second", sampleConfig("Second"), 0)
	require.NoError(t, err)
	assert.Equal(t, OutcomeOverwritten, outcome)
	assert.Equal(t, "Second", r.Labels()[0])
	assert.False(t, r.SavePending(0))
}

func TestInterveningSaveResetsArm(t *testing.T) {
	r := NewRegistry()
	_, _, err := r.Save("First", sampleConfig("First"), 0)
	require.NoError(t, err)

	// Arm slot 0 for overwrite.
	_, outcome, _ := r.Save("New", sampleConfig("New"), 0)
	assert.Equal(t, OutcomePending, outcome)

	// Intervening save to slot 1 resets slot 0's arm state.
	_, outcome, _ = r.Save("Other", sampleConfig("Other"), 1)
	assert.Equal(t, OutcomeSaved, outcome)
	assert.False(t, r.SavePending(0))

	// Slot 0 needs two fresh calls again.
	_, outcome, _ = r.Save("New", sampleConfig("New"), 0)
	assert.Equal(t, OutcomePending, outcome)
	_, outcome, _ = r.Save("New", sampleConfig("New"), 0)
	assert.Equal(t, OutcomeOverwritten, outcome)
}

func TestInterveningOccupiedSaveRearms(t *testing.T) {
	r := NewRegistry()
	r.Save("A", sampleConfig("A"), 0)
	r.Save("B", sampleConfig("B"), 1)

	// Arm slot 0, then target slot 1: re-arm onto 1 without executing.
	_, outcome, _ := r.Save("A2", sampleConfig("A2"), 0)
	assert.Equal(t, OutcomePending, outcome)
	_, outcome, _ = r.Save("B2", sampleConfig("B2"), 1)
	assert.Equal(t, OutcomePending, outcome)
	assert.False(t, r.SavePending(0))
	assert.True(t, r.SavePending(1))

	// Completing on slot 1 overwrites only slot 1.
	_, outcome, _ = r.Save("B2", sampleConfig("B2"), 1)
	assert.Equal(t, OutcomeOverwritten, outcome)
	got, _ := r.Load(0)
	assert.Equal(t, "A", got.Name)
}

func TestNameCollisionRedirects(t *testing.T) {
	r := NewRegistry()
	_, _, err := r.Save("Foo", sampleConfig("Foo"), 3)
	require.NoError(t, err)
	before := r.OccupiedCount()

	idx, outcome, err := r.Save("Foo", sampleConfig("Foo"), 5)
	require.NoError(t, err)
	assert.Equal(t, OutcomeRedirected, outcome)
	assert.Equal(t, 3, idx, "caller is redirected to the existing slot")
	assert.Equal(t, before, r.OccupiedCount(), "no write occurs on redirect")
	assert.False(t, r.Occupied(5))
}

func TestEmptyLabelNameDoesNotCollide(t *testing.T) {
	// A user-entered name equal to an empty slot's placeholder label must
	// not redirect: occupancy is explicit, not inferred from label text.
	r := NewRegistry()

	idx, outcome, err := r.Save("[Empty 7]", sampleConfig("x"), 2)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSaved, outcome)
	assert.Equal(t, 2, idx)
	assert.Equal(t, "[Empty 7]", r.Labels()[2])
	assert.False(t, r.Occupied(7))
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	r := NewRegistry()
	r.Save("Doomed", sampleConfig("Doomed"), 4)

	outcome, err := r.Delete(4)
	require.NoError(t, err)
	assert.Equal(t, OutcomePending, outcome)
	assert.True(t, r.Occupied(4), "pending delete must not mutate")
	assert.True(t, r.DeletePending(4))

	outcome, err = r.Delete(4)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeleted, outcome)
	assert.False(t, r.Occupied(4))
	assert.Equal(t, "[Empty 4]", r.Labels()[4], "slot stays present, contents cleared")
}

func TestDeleteEmptySlot(t *testing.T) {
	r := NewRegistry()
	outcome, err := r.Delete(0)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSlotEmpty, outcome)
}

func TestSaveAndDeleteConfirmationsIndependent(t *testing.T) {
	r := NewRegistry()
	r.Save("A", sampleConfig("A"), 0)

	// Arm a delete on slot 0, then arm a save on slot 0: both protocols
	// track their own state and neither confirms the other.
	outcome, _ := r.Delete(0)
	assert.Equal(t, OutcomePending, outcome)

	_, saveOutcome, _ := r.Save("B", sampleConfig("B"), 0)
	assert.Equal(t, OutcomePending, saveOutcome)

	outcome, _ = r.Delete(0)
	assert.Equal(t, OutcomeDeleted, outcome, "delete confirms on its own second call")
}

func TestLoadEmptySlot(t *testing.T) {
	r := NewRegistry()
	cfg, ok := r.Load(1)
	assert.Nil(t, cfg)
	assert.False(t, ok)

	// Out-of-range indexes behave like empty slots on read.
	_, ok = r.Load(-1)
	assert.False(t, ok)
	_, ok = r.Load(Capacity)
	assert.False(t, ok)
}

func TestIndexOutOfRange(t *testing.T) {
	r := NewRegistry()

	_, _, err := r.Save("X", sampleConfig("X"), Capacity)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidIndex))

	_, err = r.Delete(-1)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidIndex))
}

func TestInvalidPresetName(t *testing.T) {
	r := NewRegistry()
	_, _, err := r.Save("", sampleConfig("x"), 0)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidPresetName))
}

func TestLabelsSnapshot(t *testing.T) {
	r := NewRegistry()
	labels := r.Labels()
	labels[0] = "tampered"
	assert.Equal(t, "[Empty 0]", r.Labels()[0], "Labels returns a copy")
}

func TestRegistryRoundTrip(t *testing.T) {
	r := NewRegistry()
	r.Save("Garden", sampleConfig("Garden"), 1)
	r.Save("Maze", sampleConfig("Maze"), 7)

	// Arm a pending overwrite; confirmation state must not survive the
	// round trip.
	_, outcome, _ := r.Save("Garden2", sampleConfig("Garden2"), 1)
	assert.Equal(t, OutcomePending, outcome)

	data, err := json.Marshal(r)
	require.NoError(t, err)

	restored := NewRegistry()
	require.NoError(t, json.Unmarshal(data, restored))

	assert.Equal(t, r.Labels(), restored.Labels())
	assert.Equal(t, 2, restored.OccupiedCount())

	cfg, ok := restored.Load(7)
	require.True(t, ok)
	assert.Equal(t, "Maze", cfg.Name)
	assert.Equal(t, layout.BuildXZ, cfg.Axes)

	// Fresh confirm state: the next overwrite call is pending again.
	_, outcome, _ = restored.Save("Garden2", sampleConfig("Garden2"), 1)
	assert.Equal(t, OutcomePending, outcome)
}
