// Package preset implements the fixed-capacity registry of named layout
// configuration snapshots.
//
// The registry holds exactly [Capacity] slots addressed by index. Slots
// are created empty, populated by Save, and returned to empty by Delete;
// the registry never grows or shrinks. Destructive actions (overwriting
// an occupied slot, deleting a slot) require two consecutive calls
// targeting the same index - the arm/confirm protocol - with independent
// confirmation state for save and delete.
//
// Occupancy is tracked as an explicit boolean per slot, never inferred
// from the display label, so a preset literally named "[Empty 3]" stays
// distinguishable from an actually empty slot.
package preset

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/pixelforge/pkg/errors"
	"github.com/matzehuels/pixelforge/pkg/layout"
	"github.com/matzehuels/pixelforge/pkg/raster"
)

// Capacity is the fixed number of preset slots. It never changes at
// runtime; persisted registries are padded or truncated to it on load.
const Capacity = 10

// Outcome describes the result of a registry operation.
type Outcome string

// Registry operation outcomes. PendingConfirmation and
// RedirectedToExisting are informational, not errors.
const (
	OutcomeSaved       Outcome = "saved"
	OutcomeOverwritten Outcome = "overwritten"
	OutcomePending     Outcome = "pending_confirmation"
	OutcomeRedirected  Outcome = "redirected_to_existing"
	OutcomeDeleted     Outcome = "deleted"
	OutcomeSlotEmpty   Outcome = "slot_empty"
)

// Slot is one fixed-index storage unit: empty, or a named config snapshot.
type Slot struct {
	Name     string         `json:"name,omitempty"`
	Config   *layout.Config `json:"config,omitempty"`
	Occupied bool           `json:"occupied"`
}

// Registry is a fixed-size indexed store of named layout snapshots.
// It is owned by a single session and not safe for concurrent use.
type Registry struct {
	slots  [Capacity]Slot
	labels []string

	saveConfirm   confirm
	deleteConfirm confirm
}

// NewRegistry creates a registry with all slots empty.
func NewRegistry() *Registry {
	r := &Registry{
		saveConfirm:   newConfirm(),
		deleteConfirm: newConfirm(),
	}
	r.recomputeLabels()
	return r
}

// Save stores config under name into the slot at index.
//
// Occupied slot: the overwrite must be confirmed by a second consecutive
// Save targeting the same index; the first call returns OutcomePending
// without mutating. Empty slot: if name already matches an occupied
// slot's display name anywhere in the registry, no write happens and the
// caller is redirected to that slot's index (OutcomeRedirected);
// otherwise the snapshot is written (OutcomeSaved).
//
// The returned index is where the config lives (or would live): the
// redirect target for OutcomeRedirected, index otherwise.
func (r *Registry) Save(name string, cfg *layout.Config, index int) (int, Outcome, error) {
	if err := r.checkIndex(index); err != nil {
		return index, "", err
	}
	if err := errors.ValidatePresetName(name); err != nil {
		return index, "", err
	}

	if r.slots[index].Occupied {
		if !r.saveConfirm.arm(index) {
			return index, OutcomePending, nil
		}
		r.writeSlot(index, name, cfg)
		return index, OutcomeOverwritten, nil
	}

	// Saving into an empty slot is never destructive; clear any pending
	// overwrite so a later occupied-slot save starts a fresh protocol.
	r.saveConfirm.reset()

	if existing := r.findName(name); existing >= 0 {
		return existing, OutcomeRedirected, nil
	}

	r.writeSlot(index, name, cfg)
	return index, OutcomeSaved, nil
}

// Load returns a snapshot of the config at index. The second return is
// false for an empty slot; callers must check it, no error is raised.
func (r *Registry) Load(index int) (*layout.Config, bool) {
	if index < 0 || index >= Capacity {
		return nil, false
	}
	slot := r.slots[index]
	if !slot.Occupied {
		return nil, false
	}
	return slot.Config.Clone(), true
}

// Delete clears the slot at index after arm/confirm. The slot stays
// present at its index; only its contents are cleared. Deleting an empty
// slot is a no-op (OutcomeSlotEmpty) and disarms the delete protocol.
func (r *Registry) Delete(index int) (Outcome, error) {
	if err := r.checkIndex(index); err != nil {
		return "", err
	}

	if !r.slots[index].Occupied {
		r.deleteConfirm.reset()
		return OutcomeSlotEmpty, nil
	}

	if !r.deleteConfirm.arm(index) {
		return OutcomePending, nil
	}

	r.slots[index] = Slot{}
	r.recomputeLabels()
	return OutcomeDeleted, nil
}

// Labels returns one display label per slot: the stored name for occupied
// slots, "[Empty {index}]" otherwise. The slice is a copy; the backing
// array is recomputed in full after every mutation.
func (r *Registry) Labels() []string {
	out := make([]string, len(r.labels))
	copy(out, r.labels)
	return out
}

// Occupied reports whether the slot at index holds a snapshot.
// Out-of-range indexes report false.
func (r *Registry) Occupied(index int) bool {
	return index >= 0 && index < Capacity && r.slots[index].Occupied
}

// OccupiedCount returns the number of occupied slots.
func (r *Registry) OccupiedCount() int {
	n := 0
	for i := range r.slots {
		if r.slots[i].Occupied {
			n++
		}
	}
	return n
}

// RelinkImage attaches a resolved raster handle to the occupied slot at
// index. Relinking restores a runtime handle after a session reload; it
// never changes stored snapshot fields, so it bypasses the overwrite
// confirmation protocol. Returns false for empty or out-of-range slots.
func (r *Registry) RelinkImage(index int, img raster.Source) bool {
	if index < 0 || index >= Capacity || !r.slots[index].Occupied || r.slots[index].Config == nil {
		return false
	}
	r.slots[index].Config.Image = img
	return true
}

// SavePending reports whether an overwrite of index is awaiting its
// confirming call.
func (r *Registry) SavePending(index int) bool { return r.saveConfirm.armed(index) }

// DeletePending reports whether a delete of index is awaiting its
// confirming call.
func (r *Registry) DeletePending(index int) bool { return r.deleteConfirm.armed(index) }

func (r *Registry) writeSlot(index int, name string, cfg *layout.Config) {
	r.slots[index] = Slot{Name: name, Config: cfg.Clone(), Occupied: true}
	r.recomputeLabels()
}

// findName returns the index of the occupied slot whose display name
// equals name, or -1. Linear scan; Capacity is small and fixed.
func (r *Registry) findName(name string) int {
	for i := range r.slots {
		if r.slots[i].Occupied && r.slots[i].Name == name {
			return i
		}
	}
	return -1
}

func (r *Registry) checkIndex(index int) error {
	if index < 0 || index >= Capacity {
		return errors.New(errors.ErrCodeInvalidIndex, "slot index %d out of range [0,%d)", index, Capacity)
	}
	return nil
}

// recomputeLabels rebuilds the whole display-label array from slot
// contents. Labels are never patched incrementally.
func (r *Registry) recomputeLabels() {
	labels := make([]string, 0, Capacity)
	for i := range r.slots {
		if r.slots[i].Occupied {
			labels = append(labels, r.slots[i].Name)
		} else {
			labels = append(labels, fmt.Sprintf("[Empty %d]", i))
		}
	}
	r.labels = labels
}

// =============================================================================
// Serialization
// =============================================================================

// registryFile is the JSON wire format. Confirmation state is transient
// and deliberately absent.
type registryFile struct {
	Slots []Slot `json:"slots"`
}

// MarshalJSON serializes all Capacity slots.
func (r *Registry) MarshalJSON() ([]byte, error) {
	return json.Marshal(registryFile{Slots: r.slots[:]})
}

// UnmarshalJSON restores slot contents, pads or truncates to Capacity,
// rebuilds labels, and resets both confirmation machines.
func (r *Registry) UnmarshalJSON(data []byte) error {
	var file registryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return err
	}

	var slots [Capacity]Slot
	copy(slots[:], file.Slots)
	r.slots = slots
	r.saveConfirm = newConfirm()
	r.deleteConfirm = newConfirm()
	r.recomputeLabels()
	return nil
}
