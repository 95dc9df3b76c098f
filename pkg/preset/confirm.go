package preset

// confirm is a two-step arm/confirm state machine keyed by slot index.
//
// The first action call targeting index i arms the machine; a second
// consecutive call targeting the same i confirms and executes. A call
// targeting a different index re-arms without executing. Save and Delete
// each own an independent instance so the two protocols never interact.
//
// Confirm state is session-transient: it is never serialized and resets
// on process restart.
type confirm struct {
	armedIndex int
	armCount   int
}

// unarmedIndex marks the unarmed state; valid slot indexes are >= 0.
const unarmedIndex = -1

func newConfirm() confirm {
	return confirm{armedIndex: unarmedIndex}
}

// arm records an action call targeting index and reports whether the
// destructive effect is now confirmed. On confirmation the machine
// returns to the unarmed state.
func (c *confirm) arm(index int) bool {
	if c.armedIndex != index {
		c.armedIndex = index
		c.armCount = 0
	}
	c.armCount++
	if c.armCount > 1 {
		c.reset()
		return true
	}
	return false
}

// reset returns the machine to the unarmed state.
func (c *confirm) reset() {
	c.armedIndex = unarmedIndex
	c.armCount = 0
}

// armed reports whether the machine is currently armed for index.
func (c *confirm) armed(index int) bool {
	return c.armedIndex == index && c.armCount > 0
}
