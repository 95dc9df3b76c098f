package preset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirmArmThenConfirm(t *testing.T) {
	c := newConfirm()

	assert.False(t, c.arm(3), "first call arms, does not confirm")
	assert.True(t, c.armed(3))
	assert.True(t, c.arm(3), "second consecutive call confirms")
	assert.False(t, c.armed(3), "confirmation returns to unarmed")
}

func TestConfirmRetargetRearms(t *testing.T) {
	c := newConfirm()

	assert.False(t, c.arm(0))
	assert.False(t, c.arm(1), "switching target re-arms without executing")
	assert.False(t, c.armed(0))
	assert.True(t, c.armed(1))

	// The original target needs two fresh calls again.
	assert.False(t, c.arm(0))
	assert.True(t, c.arm(0))
}

func TestConfirmReset(t *testing.T) {
	c := newConfirm()
	c.arm(2)
	c.reset()

	assert.False(t, c.armed(2))
	assert.False(t, c.arm(2), "after reset the first call only arms")
}

func TestConfirmIndependentInstances(t *testing.T) {
	save := newConfirm()
	del := newConfirm()

	save.arm(0)
	assert.False(t, del.armed(0), "instances never share state")
	assert.False(t, del.arm(0))
	assert.True(t, save.arm(0))
}
