package component

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoorCycle(t *testing.T) {
	d := NewDoor(0)
	require.Equal(t, DoorClosed, d.State)

	t.Run("update without interact stays closed", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			d.Update(0.1)
		}
		assert.Equal(t, DoorClosed, d.State)
		assert.Zero(t, d.Progress)
	})

	t.Run("double interact starts one opening", func(t *testing.T) {
		assert.True(t, d.Interact())
		assert.False(t, d.Interact(), "calls during transit are ignored")
		assert.Equal(t, DoorOpening, d.State)
	})

	t.Run("opens to max distance", func(t *testing.T) {
		changed := false
		for i := 0; i < 100 && d.State == DoorOpening; i++ {
			changed = d.Update(0.1)
		}
		assert.True(t, changed)
		assert.Equal(t, DoorOpened, d.State)
		assert.Equal(t, d.MaxDistance, d.Progress)
		assert.Equal(t, -d.MaxDistance, d.Offset())
	})

	t.Run("closes back to zero", func(t *testing.T) {
		assert.True(t, d.Interact())
		assert.Equal(t, DoorClosing, d.State)
		assert.False(t, d.Interact())
		for i := 0; i < 100 && d.State == DoorClosing; i++ {
			d.Update(0.1)
		}
		assert.Equal(t, DoorClosed, d.State)
		assert.Zero(t, d.Progress)
		assert.Zero(t, d.Offset())
	})
}

func TestDoorProgressBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	d := NewDoor(0.5)
	for i := 0; i < 5000; i++ {
		if rng.Intn(10) == 0 {
			d.Interact()
		}
		d.Update(rng.Float64() * 0.5)
		require.GreaterOrEqual(t, d.Progress, float32(0))
		require.LessOrEqual(t, d.Progress, d.MaxDistance)
		require.InDelta(t, 0.5-d.Progress, d.Offset(), 1e-6)
	}
}

func TestDoorStateString(t *testing.T) {
	assert.Equal(t, "opening", DoorOpening.String())
	assert.Equal(t, "unknown", DoorState(42).String())
}
