package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct{ got []Event }

func (r *recorder) OnEvent(e Event) { r.got = append(r.got, e) }

func TestDispatcher(t *testing.T) {
	d := NewDispatcher()
	a, b := &recorder{}, &recorder{}

	d.Subscribe(EnemyKilled, a)
	d.SubscribeAll(b)

	d.Dispatch(Event{Type: EnemyKilled, Data: Fields{"id": 3}})
	d.Dispatch(Event{Type: ItemCollected})

	assert.Len(t, a.got, 1)
	assert.Equal(t, Fields{"id": 3}, a.got[0].Data)
	assert.Len(t, b.got, 2)

	d.Unsubscribe(EnemyKilled, a)
	d.Dispatch(Event{Type: EnemyKilled})
	assert.Len(t, a.got, 1)
	assert.Len(t, b.got, 3)

	t.Run("listener func", func(t *testing.T) {
		calls := 0
		d.Subscribe(LevelLoaded, ListenerFunc(func(Event) { calls++ }))
		d.Dispatch(Event{Type: LevelLoaded})
		assert.Equal(t, 1, calls)
	})
}

func TestUnsubscribeListenerFunc(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	f := ListenerFunc(func(Event) { calls++ })
	r := &recorder{}
	d.Subscribe(EnemyHit, f)
	d.Subscribe(EnemyHit, r)

	assert.NotPanics(t, func() { d.Unsubscribe(EnemyHit, f) })
	assert.NotPanics(t, func() { d.Unsubscribe(EnemyHit, r) })

	d.Dispatch(Event{Type: EnemyHit})
	assert.Equal(t, 1, calls, "функцию отписать нельзя")
	assert.Empty(t, r.got)
}

func TestUnsubscribeKeepsOtherListeners(t *testing.T) {
	d := NewDispatcher()
	a, b := &recorder{}, &recorder{}
	d.Subscribe(ItemCollected, a)
	d.Subscribe(ItemCollected, b)

	d.Unsubscribe(ItemCollected, b)
	d.Unsubscribe(LevelLoaded, a)
	d.Dispatch(Event{Type: ItemCollected})

	assert.Len(t, a.got, 1)
	assert.Empty(t, b.got)
}
