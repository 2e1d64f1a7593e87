package entity

import (
	"testing"

	"go-maze-shooter/internal/catalog"
	"go-maze-shooter/internal/component"
	"go-maze-shooter/internal/defs"
	"go-maze-shooter/internal/event"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContext struct {
	player   *component.Player
	level    int
	advances int
	events   []event.Event
}

func (c *fakeContext) Player() *component.Player { return c.player }
func (c *fakeContext) Level() int                { return c.level }
func (c *fakeContext) RequestNextLevel()         { c.advances++ }
func (c *fakeContext) Dispatch(e event.Event)    { c.events = append(c.events, e) }

func templates() map[string]*catalog.Template {
	one := mgl32.Vec3{1, 1, 1}
	return map[string]*catalog.Template{
		"wall":  {Name: "wall", Kind: defs.TokenProp, Solid: true, Scale: one},
		"door":  {Name: "door", Kind: defs.TokenDoor, Solid: true, Scale: one},
		"exit":  {Name: "exit", Kind: defs.TokenEndLevel, Solid: true, Scale: one},
		"guard": {Name: "guard", Kind: defs.TokenEnemy, Radius: 0.4, Health: 20, Scale: one, Transparent: true},
		"coin":  {Name: "coin", Kind: defs.TokenCollectible, CollectType: defs.CollectGold, Value: 5, Scale: one},
		"lamp": {Name: "lamp", Kind: defs.TokenProp, LightSource: true, Scale: one,
			Light: component.Light{Diffuse: mgl32.Vec3{0.5, 0.5, 0.5}}},
	}
}

func TestKindOf(t *testing.T) {
	tpl := templates()
	assert.Equal(t, KindProp, KindOf(tpl["wall"]))
	assert.Equal(t, KindDoor, KindOf(tpl["door"]))
	assert.Equal(t, KindEndMarker, KindOf(tpl["exit"]))
	assert.Equal(t, KindEnemy, KindOf(tpl["guard"]))
	assert.Equal(t, KindCollectible, KindOf(tpl["coin"]))
	assert.Equal(t, KindLight, KindOf(tpl["lamp"]))
}

func TestUniformDispatch(t *testing.T) {
	tpl := templates()
	w := NewWorld()
	ctx := &fakeContext{player: component.NewPlayer(25, 0, 25, 3), level: 1}

	wall := w.Spawn(tpl["wall"], mgl32.Vec3{0.5, 0, 0.5})
	door := w.Spawn(tpl["door"], mgl32.Vec3{1.5, 0, 0.5})
	exit := w.Spawn(tpl["exit"], mgl32.Vec3{2.5, 0, 0.5})
	guard := w.Spawn(tpl["guard"], mgl32.Vec3{3.5, 0, 0.5})
	overlay := NewStatusOverlay(w.NewID(), 24)

	all := []*Entity{wall, door, exit, guard, overlay}
	handled := 0
	for _, e := range all {
		if e.Interact(ctx) {
			handled++
		}
	}
	assert.Equal(t, 2, handled, "only the door and the end marker react")
	assert.Equal(t, component.DoorOpening, door.Door.State)
	assert.Equal(t, 1, ctx.advances)
	require.Len(t, ctx.events, 1)
	assert.Equal(t, event.DoorStateChanged, ctx.events[0].Type)

	for i := 0; i < 30; i++ {
		for _, e := range all {
			e.Update(0.1, ctx)
		}
	}
	assert.Equal(t, component.DoorOpened, door.Door.State)
	assert.InDelta(t, -door.Door.MaxDistance, door.Transform.Origin.Y(), 1e-6, "door slides down")
	assert.Equal(t, mgl32.Vec3{0.5, 0, 0.5}, wall.Transform.Origin)
	assert.Equal(t, uint64(1), overlay.Overlay.Version, "overlay refreshed once, then clean")
	assert.Equal(t, 20, guard.Health)
}

func TestTemplatesAreNotShared(t *testing.T) {
	tpl := templates()
	w := NewWorld()
	a := w.Spawn(tpl["guard"], mgl32.Vec3{})
	b := w.Spawn(tpl["guard"], mgl32.Vec3{1, 0, 0})

	a.Health -= 15
	a.Transform.Origin[0] = 9
	assert.Equal(t, 20, b.Health)
	assert.Equal(t, 20, tpl["guard"].Health)
	assert.Equal(t, float32(1), b.Transform.Origin.X())
	assert.NotEqual(t, a.ID, b.ID)
}

func TestWorld(t *testing.T) {
	tpl := templates()
	w := NewWorld()
	var ids []uint64
	for i := 0; i < 5; i++ {
		e := w.Spawn(tpl["coin"], mgl32.Vec3{float32(i), 0, 0})
		ids = append(ids, uint64(e.ID))
	}
	lamp := w.Spawn(tpl["lamp"], mgl32.Vec3{7, 1, 7})

	t.Run("remove keeps order", func(t *testing.T) {
		require.True(t, w.Remove(w.Entities[1].ID))
		assert.False(t, w.Remove(999))
		assert.Len(t, w.Entities, 5)
		assert.Equal(t, float32(2), w.Entities[1].Transform.Origin.X())
	})

	t.Run("remove if visits each entity once", func(t *testing.T) {
		calls := 0
		removed := w.RemoveIf(func(e *Entity) bool {
			calls++
			return e.Kind == KindCollectible && e.Transform.Origin.X() >= 3
		})
		assert.Equal(t, 5, calls)
		assert.Len(t, removed, 2)
		assert.Len(t, w.Entities, 3)
		assert.Same(t, lamp, w.Find(lamp.ID))
	})

	t.Run("lights carry their position", func(t *testing.T) {
		lights := w.Lights()
		require.Len(t, lights, 1)
		assert.Equal(t, mgl32.Vec3{7, 1, 7}, lights[0].Position)
		assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, lights[0].Diffuse)
	})

	t.Run("nearest interactable", func(t *testing.T) {
		near := w.Spawn(tpl["door"], mgl32.Vec3{1, 0, 1})
		w.Spawn(tpl["exit"], mgl32.Vec3{1.5, 0, 1.5})
		got := w.NearestInteractable(mgl32.Vec3{0.9, 0.4, 1}, 1.2)
		assert.Same(t, near, got)
		assert.Nil(t, w.NearestInteractable(mgl32.Vec3{10, 0, 10}, 1.2))
	})

	t.Run("compact projectiles", func(t *testing.T) {
		for i := 0; i < 4; i++ {
			p := component.NewProjectile(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, 20, 10, 0.05, 0)
			p.Active = i%2 == 0
			w.AddProjectile(p)
		}
		assert.Equal(t, 2, w.CompactProjectiles())
		assert.Len(t, w.Projectiles, 2)
	})

	w.Reset()
	assert.Empty(t, w.Entities)
	assert.Empty(t, w.Projectiles)
	assert.Greater(t, uint64(w.NewID()), ids[len(ids)-1], "ids keep growing across levels")
}
