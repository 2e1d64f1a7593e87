// internal/component/door.go
package component

import "go-maze-shooter/internal/config"

// DoorState - состояние двери.
type DoorState int

const (
	DoorClosed DoorState = iota
	DoorOpening
	DoorOpened
	DoorClosing
)

func (s DoorState) String() string {
	switch s {
	case DoorClosed:
		return "closed"
	case DoorOpening:
		return "opening"
	case DoorOpened:
		return "opened"
	case DoorClosing:
		return "closing"
	}
	return "unknown"
}

// Door - дверь, уезжающая вниз. Вертикальное смещение всегда BaseHeight - Progress.
type Door struct {
	State       DoorState
	Progress    float32
	Speed       float32
	MaxDistance float32
	BaseHeight  float32
}

// NewDoor создаёт закрытую дверь на высоте baseHeight.
func NewDoor(baseHeight float32) *Door {
	return &Door{
		State:       DoorClosed,
		Speed:       config.DoorSpeed,
		MaxDistance: config.DoorOpenDistance,
		BaseHeight:  baseHeight,
	}
}

// Interact переключает Closed→Opening и Opened→Closing. Во время движения вызов игнорируется.
func (d *Door) Interact() bool {
	switch d.State {
	case DoorClosed:
		d.State = DoorOpening
		return true
	case DoorOpened:
		d.State = DoorClosing
		return true
	}
	return false
}

// Update двигает дверь и возвращает true, если состояние сменилось.
func (d *Door) Update(deltaTime float64) bool {
	if deltaTime <= 0 {
		return false
	}
	step := d.Speed * float32(deltaTime)
	switch d.State {
	case DoorOpening:
		d.Progress += step
		if d.Progress >= d.MaxDistance {
			d.Progress = d.MaxDistance
			d.State = DoorOpened
			return true
		}
	case DoorClosing:
		d.Progress -= step
		if d.Progress <= 0 {
			d.Progress = 0
			d.State = DoorClosed
			return true
		}
	}
	return false
}

// Offset - текущая высота двери.
func (d *Door) Offset() float32 {
	return d.BaseHeight - d.Progress
}
