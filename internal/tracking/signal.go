// internal/tracking/signal.go
package tracking

import "github.com/go-gl/mathgl/mgl32"

// Signal - грубое направление, полученное из положения лица в кадре.
type Signal int

const (
	SignalNone Signal = iota
	SignalLeft
	SignalRight
)

func (s Signal) String() string {
	switch s {
	case SignalLeft:
		return "left"
	case SignalRight:
		return "right"
	default:
		return "none"
	}
}

// ToSignal переводит нормализованный центр лица в сигнал поворота.
// Кадр камеры зеркальный, поэтому лицо в левой части кадра даёт поворот вправо.
func ToSignal(center mgl32.Vec2, hasFace bool, rightThreshold, leftThreshold float32) Signal {
	if !hasFace {
		return SignalNone
	}
	switch {
	case center.X() < rightThreshold:
		return SignalRight
	case center.X() > leftThreshold:
		return SignalLeft
	default:
		return SignalNone
	}
}
