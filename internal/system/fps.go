// internal/system/fps.go
package system

import "time"

// FPSCounter считает кадры в окне и пересчитывает значение раз в окно.
type FPSCounter struct {
	window time.Duration
	frames int
	last   time.Time
	fps    float64
}

func NewFPSCounter(window time.Duration) *FPSCounter {
	return &FPSCounter{window: window}
}

// Tick отмечает кадр. updated - значение пересчитано на этом кадре.
func (f *FPSCounter) Tick(now time.Time) (fps float64, updated bool) {
	if f.last.IsZero() {
		f.last = now
		return f.fps, false
	}
	f.frames++
	elapsed := now.Sub(f.last)
	if elapsed < f.window {
		return f.fps, false
	}
	f.fps = float64(f.frames) / elapsed.Seconds()
	f.frames = 0
	f.last = now
	return f.fps, true
}

func (f *FPSCounter) FPS() float64 { return f.fps }
