package sfx

import (
	"math"
	"testing"
	"time"

	"go-maze-shooter/internal/config"
	"go-maze-shooter/internal/event"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func drain(s interface {
	Stream([][2]float64) (int, bool)
}) (total int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		total += n
		for _, smp := range buf[:n] {
			if v := smp[0]; v > peak {
				peak = v
			} else if -v > peak {
				peak = -v
			}
		}
		if !ok {
			return total, peak
		}
	}
}

func TestCueLength(t *testing.T) {
	p := New(config.AudioSettings{Enabled: true, Volume: 1}, zaptest.NewLogger(t))
	cue := Cue{Freq: 440, EndFreq: 440, Duration: 100 * time.Millisecond}

	n, peak := drain(p.Streamer(cue))
	assert.Equal(t, sampleRate.N(100*time.Millisecond), n)
	assert.Greater(t, peak, 0.5)
	assert.LessOrEqual(t, peak, 1.0)
}

func TestSweepFadesOut(t *testing.T) {
	p := New(config.AudioSettings{Enabled: true, Volume: 1}, zaptest.NewLogger(t))
	cue := Cue{Freq: 300, EndFreq: 60, Duration: 100 * time.Millisecond, Wave: WaveSaw}
	s := p.Streamer(cue)

	total := sampleRate.N(cue.Duration)
	buf := make([][2]float64, total)
	n, ok := s.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, total, n)
	assert.Less(t, math.Abs(buf[n-1][0]), 0.01, "к концу звук затухает")

	n, _ = s.Stream(buf)
	assert.Zero(t, n)
}

func TestHighSineFallsBackToTone(t *testing.T) {
	p := New(config.AudioSettings{Enabled: true, Volume: 1}, zaptest.NewLogger(t))
	// Выше частоты Найквиста готовый генератор отказывается работать.
	cue := Cue{Freq: 30000, EndFreq: 30000, Duration: 20 * time.Millisecond}

	n, _ := drain(p.Streamer(cue))
	assert.Equal(t, sampleRate.N(cue.Duration), n)
}

func TestSilentVolume(t *testing.T) {
	p := New(config.AudioSettings{Enabled: true, Volume: 0}, zaptest.NewLogger(t))
	_, peak := drain(p.Streamer(Cue{Freq: 440, EndFreq: 440, Duration: 50 * time.Millisecond, Wave: WaveSquare}))
	assert.Zero(t, peak)
}

func TestUninitializedPlayerIgnoresEvents(t *testing.T) {
	p := New(config.AudioSettings{Enabled: true, Volume: 1}, zaptest.NewLogger(t))
	d := event.NewDispatcher()
	p.Subscribe(d)

	assert.NotPanics(t, func() {
		d.Dispatch(event.Event{Type: event.EnemyKilled})
		d.Dispatch(event.Event{Type: event.LevelLoaded})
	})
	p.Close()
}

func TestCloseUnsubscribes(t *testing.T) {
	p := New(config.AudioSettings{Enabled: true, Volume: 1}, zaptest.NewLogger(t))
	d := event.NewDispatcher()
	p.Subscribe(d)
	p.Close()

	// После закрытия проигрыватель не получает событий; проверяем
	// через соседнего подписчика, что диспетчер остался рабочим.
	calls := 0
	d.Subscribe(event.EnemyKilled, event.ListenerFunc(func(event.Event) { calls++ }))
	d.Dispatch(event.Event{Type: event.EnemyKilled})
	assert.Equal(t, 1, calls)
	assert.Nil(t, p.dispatcher)
}

func TestEveryCueHasDuration(t *testing.T) {
	for typ, cue := range DefaultCues {
		assert.Positive(t, cue.Duration, typ)
		assert.Positive(t, cue.Freq, typ)
	}
}
