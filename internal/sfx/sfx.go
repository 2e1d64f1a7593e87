// Package sfx plays short synthesized cues for game events.
package sfx

import (
	"math"
	"sync"
	"time"

	"go-maze-shooter/internal/config"
	"go-maze-shooter/internal/event"
	"go-maze-shooter/internal/gameerr"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const sampleRate = beep.SampleRate(44100)

// Wave - форма сигнала.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
)

// Cue - короткий звук: частота скользит от Freq к EndFreq за Duration.
// Синус с Freq == EndFreq играется готовым генератором без затухания.
type Cue struct {
	Freq     float64
	EndFreq  float64
	Duration time.Duration
	Wave     Wave
}

// DefaultCues - звук на каждое событие, которое стоит озвучить.
var DefaultCues = map[event.EventType]Cue{
	event.ProjectileFired:     {Freq: 220, EndFreq: 110, Duration: 60 * time.Millisecond, Wave: WaveSquare},
	event.EnemyHit:            {Freq: 160, EndFreq: 120, Duration: 80 * time.Millisecond, Wave: WaveSaw},
	event.EnemyKilled:         {Freq: 300, EndFreq: 60, Duration: 250 * time.Millisecond, Wave: WaveSaw},
	event.ItemCollected:       {Freq: 660, EndFreq: 990, Duration: 120 * time.Millisecond, Wave: WaveSine},
	event.DoorStateChanged:    {Freq: 90, EndFreq: 70, Duration: 200 * time.Millisecond, Wave: WaveSquare},
	event.LevelLoaded:         {Freq: 523.25, EndFreq: 523.25, Duration: 150 * time.Millisecond, Wave: WaveSine},
	event.LevelCompleted:      {Freq: 440, EndFreq: 880, Duration: 400 * time.Millisecond, Wave: WaveSine},
	event.TrackerDisconnected: {Freq: 400, EndFreq: 200, Duration: 300 * time.Millisecond, Wave: WaveSquare},
}

// Player озвучивает события диспетчера. Без звукового устройства молчит.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	cues        map[event.EventType]Cue
	initialized bool
	dispatcher  *event.Dispatcher
	log         *zap.Logger
}

func New(settings config.AudioSettings, log *zap.Logger) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: settings.Volume,
		cues:   DefaultCues,
		log:    log.Named("sfx"),
	}
}

// Init открывает устройство. Ошибка не фатальна: игра продолжается без звука.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return gameerr.Degrade(p.log, "audio", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	p.log.Info("Звук включён", zap.Float64("volume", p.volume))
	return nil
}

// Subscribe подписывает проигрыватель на все озвученные события.
func (p *Player) Subscribe(d *event.Dispatcher) {
	for t := range p.cues {
		d.Subscribe(t, p)
	}
	p.dispatcher = d
}

// Unsubscribe снимает подписки, сделанные Subscribe.
func (p *Player) Unsubscribe() {
	if p.dispatcher == nil {
		return
	}
	for t := range p.cues {
		p.dispatcher.Unsubscribe(t, p)
	}
	p.dispatcher = nil
}

func (p *Player) OnEvent(e event.Event) {
	cue, ok := p.cues[e.Type]
	if !ok {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	s := p.Streamer(cue)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Streamer собирает конечный поток для звука с учётом громкости.
func (p *Player) Streamer(cue Cue) beep.Streamer {
	tone := beep.Take(sampleRate.N(cue.Duration), p.source(cue))
	if p.volume <= 0 {
		return &effects.Volume{Streamer: tone, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: tone, Base: 2, Volume: math.Log2(p.volume)}
}

func (p *Player) source(cue Cue) beep.Streamer {
	if cue.Wave == WaveSine && cue.Freq == cue.EndFreq {
		sine, err := generators.SineTone(sampleRate, cue.Freq)
		if err == nil {
			return sine
		}
		p.log.Debug("Генератор синуса недоступен", zap.Float64("freq", cue.Freq), zap.Error(err))
	}
	return newTone(cue, sampleRate)
}

// Close отписывается от событий и глушит всё, что ещё звучит.
func (p *Player) Close() {
	p.Unsubscribe()
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// tone - генератор с линейным скольжением частоты и затуханием к концу.
type tone struct {
	cue      Cue
	rate     beep.SampleRate
	phase    float64
	position int
	total    int
}

func newTone(cue Cue, rate beep.SampleRate) *tone {
	return &tone{cue: cue, rate: rate, total: rate.N(cue.Duration)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.total <= 0 {
		return 0, false
	}
	for i := range samples {
		if t.position >= t.total {
			return i, i > 0
		}
		progress := float64(t.position) / float64(t.total)
		freq := t.cue.Freq + (t.cue.EndFreq-t.cue.Freq)*progress

		var v float64
		switch t.cue.Wave {
		case WaveSquare:
			if t.phase < 0.5 {
				v = 1
			} else {
				v = -1
			}
		case WaveSaw:
			v = 2 * (t.phase - 0.5)
		default:
			v = math.Sin(2 * math.Pi * t.phase)
		}
		v *= 1 - progress

		samples[i][0], samples[i][1] = v, v
		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }
