// internal/tracking/mailbox.go
package tracking

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Rect - прямоугольник обнаруженного лица в пикселях кадра.
type Rect struct {
	X, Y, W, H float32
}

// Frame - результат одного захвата. Пустой кадр означает, что устройство отключилось.
type Frame struct {
	Seq    uint64 `json:"seq"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Faces  []Rect `json:"faces"`
}

func (f Frame) Empty() bool {
	return f.Width <= 0 || f.Height <= 0
}

// Sample - одна запись почтового ящика. Все поля публикуются и читаются вместе.
type Sample struct {
	Center  mgl32.Vec2
	HasFace bool
	Signal  Signal
	Frame   Frame
	Seq     uint64
}

// Mailbox - одноместный ящик между воркером трекинга и игровым циклом.
// Запись перезаписывает прошлое значение, чтение никогда не ждёт.
type Mailbox struct {
	mu           sync.Mutex
	sample       Sample
	fresh        bool
	disconnected bool
	unavailable  bool
	published    uint64
}

func NewMailbox() *Mailbox {
	return &Mailbox{}
}

func (m *Mailbox) Publish(s Sample) {
	m.mu.Lock()
	m.published++
	s.Seq = m.published
	m.sample = s
	m.fresh = true
	m.mu.Unlock()
}

// Drain возвращает последнюю запись и true, если она пришла после прошлого Drain.
func (m *Mailbox) Drain() (Sample, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.fresh {
		return Sample{}, false
	}
	m.fresh = false
	return m.sample, true
}

// MarkDisconnected публикует нейтральную запись и запоминает отключение.
func (m *Mailbox) MarkDisconnected() {
	m.mu.Lock()
	m.published++
	m.sample = Sample{Signal: SignalNone, Seq: m.published}
	m.fresh = true
	m.disconnected = true
	m.mu.Unlock()
}

// MarkUnavailable отмечает, что трекер так и не подключился. Запись не публикуется:
// игра просто работает без трекинга.
func (m *Mailbox) MarkUnavailable() {
	m.mu.Lock()
	m.disconnected = true
	m.unavailable = true
	m.mu.Unlock()
}

// Unavailable - трекер отсутствовал с самого начала, а не потерялся во время игры.
func (m *Mailbox) Unavailable() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unavailable
}

func (m *Mailbox) Disconnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.disconnected
}
