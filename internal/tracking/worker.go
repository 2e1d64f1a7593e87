// internal/tracking/worker.go
package tracking

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// ErrDisconnected возвращается воркером, когда источник отдал пустой кадр.
var ErrDisconnected = errors.New("tracking: camera disconnected")

// FrameSource блокируется до следующего кадра.
type FrameSource interface {
	ReadFrame(ctx context.Context) (Frame, error)
}

// Detector находит лицо в кадре и возвращает его нормализованный центр.
type Detector interface {
	Detect(f Frame) (center mgl32.Vec2, ok bool)
}

// FirstFace берёт первое найденное лицо.
type FirstFace struct{}

func (FirstFace) Detect(f Frame) (mgl32.Vec2, bool) {
	if len(f.Faces) == 0 || f.Empty() {
		return mgl32.Vec2{}, false
	}
	r := f.Faces[0]
	return mgl32.Vec2{
		(r.X + r.W/2) / float32(f.Width),
		(r.Y + r.H/2) / float32(f.Height),
	}, true
}

// Worker читает кадры, распознаёт лицо и публикует сигнал в Mailbox.
type Worker struct {
	src  FrameSource
	det  Detector
	box  *Mailbox
	keep atomic.Bool
	log  *zap.Logger

	rightThreshold float32
	leftThreshold  float32
}

func NewWorker(src FrameSource, det Detector, box *Mailbox, rightThreshold, leftThreshold float32, log *zap.Logger) *Worker {
	if det == nil {
		det = FirstFace{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	w := &Worker{
		src:            src,
		det:            det,
		box:            box,
		log:            log,
		rightThreshold: rightThreshold,
		leftThreshold:  leftThreshold,
	}
	w.keep.Store(true)
	return w
}

// Run крутится, пока не вызван Stop, не отменён ctx или источник не отключился.
// Мьютекс ящика берётся только на копирование записи.
func (w *Worker) Run(ctx context.Context) error {
	w.log.Info("Трекинг запущен")
	defer w.log.Info("Трекинг остановлен")

	for w.keep.Load() {
		frame, err := w.src.ReadFrame(ctx)
		if err != nil {
			if ctx.Err() != nil || !w.keep.Load() {
				return nil
			}
			w.keep.Store(false)
			w.box.MarkDisconnected()
			return fmt.Errorf("read frame: %w", err)
		}
		if frame.Empty() {
			w.keep.Store(false)
			w.box.MarkDisconnected()
			w.log.Warn("Пустой кадр, камера отключена")
			return ErrDisconnected
		}

		center, ok := w.det.Detect(frame)
		w.box.Publish(Sample{
			Center:  center,
			HasFace: ok,
			Signal:  ToSignal(center, ok, w.rightThreshold, w.leftThreshold),
			Frame:   frame,
		})
	}
	return nil
}

// Stop просит воркер выйти после текущего кадра.
func (w *Worker) Stop() {
	w.keep.Store(false)
}

func (w *Worker) Running() bool {
	return w.keep.Load()
}
