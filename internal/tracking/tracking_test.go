package tracking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type scriptedSource struct {
	frames []Frame
	err    error
	i      int
}

func (s *scriptedSource) ReadFrame(ctx context.Context) (Frame, error) {
	if s.i >= len(s.frames) {
		if s.err != nil {
			return Frame{}, s.err
		}
		return Frame{}, nil
	}
	f := s.frames[s.i]
	s.i++
	return f, nil
}

func faceAt(x float32) Frame {
	return Frame{Width: 100, Height: 100, Faces: []Rect{{X: x - 5, Y: 45, W: 10, H: 10}}}
}

func TestToSignal(t *testing.T) {
	assert.Equal(t, SignalNone, ToSignal(mgl32.Vec2{0.1, 0.5}, false, 0.4, 0.6))
	assert.Equal(t, SignalRight, ToSignal(mgl32.Vec2{0.3, 0.5}, true, 0.4, 0.6))
	assert.Equal(t, SignalLeft, ToSignal(mgl32.Vec2{0.7, 0.5}, true, 0.4, 0.6))
	assert.Equal(t, SignalNone, ToSignal(mgl32.Vec2{0.5, 0.5}, true, 0.4, 0.6))
	assert.Equal(t, SignalNone, ToSignal(mgl32.Vec2{0.4, 0.5}, true, 0.4, 0.6))
	assert.Equal(t, "right", SignalRight.String())
}

func TestFirstFace(t *testing.T) {
	c, ok := FirstFace{}.Detect(faceAt(20))
	require.True(t, ok)
	assert.InDelta(t, 0.2, c.X(), 1e-6)
	assert.InDelta(t, 0.5, c.Y(), 1e-6)

	_, ok = FirstFace{}.Detect(Frame{Width: 10, Height: 10})
	assert.False(t, ok)
}

func TestMailboxDrainEmpty(t *testing.T) {
	box := NewMailbox()
	_, ok := box.Drain()
	assert.False(t, ok)
}

func TestMailboxOverwriteAndDrainOnce(t *testing.T) {
	box := NewMailbox()
	box.Publish(Sample{Signal: SignalLeft})
	box.Publish(Sample{Signal: SignalRight})

	s, ok := box.Drain()
	require.True(t, ok)
	assert.Equal(t, SignalRight, s.Signal)
	assert.Equal(t, uint64(2), s.Seq)

	_, ok = box.Drain()
	assert.False(t, ok)
}

func TestMailboxDisconnect(t *testing.T) {
	box := NewMailbox()
	box.Publish(Sample{Signal: SignalLeft})
	box.MarkDisconnected()

	assert.True(t, box.Disconnected())
	s, ok := box.Drain()
	require.True(t, ok)
	assert.Equal(t, SignalNone, s.Signal)
}

func TestMailboxUnavailable(t *testing.T) {
	box := NewMailbox()
	box.MarkUnavailable()

	assert.True(t, box.Disconnected())
	assert.True(t, box.Unavailable())
	_, ok := box.Drain()
	assert.False(t, ok)

	lost := NewMailbox()
	lost.MarkDisconnected()
	assert.False(t, lost.Unavailable())
}

func TestMailboxConcurrent(t *testing.T) {
	box := NewMailbox()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			sig := SignalLeft
			if i%2 == 0 {
				sig = SignalRight
			}
			box.Publish(Sample{Signal: sig, Center: mgl32.Vec2{float32(sig), float32(sig)}})
		}
	}()
	for i := 0; i < 1000; i++ {
		if s, ok := box.Drain(); ok {
			// поля записи всегда согласованы
			assert.Equal(t, float32(s.Signal), s.Center.X())
		}
	}
	wg.Wait()
}

func TestWorkerPublishesUntilEmptyFrame(t *testing.T) {
	box := NewMailbox()
	src := &scriptedSource{frames: []Frame{faceAt(20), faceAt(80)}}
	w := NewWorker(src, nil, box, 0.4, 0.6, zaptest.NewLogger(t))

	err := w.Run(context.Background())
	assert.ErrorIs(t, err, ErrDisconnected)
	assert.False(t, w.Running())
	assert.True(t, box.Disconnected())

	s, ok := box.Drain()
	require.True(t, ok)
	assert.Equal(t, SignalNone, s.Signal)
	assert.Equal(t, uint64(3), s.Seq)
}

func TestWorkerReadError(t *testing.T) {
	box := NewMailbox()
	src := &scriptedSource{err: errors.New("boom")}
	w := NewWorker(src, nil, box, 0.4, 0.6, zaptest.NewLogger(t))

	err := w.Run(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDisconnected)
	assert.True(t, box.Disconnected())
}

func TestWorkerStop(t *testing.T) {
	box := NewMailbox()
	w := NewWorker(&scriptedSource{}, nil, box, 0.4, 0.6, zaptest.NewLogger(t))
	w.Stop()
	assert.NoError(t, w.Run(context.Background()))
	assert.False(t, box.Disconnected())
}

func TestWebSocketSource(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.WriteJSON(faceAt(30))
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	src, err := DialWebSocket(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"))
	require.NoError(t, err)
	defer src.Close()

	box := NewMailbox()
	w := NewWorker(src, nil, box, 0.4, 0.6, zaptest.NewLogger(t))
	assert.ErrorIs(t, w.Run(ctx), ErrDisconnected)

	// первая запись перезаписана отключением, но центр лица успел опубликоваться
	assert.True(t, box.Disconnected())
}

func TestDialWebSocketFails(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := DialWebSocket(ctx, "ws://127.0.0.1:1/none")
	assert.Error(t, err)
}
