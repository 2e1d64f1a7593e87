// internal/tracking/websocket.go
package tracking

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/gorilla/websocket"
)

// WebSocketSource получает кадры детектора лиц как JSON-сообщения.
// Закрытие соединения превращается в пустой кадр.
type WebSocketSource struct {
	conn      *websocket.Conn
	closeOnce sync.Once
	stop      func() bool
}

func DialWebSocket(ctx context.Context, url string) (*WebSocketSource, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	s := &WebSocketSource{conn: conn}
	s.stop = context.AfterFunc(ctx, func() { _ = s.Close() })
	return s, nil
}

func (s *WebSocketSource) ReadFrame(ctx context.Context) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}
	var f Frame
	if err := s.conn.ReadJSON(&f); err != nil {
		if ctx.Err() != nil {
			return Frame{}, ctx.Err()
		}
		var closeErr *websocket.CloseError
		if errors.As(err, &closeErr) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return Frame{}, nil
		}
		return Frame{}, err
	}
	return f, nil
}

func (s *WebSocketSource) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if s.stop != nil {
			s.stop()
		}
		err = s.conn.Close()
	})
	return err
}
