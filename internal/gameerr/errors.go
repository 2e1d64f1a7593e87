// Package gameerr holds the error taxonomy shared by loaders and the frame loop.
//
// Fatal errors stop the process after logging. Degraded errors are recovered
// where they happen by substituting a fallback. Transient warnings never leave
// the frame in which they occurred; Warner logs each distinct one once.
package gameerr

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// FatalError - ошибка загрузки, после которой игра не может продолжаться.
type FatalError struct {
	Op  string
	Err error
}

func (e *FatalError) Error() string { return fmt.Sprintf("fatal: %s: %v", e.Op, e.Err) }
func (e *FatalError) Unwrap() error { return e.Err }

// Fatal оборачивает err, если он не nil.
func Fatal(op string, err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Op: op, Err: err}
}

// DegradedError - необязательный ресурс недоступен, подставлена замена.
type DegradedError struct {
	Resource string
	Err      error
}

func (e *DegradedError) Error() string {
	return fmt.Sprintf("degraded: %s: %v", e.Resource, e.Err)
}
func (e *DegradedError) Unwrap() error { return e.Err }

// IsFatal сообщает, есть ли в цепочке FatalError.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}

// Degrade логирует деградацию на уровне Warn и возвращает её как значение.
func Degrade(log *zap.Logger, resource string, err error) *DegradedError {
	d := &DegradedError{Resource: resource, Err: err}
	log.Warn("resource degraded", zap.String("resource", resource), zap.Error(err))
	return d
}

// Warner логирует транзиентные предупреждения по одному разу на ключ.
type Warner struct {
	log  *zap.Logger
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewWarner(log *zap.Logger) *Warner {
	return &Warner{log: log, seen: make(map[string]struct{})}
}

// Warn возвращает true, если предупреждение было записано впервые.
func (w *Warner) Warn(key, msg string, fields ...zap.Field) bool {
	w.mu.Lock()
	_, dup := w.seen[key]
	if !dup {
		w.seen[key] = struct{}{}
	}
	w.mu.Unlock()
	if dup {
		return false
	}
	w.log.Warn(msg, append(fields, zap.String("key", key))...)
	return true
}

// Reset забывает записанные ключи (при смене уровня).
func (w *Warner) Reset() {
	w.mu.Lock()
	w.seen = make(map[string]struct{})
	w.mu.Unlock()
}
