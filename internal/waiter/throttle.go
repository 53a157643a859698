// Package waiter gates the "call waiter" action behind a fixed cooldown so
// rapid repeated taps produce a single request.
package waiter

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/agusnoopy3000/Carta-QR/internal/api"
)

// ErrSuppressed is returned while a call is in flight or cooling down.
var ErrSuppressed = errors.New("waiter call suppressed during cooldown")

// Caller is the slice of the API client the throttle wraps.
type Caller interface {
	CallWaiter(ctx context.Context) (*api.WaiterResponse, error)
}

type Throttle struct {
	caller   Caller
	cooldown time.Duration
	now      func() time.Time

	mu      sync.Mutex
	busy    bool
	readyAt time.Time
}

func NewThrottle(caller Caller, cooldown time.Duration) *Throttle {
	if cooldown <= 0 {
		cooldown = 3 * time.Second
	}
	return &Throttle{caller: caller, cooldown: cooldown, now: time.Now}
}

// Call issues one waiter notification. While a previous call is in flight or
// within the cooldown window it returns ErrSuppressed without touching the
// network. The cooldown starts when the request resolves and is the same for
// success and failure.
func (t *Throttle) Call(ctx context.Context) (*api.WaiterResponse, error) {
	t.mu.Lock()
	if t.busy || t.now().Before(t.readyAt) {
		t.mu.Unlock()
		return nil, ErrSuppressed
	}
	t.busy = true
	t.mu.Unlock()

	resp, err := t.caller.CallWaiter(ctx)

	t.mu.Lock()
	t.busy = false
	t.readyAt = t.now().Add(t.cooldown)
	t.mu.Unlock()

	return resp, err
}

// Ready reports whether a call would currently go through.
func (t *Throttle) Ready() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.busy && !t.now().Before(t.readyAt)
}
