// Package menu keeps the displayed menu fresh without disrupting the viewer.
// A loud load drives the loading/error screen; the 30-second background
// refresh and the wake-triggered refresh replace the snapshot silently and
// swallow their failures.
package menu

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/agusnoopy3000/Carta-QR/internal/models"
)

type State int

const (
	StateLoading State = iota
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Fetcher is the slice of the API client the controller needs.
type Fetcher interface {
	FullMenu(ctx context.Context, language string) (*models.MenuSnapshot, error)
}

type Controller struct {
	fetcher  Fetcher
	interval time.Duration

	mu             sync.Mutex
	language       string
	state          State
	snapshot       *models.MenuSnapshot
	activeCategory string
	lastUpdate     time.Time
	lastErr        error

	wake     chan struct{}
	onUpdate func(*models.MenuSnapshot, time.Time)
}

func NewController(fetcher Fetcher, language string, interval time.Duration) *Controller {
	if language == "" {
		language = "es"
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Controller{
		fetcher:  fetcher,
		interval: interval,
		language: language,
		state:    StateLoading,
		wake:     make(chan struct{}, 1),
	}
}

// OnUpdate registers a callback invoked after every snapshot replacement,
// loud or silent. Must be set before Run.
func (c *Controller) OnUpdate(fn func(*models.MenuSnapshot, time.Time)) {
	c.onUpdate = fn
}

// Prime installs a cached snapshot so something renders before the first
// fetch resolves. It does not change the loading state.
func (c *Controller) Prime(snapshot *models.MenuSnapshot, fetchedAt time.Time) {
	if snapshot == nil {
		return
	}
	c.mu.Lock()
	c.snapshot = snapshot
	c.lastUpdate = fetchedAt
	if c.activeCategory == "" {
		c.activeCategory = snapshot.FirstCategoryCode()
	}
	c.mu.Unlock()
}

// Load is the loud path: it owns the loading flag, and a failure puts the
// controller into the error state until the next explicit retry.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.state = StateLoading
	c.lastErr = nil
	language := c.language
	c.mu.Unlock()

	snapshot, err := c.fetcher.FullMenu(ctx, language)
	now := time.Now()

	c.mu.Lock()
	if err != nil {
		c.state = StateError
		c.lastErr = err
		c.mu.Unlock()
		log.Printf("menu load failed: %v", err)
		return err
	}
	c.applySnapshotLocked(snapshot, now)
	c.state = StateReady
	c.mu.Unlock()

	c.notifyUpdate(snapshot, now)
	return nil
}

// RefreshSilently fetches without touching the loading flag. Failures keep
// the previous snapshot on screen and never surface to the viewer.
func (c *Controller) RefreshSilently(ctx context.Context) {
	c.mu.Lock()
	language := c.language
	c.mu.Unlock()

	snapshot, err := c.fetcher.FullMenu(ctx, language)
	if err != nil {
		log.Printf("silent refresh failed: %v", err)
		return
	}
	now := time.Now()

	c.mu.Lock()
	c.applySnapshotLocked(snapshot, now)
	c.mu.Unlock()

	c.notifyUpdate(snapshot, now)
}

func (c *Controller) applySnapshotLocked(snapshot *models.MenuSnapshot, now time.Time) {
	c.snapshot = snapshot
	c.lastUpdate = now
	// Keep the active tab across refreshes while the category survives.
	if _, ok := snapshot.Category(c.activeCategory); !ok {
		c.activeCategory = snapshot.FirstCategoryCode()
	}
}

func (c *Controller) notifyUpdate(snapshot *models.MenuSnapshot, at time.Time) {
	if c.onUpdate != nil {
		c.onUpdate(snapshot, at)
	}
}

// SetLanguage switches the display language. A change triggers a loud reload,
// matching the initial-load behaviour of the original client.
func (c *Controller) SetLanguage(ctx context.Context, language string) error {
	c.mu.Lock()
	if language == "" || language == c.language {
		c.mu.Unlock()
		return nil
	}
	c.language = language
	c.mu.Unlock()
	return c.Load(ctx)
}

func (c *Controller) Language() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.language
}

// Wake requests one immediate silent refresh, the analogue of the page
// becoming visible again. Coalesces while a previous wake is pending.
func (c *Controller) Wake() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// Run performs the initial loud load and then drives the refresh cadence
// until ctx is cancelled. An initial-load failure leaves the controller in
// the error state but keeps the loop alive; Retry is the manual recovery.
func (c *Controller) Run(ctx context.Context) error {
	if err := c.Load(ctx); err != nil && ctx.Err() != nil {
		return ctx.Err()
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.RefreshSilently(ctx)
		case <-c.wake:
			c.RefreshSilently(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Retry re-runs the loud load after an error screen.
func (c *Controller) Retry(ctx context.Context) error {
	return c.Load(ctx)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Snapshot returns the current snapshot and when it was fetched. The snapshot
// is replaced wholesale on refresh, never mutated, so callers may read it
// without copying.
func (c *Controller) Snapshot() (*models.MenuSnapshot, time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot, c.lastUpdate
}

func (c *Controller) ActiveCategory() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeCategory
}

// SetActiveCategory switches tabs; unknown codes are ignored so a stale tab
// press cannot clear the selection.
func (c *Controller) SetActiveCategory(code string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil {
		return false
	}
	if _, ok := c.snapshot.Category(code); !ok {
		return false
	}
	c.activeCategory = code
	return true
}
