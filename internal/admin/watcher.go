package admin

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/agusnoopy3000/Carta-QR/internal/models"
	"github.com/agusnoopy3000/Carta-QR/internal/sink"
)

// PollClient is the slice of the API client the watcher polls with.
type PollClient interface {
	AdminProducts(ctx context.Context) ([]models.Product, error)
}

// ChangeRecorder persists change events beyond process lifetime. Satisfied by
// the store; nil disables persistence.
type ChangeRecorder interface {
	AppendChange(data []byte, recordedAt time.Time) error
}

// Watcher polls the admin product list, diffs consecutive snapshots and fans
// detected changes out to the bounded history, the configured sinks and the
// recorder. Poll failures are absorbed like the public silent refresh: the
// previous list stays current.
type Watcher struct {
	client   PollClient
	list     *ProductList
	changes  *ChangeLog
	recorder ChangeRecorder
	sinks    []sink.Destination
	topic    string
	interval time.Duration
}

func NewWatcher(client PollClient, list *ProductList, changes *ChangeLog, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Watcher{
		client:   client,
		list:     list,
		changes:  changes,
		topic:    "menu_changes",
		interval: interval,
	}
}

func (w *Watcher) WithSinks(sinks ...sink.Destination) *Watcher {
	w.sinks = append(w.sinks, sinks...)
	return w
}

func (w *Watcher) WithRecorder(recorder ChangeRecorder) *Watcher {
	w.recorder = recorder
	return w
}

// Poll fetches the product list once and applies it. The first poll seeds the
// list without emitting change events.
func (w *Watcher) Poll(ctx context.Context) error {
	products, err := w.client.AdminProducts(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	events := DetectChanges(w.list.Products(), products, now)
	w.list.Replace(products)

	if len(events) == 0 {
		return nil
	}
	w.changes.Append(events...)
	for _, event := range events {
		w.publish(event)
	}
	return nil
}

func (w *Watcher) publish(event ChangeEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("encoding change event: %v", err)
		return
	}
	for _, dest := range w.sinks {
		if err := dest.WriteMessage(w.topic, payload); err != nil {
			log.Printf("writing change event to sink: %v", err)
		}
	}
	if w.recorder != nil {
		if err := w.recorder.AppendChange(payload, event.Timestamp); err != nil {
			log.Printf("recording change event: %v", err)
		}
	}
}

// Run polls immediately and then on every tick until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Poll(ctx); err != nil {
		log.Printf("admin poll failed: %v", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.Poll(ctx); err != nil {
				log.Printf("admin poll failed: %v", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
