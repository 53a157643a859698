package admin

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/agusnoopy3000/Carta-QR/internal/models"
)

type fakePollClient struct {
	products []models.Product
	err      error
}

func (f *fakePollClient) AdminProducts(context.Context) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

type memSink struct {
	topics   []string
	payloads [][]byte
}

func (m *memSink) WriteMessage(topic string, msg []byte) error {
	m.topics = append(m.topics, topic)
	m.payloads = append(m.payloads, msg)
	return nil
}

type memRecorder struct {
	records [][]byte
}

func (m *memRecorder) AppendChange(data []byte, _ time.Time) error {
	m.records = append(m.records, data)
	return nil
}

func TestWatcherFirstPollSeedsWithoutEvents(t *testing.T) {
	client := &fakePollClient{products: []models.Product{
		{ID: 1, NameEs: "Paila Marina", Available: true},
	}}
	list := NewProductList()
	changes := NewChangeLog(20)
	out := &memSink{}
	watcher := NewWatcher(client, list, changes, time.Minute).WithSinks(out)

	if err := watcher.Poll(context.Background()); err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if changes.Len() != 0 {
		t.Errorf("first poll logged %d events", changes.Len())
	}
	if len(out.payloads) != 0 {
		t.Errorf("first poll published %d messages", len(out.payloads))
	}
	if got := list.Stats().Total; got != 1 {
		t.Errorf("list not seeded: Total = %d", got)
	}
}

func TestWatcherPublishesDetectedChanges(t *testing.T) {
	client := &fakePollClient{products: []models.Product{
		{ID: 1, NameEs: "Paila Marina", Available: true},
	}}
	list := NewProductList()
	changes := NewChangeLog(20)
	out := &memSink{}
	recorder := &memRecorder{}
	watcher := NewWatcher(client, list, changes, time.Minute).WithSinks(out).WithRecorder(recorder)

	if err := watcher.Poll(context.Background()); err != nil {
		t.Fatal(err)
	}
	client.products = []models.Product{
		{ID: 1, NameEs: "Paila Marina", Available: false},
	}
	if err := watcher.Poll(context.Background()); err != nil {
		t.Fatal(err)
	}

	if changes.Len() != 1 {
		t.Fatalf("logged %d events, want 1", changes.Len())
	}
	if len(out.payloads) != 1 || len(recorder.records) != 1 {
		t.Fatalf("published %d, recorded %d, want 1 each", len(out.payloads), len(recorder.records))
	}
	if out.topics[0] != "menu_changes" {
		t.Errorf("topic = %q, want menu_changes", out.topics[0])
	}

	var event ChangeEvent
	if err := json.Unmarshal(out.payloads[0], &event); err != nil {
		t.Fatalf("published payload not valid JSON: %v", err)
	}
	if event.Type != ChangeAvailability || event.ProductID != 1 {
		t.Errorf("event = %+v", event)
	}

	p, _ := list.Get(1)
	if p.Available {
		t.Error("list not updated to the polled state")
	}
}

func TestWatcherPollFailureKeepsList(t *testing.T) {
	client := &fakePollClient{products: []models.Product{
		{ID: 1, NameEs: "Paila Marina", Available: true},
	}}
	list := NewProductList()
	watcher := NewWatcher(client, list, NewChangeLog(20), time.Minute)

	if err := watcher.Poll(context.Background()); err != nil {
		t.Fatal(err)
	}
	client.err = errors.New("connection reset")
	if err := watcher.Poll(context.Background()); err == nil {
		t.Fatal("expected poll error")
	}
	if got := list.Stats().Total; got != 1 {
		t.Errorf("list changed on failed poll: Total = %d", got)
	}
}
