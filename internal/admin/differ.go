package admin

import (
	"strconv"
	"sync"
	"time"

	"github.com/agusnoopy3000/Carta-QR/internal/models"
)

type ChangeType string

const (
	ChangeAvailability ChangeType = "availability"
	ChangePrice        ChangeType = "price"
	ChangeName         ChangeType = "name"
)

// ChangeEvent reports one externally-caused difference between two admin
// polls. Events are informational; they never feed back into the snapshot.
type ChangeEvent struct {
	Type        ChangeType `json:"type"`
	ProductID   int64      `json:"productId"`
	ProductName string     `json:"productName"`
	OptionID    int64      `json:"optionId,omitempty"`
	OptionName  string     `json:"optionName,omitempty"`
	OldValue    string     `json:"oldValue"`
	NewValue    string     `json:"newValue"`
	Timestamp   time.Time  `json:"timestamp"`
}

// DetectChanges diffs two consecutive product lists. Products are matched by
// ID; options within a product are matched by option ID as well, so a server
// that reorders options does not produce phantom price changes. An empty old
// list is the first poll and yields nothing.
func DetectChanges(oldProducts, newProducts []models.Product, now time.Time) []ChangeEvent {
	if len(oldProducts) == 0 {
		return nil
	}

	oldByID := make(map[int64]models.Product, len(oldProducts))
	for _, p := range oldProducts {
		oldByID[p.ID] = p
	}

	var events []ChangeEvent
	for _, newP := range newProducts {
		oldP, ok := oldByID[newP.ID]
		if !ok {
			continue
		}

		if oldP.Available != newP.Available {
			events = append(events, ChangeEvent{
				Type:        ChangeAvailability,
				ProductID:   newP.ID,
				ProductName: newP.NameEs,
				OldValue:    strconv.FormatBool(oldP.Available),
				NewValue:    strconv.FormatBool(newP.Available),
				Timestamp:   now,
			})
		}

		oldOptions := make(map[int64]models.ProductOption, len(oldP.Options))
		for _, o := range oldP.Options {
			oldOptions[o.ID] = o
		}
		for _, newO := range newP.Options {
			oldO, ok := oldOptions[newO.ID]
			if !ok || oldO.Price == newO.Price {
				continue
			}
			events = append(events, ChangeEvent{
				Type:        ChangePrice,
				ProductID:   newP.ID,
				ProductName: newP.NameEs,
				OptionID:    newO.ID,
				OptionName:  newO.DisplayName(),
				OldValue:    strconv.FormatInt(oldO.Price, 10),
				NewValue:    strconv.FormatInt(newO.Price, 10),
				Timestamp:   now,
			})
		}

		if oldP.NameEs != newP.NameEs {
			events = append(events, ChangeEvent{
				Type:        ChangeName,
				ProductID:   newP.ID,
				ProductName: newP.NameEs,
				OldValue:    oldP.NameEs,
				NewValue:    newP.NameEs,
				Timestamp:   now,
			})
		}
	}
	return events
}

// ChangeLog is the bounded operator-visible history, newest first.
type ChangeLog struct {
	mu     sync.RWMutex
	limit  int
	events []ChangeEvent
}

func NewChangeLog(limit int) *ChangeLog {
	if limit <= 0 {
		limit = 20
	}
	return &ChangeLog{limit: limit}
}

func (cl *ChangeLog) Append(events ...ChangeEvent) {
	if len(events) == 0 {
		return
	}
	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Prepend so the most recent events read first, then drop the oldest
	// beyond the cap.
	merged := make([]ChangeEvent, 0, len(events)+len(cl.events))
	for i := len(events) - 1; i >= 0; i-- {
		merged = append(merged, events[i])
	}
	merged = append(merged, cl.events...)
	if len(merged) > cl.limit {
		merged = merged[:cl.limit]
	}
	cl.events = merged
}

func (cl *ChangeLog) Events() []ChangeEvent {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	out := make([]ChangeEvent, len(cl.events))
	copy(out, cl.events)
	return out
}

func (cl *ChangeLog) Len() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.events)
}
