package admin

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/agusnoopy3000/Carta-QR/internal/models"
)

type Field string

const (
	FieldName  Field = "name"
	FieldPrice Field = "price"
)

// EditTarget identifies the single field currently in an editable state.
// OptionID is set only for price edits.
type EditTarget struct {
	ProductID int64
	Field     Field
	OptionID  int64
}

// EditClient is the slice of the API client the editor writes through.
type EditClient interface {
	UpdateProduct(ctx context.Context, id int64, product models.Product) (*models.Product, error)
	QuickUpdatePrice(ctx context.Context, optionID, newPrice int64) error
}

// Editor lets exactly one field across the whole product list be edited at a
// time: a product's Spanish name, or one option's price. Commits are
// optimistic; the next poll wins any disagreement.
type Editor struct {
	client EditClient
	list   *ProductList

	mu      sync.Mutex
	editing *EditTarget
}

func NewEditor(client EditClient, list *ProductList) *Editor {
	return &Editor{client: client, list: list}
}

// BeginEdit makes the target editable, unconditionally abandoning any prior
// in-progress edit. The prior edit's uncommitted input was never authoritative
// state, so nothing needs to be rolled back.
func (e *Editor) BeginEdit(target EditTarget) error {
	if _, ok := e.list.Get(target.ProductID); !ok {
		return fmt.Errorf("product %d not in list", target.ProductID)
	}
	if target.Field == FieldPrice && target.OptionID == 0 {
		return fmt.Errorf("price edit requires an option id")
	}
	t := target
	e.mu.Lock()
	e.editing = &t
	e.mu.Unlock()
	return nil
}

// Editing reports the active target, if any.
func (e *Editor) Editing() (EditTarget, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.editing == nil {
		return EditTarget{}, false
	}
	return *e.editing, true
}

// CancelEdit discards the active edit regardless of typed content.
func (e *Editor) CancelEdit() {
	e.mu.Lock()
	e.editing = nil
	e.mu.Unlock()
}

// CommitEdit writes the new value through to the server. An unchanged value
// is a no-op with no network call. Success updates local state and stamps
// lastModified; failure is returned for notification. Either way the field
// leaves its editable state and is not retried automatically.
func (e *Editor) CommitEdit(ctx context.Context, newValue string) error {
	e.mu.Lock()
	target := e.editing
	e.mu.Unlock()
	if target == nil {
		return models.ErrNoActiveEdit
	}
	// Clear the editable state whatever the outcome, unless a newer edit
	// already replaced it while this commit was in flight.
	defer func() {
		e.mu.Lock()
		if e.editing == target {
			e.editing = nil
		}
		e.mu.Unlock()
	}()

	product, ok := e.list.Get(target.ProductID)
	if !ok {
		return fmt.Errorf("product %d not in list", target.ProductID)
	}

	switch target.Field {
	case FieldName:
		return e.commitName(ctx, product, strings.TrimSpace(newValue))
	case FieldPrice:
		return e.commitPrice(ctx, product, target.OptionID, newValue)
	default:
		return fmt.Errorf("unknown edit field %q", target.Field)
	}
}

func (e *Editor) commitName(ctx context.Context, product models.Product, newName string) error {
	if newName == "" || newName == product.NameEs {
		return nil
	}

	updated := product
	updated.NameEs = newName
	if _, err := e.client.UpdateProduct(ctx, product.ID, updated); err != nil {
		return fmt.Errorf("updating product name: %w", err)
	}

	now := time.Now()
	e.list.Update(product.ID, func(p *models.Product) {
		p.NameEs = newName
		p.LastModified = now
	})
	return nil
}

func (e *Editor) commitPrice(ctx context.Context, product models.Product, optionID int64, raw string) error {
	newPrice, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || newPrice <= 0 {
		return fmt.Errorf("%w: %q", models.ErrInvalidPrice, raw)
	}

	var current int64
	found := false
	for _, o := range product.Options {
		if o.ID == optionID {
			current = o.Price
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("option %d not on product %d", optionID, product.ID)
	}
	if newPrice == current {
		return nil
	}

	if err := e.client.QuickUpdatePrice(ctx, optionID, newPrice); err != nil {
		return fmt.Errorf("updating price: %w", err)
	}

	now := time.Now()
	e.list.Update(product.ID, func(p *models.Product) {
		for i := range p.Options {
			if p.Options[i].ID == optionID {
				p.Options[i].Price = newPrice
			}
		}
		p.LastModified = now
	})
	return nil
}
