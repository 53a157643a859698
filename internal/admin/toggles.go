package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/agusnoopy3000/Carta-QR/internal/models"
)

// ToggleClient is the slice of the API client the toggle helpers use.
type ToggleClient interface {
	ToggleProductAvailable(ctx context.Context, id int64, available bool) error
	ToggleProductFeatured(ctx context.Context, id int64, featured bool) error
	ToggleOptionAvailable(ctx context.Context, optionID int64, available bool) error
}

// Toggles flips availability and featured flags. Local state changes only
// after the server confirms, so a failed toggle never shows a wrong state.
type Toggles struct {
	client ToggleClient
	list   *ProductList
}

func NewToggles(client ToggleClient, list *ProductList) *Toggles {
	return &Toggles{client: client, list: list}
}

// ToggleAvailable flips a product's availability and returns the new value.
func (t *Toggles) ToggleAvailable(ctx context.Context, productID int64) (bool, error) {
	product, ok := t.list.Get(productID)
	if !ok {
		return false, fmt.Errorf("product %d not in list", productID)
	}
	next := !product.Available
	if err := t.client.ToggleProductAvailable(ctx, productID, next); err != nil {
		return product.Available, fmt.Errorf("toggling availability: %w", err)
	}
	now := time.Now()
	t.list.Update(productID, func(p *models.Product) {
		p.Available = next
		p.LastModified = now
	})
	return next, nil
}

func (t *Toggles) ToggleFeatured(ctx context.Context, productID int64) (bool, error) {
	product, ok := t.list.Get(productID)
	if !ok {
		return false, fmt.Errorf("product %d not in list", productID)
	}
	next := !product.Featured
	if err := t.client.ToggleProductFeatured(ctx, productID, next); err != nil {
		return product.Featured, fmt.Errorf("toggling featured: %w", err)
	}
	now := time.Now()
	t.list.Update(productID, func(p *models.Product) {
		p.Featured = next
		p.LastModified = now
	})
	return next, nil
}

// ToggleOption flips one option's availability.
func (t *Toggles) ToggleOption(ctx context.Context, productID, optionID int64) (bool, error) {
	product, ok := t.list.Get(productID)
	if !ok {
		return false, fmt.Errorf("product %d not in list", productID)
	}
	var current bool
	found := false
	for _, o := range product.Options {
		if o.ID == optionID {
			current = o.Available
			found = true
			break
		}
	}
	if !found {
		return false, fmt.Errorf("option %d not on product %d", optionID, productID)
	}
	next := !current
	if err := t.client.ToggleOptionAvailable(ctx, optionID, next); err != nil {
		return current, fmt.Errorf("toggling option availability: %w", err)
	}
	now := time.Now()
	t.list.Update(productID, func(p *models.Product) {
		for i := range p.Options {
			if p.Options[i].ID == optionID {
				p.Options[i].Available = next
			}
		}
		p.LastModified = now
	})
	return next, nil
}
