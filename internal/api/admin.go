package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/agusnoopy3000/Carta-QR/internal/models"
)

// Login validates a Basic pair against the admin category listing, the
// cheapest authenticated endpoint. Failure discards the credentials so no
// invalid session lingers.
func (c *Client) Login(ctx context.Context, username, password string) error {
	c.SetCredentials(username, password)
	if _, err := c.AdminCategories(ctx); err != nil {
		c.ClearCredentials()
		return fmt.Errorf("login failed: %w", err)
	}
	return nil
}

func (c *Client) Logout() {
	c.ClearCredentials()
}

func (c *Client) AdminCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.adminSend(ctx, http.MethodGet, "/v1/admin/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) AdminCategory(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	if err := c.adminSend(ctx, http.MethodGet, fmt.Sprintf("/v1/admin/categories/%d", id), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id int64, category models.Category) (*models.Category, error) {
	var updated models.Category
	if err := c.adminSend(ctx, http.MethodPut, fmt.Sprintf("/v1/admin/categories/%d", id), category, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) ToggleCategoryActive(ctx context.Context, id int64, active bool) error {
	body := map[string]bool{"active": active}
	return c.adminSend(ctx, http.MethodPatch, fmt.Sprintf("/v1/admin/categories/%d/toggle-active", id), body, nil)
}

func (c *Client) AdminProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.adminSend(ctx, http.MethodGet, "/v1/admin/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) AdminProductsByCategory(ctx context.Context, categoryID int64) ([]models.Product, error) {
	var products []models.Product
	if err := c.adminSend(ctx, http.MethodGet, fmt.Sprintf("/v1/admin/products/category/%d", categoryID), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) AdminProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := c.adminSend(ctx, http.MethodGet, fmt.Sprintf("/v1/admin/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, product models.Product) (*models.Product, error) {
	var updated models.Product
	if err := c.adminSend(ctx, http.MethodPut, fmt.Sprintf("/v1/admin/products/%d", id), product, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) ToggleProductAvailable(ctx context.Context, id int64, available bool) error {
	body := map[string]bool{"available": available}
	return c.adminSend(ctx, http.MethodPatch, fmt.Sprintf("/v1/admin/products/%d/toggle-available", id), body, nil)
}

func (c *Client) ToggleProductFeatured(ctx context.Context, id int64, featured bool) error {
	body := map[string]bool{"featured": featured}
	return c.adminSend(ctx, http.MethodPatch, fmt.Sprintf("/v1/admin/products/%d/toggle-featured", id), body, nil)
}

func (c *Client) ToggleProductCatchOfDay(ctx context.Context, id int64, catchOfDay bool) error {
	body := map[string]bool{"catchOfDay": catchOfDay}
	return c.adminSend(ctx, http.MethodPatch, fmt.Sprintf("/v1/admin/products/%d/toggle-catch-of-day", id), body, nil)
}

// PriceUpdate is the payload of the quick and bulk price endpoints.
type PriceUpdate struct {
	OptionID      int64  `json:"optionId"`
	NewPrice      int64  `json:"newPrice"`
	OriginalPrice *int64 `json:"originalPrice,omitempty"`
}

// QuickUpdatePrice is the fast path for changing a single option's price.
func (c *Client) QuickUpdatePrice(ctx context.Context, optionID, newPrice int64) error {
	return c.adminSend(ctx, http.MethodPatch, "/v1/admin/prices/quick-update", PriceUpdate{OptionID: optionID, NewPrice: newPrice}, nil)
}

func (c *Client) BulkUpdatePrices(ctx context.Context, updates []PriceUpdate) error {
	return c.adminSend(ctx, http.MethodPatch, "/v1/admin/prices/bulk-update", updates, nil)
}

func (c *Client) ToggleOptionAvailable(ctx context.Context, optionID int64, available bool) error {
	body := map[string]bool{"available": available}
	return c.adminSend(ctx, http.MethodPatch, fmt.Sprintf("/v1/admin/options/%d/toggle-available", optionID), body, nil)
}
