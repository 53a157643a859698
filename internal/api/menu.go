package api

import (
	"context"

	"github.com/agusnoopy3000/Carta-QR/internal/models"
)

// FullMenu fetches the complete menu snapshot for a language.
func (c *Client) FullMenu(ctx context.Context, language string) (*models.MenuSnapshot, error) {
	var snapshot models.MenuSnapshot
	if err := c.get(ctx, "/v1/menu", langQuery(language), &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (c *Client) ProductsByCategory(ctx context.Context, categoryCode, language string) ([]models.Product, error) {
	var products []models.Product
	if err := c.get(ctx, "/v1/menu/categories/"+categoryCode, langQuery(language), &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) AvailableProducts(ctx context.Context, language string) ([]models.Product, error) {
	var products []models.Product
	if err := c.get(ctx, "/v1/menu/products/available", langQuery(language), &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) FeaturedProducts(ctx context.Context, language string) ([]models.Product, error) {
	var products []models.Product
	if err := c.get(ctx, "/v1/menu/featured", langQuery(language), &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) CatchOfDay(ctx context.Context, language string) ([]models.Product, error) {
	var products []models.Product
	if err := c.get(ctx, "/v1/menu/catch-of-day", langQuery(language), &products); err != nil {
		return nil, err
	}
	return products, nil
}
