// Package fixtures fabricates a plausible seafood menu for developing the
// mirror and the viewer without a live backend.
package fixtures

import (
	"math/rand"
	"strings"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"

	"github.com/agusnoopy3000/Carta-QR/internal/models"
)

var categoryNames = map[string][2]string{
	"MENU":     {"Menú del Mar", "Sea Menu"},
	"PESCADOS": {"Pescados", "Fish"},
	"MARISCOS": {"Mariscos", "Shellfish"},
	"FRITURAS": {"Frituras", "Fried"},
	"BEBIDAS":  {"Bebidas", "Drinks"},
	"POSTRES":  {"Postres", "Desserts"},
}

var categoryOrder = []string{"MENU", "PESCADOS", "MARISCOS", "FRITURAS", "BEBIDAS", "POSTRES"}

var dishesByCategory = map[string][]string{
	"MENU":     {"Ostiones a la Parmesana", "Paila Marina", "Ceviche Mixto", "Machas a la Parmesana"},
	"PESCADOS": {"Reineta Frita", "Congrio a la Plancha", "Merluza Austral", "Corvina al Ajillo", "Albacora Grillada"},
	"MARISCOS": {"Camarones al Pil Pil", "Pulpo al Olivo", "Chupe de Jaiba", "Empanadas de Mariscos", "Locos Mayo"},
	"FRITURAS": {"Calamares Fritos", "Pescado Frito", "Chorrillana Marina", "Rabas"},
	"BEBIDAS":  {"Jugo Natural", "Pisco Sour", "Vino Blanco Copa", "Agua Mineral"},
	"POSTRES":  {"Leche Asada", "Mote con Huesillo", "Helado Artesanal"},
}

var optionNames = [][2]string{
	{"Individual", "Individual"},
	{"Para Compartir", "For Sharing"},
	{"Porción Macho", "Macho Size"},
}

var tagPool = []models.Tag{
	{ID: 1, Code: "PORTION", Text: "Porción generosa", TagType: "PORTION"},
	{ID: 2, Code: "SHARING", Text: "Para compartir", TagType: "SHARING"},
	{ID: 3, Code: "VALUE", Text: "Buen precio", TagType: "VALUE"},
	{ID: 4, Code: "SPECIAL", Text: "Especialidad", TagType: "SPECIAL"},
	{ID: 5, Code: "PROMO", Text: "Promoción", TagType: "PROMO"},
}

// Menu builds a deterministic demo snapshot for a seed.
func Menu(seed int64, language string) *models.MenuSnapshot {
	rng := rand.New(rand.NewSource(seed))
	fake := faker.NewWithSeed(rand.NewSource(seed))

	snapshot := &models.MenuSnapshot{
		RestaurantName: "El Macho",
		Slogan:         "Productos del Mar",
		Language:       language,
	}

	var productID, optionID int64
	for order, code := range categoryOrder {
		names := categoryNames[code]
		category := models.Category{
			ID:           int64(order + 1),
			Code:         code,
			Name:         pickName(names, language),
			NameEs:       names[0],
			NameEn:       names[1],
			DisplayOrder: order,
			Active:       true,
		}

		for _, dish := range dishesByCategory[code] {
			productID++
			product := models.Product{
				ID:           productID,
				Code:         strings.ToUpper(cuid.Slug()),
				Name:         dish,
				NameEs:       dish,
				NameEn:       dish,
				Description:  fake.Lorem().Sentence(8),
				CategoryCode: code,
				CategoryName: category.Name,
				DisplayOrder: len(category.Products),
				Available:    rng.Intn(10) > 0,
				Featured:     rng.Intn(5) == 0,
				SpicyLevel:   rng.Intn(3),
			}

			optionCount := 1 + rng.Intn(3)
			for i := 0; i < optionCount; i++ {
				optionID++
				price := int64(3000 + rng.Intn(18)*500)
				option := models.ProductOption{
					ID:           optionID,
					Name:         pickName(optionNames[i], language),
					NameEs:       optionNames[i][0],
					NameEn:       optionNames[i][1],
					Price:        price,
					ServesPeople: i + 1,
					DisplayOrder: i,
					IsDefault:    i == 0,
					Available:    true,
				}
				// Roughly one in four options carries a discount badge.
				if rng.Intn(4) == 0 {
					option.OriginalPrice = price + int64(1000+rng.Intn(4)*500)
				}
				product.Options = append(product.Options, option)
			}
			if first, ok := product.SinglePrice(); ok {
				product.PriceFrom = first
			} else {
				product.PriceFrom = lowestPrice(product.Options)
			}

			if rng.Intn(2) == 0 {
				product.Tags = append(product.Tags, tagPool[rng.Intn(len(tagPool))])
			}
			if product.Featured {
				snapshot.FeaturedProducts = append(snapshot.FeaturedProducts, product)
			}
			category.Products = append(category.Products, product)
		}

		category.ProductCount = len(category.Products)
		snapshot.Categories = append(snapshot.Categories, category)
	}

	return snapshot
}

func pickName(pair [2]string, language string) string {
	if language == "en" {
		return pair[1]
	}
	return pair[0]
}

func lowestPrice(options []models.ProductOption) int64 {
	var lowest int64
	for _, o := range options {
		if lowest == 0 || o.Price < lowest {
			lowest = o.Price
		}
	}
	return lowest
}
