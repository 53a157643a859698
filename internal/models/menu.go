package models

import (
	"fmt"
	"math"
	"time"
)

// MenuSnapshot is the full bilingual menu document returned by the public
// menu API. It is replaced wholesale on every refresh; nothing mutates an
// existing snapshot in place.
type MenuSnapshot struct {
	RestaurantName   string     `json:"restaurantName"`
	Slogan           string     `json:"slogan"`
	Language         string     `json:"language"`
	Categories       []Category `json:"categories"`
	FeaturedProducts []Product  `json:"featuredProducts,omitempty"`
	CatchOfDay       []Product  `json:"catchOfDay,omitempty"`
}

type Category struct {
	ID           int64     `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name,omitempty"`
	NameEs       string    `json:"nameEs,omitempty"`
	NameEn       string    `json:"nameEn,omitempty"`
	Description  string    `json:"description,omitempty"`
	IconURL      string    `json:"iconUrl,omitempty"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	DisplayOrder int       `json:"displayOrder"`
	Active       bool      `json:"active"`
	Products     []Product `json:"products,omitempty"`
	ProductCount int       `json:"productCount"`
}

type Product struct {
	ID            int64           `json:"id"`
	Code          string          `json:"code,omitempty"`
	Name          string          `json:"name,omitempty"`
	NameEs        string          `json:"nameEs,omitempty"`
	NameEn        string          `json:"nameEn,omitempty"`
	Description   string          `json:"description,omitempty"`
	DescriptionEs string          `json:"descriptionEs,omitempty"`
	DescriptionEn string          `json:"descriptionEn,omitempty"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	CategoryID    int64           `json:"categoryId,omitempty"`
	CategoryCode  string          `json:"categoryCode,omitempty"`
	CategoryName  string          `json:"categoryName,omitempty"`
	DisplayOrder  int             `json:"displayOrder"`
	Featured      bool            `json:"featured"`
	Recommended   bool            `json:"recommended"`
	CatchOfDay    bool            `json:"catchOfDay"`
	SpicyLevel    int             `json:"spicyLevel"`
	Allergens     string          `json:"allergens,omitempty"`
	PriceFrom     int64           `json:"priceFrom,omitempty"`
	Options       []ProductOption `json:"options,omitempty"`
	Tags          []Tag           `json:"tags,omitempty"`
	Available     bool            `json:"available"`

	// LastModified is set locally after a confirmed edit. It is not
	// authoritative server state; it only drives the "recently modified"
	// highlight in the admin view.
	LastModified time.Time `json:"lastModified,omitempty"`
}

// ProductOption prices are integer Chilean pesos; CLP has no fractional unit.
type ProductOption struct {
	ID              int64  `json:"id"`
	Name            string `json:"name,omitempty"`
	NameEs          string `json:"nameEs,omitempty"`
	NameEn          string `json:"nameEn,omitempty"`
	Description     string `json:"description,omitempty"`
	Price           int64  `json:"price"`
	OriginalPrice   int64  `json:"originalPrice,omitempty"`
	OptionType      string `json:"optionType,omitempty"`
	ServesPeople    int    `json:"servesPeople,omitempty"`
	SizeCode        string `json:"sizeCode,omitempty"`
	PreparationCode string `json:"preparationCode,omitempty"`
	DisplayOrder    int    `json:"displayOrder"`
	IsDefault       bool   `json:"isDefault"`
	Available       bool   `json:"available"`
}

type Tag struct {
	ID              int64  `json:"id"`
	Code            string `json:"code"`
	Text            string `json:"text"`
	IconName        string `json:"iconName,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
	TagType         string `json:"tagType,omitempty"`
}

// Validate checks the identity invariants: category codes unique within the
// snapshot, product IDs unique within a category, option IDs unique within a
// product.
func (s *MenuSnapshot) Validate() error {
	codes := make(map[string]struct{}, len(s.Categories))
	for _, cat := range s.Categories {
		if _, dup := codes[cat.Code]; dup {
			return fmt.Errorf("duplicate category code %q", cat.Code)
		}
		codes[cat.Code] = struct{}{}

		productIDs := make(map[int64]struct{}, len(cat.Products))
		for _, p := range cat.Products {
			if _, dup := productIDs[p.ID]; dup {
				return fmt.Errorf("duplicate product id %d in category %q", p.ID, cat.Code)
			}
			productIDs[p.ID] = struct{}{}

			optionIDs := make(map[int64]struct{}, len(p.Options))
			for _, o := range p.Options {
				if _, dup := optionIDs[o.ID]; dup {
					return fmt.Errorf("duplicate option id %d in product %d", o.ID, p.ID)
				}
				optionIDs[o.ID] = struct{}{}
			}
		}
	}
	return nil
}

// FirstCategoryCode returns the default active tab for a fresh snapshot.
func (s *MenuSnapshot) FirstCategoryCode() string {
	if len(s.Categories) == 0 {
		return ""
	}
	return s.Categories[0].Code
}

func (s *MenuSnapshot) Category(code string) (*Category, bool) {
	for i := range s.Categories {
		if s.Categories[i].Code == code {
			return &s.Categories[i], true
		}
	}
	return nil, false
}

// DisplayName prefers the localized name and falls back to the Spanish one,
// which is always present.
func (p *Product) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	if p.NameEs != "" {
		return p.NameEs
	}
	return p.NameEn
}

// SinglePrice reports the price to show when the product renders as a single
// price, which is the case for zero or one option. Two or more options mean
// the client offers a "choose an option" interaction instead.
func (p *Product) SinglePrice() (int64, bool) {
	switch len(p.Options) {
	case 0:
		return p.PriceFrom, p.PriceFrom > 0
	case 1:
		return p.Options[0].Price, true
	default:
		return 0, false
	}
}

func (p *Product) HasMultipleOptions() bool {
	return len(p.Options) >= 2
}

// RecentlyModified reports whether the product was edited locally within the
// given window before now.
func (p *Product) RecentlyModified(now time.Time, window time.Duration) bool {
	if p.LastModified.IsZero() {
		return false
	}
	return now.Sub(p.LastModified) <= window
}

func (o *ProductOption) DisplayName() string {
	if o.Name != "" {
		return o.Name
	}
	if o.NameEs != "" {
		return o.NameEs
	}
	return o.NameEn
}

// DiscountPercent returns the rounded discount badge percentage, or zero when
// there is no original price or it does not exceed the current price.
func (o *ProductOption) DiscountPercent() int {
	return DiscountPercent(o.OriginalPrice, o.Price)
}

// DiscountPercent computes round((original-current)/original*100). Anything
// other than original > current yields no discount.
func DiscountPercent(originalPrice, currentPrice int64) int {
	if originalPrice <= 0 || currentPrice <= 0 || originalPrice <= currentPrice {
		return 0
	}
	return int(math.Round(float64(originalPrice-currentPrice) / float64(originalPrice) * 100))
}
