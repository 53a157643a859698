package models

import (
	"testing"
	"time"
)

func TestDiscountPercent(t *testing.T) {
	tests := []struct {
		name     string
		original int64
		current  int64
		want     int
	}{
		{"half off", 10000, 5000, 50},
		{"rounds up", 9000, 6000, 33},
		{"rounds to nearest", 8000, 5300, 34},
		{"no original price", 0, 5000, 0},
		{"original equals current", 5000, 5000, 0},
		{"original below current", 4000, 5000, 0},
		{"zero current price", 10000, 0, 0},
		{"negative original", -100, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DiscountPercent(tt.original, tt.current); got != tt.want {
				t.Errorf("DiscountPercent(%d, %d) = %d, want %d", tt.original, tt.current, got, tt.want)
			}
		})
	}
}

func TestValidateDuplicateCategoryCode(t *testing.T) {
	snap := &MenuSnapshot{Categories: []Category{
		{Code: "PESCADOS"},
		{Code: "MARISCOS"},
		{Code: "PESCADOS"},
	}}
	if err := snap.Validate(); err == nil {
		t.Fatal("expected validation error for duplicate category code")
	}
}

func TestValidateDuplicateOptionID(t *testing.T) {
	snap := &MenuSnapshot{Categories: []Category{
		{Code: "PESCADOS", Products: []Product{
			{ID: 1, Options: []ProductOption{{ID: 10}, {ID: 10}}},
		}},
	}}
	if err := snap.Validate(); err == nil {
		t.Fatal("expected validation error for duplicate option id")
	}
}

func TestValidateOK(t *testing.T) {
	snap := &MenuSnapshot{Categories: []Category{
		{Code: "PESCADOS", Products: []Product{
			{ID: 1, Options: []ProductOption{{ID: 10}, {ID: 11}}},
			{ID: 2},
		}},
		{Code: "MARISCOS", Products: []Product{
			{ID: 1}, // same product id in another category is fine
		}},
	}}
	if err := snap.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestSinglePrice(t *testing.T) {
	noOptions := Product{PriceFrom: 4500}
	if price, ok := noOptions.SinglePrice(); !ok || price != 4500 {
		t.Errorf("no options: got (%d, %v), want (4500, true)", price, ok)
	}

	oneOption := Product{Options: []ProductOption{{ID: 1, Price: 8000}}}
	if price, ok := oneOption.SinglePrice(); !ok || price != 8000 {
		t.Errorf("one option: got (%d, %v), want (8000, true)", price, ok)
	}

	twoOptions := Product{Options: []ProductOption{{ID: 1, Price: 8000}, {ID: 2, Price: 14000}}}
	if _, ok := twoOptions.SinglePrice(); ok {
		t.Error("two options: expected no single price")
	}
	if !twoOptions.HasMultipleOptions() {
		t.Error("two options: HasMultipleOptions() = false")
	}
}

func TestRecentlyModified(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	window := 5 * time.Minute

	fresh := Product{LastModified: now.Add(-time.Minute)}
	if !fresh.RecentlyModified(now, window) {
		t.Error("edit one minute ago should be recent")
	}

	stale := Product{LastModified: now.Add(-10 * time.Minute)}
	if stale.RecentlyModified(now, window) {
		t.Error("edit ten minutes ago should not be recent")
	}

	never := Product{}
	if never.RecentlyModified(now, window) {
		t.Error("zero LastModified should never be recent")
	}
}

func TestDisplayNameFallback(t *testing.T) {
	p := Product{NameEs: "Reineta Frita"}
	if got := p.DisplayName(); got != "Reineta Frita" {
		t.Errorf("DisplayName() = %q, want %q", got, "Reineta Frita")
	}
	p.Name = "Fried Reineta"
	if got := p.DisplayName(); got != "Fried Reineta" {
		t.Errorf("DisplayName() = %q, want localized %q", got, "Fried Reineta")
	}
}
