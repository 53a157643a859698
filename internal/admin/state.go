package admin

import (
	"sync"
	"time"

	"github.com/agusnoopy3000/Carta-QR/internal/models"
)

// ProductList is the single shared slot that polling, diffing and inline
// edits all operate on. Mutation is whole-list replacement or map-and-replace
// of one element; nothing mutates an element in place while it is shared.
type ProductList struct {
	mu       sync.RWMutex
	products []models.Product
}

func NewProductList() *ProductList {
	return &ProductList{}
}

// Replace swaps in a freshly polled list. Locally-set lastModified stamps are
// carried over for matching products so the "recently modified" highlight
// survives the poll; everything else the poll says wins.
func (l *ProductList) Replace(products []models.Product) {
	l.mu.Lock()
	defer l.mu.Unlock()

	stamps := make(map[int64]time.Time, len(l.products))
	for _, p := range l.products {
		if !p.LastModified.IsZero() {
			stamps[p.ID] = p.LastModified
		}
	}
	for i := range products {
		if products[i].LastModified.IsZero() {
			if ts, ok := stamps[products[i].ID]; ok {
				products[i].LastModified = ts
			}
		}
	}
	l.products = products
}

// Products returns a copy of the current list.
func (l *ProductList) Products() []models.Product {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Product, len(l.products))
	copy(out, l.products)
	return out
}

func (l *ProductList) Get(id int64) (models.Product, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, p := range l.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Update applies mutate to a copy of the matching product and swaps it back
// in. Returns false when the product is no longer in the list.
func (l *ProductList) Update(id int64, mutate func(*models.Product)) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.products {
		if l.products[i].ID == id {
			p := l.products[i]
			p.Options = append([]models.ProductOption(nil), p.Options...)
			mutate(&p)
			l.products[i] = p
			return true
		}
	}
	return false
}

// Stats mirrors the dashboard counters.
type Stats struct {
	Total       int
	Available   int
	Unavailable int
}

func (l *ProductList) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s := Stats{Total: len(l.products)}
	for _, p := range l.products {
		if p.Available {
			s.Available++
		} else {
			s.Unavailable++
		}
	}
	return s
}
