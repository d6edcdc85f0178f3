// Package catalog filters and sorts the service marketplace. Everything here
// is pure: inputs are never mutated, so cached catalogs can be shared freely
// between views.
package catalog

import (
	"sort"
	"strings"
)

// Listing is a service offering as the discovery views consume it.
type Listing struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Seller       string  `json:"seller"`
	Rating       float64 `json:"rating"`
	Reviews      int     `json:"reviews"`
	Price        float64 `json:"price"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	ImageURL     string  `json:"imageUrl"`
	DeliveryTime string  `json:"deliveryTime"`
}

// CategoryAll matches every category.
const CategoryAll = "all"

// Sort orders for the discovery page. Relevance keeps catalog order.
const (
	SortRelevance = "relevance"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
	SortReviews   = "reviews"
)

// Query is one discovery request: free-text search, a category, and a sort
// order. Zero values mean "everything, catalog order".
type Query struct {
	Search   string
	Category string
	Sort     string
}

// Apply filters then sorts, returning a fresh slice. Ties keep catalog
// order; an unknown sort key behaves like relevance.
func Apply(listings []Listing, q Query) []Listing {
	out := filter(listings, q.Search, q.Category)
	sortListings(out, q.Sort)
	return out
}

// matches reports whether the listing matches a lowercased search term.
func (l Listing) matches(term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(l.Title), term) ||
		strings.Contains(strings.ToLower(l.Seller), term) ||
		strings.Contains(strings.ToLower(l.Category), term) ||
		strings.Contains(strings.ToLower(l.Description), term)
}

func filter(listings []Listing, search, category string) []Listing {
	term := strings.ToLower(strings.TrimSpace(search))
	all := category == "" || category == CategoryAll

	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if !all && l.Category != category {
			continue
		}
		if !l.matches(term) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func sortListings(listings []Listing, key string) {
	var less func(a, b Listing) bool
	switch key {
	case SortPriceLow:
		less = func(a, b Listing) bool { return a.Price < b.Price }
	case SortPriceHigh:
		less = func(a, b Listing) bool { return a.Price > b.Price }
	case SortRating:
		less = func(a, b Listing) bool { return a.Rating > b.Rating }
	case SortReviews:
		less = func(a, b Listing) bool { return a.Reviews > b.Reviews }
	default:
		// relevance: catalog order
		return
	}
	sort.SliceStable(listings, func(i, j int) bool { return less(listings[i], listings[j]) })
}

// Categories returns the distinct categories present in the catalog, in
// first-seen order, prefixed with the CategoryAll sentinel.
func Categories(listings []Listing) []string {
	out := []string{CategoryAll}
	seen := make(map[string]bool)
	for _, l := range listings {
		if l.Category == "" || seen[l.Category] {
			continue
		}
		seen[l.Category] = true
		out = append(out, l.Category)
	}
	return out
}
