package store

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cepdnaclk/e22-co2060-Syncro/internal/api"
	"github.com/cepdnaclk/e22-co2060-Syncro/internal/catalog"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestListingsRoundTripPreservesOrder(t *testing.T) {
	c := openTestCache(t)

	if err := c.SaveListings(catalog.SampleListings); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := c.Listings()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(catalog.SampleListings, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if c.LastRefreshed().IsZero() {
		t.Error("refresh timestamp not recorded")
	}
}

func TestSaveListingsReplacesSnapshot(t *testing.T) {
	c := openTestCache(t)

	if err := c.SaveListings(catalog.SampleListings); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := c.SaveListings(catalog.SampleListings[:2]); err != nil {
		t.Fatalf("resave: %v", err)
	}
	got, err := c.Listings()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 listings after replace, got %d", len(got))
	}
}

func TestEmptyCache(t *testing.T) {
	c := openTestCache(t)

	listings, err := c.Listings()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(listings) != 0 {
		t.Errorf("want empty catalog, got %d", len(listings))
	}
	if !c.LastRefreshed().IsZero() {
		t.Error("want zero refresh time for empty cache")
	}
}

func TestOrdersArePerUser(t *testing.T) {
	c := openTestCache(t)

	mine := []api.Order{
		{ID: 1, ServiceName: "Logo Design", Amount: 450, Status: "in-progress", BuyerID: 7, SellerID: 2},
		{ID: 2, ServiceName: "Content Writing", Amount: 300, Status: "completed", HasReview: true, BuyerID: 7, SellerID: 3},
	}
	theirs := []api.Order{
		{ID: 3, ServiceName: "SEO Optimization", Amount: 600, Status: "pending", BuyerID: 9, SellerID: 4},
	}
	if err := c.SaveOrders(7, mine); err != nil {
		t.Fatalf("save mine: %v", err)
	}
	if err := c.SaveOrders(9, theirs); err != nil {
		t.Fatalf("save theirs: %v", err)
	}

	got, err := c.OrdersForUser(7)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(mine, got); diff != "" {
		t.Errorf("orders mismatch (-want +got):\n%s", diff)
	}
}
