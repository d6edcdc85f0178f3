package main

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/cepdnaclk/e22-co2060-Syncro/cmd/syncro/config"
	"github.com/cepdnaclk/e22-co2060-Syncro/internal/api"
	"github.com/cepdnaclk/e22-co2060-Syncro/internal/catalog"
	"github.com/cepdnaclk/e22-co2060-Syncro/internal/logging"
	"github.com/cepdnaclk/e22-co2060-Syncro/internal/session"
	"github.com/cepdnaclk/e22-co2060-Syncro/internal/storage"
	"github.com/cepdnaclk/e22-co2060-Syncro/internal/store"
)

// app wires the client together: config, gateway client, session store, and
// the offline cache. One instance per process.
type app struct {
	cfg     config.Config
	gw      *api.Client
	session *session.Store
	cache   *store.Cache
}

// newApp builds the application wiring. The offline cache is best-effort;
// everything else is required.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		logging.UI("config load failed, using defaults: %v", err)
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	dir, err := storage.DefaultDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve state directory: %w", err)
	}
	kv, err := storage.NewFileStore(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}

	gw := api.New(cfg.BaseURL)

	var cache *store.Cache
	if path, err := store.DefaultPath(); err == nil {
		if cache, err = store.Open(path); err != nil {
			logging.StoreError("offline cache unavailable: %v", err)
			cache = nil
		}
	}

	return &app{
		cfg:     cfg,
		gw:      gw,
		session: session.New(kv, gw),
		cache:   cache,
	}, nil
}

// Close tears down the app. In-flight gateway results are dropped after this.
func (a *app) Close() {
	a.session.Close()
	if a.cache != nil {
		a.cache.Close()
	}
}

// fetchCatalog loads the catalog: gateway first, offline cache on failure,
// built-in samples as the last resort. Seller names come from profile
// lookups fanned out in parallel.
func (a *app) fetchCatalog(ctx context.Context) []catalog.Listing {
	raw, err := a.gw.Listings(ctx)
	if err != nil {
		logging.APIError("listings unavailable, falling back: %v", err)
		if a.cache != nil {
			if cached, cerr := a.cache.Listings(); cerr == nil && len(cached) > 0 {
				return cached
			}
		}
		return catalog.SampleListings
	}

	listings := a.resolveListings(ctx, raw)
	if a.cache != nil {
		if err := a.cache.SaveListings(listings); err != nil {
			logging.StoreError("failed to cache listings: %v", err)
		}
	}
	return listings
}

// resolveListings maps gateway listings to catalog listings, resolving
// seller display names concurrently.
func (a *app) resolveListings(ctx context.Context, raw []api.Listing) []catalog.Listing {
	sellers := make(map[int]string)
	for _, l := range raw {
		sellers[l.SellerID] = ""
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for id := range sellers {
		g.Go(func() error {
			profile, err := a.gw.ProfileFor(gctx, id)
			if err != nil {
				// Display falls back to the numeric id.
				return nil
			}
			mu.Lock()
			sellers[id] = profile.Name
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	out := make([]catalog.Listing, 0, len(raw))
	for _, l := range raw {
		seller := sellers[l.SellerID]
		if seller == "" {
			seller = fmt.Sprintf("Seller #%d", l.SellerID)
		}
		out = append(out, catalog.Listing{
			ID:           l.ID,
			Title:        l.Title,
			Seller:       seller,
			Rating:       session.DefaultSellerRating,
			Price:        l.Price,
			Category:     categoryName(l.CategoryID),
			Description:  l.Description,
			ImageURL:     l.ImageURL,
			DeliveryTime: l.DeliveryTime,
		})
	}
	return out
}

// categoryName maps a gateway category id to its display name. Ids are
// 1-based positions in the fixed category vocabulary.
func categoryName(id int) string {
	if id >= 1 && id <= len(catalog.ServiceCategories) {
		return catalog.ServiceCategories[id-1]
	}
	return "Other"
}

// fetchOrders loads the order book for the signed-in user, with the offline
// cache as fallback.
func (a *app) fetchOrders(ctx context.Context) []api.Order {
	user := a.session.AuthUser()
	if user == nil {
		return nil
	}

	orders, err := a.gw.OrdersForUser(ctx, user.Token, user.UserID)
	if err != nil {
		logging.APIError("orders unavailable, falling back: %v", err)
		if a.cache != nil {
			if cached, cerr := a.cache.OrdersForUser(user.UserID); cerr == nil {
				return cached
			}
		}
		return nil
	}
	if a.cache != nil {
		if err := a.cache.SaveOrders(user.UserID, orders); err != nil {
			logging.StoreError("failed to cache orders: %v", err)
		}
	}
	return orders
}

// requireLogin returns the signed-in user or a friendly error.
func (a *app) requireLogin() (*session.AuthUser, error) {
	user := a.session.AuthUser()
	if user == nil {
		return nil, fmt.Errorf("not signed in; run 'syncro login' first")
	}
	return user, nil
}
