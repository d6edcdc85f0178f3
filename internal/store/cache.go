// Package store is the offline cache. The last fetched catalog and order
// book are kept in a local SQLite database so browsing still works when the
// gateway is unreachable.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cepdnaclk/e22-co2060-Syncro/internal/api"
	"github.com/cepdnaclk/e22-co2060-Syncro/internal/catalog"
	"github.com/cepdnaclk/e22-co2060-Syncro/internal/logging"
)

// Cache is a SQLite-backed snapshot of gateway data.
type Cache struct {
	db *sql.DB
	mu sync.Mutex
}

// Open initializes the cache database at the given path, creating the
// directory and schema as needed.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.StoreError("failed to set busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.StoreError("failed to set journal_mode=WAL: %v", err)
	}

	c := &Cache{db: db}
	if err := c.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	logging.Store("offline cache ready at %s", path)
	return c, nil
}

// DefaultPath is the cache location under the user's home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".syncro", "cache.db"), nil
}

func (c *Cache) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS listings (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		seller TEXT NOT NULL,
		rating REAL NOT NULL,
		reviews INTEGER NOT NULL,
		price REAL NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL,
		image_url TEXT,
		delivery_time TEXT,
		position INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS orders (
		id INTEGER PRIMARY KEY,
		user_id INTEGER NOT NULL,
		service_name TEXT NOT NULL,
		amount REAL NOT NULL,
		status TEXT NOT NULL,
		has_review INTEGER NOT NULL,
		created_at TEXT,
		buyer_id INTEGER NOT NULL,
		seller_id INTEGER NOT NULL,
		listing_id INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id);
	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`
	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// SaveListings replaces the cached catalog snapshot. Position preserves
// catalog order so relevance sorting survives the round trip.
func (c *Cache) SaveListings(listings []catalog.Listing) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM listings"); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO listings
		(id, title, seller, rating, reviews, price, category, description, image_url, delivery_time, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, l := range listings {
		if _, err := stmt.Exec(l.ID, l.Title, l.Seller, l.Rating, l.Reviews, l.Price,
			l.Category, l.Description, l.ImageURL, l.DeliveryTime, i); err != nil {
			return err
		}
	}
	if err := setMeta(tx, "listings_refreshed_at", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	logging.Store("cached %d listings", len(listings))
	return nil
}

// Listings returns the cached catalog in its original order.
func (c *Cache) Listings() ([]catalog.Listing, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := c.db.Query(`SELECT id, title, seller, rating, reviews, price, category,
		description, image_url, delivery_time FROM listings ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Listing
	for rows.Next() {
		var l catalog.Listing
		if err := rows.Scan(&l.ID, &l.Title, &l.Seller, &l.Rating, &l.Reviews, &l.Price,
			&l.Category, &l.Description, &l.ImageURL, &l.DeliveryTime); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// SaveOrders replaces the cached order book for one user.
func (c *Cache) SaveOrders(userID int, orders []api.Order) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM orders WHERE user_id = ?", userID); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO orders
		(id, user_id, service_name, amount, status, has_review, created_at, buyer_id, seller_id, listing_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, o := range orders {
		if _, err := stmt.Exec(o.ID, userID, o.ServiceName, o.Amount, o.Status,
			o.HasReview, o.CreatedAt, o.BuyerID, o.SellerID, o.ListingID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// OrdersForUser returns the cached order book for one user.
func (c *Cache) OrdersForUser(userID int) ([]api.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := c.db.Query(`SELECT id, service_name, amount, status, has_review,
		created_at, buyer_id, seller_id, listing_id FROM orders WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []api.Order
	for rows.Next() {
		var o api.Order
		if err := rows.Scan(&o.ID, &o.ServiceName, &o.Amount, &o.Status, &o.HasReview,
			&o.CreatedAt, &o.BuyerID, &o.SellerID, &o.ListingID); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// LastRefreshed reports when the catalog snapshot was taken, or the zero
// time when nothing is cached yet.
func (c *Cache) LastRefreshed() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	var raw string
	err := c.db.QueryRow("SELECT value FROM meta WHERE key = ?", "listings_refreshed_at").Scan(&raw)
	if err != nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func setMeta(tx *sql.Tx, key, value string) error {
	_, err := tx.Exec(`INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}
