package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/parsel"
	"github.com/google/uuid"
)

// timeFormat has a fixed width so stored timestamps sort lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Compile-time interface verification.
var _ parsel.Cache = (*Cache)(nil)

// Cache implements parsel.Cache using SQLite. Entries older than the
// expiry are treated as misses.
type Cache struct {
	db     *DB
	expire time.Duration

	// Now returns the current time. Overridable in tests.
	Now func() time.Time
}

// NewCache creates a new Cache. A zero expire keeps entries forever.
func NewCache(db *DB, expire time.Duration) *Cache {
	return &Cache{db: db, expire: expire, Now: time.Now}
}

// Get returns the cached response for url and headers.
// Returns ENOTFOUND if there is no fresh entry.
func (c *Cache) Get(ctx context.Context, url string, headers map[string]string) (*parsel.Response, error) {
	var (
		resp     parsel.Response
		storedAt string
	)
	err := c.db.QueryRowContext(ctx, `
		SELECT final_url, status_code, content_type, content, stored_at
		FROM responses
		WHERE cache_key = ?
	`, cacheKey(url, headers)).Scan(&resp.URL, &resp.StatusCode, &resp.ContentType, &resp.Content, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, parsel.Errorf(parsel.ENOTFOUND, "no cached response for %s", url)
	}
	if err != nil {
		return nil, err
	}

	stored, err := parseRFC3339(storedAt, "stored_at")
	if err != nil {
		return nil, err
	}
	if c.expired(stored) {
		return nil, parsel.Errorf(parsel.ENOTFOUND, "cached response for %s expired", url)
	}
	return &resp, nil
}

// Put stores resp for url and headers, replacing any previous entry.
func (c *Cache) Put(ctx context.Context, url string, headers map[string]string, resp *parsel.Response) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO responses (id, cache_key, url, final_url, status_code, content_type, content, content_hash, stored_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			final_url = excluded.final_url,
			status_code = excluded.status_code,
			content_type = excluded.content_type,
			content = excluded.content,
			content_hash = excluded.content_hash,
			stored_at = excluded.stored_at
	`, uuid.New().String(), cacheKey(url, headers), url, resp.URL, resp.StatusCode, resp.ContentType,
		resp.Content, hashString(resp.Content), c.Now().UTC().Format(timeFormat))
	return err
}

// Purge deletes expired entries and returns how many were removed.
func (c *Cache) Purge(ctx context.Context) (int64, error) {
	if c.expire <= 0 {
		return 0, nil
	}
	cutoff := c.Now().UTC().Add(-c.expire).Format(timeFormat)
	res, err := c.db.ExecContext(ctx, `DELETE FROM responses WHERE stored_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (c *Cache) expired(stored time.Time) bool {
	return c.expire > 0 && c.Now().Sub(stored) > c.expire
}
