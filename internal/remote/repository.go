package remote

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Document is one whole-collection snapshot in the sync store.
type Document struct {
	Key       string
	Data      []byte
	UpdatedAt time.Time
}

// Repository persists whole-collection documents for multi-device sync.
// There is no field-level merging: the newest write for a key wins.
type Repository struct {
	db     *sql.DB
	userID string
}

// NewRepository creates a repository scoped to one user's documents.
func NewRepository(db *sql.DB, userID string) *Repository {
	return &Repository{db: db, userID: userID}
}

// Save upserts one collection document, stamping it with the current time.
func (r *Repository) Save(ctx context.Context, key string, data []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO collections (user_id, key, doc, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, key) DO UPDATE SET
			doc = excluded.doc,
			updated_at = excluded.updated_at`,
		r.userID, key, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save collection %s: %w", key, err)
	}
	return nil
}

// Get retrieves one collection document. Returns (nil, nil) when the
// collection has never been synced.
func (r *Repository) Get(ctx context.Context, key string) (*Document, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT doc, updated_at FROM collections
		WHERE user_id = ? AND key = ?`,
		r.userID, key)

	var doc string
	var updatedAt time.Time
	if err := row.Scan(&doc, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get collection %s: %w", key, err)
	}
	return &Document{Key: key, Data: []byte(doc), UpdatedAt: updatedAt}, nil
}

// ChangedSince lists documents updated strictly after the given time, oldest
// first, so the listener can replay them in order.
func (r *Repository) ChangedSince(ctx context.Context, since time.Time) ([]Document, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT key, doc, updated_at FROM collections
		WHERE user_id = ? AND updated_at > ?
		ORDER BY updated_at ASC`,
		r.userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list changed collections: %w", err)
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var d Document
		var doc string
		if err := rows.Scan(&d.Key, &doc, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan collection row: %w", err)
		}
		d.Data = []byte(doc)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read changed collections: %w", err)
	}
	return out, nil
}
