package search

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// Repo reads and writes the denormalized index mirror: one JSON document
// per add-on in the search_addons table.
type Repo struct {
	DB *sql.DB
}

type Query struct {
	Q      string // keyword match against the indexed display name and slug
	Limit  int
	Offset int
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// Upsert stores the document for an add-on, replacing any previous one.
func (r *Repo) Upsert(ctx context.Context, doc *Document, name string) error {
	if doc.ID == nil || doc.Slug == nil {
		return fmt.Errorf("%w: document must carry id and slug", ErrMalformedDocument)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO search_addons (addon_id, slug, name, doc, indexed_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(addon_id) DO UPDATE SET
		  slug = excluded.slug,
		  name = excluded.name,
		  doc = excluded.doc,
		  indexed_at = excluded.indexed_at
	`, *doc.ID, *doc.Slug, name, string(raw))
	if err != nil {
		return fmt.Errorf("upsert document %d: %w", *doc.ID, err)
	}
	return nil
}

// Search returns raw documents matching the query, most recently indexed
// first for equal names.
func (r *Repo) Search(ctx context.Context, q Query) ([]*Document, error) {
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	var where string
	var args []any
	if kw := strings.TrimSpace(q.Q); kw != "" {
		where = `WHERE LOWER(name) LIKE ? OR LOWER(slug) LIKE ?`
		pattern := "%" + strings.ToLower(kw) + "%"
		args = append(args, pattern, pattern)
	}
	args = append(args, limit, offset)

	rows, err := r.DB.QueryContext(ctx, `
		SELECT doc FROM search_addons
	`+where+`
		ORDER BY name, indexed_at DESC
		LIMIT ? OFFSET ?
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	var out []*Document
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		var doc Document
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		out = append(out, &doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search rows: %w", err)
	}
	return out, nil
}

// Get returns the document for one add-on, or nil when it was never
// indexed.
func (r *Repo) Get(ctx context.Context, addonID int64) (*Document, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT doc FROM search_addons WHERE addon_id = ?
	`, addonID)

	var raw string
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}
