package tags

import (
	"context"
	"database/sql"
	"fmt"
)

// Repo is the tag store collaborator: the ordered tag list of an add-on.
// Callers memoize the result on their view; the repo itself is stateless.
type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// ForAddon returns the add-on's tags in stored order; an add-on with no
// tags yields an empty list, not an error.
func (r *Repo) ForAddon(ctx context.Context, addonID int64) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT tag
		FROM addon_tags
		WHERE addon_id = ?
		ORDER BY position, tag
	`, addonID)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		out = append(out, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tags rows: %w", err)
	}
	return out, nil
}
