package indexer

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"addonhub/internal/addons"
	"addonhub/internal/amo"
	"addonhub/internal/api"
	"addonhub/internal/search"
	"addonhub/internal/tags"
	"addonhub/pkg/database"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.MigrateFrom(db, "../../docs/schema.sql"))
	return db
}

// seedStoredAddon writes one extension with sub-second timestamps, the way
// a writer using time.Time values would leave them in the store.
func seedStoredAddon(t *testing.T, db *sql.DB) {
	t.Helper()
	stmts := []struct {
		q    string
		args []any
	}{
		{`INSERT INTO addons (id, slug, type, status, default_locale, last_updated, name, summary, current_version_id)
		  VALUES (3615, 'a3615', ?, ?, 'en-US', '2012-01-01T12:30:00.5Z',
		    '{"en-US":"Delicious Bookmarks"}', '{"en-US":"Best bookmarks"}', 81551)`,
			[]any{amo.AddonExtension, amo.StatusPublic}},
		{`INSERT INTO versions (id, addon_id, version, reviewed)
		  VALUES (81551, 3615, '2.1.072', '2012-01-01T00:00:00.25Z')`, nil},
		{`INSERT INTO files (id, version_id, created, filename, platform, size, status)
		  VALUES (67442, 81551, '2011-12-01T00:00:00.75Z', 'delicious.xpi', ?, 902, ?)`,
			[]any{amo.PlatformAll, amo.StatusPublic}},
		{`INSERT INTO appversions_compat (version_id, app_id, min, max)
		  VALUES (81551, 1, '3.0', '10.*')`, nil},
		{`INSERT INTO addon_tags (addon_id, tag) VALUES (3615, 'bookmarks')`, nil},
	}
	for _, s := range stmts {
		_, err := db.Exec(s.q, s.args...)
		require.NoError(t, err)
	}
}

func testReindexRouter(t *testing.T) (*gin.Engine, *sql.DB, *Indexer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testDB(t)
	seedStoredAddon(t, db)

	addonRepo := addons.NewRepo(db)
	ix := New(addonRepo, search.NewRepo(db), tags.NewRepo(db))
	h := NewHandler(ix, addonRepo, nil)

	r := gin.New()
	h.RegisterRoutes(r.Group("/devhub"))
	return r, db, ix
}

func TestReindexHandler(t *testing.T) {
	r, _, ix := testReindexRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/devhub/addons/a3615/reindex", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status  string `json:"status"`
		AddonID int64  `json:"addon_id"`
		Slug    string `json:"slug"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "indexed", body.Status)
	assert.Equal(t, int64(3615), body.AddonID)
	assert.Equal(t, "a3615", body.Slug)

	// the response was confirmed against the stored document
	stored, err := ix.Index.Get(context.Background(), 3615)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "a3615", *stored.Slug)
}

func TestReindexHandlerUnknownSlug(t *testing.T) {
	r, _, _ := testReindexRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/devhub/addons/nope/reindex", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// Sub-second timestamps in the store must not break the byte identity of
// the two serialization paths: the live repo truncates to seconds, matching
// the epoch-second precision of the index.
func TestStoredFractionalTimestampsSerializeIdentically(t *testing.T) {
	_, db, ix := testReindexRouter(t)
	ctx := context.Background()

	require.NoError(t, ix.ReindexAddon(ctx, 3615))

	live, err := ix.Addons.GetByID(ctx, 3615)
	require.NoError(t, err)
	require.NotNil(t, live)

	stored, err := ix.Index.Get(ctx, 3615)
	require.NoError(t, err)
	require.NotNil(t, stored)
	rebuilt, err := search.Reconstruct(stored)
	require.NoError(t, err)

	s := addons.NewSerializer(api.URLBuilder{Base: "https://addons.example.com"}, "en-US", tags.NewRepo(db))
	liveDoc, err := s.Addon(ctx, live)
	require.NoError(t, err)
	rebuiltDoc, err := s.Addon(ctx, rebuilt)
	require.NoError(t, err)

	liveJSON, err := json.Marshal(liveDoc)
	require.NoError(t, err)
	rebuiltJSON, err := json.Marshal(rebuiltDoc)
	require.NoError(t, err)
	assert.Equal(t, string(liveJSON), string(rebuiltJSON))
	assert.Contains(t, string(liveJSON), `"last_updated":"2012-01-01T12:30:00Z"`)
}
