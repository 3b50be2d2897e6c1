package addons

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"addonhub/internal/api"
	"addonhub/internal/search"
	"addonhub/internal/tags"
)

func testRouter(t *testing.T) (*gin.Engine, *Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testDB(t)
	seedAddon(t, db)

	h := NewHandler(
		NewRepo(db),
		search.NewRepo(db),
		tags.NewRepo(db),
		api.URLBuilder{Base: "https://addons.example.com"},
	)
	r := gin.New()
	h.RegisterRoutes(r.Group("/addons"))
	return r, h
}

func doGET(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestHandlerGetAddon(t *testing.T) {
	r, _ := testRouter(t)

	w := doGET(r, "/addons/a3615")
	require.Equal(t, http.StatusOK, w.Code)

	var doc AddonDoc
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "a3615", doc.Slug)
	assert.Equal(t, "extension", doc.Type)
	assert.Equal(t, "Delicious Bookmarks", doc.Name)
	assert.Equal(t, []string{"bookmarks"}, doc.Tags)
	assert.True(t, doc.HasEULA)
	require.NotNil(t, doc.CurrentVersion)
	assert.Equal(t, "2.1.072", doc.CurrentVersion.Version)
}

func TestHandlerGetAddonLang(t *testing.T) {
	r, _ := testRouter(t)

	w := doGET(r, "/addons/a3615?lang=fr")
	require.Equal(t, http.StatusOK, w.Code)

	var doc AddonDoc
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "Marque-pages Delicious", doc.Name)
	// no fr summary: default locale fallback
	assert.Equal(t, "Best bookmarks", doc.Summary)
}

func TestHandlerGetAddonNotFound(t *testing.T) {
	r, _ := testRouter(t)
	w := doGET(r, "/addons/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlerGetVersion(t *testing.T) {
	r, _ := testRouter(t)

	w := doGET(r, "/addons/a3615/versions/81551")
	require.Equal(t, http.StatusOK, w.Code)

	var doc VersionDoc
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "2.1.072", doc.Version)
	assert.Equal(t, "fixed stuff", doc.ReleaseNotes)
	require.NotNil(t, doc.License)
	assert.Equal(t, "BSD", doc.License.Name)

	w = doGET(r, "/addons/a3615/versions/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doGET(r, "/addons/a3615/versions/999")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlerSearch(t *testing.T) {
	r, h := testRouter(t)

	// index one reconstructable document
	id, slug := int64(3615), "a3615"
	typ, status := 1, 4
	doc := &search.Document{
		ID:            &id,
		Slug:          &slug,
		Type:          &typ,
		Status:        &status,
		DefaultLocale: "en-US",
		Name:          map[string]string{"en-US": "Delicious Bookmarks"},
		Tags:          []string{"bookmarks"},
	}
	require.NoError(t, h.Search.Upsert(context.Background(), doc, "Delicious Bookmarks"))

	w := doGET(r, "/addons/search?q=delicious")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count   int        `json:"count"`
		Results []AddonDoc `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "a3615", body.Results[0].Slug)
	assert.Equal(t, "Delicious Bookmarks", body.Results[0].Name)
	assert.Equal(t, []string{"bookmarks"}, body.Results[0].Tags)
}

func TestHandlerSearchNoResults(t *testing.T) {
	r, _ := testRouter(t)
	w := doGET(r, "/addons/search?q=nothing")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count   int        `json:"count"`
		Results []AddonDoc `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 0, body.Count)
	assert.NotNil(t, body.Results)
}

func TestHandlerSearchMalformedDocument(t *testing.T) {
	r, h := testRouter(t)

	// hand-write a stored document with no type; reconstruction must fail
	// loudly rather than default it
	_, err := h.Search.DB.Exec(`
		INSERT INTO search_addons (addon_id, slug, name, doc)
		VALUES (99, 'broken', 'Broken', '{"id":99,"slug":"broken"}')
	`)
	require.NoError(t, err)

	w := doGET(r, "/addons/search?q=broken")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
