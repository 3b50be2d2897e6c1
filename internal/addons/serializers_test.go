package addons

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"addonhub/internal/amo"
	"addonhub/internal/api"
	"addonhub/pkg/models"
)

// countingTagStore counts lookups so tests can assert the serializer's
// once-per-view caching.
type countingTagStore struct {
	tags  []string
	calls int
}

func (s *countingTagStore) ForAddon(_ context.Context, _ int64) ([]string, error) {
	s.calls++
	return s.tags, nil
}

func testURLs() api.URLBuilder {
	return api.URLBuilder{Base: "https://addons.example.com"}
}

func extensionView() *models.AddonView {
	return &models.AddonView{
		ID:            3615,
		GUID:          "{2fa4ed95-0317-4c6a-a74c-5f3e3912c1f9}",
		Slug:          "a3615",
		Type:          amo.AddonExtension,
		Status:        amo.StatusPublic,
		DefaultLocale: "en-US",
		IsListed:      true,
		LastUpdated:   time.Date(2012, 1, 1, 0, 0, 0, 0, time.UTC),
		Name:          models.Translations{"en-US": "Delicious Bookmarks", "fr": "Marque-pages Delicious"},
		Summary:       models.Translations{"en-US": "Best bookmarks"},
		EULA:          models.Translations{"en-US": "you must agree"},
		CurrentVersion: &models.VersionView{
			ID:        81551,
			AddonID:   3615,
			AddonSlug: "a3615",
			Version:   "2.1.072",
			Reviewed:  time.Date(2012, 1, 1, 0, 0, 0, 0, time.UTC),
			Files: []models.FileView{{
				ID:       67442,
				Created:  time.Date(2012, 1, 1, 0, 0, 0, 0, time.UTC),
				Hash:     "sha256:abc",
				Filename: "delicious-2.1.072.xpi",
				Platform: amo.PlatformAll,
				Size:     902,
				Status:   amo.StatusPublic,
			}},
			Compat: map[string]models.VersionRange{
				"firefox": {Min: "3.0", Max: "10.*"},
			},
		},
		AppCategories: map[string][]models.Category{
			"firefox": {{ID: 22, Slug: "language-support"}},
		},
		Tags:        []string{"bookmarks"},
		TagsFetched: true,
	}
}

func personaView() *models.AddonView {
	a := extensionView()
	a.Type = amo.AddonPersona
	a.CurrentVersion = nil
	a.Persona = models.PersonaRelation{
		State: models.PersonaPresent,
		Persona: models.Persona{
			PersonaID:   813,
			Author:      "persona_author",
			AccentColor: "8d8b97",
			TextColor:   "ffffff",
			Header:      "header.png",
			Footer:      "footer.png",
		},
	}
	return a
}

func TestAddonBasicFields(t *testing.T) {
	s := NewSerializer(testURLs(), "en-US", nil)
	doc, err := s.Addon(context.Background(), extensionView())
	require.NoError(t, err)

	assert.Equal(t, "extension", doc.Type)
	assert.Equal(t, "public", doc.Status)
	assert.Equal(t, "Delicious Bookmarks", doc.Name)
	assert.Equal(t, "https://addons.example.com/addon/a3615/", doc.URL)
	assert.Equal(t, "https://addons.example.com/editors/review/3615", doc.ReviewURL)
	assert.Equal(t, "https://addons.example.com/user-media/addon_icons/3/3615-64.png", doc.IconURL)
	assert.Equal(t, map[string][]string{"firefox": {"language-support"}}, doc.Categories)
	assert.Nil(t, doc.ThemeData)

	require.NotNil(t, doc.CurrentVersion)
	assert.Equal(t, RangeDoc{Min: "3.0", Max: "10.*"}, doc.CurrentVersion.Compatibility["firefox"])
	require.Len(t, doc.CurrentVersion.Files, 1)
	assert.Equal(t, "all", doc.CurrentVersion.Files[0].Platform)
	assert.Equal(t, "https://addons.example.com/downloads/file/67442/delicious-2.1.072.xpi?src=", doc.CurrentVersion.Files[0].URL)
}

func TestAddonLocaleResolution(t *testing.T) {
	s := NewSerializer(testURLs(), "fr", nil)
	doc, err := s.Addon(context.Background(), extensionView())
	require.NoError(t, err)

	assert.Equal(t, "Marque-pages Delicious", doc.Name)
	// no fr summary: fall back to the addon's default locale
	assert.Equal(t, "Best bookmarks", doc.Summary)
}

func TestAddonHasEULATruthiness(t *testing.T) {
	s := NewSerializer(testURLs(), "en-US", nil)

	a := extensionView()
	doc, err := s.Addon(context.Background(), a)
	require.NoError(t, err)
	assert.True(t, doc.HasEULA)
	assert.False(t, doc.HasPrivacyPolicy)

	// a precomputed flag wins over content truthiness
	f := false
	a = extensionView()
	a.HasEULA = &f
	doc, err = s.Addon(context.Background(), a)
	require.NoError(t, err)
	assert.False(t, doc.HasEULA)
}

func TestAddonEmptyCategoryListSurvives(t *testing.T) {
	a := extensionView()
	a.AppCategories = map[string][]models.Category{
		"firefox": {},
	}
	s := NewSerializer(testURLs(), "en-US", nil)
	doc, err := s.Addon(context.Background(), a)
	require.NoError(t, err)

	raw, err := json.Marshal(doc.Categories)
	require.NoError(t, err)
	assert.JSONEq(t, `{"firefox": []}`, string(raw))
}

func TestAddonTagsFetchedOnce(t *testing.T) {
	store := &countingTagStore{tags: []string{"bookmarks", "social"}}
	s := NewSerializer(testURLs(), "en-US", store)

	a := extensionView()
	a.Tags = nil
	a.TagsFetched = false

	doc, err := s.Addon(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, []string{"bookmarks", "social"}, doc.Tags)
	assert.Equal(t, 1, store.calls)

	// the cache is on the view, not the serializer
	doc, err = s.Addon(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, []string{"bookmarks", "social"}, doc.Tags)
	assert.Equal(t, 1, store.calls)
}

func TestAddonTagsNeverNil(t *testing.T) {
	s := NewSerializer(testURLs(), "en-US", nil)
	a := extensionView()
	a.Tags = nil
	a.TagsFetched = false
	doc, err := s.Addon(context.Background(), a)
	require.NoError(t, err)
	assert.NotNil(t, doc.Tags)
	assert.Empty(t, doc.Tags)
}

func TestAddonPersonaTheme(t *testing.T) {
	s := NewSerializer(testURLs(), "en-US", nil)
	doc, err := s.Addon(context.Background(), personaView())
	require.NoError(t, err)

	assert.Equal(t, "persona", doc.Type)
	require.NotNil(t, doc.ThemeData)
	assert.Equal(t, "8d8b97", doc.ThemeData.AccentColor)
	assert.False(t, doc.ThemeData.IsNew)
	assert.Equal(t, "https://addons.example.com/user-media/addon_icons/3/3615-64.png", doc.IconURL)
}

func TestAddonBrokenPersona(t *testing.T) {
	s := NewSerializer(testURLs(), "en-US", nil)

	for _, state := range []models.PersonaState{models.PersonaAbsent, models.PersonaBroken} {
		a := personaView()
		a.Persona = models.PersonaRelation{State: state}
		doc, err := s.Addon(context.Background(), a)
		require.NoError(t, err)

		assert.Equal(t, "https://addons.example.com/static/img/addon-icons/default-64.png", doc.IconURL)
		assert.Nil(t, doc.ThemeData)

		// theme_data must be omitted from the payload, not rendered null
		raw, err := json.Marshal(doc)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "theme_data")
	}
}

func TestAddonInvalidChoice(t *testing.T) {
	s := NewSerializer(testURLs(), "en-US", nil)

	a := extensionView()
	a.Type = 42
	_, err := s.Addon(context.Background(), a)
	assert.ErrorIs(t, err, api.ErrInvalidChoice)

	a = extensionView()
	a.CurrentVersion.Files[0].Platform = 42
	_, err = s.Addon(context.Background(), a)
	assert.ErrorIs(t, err, api.ErrInvalidChoice)
}

func TestVersionSupersetOfBrief(t *testing.T) {
	s := NewSerializer(testURLs(), "en-US", nil)
	v := extensionView().CurrentVersion
	v.ReleaseNotes = models.Translations{"en-US": "fixed stuff"}
	v.License = &models.LicenseView{
		Name: models.Translations{"en-US": "BSD"},
		Text: models.Translations{"en-US": "license text"},
		URL:  "http://license.example.com/",
	}

	brief, err := s.VersionBrief(v)
	require.NoError(t, err)
	full, err := s.Version(v, "en-US")
	require.NoError(t, err)

	assert.Equal(t, brief.ID, full.ID)
	assert.Equal(t, brief.Compatibility, full.Compatibility)
	assert.Equal(t, brief.EditURL, full.EditURL)
	assert.Equal(t, brief.Files, full.Files)
	assert.Equal(t, brief.Reviewed, full.Reviewed)
	assert.Equal(t, brief.URL, full.URL)
	assert.Equal(t, brief.Version, full.Version)

	assert.Equal(t, "fixed stuff", full.ReleaseNotes)
	require.NotNil(t, full.License)
	assert.Equal(t, "BSD", full.License.Name)
	assert.Equal(t, "http://license.example.com/", full.License.URL)
}

func TestPreviewURLs(t *testing.T) {
	s := NewSerializer(testURLs(), "en-US", nil)
	doc := s.Preview(&models.PreviewView{
		ID:      12345,
		Caption: models.Translations{"en-US": "screenshot"},
	}, "en-US")

	assert.Equal(t, "screenshot", doc.Caption)
	assert.Equal(t, "https://addons.example.com/user-media/previews/full/12/12345.png", doc.ImageURL)
	assert.Equal(t, "https://addons.example.com/user-media/previews/thumbs/12/12345.png", doc.ThumbnailURL)
}
