package search

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"addonhub/internal/amo"
	"addonhub/pkg/models"
)

var (
	// ErrMalformedDocument means a required scalar is missing from an
	// indexed document: index/schema drift, never silently defaulted.
	ErrMalformedDocument = errors.New("malformed search document")

	// ErrUnknownApplication means a compatibility entry references an
	// application id absent from the static registry.
	ErrUnknownApplication = errors.New("unknown application")
)

// Reconstruct builds the full View graph from one search document. The
// result satisfies the same attribute contract as a live-store view, so the
// serializers behave identically on either. Optional nested structures that
// are absent become empty sub-views, never errors.
func Reconstruct(doc *Document) (*models.AddonView, error) {
	if doc.ID == nil {
		return nil, missing("id")
	}
	if doc.Slug == nil {
		return nil, missing("slug")
	}
	if doc.Type == nil {
		return nil, missing("type")
	}
	if doc.Status == nil {
		return nil, missing("status")
	}

	a := &models.AddonView{
		ID:            *doc.ID,
		GUID:          doc.GUID,
		Slug:          *doc.Slug,
		Type:          *doc.Type,
		Status:        *doc.Status,
		DefaultLocale: doc.DefaultLocale,

		IsDisabled:     doc.IsDisabled,
		IsExperimental: doc.IsExperimental,
		IsListed:       doc.IsListed,
		ViewSource:     doc.ViewSource,
		PublicStats:    doc.PublicStats,

		AverageDailyUsers: doc.AverageDailyUsers,
		WeeklyDownloads:   doc.WeeklyDownloads,
		LastUpdated:       decodeTime(doc.LastUpdated),

		Name:         rebuildTranslations(doc.Name),
		Description:  rebuildTranslations(doc.Description),
		Homepage:     rebuildTranslations(doc.Homepage),
		Summary:      rebuildTranslations(doc.Summary),
		SupportEmail: rebuildTranslations(doc.SupportEmail),
		SupportURL:   rebuildTranslations(doc.SupportURL),

		// The index always carries the precomputed booleans; the
		// serializer skips its live-path truthiness fallback.
		HasEULA:          boolPtr(doc.HasEULA),
		HasPrivacyPolicy: boolPtr(doc.HasPrivacyPolicy),

		AverageRating: doc.Ratings.Average,
		TotalReviews:  doc.Ratings.Count,

		// Tag lists are stored denormalized; mark the cache filled so the
		// serializer never calls the tag store on this path.
		Tags:        doc.Tags,
		TagsFetched: true,
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}

	var err error
	if a.CurrentVersion, err = reconstructVersion(doc.CurrentVersion, a.ID, a.Slug); err != nil {
		return nil, err
	}
	if a.CurrentBetaVersion, err = reconstructVersion(doc.CurrentBetaVersion, a.ID, a.Slug); err != nil {
		return nil, err
	}

	a.Previews = make([]models.PreviewView, 0, len(doc.Previews))
	for _, p := range doc.Previews {
		if p.ID == nil {
			return nil, missing("previews[].id")
		}
		a.Previews = append(a.Previews, models.PreviewView{
			ID:      *p.ID,
			Caption: rebuildTranslations(p.Caption),
		})
	}

	a.Authors = make([]models.AuthorView, 0, len(doc.Authors))
	for _, author := range doc.Authors {
		a.Authors = append(a.Authors, models.AuthorView{
			ID:          author.ID,
			Username:    author.Username,
			DisplayName: author.Name,
		})
	}

	a.AppCategories = rebuildCategories(doc.Categories)

	// A persona-type add-on whose document has no persona section gets the
	// broken sentinel rather than plain absence, so the guard can be probed
	// uniformly without raising on access.
	if a.Type == amo.AddonPersona {
		if doc.Persona != nil {
			p := models.Persona{
				Author:      doc.Persona.Author,
				AccentColor: doc.Persona.AccentColor,
				TextColor:   doc.Persona.TextColor,
				Header:      doc.Persona.Header,
				Footer:      doc.Persona.Footer,
				PersonaID:   1,
			}
			if doc.Persona.IsNew {
				p.PersonaID = 0
			}
			a.Persona = models.PersonaRelation{State: models.PersonaPresent, Persona: p}
		} else {
			a.Persona = models.PersonaRelation{State: models.PersonaBroken}
		}
	}

	return a, nil
}

func reconstructVersion(sec *VersionSection, addonID int64, slug string) (*models.VersionView, error) {
	if sec == nil {
		return nil, nil
	}
	if sec.ID == nil {
		return nil, missing("version.id")
	}
	if sec.Version == nil {
		return nil, missing("version.version")
	}

	v := &models.VersionView{
		ID:        *sec.ID,
		AddonID:   addonID,
		AddonSlug: slug,
		Version:   *sec.Version,
		Reviewed:  decodeTime(sec.Reviewed),
	}

	v.Files = make([]models.FileView, 0, len(sec.Files))
	for _, f := range sec.Files {
		if f.ID == nil {
			return nil, missing("version.files[].id")
		}
		if f.Platform == nil {
			return nil, missing("version.files[].platform")
		}
		if f.Status == nil {
			return nil, missing("version.files[].status")
		}
		v.Files = append(v.Files, models.FileView{
			ID:       *f.ID,
			Created:  decodeTime(f.Created),
			Hash:     f.Hash,
			Filename: f.Filename,
			Platform: *f.Platform,
			Size:     f.Size,
			Status:   *f.Status,
		})
	}

	// Re-expand the integer-keyed compatibility entries into named
	// application ranges via the static registry.
	v.Compat = make(map[string]models.VersionRange, len(sec.Compat))
	for key, compat := range sec.Compat {
		appID, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: bad application key %q", ErrUnknownApplication, key)
		}
		app, ok := amo.AppsAll[appID]
		if !ok {
			return nil, fmt.Errorf("%w: id %d", ErrUnknownApplication, appID)
		}
		v.Compat[app.Short] = models.VersionRange{
			Min: compat.MinHuman,
			Max: compat.MaxHuman,
		}
	}

	return v, nil
}

// rebuildCategories maps stored registry ids to category views grouped by
// application; unknown ids are dropped (registry drift is tolerated for
// categories, unlike applications).
func rebuildCategories(ids []int) map[string][]models.Category {
	out := map[string][]models.Category{}
	sorted := append([]int(nil), ids...)
	sort.Ints(sorted)
	for _, id := range sorted {
		cat, ok := amo.CategoriesByID[id]
		if !ok {
			continue
		}
		out[cat.App.Short] = append(out[cat.App.Short], models.Category{ID: cat.ID, Slug: cat.Slug})
	}
	return out
}

func rebuildTranslations(section map[string]string) models.Translations {
	t := models.Translations{}
	for locale, value := range section {
		t[locale] = value
	}
	return t
}

func decodeTime(epoch int64) time.Time {
	if epoch == 0 {
		return time.Time{}
	}
	return time.Unix(epoch, 0).UTC()
}

func boolPtr(b bool) *bool {
	return &b
}

func missing(field string) error {
	return fmt.Errorf("%w: missing required field %q", ErrMalformedDocument, field)
}
