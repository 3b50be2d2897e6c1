package addons

import (
	"context"
	"fmt"

	"addonhub/internal/amo"
	"addonhub/internal/api"
	"addonhub/pkg/models"
)

var (
	typeField     = api.NewChoiceField(amo.AddonTypeChoicesAPI)
	statusField   = api.NewChoiceField(amo.StatusChoicesAPI)
	platformField = api.NewChoiceField(amo.PlatformChoicesAPI)
)

// TagStore resolves the ordered tag list of an add-on. The serializer calls
// it at most once per view.
type TagStore interface {
	ForAddon(ctx context.Context, addonID int64) ([]string, error)
}

// Serializer renders View graphs into public documents. It does not care
// whether a view came from the live store or the search reconstructor; one
// instance serves one request locale.
type Serializer struct {
	URLs   api.URLBuilder
	Locale string
	Tags   TagStore
}

func NewSerializer(urls api.URLBuilder, locale string, tags TagStore) *Serializer {
	if locale == "" {
		locale = "en-US"
	}
	return &Serializer{URLs: urls, Locale: locale, Tags: tags}
}

func (s *Serializer) File(f *models.FileView) (FileDoc, error) {
	platform, err := platformField.Public(f.Platform)
	if err != nil {
		return FileDoc{}, fmt.Errorf("file %d platform: %w", f.ID, err)
	}
	status, err := statusField.Public(f.Status)
	if err != nil {
		return FileDoc{}, fmt.Errorf("file %d status: %w", f.ID, err)
	}
	return FileDoc{
		ID:       f.ID,
		Created:  f.Created,
		Hash:     f.Hash,
		Platform: platform,
		Size:     f.Size,
		Status:   status,
		URL:      s.URLs.FileDownload(f.ID, f.Filename),
	}, nil
}

func (s *Serializer) Preview(p *models.PreviewView, defaultLocale string) PreviewDoc {
	return PreviewDoc{
		ID:           p.ID,
		Caption:      p.Caption.Resolve(s.Locale, defaultLocale),
		ImageURL:     s.URLs.PreviewImage(p.ID),
		ThumbnailURL: s.URLs.PreviewThumbnail(p.ID),
	}
}

func (s *Serializer) License(l *models.LicenseView, defaultLocale string) LicenseDoc {
	return LicenseDoc{
		Name: l.Name.Resolve(s.Locale, defaultLocale),
		Text: l.Text.Resolve(s.Locale, defaultLocale),
		URL:  l.URL,
	}
}

// VersionBrief renders the version shape nested inside addon documents:
// no license, no release notes.
func (s *Serializer) VersionBrief(v *models.VersionView) (*VersionBriefDoc, error) {
	files := make([]FileDoc, 0, len(v.Files))
	for i := range v.Files {
		doc, err := s.File(&v.Files[i])
		if err != nil {
			return nil, err
		}
		files = append(files, doc)
	}

	compat := make(map[string]RangeDoc, len(v.Compat))
	for short, rng := range v.Compat {
		compat[short] = RangeDoc{Min: rng.Min, Max: rng.Max}
	}

	return &VersionBriefDoc{
		ID:            v.ID,
		Compatibility: compat,
		EditURL:       s.URLs.VersionEdit(v.AddonSlug, v.ID),
		Files:         files,
		Reviewed:      v.Reviewed,
		URL:           s.URLs.Version(v.AddonSlug, v.Version),
		Version:       v.Version,
	}, nil
}

// Version renders the full version document: the brief field set plus
// license and release notes, built from the same path rather than repeated.
func (s *Serializer) Version(v *models.VersionView, defaultLocale string) (*VersionDoc, error) {
	brief, err := s.VersionBrief(v)
	if err != nil {
		return nil, err
	}

	doc := &VersionDoc{
		ID:            brief.ID,
		Compatibility: brief.Compatibility,
		EditURL:       brief.EditURL,
		Files:         brief.Files,
		ReleaseNotes:  v.ReleaseNotes.Resolve(s.Locale, defaultLocale),
		Reviewed:      brief.Reviewed,
		URL:           brief.URL,
		Version:       brief.Version,
	}
	if v.License != nil {
		license := s.License(v.License, defaultLocale)
		doc.License = &license
	}
	return doc, nil
}

// Addon renders the top-level document. The view is owned by this call;
// the only mutation is the explicit tag cache fill.
func (s *Serializer) Addon(ctx context.Context, a *models.AddonView) (*AddonDoc, error) {
	typeToken, err := typeField.Public(a.Type)
	if err != nil {
		return nil, fmt.Errorf("addon %d type: %w", a.ID, err)
	}
	statusToken, err := statusField.Public(a.Status)
	if err != nil {
		return nil, fmt.Errorf("addon %d status: %w", a.ID, err)
	}

	var current, beta *VersionBriefDoc
	if a.CurrentVersion != nil {
		if current, err = s.VersionBrief(a.CurrentVersion); err != nil {
			return nil, err
		}
	}
	if a.CurrentBetaVersion != nil {
		if beta, err = s.VersionBrief(a.CurrentBetaVersion); err != nil {
			return nil, err
		}
	}

	authors := make([]AuthorDoc, 0, len(a.Authors))
	for _, author := range a.Authors {
		authors = append(authors, AuthorDoc{
			ID:       author.ID,
			Name:     author.DisplayName,
			Username: author.Username,
		})
	}

	previews := make([]PreviewDoc, 0, len(a.Previews))
	for i := range a.Previews {
		previews = append(previews, s.Preview(&a.Previews[i], a.DefaultLocale))
	}

	// Re-key the category relation to {app_short: [slug, ...]}. An app
	// declared with zero categories keeps its empty list.
	categories := make(map[string][]string, len(a.AppCategories))
	for short, cats := range a.AppCategories {
		slugs := make([]string, 0, len(cats))
		for _, cat := range cats {
			slugs = append(slugs, cat.Slug)
		}
		categories[short] = slugs
	}

	tags, err := s.resolveTags(ctx, a)
	if err != nil {
		return nil, err
	}

	broken := isBrokenPersona(a)

	iconURL := s.URLs.AddonIcon(a.ID)
	if broken {
		iconURL = s.URLs.DefaultIcon()
	}

	var theme *ThemeDoc
	if a.Type == amo.AddonPersona && !broken {
		p := a.Persona.Persona
		theme = &ThemeDoc{
			AccentColor: p.AccentColor,
			Author:      p.Author,
			Footer:      p.Footer,
			Header:      p.Header,
			IsNew:       p.IsNew(),
			TextColor:   p.TextColor,
		}
	}

	hasEULA := !a.EULA.Empty()
	if a.HasEULA != nil {
		hasEULA = *a.HasEULA
	}
	hasPrivacyPolicy := !a.PrivacyPolicy.Empty()
	if a.HasPrivacyPolicy != nil {
		hasPrivacyPolicy = *a.HasPrivacyPolicy
	}

	return &AddonDoc{
		ID:                 a.ID,
		Authors:            authors,
		AverageDailyUsers:  a.AverageDailyUsers,
		Categories:         categories,
		CurrentBetaVersion: beta,
		CurrentVersion:     current,
		DefaultLocale:      a.DefaultLocale,
		Description:        a.Description.Resolve(s.Locale, a.DefaultLocale),
		EditURL:            s.URLs.AddonEdit(a.Slug),
		GUID:               a.GUID,
		HasEULA:            hasEULA,
		HasPrivacyPolicy:   hasPrivacyPolicy,
		Homepage:           a.Homepage.Resolve(s.Locale, a.DefaultLocale),
		IconURL:            iconURL,
		IsDisabled:         a.IsDisabled,
		IsExperimental:     a.IsExperimental,
		IsListed:           a.IsListed,
		IsSourcePublic:     a.ViewSource,
		Name:               a.Name.Resolve(s.Locale, a.DefaultLocale),
		LastUpdated:        a.LastUpdated,
		Previews:           previews,
		PublicStats:        a.PublicStats,
		Ratings: RatingsDoc{
			Average: a.AverageRating,
			Count:   a.TotalReviews,
		},
		ReviewURL:       s.URLs.AddonReview(a.ID),
		Slug:            a.Slug,
		Status:          statusToken,
		Summary:         a.Summary.Resolve(s.Locale, a.DefaultLocale),
		SupportEmail:    a.SupportEmail.Resolve(s.Locale, a.DefaultLocale),
		SupportURL:      a.SupportURL.Resolve(s.Locale, a.DefaultLocale),
		Tags:            tags,
		ThemeData:       theme,
		Type:            typeToken,
		URL:             s.URLs.Addon(a.Slug),
		WeeklyDownloads: a.WeeklyDownloads,
	}, nil
}

// resolveTags fills the view's tag cache on first use; repeated
// serialization of the same view never hits the store again.
func (s *Serializer) resolveTags(ctx context.Context, a *models.AddonView) ([]string, error) {
	if !a.TagsFetched {
		if s.Tags != nil {
			tags, err := s.Tags.ForAddon(ctx, a.ID)
			if err != nil {
				return nil, fmt.Errorf("fetch tags for addon %d: %w", a.ID, err)
			}
			a.Tags = tags
		}
		a.TagsFetched = true
	}
	if a.Tags == nil {
		return []string{}, nil
	}
	return a.Tags, nil
}

// isBrokenPersona reports whether the add-on is a persona whose persona
// relation is absent or marked broken. Evaluated fresh on every call; every
// consumer of the persona relation must go through this guard instead of
// touching the relation directly.
func isBrokenPersona(a *models.AddonView) bool {
	if a.Type != amo.AddonPersona {
		return false
	}
	return a.Persona.State != models.PersonaPresent
}
