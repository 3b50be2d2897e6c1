package indexer

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"addonhub/internal/addons"
	"addonhub/internal/amo"
	"addonhub/internal/search"
	"addonhub/pkg/models"
)

// Indexer denormalizes live View graphs into search documents and writes
// them to the index mirror.
type Indexer struct {
	Addons *addons.Repo
	Index  *search.Repo
	Tags   addons.TagStore
}

func New(addonRepo *addons.Repo, indexRepo *search.Repo, tags addons.TagStore) *Indexer {
	return &Indexer{Addons: addonRepo, Index: indexRepo, Tags: tags}
}

// ReindexAddon rebuilds and stores the document for one add-on.
func (ix *Indexer) ReindexAddon(ctx context.Context, id int64) error {
	a, err := ix.Addons.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load addon %d: %w", id, err)
	}
	if a == nil {
		return fmt.Errorf("addon %d not found", id)
	}

	if ix.Tags != nil && !a.TagsFetched {
		tags, err := ix.Tags.ForAddon(ctx, a.ID)
		if err != nil {
			return fmt.Errorf("load tags for addon %d: %w", id, err)
		}
		a.Tags = tags
		a.TagsFetched = true
	}

	doc := BuildDocument(a)
	name := a.Name.Resolve(a.DefaultLocale, a.DefaultLocale)
	if err := ix.Index.Upsert(ctx, doc, name); err != nil {
		return fmt.Errorf("index addon %d: %w", id, err)
	}
	return nil
}

// ReindexAll runs a full pass over the live store and returns how many
// add-ons were indexed.
func (ix *Indexer) ReindexAll(ctx context.Context) (int, error) {
	ids, err := ix.Addons.ListIDs(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, id := range ids {
		if err := ix.ReindexAddon(ctx, id); err != nil {
			log.Printf("[indexer] addon %d failed: %v", id, err)
			continue
		}
		count++
	}
	return count, nil
}

// BuildDocument flattens a live View graph into the wire shape the
// reconstructor consumes. Inverse of search.Reconstruct for everything the
// index can represent.
func BuildDocument(a *models.AddonView) *search.Document {
	doc := &search.Document{
		ID:            &a.ID,
		Slug:          &a.Slug,
		GUID:          a.GUID,
		Type:          intPtr(a.Type),
		Status:        intPtr(a.Status),
		DefaultLocale: a.DefaultLocale,

		IsDisabled:     a.IsDisabled,
		IsExperimental: a.IsExperimental,
		IsListed:       a.IsListed,
		ViewSource:     a.ViewSource,
		PublicStats:    a.PublicStats,

		AverageDailyUsers: a.AverageDailyUsers,
		WeeklyDownloads:   a.WeeklyDownloads,
		LastUpdated:       encodeTime(a.LastUpdated),

		Name:         a.Name,
		Description:  a.Description,
		Homepage:     a.Homepage,
		Summary:      a.Summary,
		SupportEmail: a.SupportEmail,
		SupportURL:   a.SupportURL,

		HasEULA:          !a.EULA.Empty(),
		HasPrivacyPolicy: !a.PrivacyPolicy.Empty(),

		CurrentVersion:     buildVersionSection(a.CurrentVersion),
		CurrentBetaVersion: buildVersionSection(a.CurrentBetaVersion),

		Tags: a.Tags,

		Ratings: search.RatingsSection{
			Average: a.AverageRating,
			Count:   a.TotalReviews,
		},
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}

	doc.Previews = make([]search.PreviewSection, 0, len(a.Previews))
	for i := range a.Previews {
		p := a.Previews[i]
		doc.Previews = append(doc.Previews, search.PreviewSection{
			ID:      &a.Previews[i].ID,
			Caption: p.Caption,
		})
	}

	doc.Authors = make([]search.AuthorSection, 0, len(a.Authors))
	for _, author := range a.Authors {
		doc.Authors = append(doc.Authors, search.AuthorSection{
			ID:       author.ID,
			Name:     author.DisplayName,
			Username: author.Username,
		})
	}

	doc.Categories = make([]int, 0)
	for _, cats := range a.AppCategories {
		for _, cat := range cats {
			doc.Categories = append(doc.Categories, cat.ID)
		}
	}

	if a.Type == amo.AddonPersona && a.Persona.State == models.PersonaPresent {
		p := a.Persona.Persona
		doc.Persona = &search.PersonaSection{
			Author:      p.Author,
			AccentColor: p.AccentColor,
			TextColor:   p.TextColor,
			Header:      p.Header,
			Footer:      p.Footer,
			IsNew:       p.IsNew(),
		}
	}

	return doc
}

func buildVersionSection(v *models.VersionView) *search.VersionSection {
	if v == nil {
		return nil
	}

	sec := &search.VersionSection{
		ID:       &v.ID,
		Version:  &v.Version,
		Reviewed: encodeTime(v.Reviewed),
	}

	sec.Files = make([]search.FileSection, 0, len(v.Files))
	for i := range v.Files {
		f := v.Files[i]
		sec.Files = append(sec.Files, search.FileSection{
			ID:       &v.Files[i].ID,
			Created:  encodeTime(f.Created),
			Hash:     f.Hash,
			Filename: f.Filename,
			Platform: &v.Files[i].Platform,
			Size:     f.Size,
			Status:   &v.Files[i].Status,
		})
	}

	sec.Compat = make(map[string]search.CompatSection, len(v.Compat))
	for short, rng := range v.Compat {
		if app, ok := appByShort(short); ok {
			sec.Compat[strconv.Itoa(app.ID)] = search.CompatSection{
				MinHuman: rng.Min,
				MaxHuman: rng.Max,
			}
		}
	}

	return sec
}

func appByShort(short string) (amo.App, bool) {
	for _, app := range amo.AppsAll {
		if app.Short == short {
			return app, true
		}
	}
	return amo.App{}, false
}

func encodeTime(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UTC().Unix()
}

func intPtr(v int) *int {
	return &v
}
