package addons

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"addonhub/internal/amo"
	"addonhub/pkg/models"
)

// Repo builds View graphs from the live relational store. It is the only
// producer of views on the live path; the search reconstructor is the only
// producer on the other.
type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) GetBySlug(ctx context.Context, slug string) (*models.AddonView, error) {
	return r.get(ctx, `WHERE slug = ?`, slug)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*models.AddonView, error) {
	return r.get(ctx, `WHERE id = ?`, id)
}

func (r *Repo) get(ctx context.Context, where string, arg any) (*models.AddonView, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, guid, slug, type, status, default_locale,
		       is_disabled, is_experimental, is_listed, view_source, public_stats,
		       average_daily_users, weekly_downloads, average_rating, total_reviews,
		       last_updated,
		       name, description, homepage, summary,
		       support_email, support_url, eula, privacy_policy,
		       current_version_id, current_beta_version_id
		FROM addons
	`+where, arg)

	var (
		a             models.AddonView
		guid          sql.NullString
		lastUpdated   sql.NullTime
		name          sql.NullString
		description   sql.NullString
		homepage      sql.NullString
		summary       sql.NullString
		supportEmail  sql.NullString
		supportURL    sql.NullString
		eula          sql.NullString
		privacyPolicy sql.NullString
		currentID     sql.NullInt64
		betaID        sql.NullInt64
	)

	if err := row.Scan(
		&a.ID, &guid, &a.Slug, &a.Type, &a.Status, &a.DefaultLocale,
		&a.IsDisabled, &a.IsExperimental, &a.IsListed, &a.ViewSource, &a.PublicStats,
		&a.AverageDailyUsers, &a.WeeklyDownloads, &a.AverageRating, &a.TotalReviews,
		&lastUpdated,
		&name, &description, &homepage, &summary,
		&supportEmail, &supportURL, &eula, &privacyPolicy,
		&currentID, &betaID,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan addon: %w", err)
	}

	a.GUID = guid.String
	if lastUpdated.Valid {
		// the index stores epoch seconds, so the live path must carry the
		// same second precision for identical output
		a.LastUpdated = lastUpdated.Time.UTC().Truncate(time.Second)
	}
	a.Name = parseTranslations(name)
	a.Description = parseTranslations(description)
	a.Homepage = parseTranslations(homepage)
	a.Summary = parseTranslations(summary)
	a.SupportEmail = parseTranslations(supportEmail)
	a.SupportURL = parseTranslations(supportURL)
	a.EULA = parseTranslations(eula)
	a.PrivacyPolicy = parseTranslations(privacyPolicy)

	var err error
	if currentID.Valid {
		if a.CurrentVersion, err = r.loadVersion(ctx, currentID.Int64, a.ID, a.Slug); err != nil {
			return nil, err
		}
	}
	if betaID.Valid {
		if a.CurrentBetaVersion, err = r.loadVersion(ctx, betaID.Int64, a.ID, a.Slug); err != nil {
			return nil, err
		}
	}

	if a.Previews, err = r.loadPreviews(ctx, a.ID); err != nil {
		return nil, err
	}
	if a.Authors, err = r.loadAuthors(ctx, a.ID); err != nil {
		return nil, err
	}
	if a.AppCategories, err = r.loadCategories(ctx, a.ID); err != nil {
		return nil, err
	}
	if err = r.loadPersona(ctx, &a); err != nil {
		return nil, err
	}

	return &a, nil
}

// GetVersion loads one version of an add-on as a standalone view; returns
// the owning addon's default locale alongside it for translation fallback.
func (r *Repo) GetVersion(ctx context.Context, slug string, versionID int64) (*models.VersionView, string, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT a.id, a.default_locale
		FROM addons a
		JOIN versions v ON v.addon_id = a.id
		WHERE a.slug = ? AND v.id = ?
	`, slug, versionID)

	var addonID int64
	var defaultLocale string
	if err := row.Scan(&addonID, &defaultLocale); err != nil {
		if err == sql.ErrNoRows {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("scan version owner: %w", err)
	}

	v, err := r.loadVersion(ctx, versionID, addonID, slug)
	if err != nil {
		return nil, "", err
	}
	return v, defaultLocale, nil
}

func (r *Repo) loadVersion(ctx context.Context, id, addonID int64, slug string) (*models.VersionView, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, version, reviewed, release_notes, license_id
		FROM versions
		WHERE id = ?
	`, id)

	var (
		v            models.VersionView
		reviewed     sql.NullTime
		releaseNotes sql.NullString
		licenseID    sql.NullInt64
	)
	if err := row.Scan(&v.ID, &v.Version, &reviewed, &releaseNotes, &licenseID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan version %d: %w", id, err)
	}

	v.AddonID = addonID
	v.AddonSlug = slug
	if reviewed.Valid {
		v.Reviewed = reviewed.Time.UTC().Truncate(time.Second)
	}
	v.ReleaseNotes = parseTranslations(releaseNotes)

	var err error
	if licenseID.Valid {
		if v.License, err = r.loadLicense(ctx, licenseID.Int64); err != nil {
			return nil, err
		}
	}
	if v.Files, err = r.loadFiles(ctx, v.ID); err != nil {
		return nil, err
	}
	if v.Compat, err = r.loadCompat(ctx, v.ID); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repo) loadLicense(ctx context.Context, id int64) (*models.LicenseView, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT name, text, url FROM licenses WHERE id = ?
	`, id)

	var name, text, url sql.NullString
	if err := row.Scan(&name, &text, &url); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan license %d: %w", id, err)
	}
	return &models.LicenseView{
		Name: parseTranslations(name),
		Text: parseTranslations(text),
		URL:  url.String,
	}, nil
}

func (r *Repo) loadFiles(ctx context.Context, versionID int64) ([]models.FileView, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, created, hash, filename, platform, size, status
		FROM files
		WHERE version_id = ?
		ORDER BY position, id
	`, versionID)
	if err != nil {
		return nil, fmt.Errorf("query files: %w", err)
	}
	defer rows.Close()

	var out []models.FileView
	for rows.Next() {
		var f models.FileView
		if err := rows.Scan(&f.ID, &f.Created, &f.Hash, &f.Filename, &f.Platform, &f.Size, &f.Status); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		f.Created = f.Created.UTC().Truncate(time.Second)
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("files rows: %w", err)
	}
	return out, nil
}

func (r *Repo) loadCompat(ctx context.Context, versionID int64) (map[string]models.VersionRange, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT app_id, min, max
		FROM appversions_compat
		WHERE version_id = ?
	`, versionID)
	if err != nil {
		return nil, fmt.Errorf("query compat: %w", err)
	}
	defer rows.Close()

	out := map[string]models.VersionRange{}
	for rows.Next() {
		var appID int
		var rng models.VersionRange
		if err := rows.Scan(&appID, &rng.Min, &rng.Max); err != nil {
			return nil, fmt.Errorf("scan compat: %w", err)
		}
		app, ok := amo.AppsAll[appID]
		if !ok {
			// unknown app in the live store is corrupt data, not drift
			return nil, fmt.Errorf("compat for version %d: unknown application id %d", versionID, appID)
		}
		out[app.Short] = rng
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("compat rows: %w", err)
	}
	return out, nil
}

func (r *Repo) loadPreviews(ctx context.Context, addonID int64) ([]models.PreviewView, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, caption
		FROM previews
		WHERE addon_id = ?
		ORDER BY position, id
	`, addonID)
	if err != nil {
		return nil, fmt.Errorf("query previews: %w", err)
	}
	defer rows.Close()

	var out []models.PreviewView
	for rows.Next() {
		var p models.PreviewView
		var caption sql.NullString
		if err := rows.Scan(&p.ID, &caption); err != nil {
			return nil, fmt.Errorf("scan preview: %w", err)
		}
		p.Caption = parseTranslations(caption)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("previews rows: %w", err)
	}
	return out, nil
}

func (r *Repo) loadAuthors(ctx context.Context, addonID int64) ([]models.AuthorView, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT u.id, u.username, u.display_name
		FROM addon_users au
		JOIN users u ON u.id = au.user_id
		WHERE au.addon_id = ?
		ORDER BY au.position, u.username
	`, addonID)
	if err != nil {
		return nil, fmt.Errorf("query authors: %w", err)
	}
	defer rows.Close()

	var out []models.AuthorView
	for rows.Next() {
		var author models.AuthorView
		var displayName sql.NullString
		if err := rows.Scan(&author.ID, &author.Username, &displayName); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		author.DisplayName = displayName.String
		if author.DisplayName == "" {
			author.DisplayName = author.Username
		}
		out = append(out, author)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("authors rows: %w", err)
	}
	return out, nil
}

func (r *Repo) loadCategories(ctx context.Context, addonID int64) (map[string][]models.Category, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT category_id
		FROM addon_categories
		WHERE addon_id = ?
		ORDER BY category_id
	`, addonID)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	out := map[string][]models.Category{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cat, ok := amo.CategoriesByID[id]
		if !ok {
			// retired category still referenced by an old row
			continue
		}
		out[cat.App.Short] = append(out[cat.App.Short], models.Category{ID: cat.ID, Slug: cat.Slug})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("categories rows: %w", err)
	}
	return out, nil
}

func (r *Repo) loadPersona(ctx context.Context, a *models.AddonView) error {
	row := r.DB.QueryRowContext(ctx, `
		SELECT persona_id, author, accentcolor, textcolor, header, footer
		FROM personas
		WHERE addon_id = ?
	`, a.ID)

	var p models.Persona
	if err := row.Scan(&p.PersonaID, &p.Author, &p.AccentColor, &p.TextColor, &p.Header, &p.Footer); err != nil {
		if err == sql.ErrNoRows {
			a.Persona = models.PersonaRelation{State: models.PersonaAbsent}
			return nil
		}
		return fmt.Errorf("scan persona: %w", err)
	}
	a.Persona = models.PersonaRelation{State: models.PersonaPresent, Persona: p}
	return nil
}

// ListIDs returns every addon id, for full reindex passes.
func (r *Repo) ListIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id FROM addons ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list addon ids: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan addon id: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("addon id rows: %w", err)
	}
	return out, nil
}

// parseTranslations decodes a JSON locale map column. A corrupt column
// resolves like an empty field but is logged, so store corruption stays
// observable.
func parseTranslations(col sql.NullString) models.Translations {
	t := models.Translations{}
	if col.Valid && col.String != "" {
		if err := json.Unmarshal([]byte(col.String), &t); err != nil {
			log.Printf("[addons] bad locale map column: %v", err)
		}
	}
	return t
}
