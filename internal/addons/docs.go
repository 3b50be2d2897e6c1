package addons

import "time"

// Output documents for the public API. Field declaration order fixes the
// emitted JSON order, so both data paths produce identical payloads.

type FileDoc struct {
	ID       int64     `json:"id"`
	Created  time.Time `json:"created"`
	Hash     string    `json:"hash"`
	Platform string    `json:"platform"`
	Size     int64     `json:"size"`
	Status   string    `json:"status"`
	URL      string    `json:"url"`
}

type PreviewDoc struct {
	ID           int64  `json:"id"`
	Caption      string `json:"caption"`
	ImageURL     string `json:"image_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type LicenseDoc struct {
	Name string `json:"name"`
	Text string `json:"text"`
	URL  string `json:"url"`
}

type RangeDoc struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// VersionBriefDoc is the version shape nested inside an addon document.
type VersionBriefDoc struct {
	ID            int64               `json:"id"`
	Compatibility map[string]RangeDoc `json:"compatibility"`
	EditURL       string              `json:"edit_url"`
	Files         []FileDoc           `json:"files"`
	Reviewed      time.Time           `json:"reviewed"`
	URL           string              `json:"url"`
	Version       string              `json:"version"`
}

// VersionDoc is the full version document: the brief field set plus license
// and release notes. Kept as its own type only to pin JSON field order.
type VersionDoc struct {
	ID            int64               `json:"id"`
	Compatibility map[string]RangeDoc `json:"compatibility"`
	EditURL       string              `json:"edit_url"`
	Files         []FileDoc           `json:"files"`
	License       *LicenseDoc         `json:"license"`
	ReleaseNotes  string              `json:"release_notes"`
	Reviewed      time.Time           `json:"reviewed"`
	URL           string              `json:"url"`
	Version       string              `json:"version"`
}

type AuthorDoc struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

type RatingsDoc struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

type ThemeDoc struct {
	AccentColor string `json:"accentcolor"`
	Author      string `json:"author"`
	Footer      string `json:"footer"`
	Header      string `json:"header"`
	IsNew       bool   `json:"is_new"`
	TextColor   string `json:"textcolor"`
}

type AddonDoc struct {
	ID                 int64               `json:"id"`
	Authors            []AuthorDoc         `json:"authors"`
	AverageDailyUsers  int64               `json:"average_daily_users"`
	Categories         map[string][]string `json:"categories"`
	CurrentBetaVersion *VersionBriefDoc    `json:"current_beta_version"`
	CurrentVersion     *VersionBriefDoc    `json:"current_version"`
	DefaultLocale      string              `json:"default_locale"`
	Description        string              `json:"description"`
	EditURL            string              `json:"edit_url"`
	GUID               string              `json:"guid"`
	HasEULA            bool                `json:"has_eula"`
	HasPrivacyPolicy   bool                `json:"has_privacy_policy"`
	Homepage           string              `json:"homepage"`
	IconURL            string              `json:"icon_url"`
	IsDisabled         bool                `json:"is_disabled"`
	IsExperimental     bool                `json:"is_experimental"`
	IsListed           bool                `json:"is_listed"`
	IsSourcePublic     bool                `json:"is_source_public"`
	Name               string              `json:"name"`
	LastUpdated        time.Time           `json:"last_updated"`
	Previews           []PreviewDoc        `json:"previews"`
	PublicStats        bool                `json:"public_stats"`
	Ratings            RatingsDoc          `json:"ratings"`
	ReviewURL          string              `json:"review_url"`
	Slug               string              `json:"slug"`
	Status             string              `json:"status"`
	Summary            string              `json:"summary"`
	SupportEmail       string              `json:"support_email"`
	SupportURL         string              `json:"support_url"`
	Tags               []string            `json:"tags"`
	// theme_data is omitted entirely (never null) unless the add-on is a
	// persona with an intact persona relation.
	ThemeData       *ThemeDoc `json:"theme_data,omitempty"`
	Type            string    `json:"type"`
	URL             string    `json:"url"`
	WeeklyDownloads int64     `json:"weekly_downloads"`
}
