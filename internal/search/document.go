package search

// Document is the denormalized wire shape of one add-on in the search
// index. Required scalars are pointers so a missing key can be told apart
// from a zero value when validating; translated fields are locale maps.
type Document struct {
	ID            *int64  `json:"id"`
	Slug          *string `json:"slug"`
	GUID          string  `json:"guid"`
	Type          *int    `json:"type"`
	Status        *int    `json:"status"`
	DefaultLocale string  `json:"default_locale"`

	IsDisabled     bool `json:"is_disabled"`
	IsExperimental bool `json:"is_experimental"`
	IsListed       bool `json:"is_listed"`
	ViewSource     bool `json:"view_source"`
	PublicStats    bool `json:"public_stats"`

	AverageDailyUsers int64 `json:"average_daily_users"`
	WeeklyDownloads   int64 `json:"weekly_downloads"`
	LastUpdated       int64 `json:"last_updated"` // epoch seconds UTC

	Name         map[string]string `json:"name"`
	Description  map[string]string `json:"description"`
	Homepage     map[string]string `json:"homepage"`
	Summary      map[string]string `json:"summary"`
	SupportEmail map[string]string `json:"support_email"`
	SupportURL   map[string]string `json:"support_url"`

	HasEULA          bool `json:"has_eula"`
	HasPrivacyPolicy bool `json:"has_privacy_policy"`

	CurrentVersion     *VersionSection `json:"current_version"`
	CurrentBetaVersion *VersionSection `json:"current_beta_version"`

	Previews []PreviewSection `json:"previews"`
	Authors  []AuthorSection  `json:"listed_authors"`

	// Category registry ids; ids retired from the registry since indexing
	// are dropped during reconstruction.
	Categories []int `json:"category"`

	Tags []string `json:"tags"`

	Ratings RatingsSection `json:"ratings"`

	Persona *PersonaSection `json:"persona"`
}

type VersionSection struct {
	ID       *int64  `json:"id"`
	Version  *string `json:"version"`
	Reviewed int64   `json:"reviewed"` // epoch seconds UTC

	Files []FileSection `json:"files"`

	// Compat is keyed by the application's integer id rendered as a string
	// (JSON object keys are strings).
	Compat map[string]CompatSection `json:"compatible_apps"`
}

type FileSection struct {
	ID       *int64 `json:"id"`
	Created  int64  `json:"created"` // epoch seconds UTC
	Hash     string `json:"hash"`
	Filename string `json:"filename"`
	Platform *int   `json:"platform"`
	Size     int64  `json:"size"`
	Status   *int   `json:"status"`
}

type CompatSection struct {
	MinHuman string `json:"min_human"`
	MaxHuman string `json:"max_human"`
}

type PreviewSection struct {
	ID      *int64            `json:"id"`
	Caption map[string]string `json:"caption"`
}

type AuthorSection struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

type RatingsSection struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

type PersonaSection struct {
	Author      string `json:"author"`
	AccentColor string `json:"accentcolor"`
	TextColor   string `json:"textcolor"`
	Header      string `json:"header"`
	Footer      string `json:"footer"`
	IsNew       bool   `json:"is_new"`
}
