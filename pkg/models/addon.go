package models

import "time"

// AddonView is the read-only projection of an add-on that the serializers
// walk. Both producers (the live-store repo and the search reconstructor)
// emit this exact shape, so the serialization code never branches on where
// the data came from. A view belongs to the request that built it.
type AddonView struct {
	ID            int64
	GUID          string
	Slug          string
	Type          int
	Status        int
	DefaultLocale string

	IsDisabled     bool
	IsExperimental bool
	IsListed       bool
	ViewSource     bool
	PublicStats    bool

	AverageDailyUsers int64
	WeeklyDownloads   int64
	LastUpdated       time.Time

	Name          Translations
	Description   Translations
	Homepage      Translations
	Summary       Translations
	SupportEmail  Translations
	SupportURL    Translations
	EULA          Translations
	PrivacyPolicy Translations

	// Precomputed on the search path; nil on the live path, where the
	// serializer derives them from EULA / PrivacyPolicy content.
	HasEULA          *bool
	HasPrivacyPolicy *bool

	CurrentVersion     *VersionView
	CurrentBetaVersion *VersionView

	Previews []PreviewView
	Authors  []AuthorView

	// AppCategories maps an application short name to its categories. A key
	// with an empty slice means the app is declared but has none; the
	// serializer keeps it as an empty list in the output.
	AppCategories map[string][]Category

	// Tags with TagsFetched is the explicit once-computed cache for the
	// lazy tag lookup: the serializer consults the tag store at most once
	// per view and records the result here.
	Tags        []string
	TagsFetched bool

	AverageRating float64
	TotalReviews  int64

	Persona PersonaRelation
}

// Category mirrors the static registry entry attached to an add-on.
type Category struct {
	ID   int
	Slug string
}

// AuthorView is the minimal author projection exposed on an add-on, not the
// full account entity.
type AuthorView struct {
	ID          string
	Username    string
	DisplayName string
}

// PersonaState makes the optional one-to-one persona relation an explicit
// tri-state: present, cleanly absent, or broken (the reconstructed graph
// cannot express plain absence for persona-type add-ons, so the
// reconstructor marks the relation broken instead).
type PersonaState int

const (
	PersonaAbsent PersonaState = iota
	PersonaPresent
	PersonaBroken
)

type PersonaRelation struct {
	State   PersonaState
	Persona Persona
}

// Persona holds the theme sub-entity data; only meaningful when the
// relation state is PersonaPresent.
type Persona struct {
	PersonaID   int64
	Author      string
	AccentColor string
	TextColor   string
	Header      string
	Footer      string
}

// IsNew reports whether the persona uses the new theme format.
func (p Persona) IsNew() bool {
	return p.PersonaID == 0
}
