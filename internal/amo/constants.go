package amo

// Internal codes for addon types, statuses and file platforms. The public
// API never exposes these integers directly; they go through the choice
// tables below.

const (
	AddonExtension = 1
	AddonTheme     = 2
	AddonDict      = 3
	AddonSearch    = 4
	AddonLPApp     = 5
	AddonPersona   = 9
)

const (
	StatusNull             = 0
	StatusUnreviewed       = 1
	StatusPending          = 2
	StatusNominated        = 3
	StatusPublic           = 4
	StatusDisabled         = 5
	StatusBeta             = 7
	StatusLite             = 8
	StatusLiteAndNominated = 9
	StatusDeleted          = 11
	StatusRejected         = 12
	StatusReviewPending    = 14
)

const (
	PlatformAll     = 1
	PlatformLinux   = 2
	PlatformMac     = 3
	PlatformWindows = 5
	PlatformAndroid = 7
)

// Choice tables: internal code -> public API token.

var AddonTypeChoicesAPI = map[int]string{
	AddonExtension: "extension",
	AddonTheme:     "theme",
	AddonDict:      "dictionary",
	AddonSearch:    "search",
	AddonLPApp:     "language",
	AddonPersona:   "persona",
}

var StatusChoicesAPI = map[int]string{
	StatusNull:             "incomplete",
	StatusUnreviewed:       "unreviewed",
	StatusPending:          "pending",
	StatusNominated:        "nominated",
	StatusPublic:           "public",
	StatusDisabled:         "disabled",
	StatusBeta:             "beta",
	StatusLite:             "lite",
	StatusLiteAndNominated: "lite-nominated",
	StatusDeleted:          "deleted",
	StatusRejected:         "rejected",
	StatusReviewPending:    "review-pending",
}

var PlatformChoicesAPI = map[int]string{
	PlatformAll:     "all",
	PlatformLinux:   "linux",
	PlatformMac:     "mac",
	PlatformWindows: "windows",
	PlatformAndroid: "android",
}
