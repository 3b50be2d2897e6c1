package models

import "time"

// VersionView is the read-only projection of one add-on version. AddonSlug
// is carried so URL derivation does not need the parent view.
type VersionView struct {
	ID        int64
	AddonID   int64
	AddonSlug string
	Version   string
	Reviewed  time.Time

	ReleaseNotes Translations
	License      *LicenseView

	// Files in the source's natural order; the serializers never re-sort.
	Files []FileView

	// Compat maps application short names to version ranges.
	Compat map[string]VersionRange
}

type VersionRange struct {
	Min string
	Max string
}

type FileView struct {
	ID       int64
	Created  time.Time
	Hash     string
	Filename string
	Platform int
	Size     int64
	Status   int
}

type LicenseView struct {
	Name Translations
	Text Translations
	URL  string
}

type PreviewView struct {
	ID      int64
	Caption Translations
}
