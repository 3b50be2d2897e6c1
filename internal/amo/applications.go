package amo

// App is one of the applications an add-on can target. Search documents
// store compatibility keyed by App ID; the public API uses Short.
type App struct {
	ID    int
	Short string
}

var (
	Firefox     = App{ID: 1, Short: "firefox"}
	Thunderbird = App{ID: 18, Short: "thunderbird"}
	SeaMonkey   = App{ID: 59, Short: "seamonkey"}
	Android     = App{ID: 61, Short: "android"}
)

// AppsAll maps application IDs to their registry entries.
var AppsAll = map[int]App{
	Firefox.ID:     Firefox,
	Thunderbird.ID: Thunderbird,
	SeaMonkey.ID:   SeaMonkey,
	Android.ID:     Android,
}
