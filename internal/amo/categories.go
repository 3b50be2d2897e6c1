package amo

// Category is a static category descriptor. Search documents store category
// IDs; an ID missing from the registry is silently dropped during
// reconstruction since categories can be retired after indexing.
type Category struct {
	ID   int
	Slug string
	App  App
}

var CategoriesByID = map[int]Category{
	1:  {ID: 1, Slug: "alerts-updates", App: Firefox},
	4:  {ID: 4, Slug: "appearance", App: Firefox},
	5:  {ID: 5, Slug: "bookmarks", App: Firefox},
	12: {ID: 12, Slug: "download-management", App: Firefox},
	14: {ID: 14, Slug: "feeds-news-blogging", App: Firefox},
	22: {ID: 22, Slug: "language-support", App: Firefox},
	38: {ID: 38, Slug: "privacy-security", App: Firefox},
	41: {ID: 41, Slug: "search-tools", App: Firefox},
	48: {ID: 48, Slug: "tabs", App: Firefox},
	50: {ID: 50, Slug: "contacts", App: Thunderbird},
	52: {ID: 52, Slug: "message-reading", App: Thunderbird},
	71: {ID: 71, Slug: "appearance-customization", App: Thunderbird},
	73: {ID: 73, Slug: "experimental", App: Android},
	74: {ID: 74, Slug: "performance", App: Android},
}
