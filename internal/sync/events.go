package sync

import "time"

// AddonEvent is broadcast to connected listeners when an add-on's search
// document changes.
type AddonEvent struct {
	Type    string    `json:"type"` // "addon.indexed"
	AddonID int64     `json:"addon_id"`
	Slug    string    `json:"slug"`
	At      time.Time `json:"at"`
}

func IndexedEvent(addonID int64, slug string) AddonEvent {
	return AddonEvent{
		Type:    "addon.indexed",
		AddonID: addonID,
		Slug:    slug,
		At:      time.Now().UTC(),
	}
}

// HelloEvent greets a listener when it joins the feed.
type HelloEvent struct {
	Type      string `json:"type"` // "sync.hello"
	Feed      string `json:"feed"`
	Listeners int    `json:"listeners"`
}
