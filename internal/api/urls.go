package api

import (
	"fmt"
	"strings"
)

// URLBuilder turns site-relative paths into absolute URLs and knows the
// route shapes for the public and devhub pages the serializers link to.
type URLBuilder struct {
	Base string // e.g. "https://addons.example.com"
}

func (b URLBuilder) Absolutify(path string) string {
	return strings.TrimRight(b.Base, "/") + path
}

func (b URLBuilder) Addon(slug string) string {
	return b.Absolutify("/addon/" + slug + "/")
}

func (b URLBuilder) AddonEdit(slug string) string {
	return b.Absolutify("/developers/addon/" + slug + "/edit")
}

func (b URLBuilder) AddonReview(id int64) string {
	return b.Absolutify(fmt.Sprintf("/editors/review/%d", id))
}

func (b URLBuilder) Version(slug, version string) string {
	return b.Absolutify("/addon/" + slug + "/versions/" + version)
}

func (b URLBuilder) VersionEdit(slug string, versionID int64) string {
	return b.Absolutify(fmt.Sprintf("/developers/addon/%s/versions/%d", slug, versionID))
}

// FileDownload keeps the trailing empty src query parameter; download
// tracking fills it in at the outer boundary.
func (b URLBuilder) FileDownload(id int64, filename string) string {
	return b.Absolutify(fmt.Sprintf("/downloads/file/%d/%s?src=", id, filename))
}

func (b URLBuilder) PreviewImage(id int64) string {
	return b.Absolutify(fmt.Sprintf("/user-media/previews/full/%d/%d.png", id/1000, id))
}

func (b URLBuilder) PreviewThumbnail(id int64) string {
	return b.Absolutify(fmt.Sprintf("/user-media/previews/thumbs/%d/%d.png", id/1000, id))
}

func (b URLBuilder) AddonIcon(id int64) string {
	return b.Absolutify(fmt.Sprintf("/user-media/addon_icons/%d/%d-64.png", id/1000, id))
}

func (b URLBuilder) DefaultIcon() string {
	return b.Absolutify("/static/img/addon-icons/default-64.png")
}
