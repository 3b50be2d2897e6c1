package models

import "sort"

// Translations is a locale -> text map for one translated field. The public
// API always surfaces a single string resolved against the request locale.
type Translations map[string]string

// Resolve picks the entry for the active locale, falling back to the
// entity's default locale, then to the lexically first populated locale so
// both data paths resolve identically, then to "".
func (t Translations) Resolve(locale, defaultLocale string) string {
	if len(t) == 0 {
		return ""
	}
	if s, ok := t[locale]; ok && s != "" {
		return s
	}
	if s, ok := t[defaultLocale]; ok && s != "" {
		return s
	}
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if t[k] != "" {
			return t[k]
		}
	}
	return ""
}

// Empty reports whether the field has no content in any locale.
func (t Translations) Empty() bool {
	for _, s := range t {
		if s != "" {
			return false
		}
	}
	return true
}
