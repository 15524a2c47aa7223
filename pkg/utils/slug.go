package utils

import "strings"

// NormalizeSlug maps a slug to its canonical form: trimmed and
// lowercased. Applied on every write path and every read-by-slug path
// so case/whitespace variants of the same slug resolve identically.
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

// SlugSuffix returns the last 6 characters of an id, lowercased. Used
// to derive unique slugs for duplicate records during canonicalization.
func SlugSuffix(id string) string {
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	return strings.ToLower(id)
}

// DedupSlug builds the rename target for a duplicate of normalized.
func DedupSlug(normalized, id string) string {
	return normalized + "-" + SlugSuffix(id)
}
