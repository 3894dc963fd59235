package library

import (
	"strings"

	"github.com/socialspark/socialspark-bot/internal/domain"
)

// Filter values accepted by FilterContent.
const (
	FilterAll   = "all"
	FilterImage = "image"
	FilterVideo = "video"
)

// FilterContent returns the items matching all three predicates, preserving
// input order. An item matches when its title or caption contains the query
// case-insensitively, its media kind matches typeFilter ("image" means an
// image URL and no video URL, "video" means a video URL) and its platform
// matches platformFilter. "all" disables a predicate.
func FilterContent(items []domain.LibraryItem, query, typeFilter, platformFilter string) []domain.LibraryItem {
	q := strings.ToLower(query)

	matched := make([]domain.LibraryItem, 0, len(items))
	for _, item := range items {
		matchesSearch := strings.Contains(strings.ToLower(item.Title), q) ||
			strings.Contains(strings.ToLower(item.Caption), q)

		matchesType := typeFilter == FilterAll ||
			(typeFilter == FilterImage && item.IsImage()) ||
			(typeFilter == FilterVideo && item.IsVideo())

		matchesPlatform := platformFilter == FilterAll || item.Platform == platformFilter

		if matchesSearch && matchesType && matchesPlatform {
			matched = append(matched, item)
		}
	}
	return matched
}
