package formatter

import (
	"strings"
)

// HashtagLine renders a list of bare tags as a single "#a #b #c" line.
func HashtagLine(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, tag := range tags {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('#')
		sb.WriteString(strings.TrimPrefix(tag, "#"))
	}
	return sb.String()
}

// CaptionWithHashtags produces the shareable post text: caption, blank line,
// then the hashtag line.
func CaptionWithHashtags(caption string, tags []string) string {
	line := HashtagLine(tags)
	if line == "" {
		return caption
	}
	return caption + "\n\n" + line
}

// FileName converts a draft title into a safe export file name.
// Example: "Latte Promo" + ".mp4" -> "Latte_Promo.mp4"
func FileName(title, ext string) string {
	name := strings.Join(strings.Fields(title), "_")
	if name == "" {
		name = "content"
	}
	return name + ext
}

// EscapeMarkdownV2 escapes special characters in Markdown V2 format
func EscapeMarkdownV2(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			sb.WriteRune('\\')
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
