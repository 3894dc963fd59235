package editor

import (
	"fmt"
	"strings"

	"github.com/socialspark/socialspark-bot/internal/domain"
	"github.com/socialspark/socialspark-bot/pkg/formatter"
)

// RenderPreview produces a text preview of a snapshot. It is a pure function
// of the snapshot fields: captions honor the style attributes and the
// visibility toggles decide which parts appear at all.
func RenderPreview(snap domain.EditorSnapshot) string {
	var sb strings.Builder

	title := snap.Title
	if title == "" {
		title = "Untitled"
	}
	sb.WriteString(fmt.Sprintf("🎨 %s (%s · %s)\n", title, snap.Platform, snap.ContentType))

	if snap.VideoURL != "" && snap.VideoVisible {
		sb.WriteString("🎬 " + snap.VideoURL + "\n")
	} else if snap.ImageURL != "" {
		sb.WriteString("🖼 " + snap.ImageURL + "\n")
	}

	if snap.TextVisible && snap.Caption != "" {
		caption := snap.Caption
		if snap.IsBold {
			caption = "*" + caption + "*"
		}
		if snap.IsItalic {
			caption = "_" + caption + "_"
		}
		switch snap.TextAlign {
		case "center":
			caption = "| " + caption + " |"
		case "right":
			caption = "-> " + caption
		}
		sb.WriteString(caption + "\n")
	}

	if snap.TextVisible && len(snap.Hashtags) > 0 {
		sb.WriteString(formatter.HashtagLine(snap.Hashtags) + "\n")
	}

	sb.WriteString(fmt.Sprintf("Aa %dpx · text %s", snap.FontSize, snap.TextColor))
	if snap.BackgroundVisible {
		sb.WriteString(" · bg " + snap.BackgroundColor)
	}

	return sb.String()
}
