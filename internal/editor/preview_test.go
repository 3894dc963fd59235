package editor

import (
	"strings"
	"testing"

	"github.com/socialspark/socialspark-bot/internal/domain"
)

func previewSnapshot() domain.EditorSnapshot {
	return domain.NewEditorSnapshot(domain.ContentDraft{
		Title:       "Morning promo",
		Caption:     "Fresh brew",
		Hashtags:    []string{"#coffee"},
		ImageURL:    "img.png",
		Platform:    "instagram",
		ContentType: "image",
	})
}

func TestRenderPreviewShowsCaptionAndTags(t *testing.T) {
	out := RenderPreview(previewSnapshot())

	if !strings.Contains(out, "Fresh brew") {
		t.Error("caption missing from preview")
	}
	if !strings.Contains(out, "#coffee") {
		t.Error("hashtags missing from preview")
	}
	if !strings.Contains(out, "img.png") {
		t.Error("image missing from preview")
	}
}

func TestRenderPreviewHonorsTextVisibility(t *testing.T) {
	snap := previewSnapshot()
	snap.TextVisible = false

	out := RenderPreview(snap)
	if strings.Contains(out, "Fresh brew") || strings.Contains(out, "#coffee") {
		t.Error("hidden text still rendered")
	}
}

func TestRenderPreviewStyles(t *testing.T) {
	snap := previewSnapshot()
	snap.IsBold = true
	snap.IsItalic = true

	out := RenderPreview(snap)
	if !strings.Contains(out, "_*Fresh brew*_") {
		t.Errorf("styled caption missing, got:\n%s", out)
	}
}

func TestRenderPreviewVideoToggle(t *testing.T) {
	snap := previewSnapshot()
	snap.VideoURL = "clip.mp4"

	out := RenderPreview(snap)
	if !strings.Contains(out, "clip.mp4") {
		t.Error("visible video missing from preview")
	}

	snap.VideoVisible = false
	out = RenderPreview(snap)
	if strings.Contains(out, "clip.mp4") {
		t.Error("hidden video still rendered")
	}
	if !strings.Contains(out, "img.png") {
		t.Error("image fallback missing when video is hidden")
	}
}
