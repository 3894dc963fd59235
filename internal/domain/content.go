package domain

import "time"

// ContentDraft is a single generated piece of content before or after it is
// saved to the library. The ID is assigned by the store on first save.
type ContentDraft struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Caption     string           `json:"caption"`
	Hashtags    []string         `json:"hashtags"`
	ImageURL    string           `json:"imageUrl,omitempty"`
	VideoURL    string           `json:"videoUrl,omitempty"`
	Platform    string           `json:"platform"`
	ContentType string           `json:"contentType"`
	CreatedAt   time.Time        `json:"createdAt"`
	Storyboard  []StoryboardShot `json:"storyboard,omitempty"`
	Overlays    []Overlay        `json:"overlays,omitempty"`
}

// StoryboardShot is one ordered shot of a video storyboard.
type StoryboardShot struct {
	Text     string  `json:"text"`
	Duration float64 `json:"duration"`
}

// Overlay is a text overlay placed on rendered media.
type Overlay struct {
	Text     string `json:"text"`
	Position string `json:"position,omitempty"`
}

// Library item statuses.
const (
	StatusDraft     = "draft"
	StatusScheduled = "scheduled"
	StatusPublished = "published"
)

// Engagement holds per-item counters surfaced in the library view.
type Engagement struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Views    int `json:"views"`
}

// LibraryItem is a ContentDraft persisted in the library collection.
type LibraryItem struct {
	ContentDraft
	Status     string     `json:"status"`
	Engagement Engagement `json:"engagement"`
}

// IsImage reports whether the draft is image content: it has an image URL and
// no video URL.
func (d ContentDraft) IsImage() bool {
	return d.ImageURL != "" && d.VideoURL == ""
}

// IsVideo reports whether the draft carries video content.
func (d ContentDraft) IsVideo() bool {
	return d.VideoURL != ""
}
