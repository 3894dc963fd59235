package spark

import (
	"context"

	"github.com/socialspark/socialspark-bot/internal/domain"
)

// BrandPresets is the brand payload attached to every generation request.
type BrandPresets struct {
	Name            string   `json:"name"`
	Tone            string   `json:"tone,omitempty"`
	Colors          []string `json:"colors,omitempty"`
	DefaultHashtags []string `json:"default_hashtags,omitempty"`
	FooterText      string   `json:"footer_text,omitempty"`
}

type GenerateCaptionRequest struct {
	Idea          string       `json:"idea"`
	Language      string       `json:"language,omitempty"`
	Platform      string       `json:"platform"`
	HashtagsCount int          `json:"hashtags_count,omitempty"`
	BrandPresets  BrandPresets `json:"brand_presets"`
}

type GenerateCaptionResponse struct {
	Caption  string   `json:"caption"`
	Hashtags []string `json:"hashtags"`
}

type GenerateImageRequest struct {
	Prompt       string       `json:"prompt"`
	Style        string       `json:"style"`
	AspectRatio  string       `json:"aspect_ratio"`
	Platform     string       `json:"platform"`
	BrandPresets BrandPresets `json:"brand_presets"`
}

// GenerateImageResponse is the prompt metadata fed verbatim into the render
// request.
type GenerateImageResponse struct {
	PromptUsed  string `json:"prompt_used"`
	Style       string `json:"style"`
	AspectRatio string `json:"aspect_ratio"`
	Platform    string `json:"platform"`
}

type RenderImageRequest struct {
	PromptUsed  string `json:"prompt_used"`
	Style       string `json:"style"`
	AspectRatio string `json:"aspect_ratio"`
	Platform    string `json:"platform"`
}

type RenderImageResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

// ImageResult is the inner image payload of a status poll. The backend nests
// it under a field named "video_url" even for images.
type ImageResult struct {
	Status   string `json:"status"`
	ImageURL string `json:"image_url,omitempty"`
}

type ImageStatusResponse struct {
	Status string       `json:"status"`
	Result *ImageResult `json:"video_url,omitempty"`
}

type GenerateStoryboardRequest struct {
	Idea          string       `json:"idea"`
	Language      string       `json:"language,omitempty"`
	Platform      string       `json:"platform"`
	NumberOfShots int          `json:"number_of_shots,omitempty"`
	CTA           string       `json:"cta,omitempty"`
	BrandPresets  BrandPresets `json:"brand_presets"`
}

type GenerateStoryboardResponse struct {
	Shots []domain.StoryboardShot `json:"shots"`
	Music string                  `json:"music"`
}

type RenderVideoRequest struct {
	Shots []domain.StoryboardShot `json:"shots"`
	Music string                  `json:"music"`
}

type RenderVideoResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

type TaskStatusResponse struct {
	Status   string `json:"status"`
	VideoURL string `json:"video_url,omitempty"`
}

type ScheduleReminderRequest struct {
	AssetID  string `json:"asset_id"`
	Platform string `json:"platform"`
	RunAt    string `json:"run_at"`
}

type ScheduleReminderResponse struct {
	Status       string `json:"status"`
	ScheduledFor string `json:"scheduled_for,omitempty"`
}

type ReminderStatusResponse struct {
	AssetID  string `json:"asset_id"`
	Platform string `json:"platform"`
	RunAt    string `json:"run_at,omitempty"`
	Status   string `json:"status"`
}

type ExportRequest struct {
	DraftID string `json:"draft_id"`
}

type ExportResponse struct {
	DraftID  string `json:"draft_id"`
	AssetURL string `json:"asset_url"`
}

// Client talks to the SocialSpark generation backend. Rendering is
// asynchronous: Render* calls return a task id that is polled via the
// status endpoints until a terminal state is reached.
type Client interface {
	GenerateCaption(ctx context.Context, req GenerateCaptionRequest) (*GenerateCaptionResponse, error)
	GenerateImagePrompt(ctx context.Context, req GenerateImageRequest) (*GenerateImageResponse, error)
	RenderImage(ctx context.Context, req RenderImageRequest) (*RenderImageResponse, error)
	GetImageStatus(ctx context.Context, taskID string) (*ImageStatusResponse, error)
	GenerateStoryboard(ctx context.Context, req GenerateStoryboardRequest) (*GenerateStoryboardResponse, error)
	RenderVideo(ctx context.Context, req RenderVideoRequest) (*RenderVideoResponse, error)
	GetTaskStatus(ctx context.Context, taskID string) (*TaskStatusResponse, error)
	ScheduleReminder(ctx context.Context, req ScheduleReminderRequest) (*ScheduleReminderResponse, error)
	GetReminderStatus(ctx context.Context, assetID string) (*ReminderStatusResponse, error)
	ExportDraft(ctx context.Context, draftID string) (*ExportResponse, error)
}
