package studioimpl

import (
	"context"
	"errors"
	"fmt"

	"github.com/socialspark/socialspark-bot/internal/domain"
	"github.com/socialspark/socialspark-bot/internal/poller"
	"github.com/socialspark/socialspark-bot/internal/repositories/brand"
	"github.com/socialspark/socialspark-bot/internal/repositories/slot"
	"github.com/socialspark/socialspark-bot/internal/spark"
	"github.com/socialspark/socialspark-bot/internal/studio"
	apperrors "github.com/socialspark/socialspark-bot/pkg/errors"
	"github.com/socialspark/socialspark-bot/pkg/retry"
)

const defaultMusic = "upbeat"

// generate runs the fixed call sequence for one request. Any step's failure
// aborts the rest of the sequence; nothing partial is saved.
func (s *StudioImpl) generate(ctx context.Context, req studio.Request, progress studio.ProgressFunc) (*domain.ContentDraft, error) {
	profile, err := s.BrandRepo.Get(ctx, req.ChatID)
	if err != nil {
		if errors.Is(err, brand.ErrNotFound) {
			return nil, studio.ErrNoBrand
		}
		return nil, err
	}

	if req.Platform == "" {
		req.Platform = "instagram"
	}
	presets := brandPresets(profile, req.Tone)

	progress(20, "Writing your caption...")

	var captionResp *spark.GenerateCaptionResponse
	err = retry.Do(ctx, s.Logger, "GenerateCaption", func() error {
		var opErr error
		captionResp, opErr = s.Spark.GenerateCaption(ctx, spark.GenerateCaptionRequest{
			Idea:          req.Idea,
			Language:      req.Language,
			Platform:      req.Platform,
			HashtagsCount: 6,
			BrandPresets:  presets,
		})
		return opErr
	}, retry.DefaultConfig())
	if err != nil {
		return nil, err
	}

	draft := domain.ContentDraft{
		Title:       req.Idea,
		Caption:     captionResp.Caption,
		Hashtags:    captionResp.Hashtags,
		Platform:    req.Platform,
		ContentType: req.ContentType,
	}

	progress(40, "Caption ready")

	switch req.ContentType {
	case studio.TypeVideo:
		if err := s.generateVideo(ctx, req, presets, &draft, progress); err != nil {
			return nil, err
		}
	default:
		draft.ContentType = studio.TypeImage
		if err := s.generateImage(ctx, req, presets, &draft, progress); err != nil {
			return nil, err
		}
	}

	id, err := s.SlotRepo.Save(ctx, req.ChatID, slot.Post, draft)
	if err != nil {
		return nil, err
	}
	draft.ID = id

	progress(100, "Content ready!")
	return &draft, nil
}

func (s *StudioImpl) generateImage(ctx context.Context, req studio.Request, presets spark.BrandPresets, draft *domain.ContentDraft, progress studio.ProgressFunc) error {
	progress(60, "Designing your image...")

	aspectRatio := "9:16"
	if req.Platform == "instagram" {
		aspectRatio = "1:1"
	}

	promptResp, err := s.Spark.GenerateImagePrompt(ctx, spark.GenerateImageRequest{
		Prompt:       req.Idea,
		Style:        "realistic",
		AspectRatio:  aspectRatio,
		Platform:     req.Platform,
		BrandPresets: presets,
	})
	if err != nil {
		return err
	}

	renderResp, err := s.Spark.RenderImage(ctx, spark.RenderImageRequest{
		PromptUsed:  promptResp.PromptUsed,
		Style:       promptResp.Style,
		AspectRatio: promptResp.AspectRatio,
		Platform:    promptResp.Platform,
	})
	if err != nil {
		return err
	}
	if renderResp.TaskID == "" {
		return apperrors.New("failed to get image task ID")
	}

	progress(80, "Rendering image...")

	imageURL, err := s.waitForImage(ctx, renderResp.TaskID)
	if err != nil {
		return err
	}
	draft.ImageURL = imageURL
	return nil
}

func (s *StudioImpl) generateVideo(ctx context.Context, req studio.Request, presets spark.BrandPresets, draft *domain.ContentDraft, progress studio.ProgressFunc) error {
	progress(50, "Sketching your storyboard...")

	var storyboardResp *spark.GenerateStoryboardResponse
	err := retry.Do(ctx, s.Logger, "GenerateStoryboard", func() error {
		var opErr error
		storyboardResp, opErr = s.Spark.GenerateStoryboard(ctx, spark.GenerateStoryboardRequest{
			Idea:          req.Idea,
			Language:      req.Language,
			Platform:      req.Platform,
			NumberOfShots: 3,
			CTA:           "Visit us today!",
			BrandPresets:  presets,
		})
		return opErr
	}, retry.DefaultConfig())
	if err != nil {
		return err
	}

	if len(storyboardResp.Shots) == 0 {
		return studio.ErrEmptyStoryboard
	}

	draft.Storyboard = storyboardResp.Shots
	draft.Overlays = make([]domain.Overlay, 0, len(storyboardResp.Shots))
	for _, shot := range storyboardResp.Shots {
		draft.Overlays = append(draft.Overlays, domain.Overlay{Text: shot.Text, Position: "center"})
	}

	progress(70, "Storyboard ready")

	music := storyboardResp.Music
	if music == "" {
		music = defaultMusic
	}

	renderResp, err := s.Spark.RenderVideo(ctx, spark.RenderVideoRequest{
		Shots: storyboardResp.Shots,
		Music: music,
	})
	if err != nil {
		return err
	}
	if renderResp.TaskID == "" {
		return apperrors.New("failed to queue video rendering task")
	}

	progress(80, "Rendering video...")

	videoURL, err := s.waitForVideo(ctx, renderResp.TaskID)
	if err != nil {
		return err
	}
	draft.VideoURL = videoURL
	return nil
}

type pollOutcome struct {
	url string
	err error
}

// waitForImage polls /status/{id} until the nested payload reports
// ready/completed with an image URL. A failed status or any poll error halts
// immediately; there is no retry on polls.
func (s *StudioImpl) waitForImage(ctx context.Context, taskID string) (string, error) {
	outcome := make(chan pollOutcome, 1)

	task, err := poller.Start(ctx, s.Logger, taskID, s.Config.Poller.TaskInterval, func(ctx context.Context, id string) (bool, error) {
		status, err := s.Spark.GetImageStatus(ctx, id)
		if err != nil {
			outcome <- pollOutcome{err: fmt.Errorf("failed to check image status: %w", err)}
			return false, err
		}
		if status.Result == nil {
			return false, nil
		}

		switch status.Result.Status {
		case domain.TaskReady, domain.TaskCompleted:
			if status.Result.ImageURL == "" {
				return false, nil
			}
			outcome <- pollOutcome{url: status.Result.ImageURL}
			return true, nil
		case domain.TaskFailed:
			failure := errors.New("Image generation failed. Please try again.")
			outcome <- pollOutcome{err: failure}
			return false, failure
		}
		return false, nil
	})
	if err != nil {
		return "", err
	}
	defer task.Stop()

	select {
	case res := <-outcome:
		return res.url, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// waitForVideo polls /tasks/{id} until it reports ready with a video URL.
func (s *StudioImpl) waitForVideo(ctx context.Context, taskID string) (string, error) {
	outcome := make(chan pollOutcome, 1)

	task, err := poller.Start(ctx, s.Logger, taskID, s.Config.Poller.TaskInterval, func(ctx context.Context, id string) (bool, error) {
		status, err := s.Spark.GetTaskStatus(ctx, id)
		if err != nil {
			outcome <- pollOutcome{err: fmt.Errorf("failed to check video status: %w", err)}
			return false, err
		}

		switch status.Status {
		case domain.TaskReady, domain.TaskCompleted:
			if status.VideoURL == "" {
				return false, nil
			}
			outcome <- pollOutcome{url: status.VideoURL}
			return true, nil
		case domain.TaskFailed:
			failure := errors.New("Video rendering failed. Please try again.")
			outcome <- pollOutcome{err: failure}
			return false, failure
		}
		return false, nil
	})
	if err != nil {
		return "", err
	}
	defer task.Stop()

	select {
	case res := <-outcome:
		return res.url, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
