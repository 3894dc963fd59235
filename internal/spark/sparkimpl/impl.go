package sparkimpl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/socialspark/socialspark-bot/internal/spark"
	"github.com/socialspark/socialspark-bot/pkg/config"
	"github.com/socialspark/socialspark-bot/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type SparkImpl struct {
	baseURL string
	http    *http.Client
	logger  logger.Logger
}

func New(opts Opts) *SparkImpl {
	return &SparkImpl{
		baseURL: opts.Config.Spark.BaseURL,
		http:    &http.Client{Timeout: opts.Config.Spark.RequestTimeout},
		logger:  opts.Logger.WithComponent("SparkClient"),
	}
}

var _ spark.Client = (*SparkImpl)(nil)

func (s *SparkImpl) postJSON(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return s.do(req, out)
}

func (s *SparkImpl) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", path, err)
	}

	return s.do(req, out)
}

func (s *SparkImpl) do(req *http.Request, out any) error {
	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("spark request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.logger.Error("Error closing response body", "error", cerr)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read spark response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := spark.ExtractErrorMessage(raw, fmt.Sprintf("request failed: %s", resp.Status))
		s.logger.Warn("Spark backend rejected request",
			"path", req.URL.Path,
			"status", resp.StatusCode,
			"message", msg)
		return &spark.APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode spark response from %s: %w", req.URL.Path, err)
	}
	return nil
}

func (s *SparkImpl) GenerateCaption(ctx context.Context, req spark.GenerateCaptionRequest) (*spark.GenerateCaptionResponse, error) {
	var resp spark.GenerateCaptionResponse
	if err := s.postJSON(ctx, "/generate/caption", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *SparkImpl) GenerateImagePrompt(ctx context.Context, req spark.GenerateImageRequest) (*spark.GenerateImageResponse, error) {
	var resp spark.GenerateImageResponse
	if err := s.postJSON(ctx, "/generate/image", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *SparkImpl) RenderImage(ctx context.Context, req spark.RenderImageRequest) (*spark.RenderImageResponse, error) {
	var resp spark.RenderImageResponse
	if err := s.postJSON(ctx, "/render/image", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *SparkImpl) GetImageStatus(ctx context.Context, taskID string) (*spark.ImageStatusResponse, error) {
	var resp spark.ImageStatusResponse
	if err := s.getJSON(ctx, "/status/"+url.PathEscape(taskID), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *SparkImpl) GenerateStoryboard(ctx context.Context, req spark.GenerateStoryboardRequest) (*spark.GenerateStoryboardResponse, error) {
	var resp spark.GenerateStoryboardResponse
	if err := s.postJSON(ctx, "/generate/storyboard", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *SparkImpl) RenderVideo(ctx context.Context, req spark.RenderVideoRequest) (*spark.RenderVideoResponse, error) {
	var resp spark.RenderVideoResponse
	if err := s.postJSON(ctx, "/render/video", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *SparkImpl) GetTaskStatus(ctx context.Context, taskID string) (*spark.TaskStatusResponse, error) {
	var resp spark.TaskStatusResponse
	if err := s.getJSON(ctx, "/tasks/"+url.PathEscape(taskID), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *SparkImpl) ScheduleReminder(ctx context.Context, req spark.ScheduleReminderRequest) (*spark.ScheduleReminderResponse, error) {
	var resp spark.ScheduleReminderResponse
	if err := s.postJSON(ctx, "/schedule/reminder", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *SparkImpl) GetReminderStatus(ctx context.Context, assetID string) (*spark.ReminderStatusResponse, error) {
	var resp spark.ReminderStatusResponse
	if err := s.getJSON(ctx, "/schedule/"+url.PathEscape(assetID), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *SparkImpl) ExportDraft(ctx context.Context, draftID string) (*spark.ExportResponse, error) {
	var resp spark.ExportResponse
	if err := s.postJSON(ctx, "/export", spark.ExportRequest{DraftID: draftID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
