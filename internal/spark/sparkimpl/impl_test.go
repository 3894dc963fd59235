package sparkimpl

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/socialspark/socialspark-bot/internal/spark"
	"github.com/socialspark/socialspark-bot/pkg/config"
	"github.com/socialspark/socialspark-bot/pkg/logger"
)

func newTestClient(t *testing.T, handler http.Handler) *SparkImpl {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Spark.BaseURL = server.URL
	cfg.Spark.RequestTimeout = 5 * time.Second

	return New(Opts{Config: cfg, Logger: logger.NewNop()})
}

func TestGenerateCaption(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate/caption" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var req spark.GenerateCaptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Idea != "coffee promo" {
			t.Errorf("idea = %q", req.Idea)
		}
		if req.BrandPresets.Name != "Bloom Cafe" {
			t.Errorf("brand presets missing: %+v", req.BrandPresets)
		}

		json.NewEncoder(w).Encode(spark.GenerateCaptionResponse{
			Caption:  "Fresh brew every morning",
			Hashtags: []string{"#coffee", "#morning"},
		})
	}))

	resp, err := client.GenerateCaption(context.Background(), spark.GenerateCaptionRequest{
		Idea:         "coffee promo",
		Platform:     "instagram",
		BrandPresets: spark.BrandPresets{Name: "Bloom Cafe"},
	})
	if err != nil {
		t.Fatalf("GenerateCaption: %v", err)
	}
	if resp.Caption != "Fresh brew every morning" || len(resp.Hashtags) != 2 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestGetImageStatusNestedResult(t *testing.T) {
	// The backend nests the image payload under a field named "video_url".
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/status/task-42" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"status":"completed","video_url":{"status":"ready","image_url":"https://cdn/img.png"}}`))
	}))

	resp, err := client.GetImageStatus(context.Background(), "task-42")
	if err != nil {
		t.Fatalf("GetImageStatus: %v", err)
	}
	if resp.Result == nil {
		t.Fatal("nested result not decoded")
	}
	if resp.Result.Status != "ready" || resp.Result.ImageURL != "https://cdn/img.png" {
		t.Errorf("result = %+v", resp.Result)
	}
}

func TestGetImageStatusPending(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"processing"}`))
	}))

	resp, err := client.GetImageStatus(context.Background(), "task-42")
	if err != nil {
		t.Fatalf("GetImageStatus: %v", err)
	}
	if resp.Result != nil {
		t.Errorf("pending status should have no result, got %+v", resp.Result)
	}
}

func TestErrorDetailString(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"idea must not be empty"}`))
	}))

	_, err := client.GenerateCaption(context.Background(), spark.GenerateCaptionRequest{})
	if err == nil {
		t.Fatal("expected an error")
	}

	var apiErr *spark.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T, want *spark.APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Message != "idea must not be empty" {
		t.Errorf("apiErr = %+v", apiErr)
	}
	if got := spark.UserMessage(err); got != "idea must not be empty" {
		t.Errorf("UserMessage = %q", got)
	}
}

func TestErrorDetailValidationList(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":[{"msg":"field required"},{"msg":"value too long"}]}`))
	}))

	_, err := client.RenderVideo(context.Background(), spark.RenderVideoRequest{})

	var apiErr *spark.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T, want *spark.APIError", err)
	}
	if apiErr.Message != "field required" {
		t.Errorf("Message = %q, want first validation message", apiErr.Message)
	}
}

func TestErrorUnparsableBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream exploded"))
	}))

	_, err := client.ExportDraft(context.Background(), "draft-1")

	var apiErr *spark.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T, want *spark.APIError", err)
	}
	if apiErr.Message == "" {
		t.Error("fallback message should not be empty")
	}
}

func TestUserMessageGenericError(t *testing.T) {
	got := spark.UserMessage(errors.New("dial tcp: connection refused"))
	if got != "Something went wrong. Please try again." {
		t.Errorf("UserMessage = %q", got)
	}
}

func TestExportDraft(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/export" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req spark.ExportRequest
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(spark.ExportResponse{DraftID: req.DraftID, AssetURL: "https://cdn/final.mp4"})
	}))

	resp, err := client.ExportDraft(context.Background(), "draft-9")
	if err != nil {
		t.Fatalf("ExportDraft: %v", err)
	}
	if resp.DraftID != "draft-9" || resp.AssetURL != "https://cdn/final.mp4" {
		t.Errorf("resp = %+v", resp)
	}
}
