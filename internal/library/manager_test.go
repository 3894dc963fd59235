package library

import (
	"context"
	"errors"
	"testing"

	"github.com/socialspark/socialspark-bot/internal/domain"
	libraryrepo "github.com/socialspark/socialspark-bot/internal/repositories/library"
	"github.com/socialspark/socialspark-bot/internal/spark"
	"github.com/socialspark/socialspark-bot/pkg/logger"
)

type fakeRepo struct {
	items map[string]domain.LibraryItem
	order []string
}

func newFakeRepo(items ...domain.LibraryItem) *fakeRepo {
	r := &fakeRepo{items: make(map[string]domain.LibraryItem)}
	for _, item := range items {
		r.items[item.ID] = item
		r.order = append(r.order, item.ID)
	}
	return r
}

func (r *fakeRepo) Save(_ context.Context, _ int64, draft domain.ContentDraft) (string, error) {
	r.items[draft.ID] = domain.LibraryItem{ContentDraft: draft, Status: domain.StatusDraft}
	r.order = append(r.order, draft.ID)
	return draft.ID, nil
}

func (r *fakeRepo) GetAll(_ context.Context, _ int64) ([]domain.LibraryItem, error) {
	out := make([]domain.LibraryItem, 0, len(r.order))
	for _, id := range r.order {
		if item, ok := r.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetByID(_ context.Context, _ int64, id string) (*domain.LibraryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, libraryrepo.ErrNotFound
	}
	return &item, nil
}

func (r *fakeRepo) Update(_ context.Context, _ int64, item domain.LibraryItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return libraryrepo.ErrNotFound
	}
	r.items[item.ID] = item
	return nil
}

func (r *fakeRepo) SetStatus(_ context.Context, _ int64, id string, status string) error {
	item, ok := r.items[id]
	if !ok {
		return libraryrepo.ErrNotFound
	}
	item.Status = status
	r.items[id] = item
	return nil
}

func (r *fakeRepo) Remove(_ context.Context, _ int64, id string) error {
	delete(r.items, id)
	return nil
}

type fakeSpark struct {
	spark.Client

	exportFunc func(ctx context.Context, draftID string) (*spark.ExportResponse, error)
}

func (f *fakeSpark) ExportDraft(ctx context.Context, draftID string) (*spark.ExportResponse, error) {
	return f.exportFunc(ctx, draftID)
}

func newTestManager(repo *fakeRepo, sp *fakeSpark) *Manager {
	if sp == nil {
		sp = &fakeSpark{}
	}
	return New(Opts{Repo: repo, Spark: sp, Logger: logger.NewNop()})
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo(libItem("a", "First", "", "a.png", "", "instagram"))
	m := newTestManager(repo, nil)

	item, err := m.RequestDelete(ctx, 1, "a")
	if err != nil {
		t.Fatalf("RequestDelete: %v", err)
	}
	if item.ID != "a" {
		t.Errorf("candidate id = %s, want a", item.ID)
	}

	// Nothing removed before confirmation.
	if _, err := repo.GetByID(ctx, 1, "a"); err != nil {
		t.Fatal("item removed before confirmation")
	}

	deleted, remaining, err := m.ConfirmDelete(ctx, 1)
	if err != nil {
		t.Fatalf("ConfirmDelete: %v", err)
	}
	if deleted.ID != "a" || len(remaining) != 0 {
		t.Errorf("deleted = %s, remaining = %d", deleted.ID, len(remaining))
	}
}

func TestConfirmDeleteWithoutRequest(t *testing.T) {
	m := newTestManager(newFakeRepo(), nil)

	if _, _, err := m.ConfirmDelete(context.Background(), 1); !errors.Is(err, ErrNoPendingDelete) {
		t.Errorf("err = %v, want ErrNoPendingDelete", err)
	}
}

func TestCancelDelete(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo(libItem("a", "First", "", "a.png", "", "instagram"))
	m := newTestManager(repo, nil)

	if m.CancelDelete(1) {
		t.Error("CancelDelete with no candidate should return false")
	}

	if _, err := m.RequestDelete(ctx, 1, "a"); err != nil {
		t.Fatalf("RequestDelete: %v", err)
	}
	if !m.CancelDelete(1) {
		t.Error("CancelDelete with a candidate should return true")
	}

	// The candidate is gone, confirming now fails.
	if _, _, err := m.ConfirmDelete(ctx, 1); !errors.Is(err, ErrNoPendingDelete) {
		t.Errorf("err = %v, want ErrNoPendingDelete", err)
	}
	if _, err := repo.GetByID(ctx, 1, "a"); err != nil {
		t.Error("item should survive a cancelled delete")
	}
}

func TestExportVideo(t *testing.T) {
	repo := newFakeRepo(libItem("v", "My clip", "", "", "clip.mp4", "tiktok"))
	sp := &fakeSpark{exportFunc: func(_ context.Context, draftID string) (*spark.ExportResponse, error) {
		return &spark.ExportResponse{DraftID: draftID, AssetURL: "https://cdn/final.mp4"}, nil
	}}
	m := newTestManager(repo, sp)

	result, err := m.Export(context.Background(), 1, "v")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if result.Kind != "video" || result.AssetURL != "https://cdn/final.mp4" {
		t.Errorf("result = %+v", result)
	}
	if result.FileName != "My_clip.mp4" {
		t.Errorf("FileName = %s, want My_clip.mp4", result.FileName)
	}
}

func TestExportFallsBackToImage(t *testing.T) {
	repo := newFakeRepo(libItem("b", "Both", "", "still.png", "clip.mp4", "instagram"))
	sp := &fakeSpark{exportFunc: func(context.Context, string) (*spark.ExportResponse, error) {
		return nil, errors.New("render farm down")
	}}
	m := newTestManager(repo, sp)

	result, err := m.Export(context.Background(), 1, "b")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if result.Kind != "image" || result.AssetURL != "still.png" {
		t.Errorf("result = %+v, want image fallback", result)
	}
}

func TestExportVideoOnlyFailurePropagates(t *testing.T) {
	repo := newFakeRepo(libItem("v", "Clip", "", "", "clip.mp4", "instagram"))
	wantErr := errors.New("render farm down")
	sp := &fakeSpark{exportFunc: func(context.Context, string) (*spark.ExportResponse, error) {
		return nil, wantErr
	}}
	m := newTestManager(repo, sp)

	if _, err := m.Export(context.Background(), 1, "v"); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want the export error", err)
	}
}

func TestExportNothingToExport(t *testing.T) {
	repo := newFakeRepo(libItem("t", "Text only", "caption", "", "", "instagram"))
	m := newTestManager(repo, nil)

	if _, err := m.Export(context.Background(), 1, "t"); !errors.Is(err, ErrNothingToExport) {
		t.Errorf("err = %v, want ErrNothingToExport", err)
	}
}

func TestCopyText(t *testing.T) {
	item := libItem("c", "Post", "Great coffee", "img.png", "", "instagram")
	item.Hashtags = []string{"#coffee", "#morning"}

	got := CopyText(&item)
	want := "Great coffee\n\n#coffee #morning"
	if got != want {
		t.Errorf("CopyText = %q, want %q", got, want)
	}
}
