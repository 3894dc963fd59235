package schedulerimpl

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/socialspark/socialspark-bot/internal/domain"
	libraryrepo "github.com/socialspark/socialspark-bot/internal/repositories/library"
	slotrepo "github.com/socialspark/socialspark-bot/internal/repositories/slot"
	"github.com/socialspark/socialspark-bot/internal/scheduler"
	"github.com/socialspark/socialspark-bot/internal/spark"
	"github.com/socialspark/socialspark-bot/internal/store"
	"github.com/socialspark/socialspark-bot/pkg/config"
	"github.com/socialspark/socialspark-bot/pkg/logger"
)

type emptySlotRepo struct{}

func (emptySlotRepo) Save(_ context.Context, _ int64, _ string, draft domain.ContentDraft) (string, error) {
	return draft.ID, nil
}

func (emptySlotRepo) Get(context.Context, int64, string) (*domain.ContentDraft, error) {
	return nil, slotrepo.ErrNotFound
}

func (emptySlotRepo) Clear(context.Context, int64, string) error { return nil }

func (emptySlotRepo) CleanupOldSlots(context.Context, time.Duration) (int64, error) { return 0, nil }

type fakeLibraryRepo struct {
	mu    sync.Mutex
	items map[string]domain.LibraryItem
}

func newFakeLibraryRepo(items ...domain.LibraryItem) *fakeLibraryRepo {
	r := &fakeLibraryRepo{items: make(map[string]domain.LibraryItem)}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

func (r *fakeLibraryRepo) Save(_ context.Context, _ int64, draft domain.ContentDraft) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[draft.ID] = domain.LibraryItem{ContentDraft: draft, Status: domain.StatusDraft}
	return draft.ID, nil
}

func (r *fakeLibraryRepo) GetAll(context.Context, int64) ([]domain.LibraryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.LibraryItem, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

func (r *fakeLibraryRepo) GetByID(_ context.Context, _ int64, id string) (*domain.LibraryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, libraryrepo.ErrNotFound
	}
	return &item, nil
}

func (r *fakeLibraryRepo) Update(_ context.Context, _ int64, item domain.LibraryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return libraryrepo.ErrNotFound
	}
	r.items[item.ID] = item
	return nil
}

func (r *fakeLibraryRepo) SetStatus(_ context.Context, _ int64, id string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return libraryrepo.ErrNotFound
	}
	item.Status = status
	r.items[id] = item
	return nil
}

func (r *fakeLibraryRepo) Remove(_ context.Context, _ int64, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeLibraryRepo) status(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id].Status
}

type fakeSpark struct {
	spark.Client

	scheduleFunc func(spark.ScheduleReminderRequest) (*spark.ScheduleReminderResponse, error)
	statusFunc   func(string) (*spark.ReminderStatusResponse, error)
}

func (f *fakeSpark) ScheduleReminder(_ context.Context, req spark.ScheduleReminderRequest) (*spark.ScheduleReminderResponse, error) {
	return f.scheduleFunc(req)
}

func (f *fakeSpark) GetReminderStatus(_ context.Context, assetID string) (*spark.ReminderStatusResponse, error) {
	return f.statusFunc(assetID)
}

func newTestScheduler(sp *fakeSpark, lib *fakeLibraryRepo) *SchedulerImpl {
	cfg := &config.Config{}
	cfg.Poller.ReminderInterval = 5 * time.Millisecond

	log := logger.NewNop()
	st := store.New(store.Opts{Slots: emptySlotRepo{}, Library: lib, Logger: log})

	return New(Opts{
		Spark:       sp,
		Store:       st,
		LibraryRepo: lib,
		Logger:      log,
		Config:      cfg,
	})
}

func scheduledItem(id string) domain.LibraryItem {
	return domain.LibraryItem{
		ContentDraft: domain.ContentDraft{ID: id, Title: "Promo", ImageURL: "img.png"},
		Status:       domain.StatusDraft,
	}
}

func TestScheduleInvalidTimestamp(t *testing.T) {
	called := false
	sp := &fakeSpark{scheduleFunc: func(spark.ScheduleReminderRequest) (*spark.ScheduleReminderResponse, error) {
		called = true
		return nil, nil
	}}
	s := newTestScheduler(sp, newFakeLibraryRepo(scheduledItem("a")))

	_, err := s.Schedule(context.Background(), scheduler.Request{
		ChatID: 1, AssetID: "a", Date: "not-a-date", Time: "10:00",
	}, nil)
	if !errors.Is(err, scheduler.ErrInvalidRunAt) {
		t.Fatalf("err = %v, want ErrInvalidRunAt", err)
	}
	if called {
		t.Error("backend called despite invalid timestamp")
	}
}

func TestScheduleUnknownAsset(t *testing.T) {
	sp := &fakeSpark{}
	s := newTestScheduler(sp, newFakeLibraryRepo())

	_, err := s.Schedule(context.Background(), scheduler.Request{
		ChatID: 1, AssetID: "missing", Date: "2026-09-01", Time: "10:00",
	}, nil)
	if !errors.Is(err, scheduler.ErrAssetNotFound) {
		t.Fatalf("err = %v, want ErrAssetNotFound", err)
	}
}

func TestScheduleBackendRejection(t *testing.T) {
	sp := &fakeSpark{scheduleFunc: func(spark.ScheduleReminderRequest) (*spark.ScheduleReminderResponse, error) {
		return &spark.ScheduleReminderResponse{Status: "rejected"}, nil
	}}
	lib := newFakeLibraryRepo(scheduledItem("a"))
	s := newTestScheduler(sp, lib)

	_, err := s.Schedule(context.Background(), scheduler.Request{
		ChatID: 1, AssetID: "a", Date: "2026-09-01", Time: "10:00",
	}, nil)
	if err == nil {
		t.Fatal("expected an error on a rejected reminder")
	}
	if got := lib.status("a"); got != domain.StatusDraft {
		t.Errorf("status = %q, want draft after rejection", got)
	}
}

func TestSchedulePublishes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sp := &fakeSpark{
		scheduleFunc: func(req spark.ScheduleReminderRequest) (*spark.ScheduleReminderResponse, error) {
			if req.AssetID != "a" || req.Platform != "instagram" {
				t.Errorf("request = %+v", req)
			}
			return &spark.ScheduleReminderResponse{Status: "scheduled", ScheduledFor: "2026-09-01T10:00:00Z"}, nil
		},
		statusFunc: func(string) (*spark.ReminderStatusResponse, error) {
			return &spark.ReminderStatusResponse{AssetID: "a", Status: "done"}, nil
		},
	}
	lib := newFakeLibraryRepo(scheduledItem("a"))
	s := newTestScheduler(sp, lib)

	notified := make(chan string, 4)
	result, err := s.Schedule(ctx, scheduler.Request{
		ChatID: 1, AssetID: "a", Platform: "instagram", Date: "2026-09-01", Time: "10:00",
	}, func(message string) { notified <- message })
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	if result.Status != "scheduled" || result.ScheduledFor != "2026-09-01T10:00:00Z" {
		t.Errorf("result = %+v", result)
	}

	select {
	case msg := <-notified:
		if msg != "Content has been published!" {
			t.Errorf("notification = %q", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("publication notification never arrived")
	}

	if got := lib.status("a"); got != domain.StatusPublished {
		t.Errorf("status = %q, want published", got)
	}
}

func TestSchedulePollErrorNotifies(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sp := &fakeSpark{
		scheduleFunc: func(spark.ScheduleReminderRequest) (*spark.ScheduleReminderResponse, error) {
			return &spark.ScheduleReminderResponse{Status: "queued"}, nil
		},
		statusFunc: func(string) (*spark.ReminderStatusResponse, error) {
			return nil, errors.New("backend unreachable")
		},
	}
	lib := newFakeLibraryRepo(scheduledItem("a"))
	s := newTestScheduler(sp, lib)

	notified := make(chan string, 4)
	if _, err := s.Schedule(ctx, scheduler.Request{
		ChatID: 1, AssetID: "a", Date: "2026-09-01", Time: "10:00",
	}, func(message string) { notified <- message }); err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	select {
	case msg := <-notified:
		if msg != "Failed to check scheduling status" {
			t.Errorf("notification = %q", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("failure notification never arrived")
	}

	if got := lib.status("a"); got != domain.StatusScheduled {
		t.Errorf("status = %q, want scheduled (unchanged by the failed poll)", got)
	}
}
