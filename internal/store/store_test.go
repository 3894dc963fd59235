package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/socialspark/socialspark-bot/internal/domain"
	libraryrepo "github.com/socialspark/socialspark-bot/internal/repositories/library"
	slotrepo "github.com/socialspark/socialspark-bot/internal/repositories/slot"
	"github.com/socialspark/socialspark-bot/pkg/logger"
)

type fakeSlots struct {
	drafts map[string]domain.ContentDraft
	gets   []string
}

func (f *fakeSlots) Save(_ context.Context, _ int64, _ string, draft domain.ContentDraft) (string, error) {
	return draft.ID, nil
}

func (f *fakeSlots) Get(_ context.Context, _ int64, slot string) (*domain.ContentDraft, error) {
	f.gets = append(f.gets, slot)
	draft, ok := f.drafts[slot]
	if !ok {
		return nil, slotrepo.ErrNotFound
	}
	return &draft, nil
}

func (f *fakeSlots) Clear(context.Context, int64, string) error { return nil }

func (f *fakeSlots) CleanupOldSlots(context.Context, time.Duration) (int64, error) { return 0, nil }

type fakeLibrary struct {
	items map[string]domain.LibraryItem
}

func (f *fakeLibrary) Save(_ context.Context, _ int64, draft domain.ContentDraft) (string, error) {
	return draft.ID, nil
}

func (f *fakeLibrary) GetAll(context.Context, int64) ([]domain.LibraryItem, error) { return nil, nil }

func (f *fakeLibrary) GetByID(_ context.Context, _ int64, id string) (*domain.LibraryItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, libraryrepo.ErrNotFound
	}
	return &item, nil
}

func (f *fakeLibrary) Update(context.Context, int64, domain.LibraryItem) error { return nil }

func (f *fakeLibrary) SetStatus(context.Context, int64, string, string) error { return nil }

func (f *fakeLibrary) Remove(context.Context, int64, string) error { return nil }

func newTestStore(slots *fakeSlots, lib *fakeLibrary) *Store {
	if slots.drafts == nil {
		slots.drafts = map[string]domain.ContentDraft{}
	}
	if lib.items == nil {
		lib.items = map[string]domain.LibraryItem{}
	}
	return New(Opts{Slots: slots, Library: lib, Logger: logger.NewNop()})
}

func TestFindContentChecksSlotsInOrder(t *testing.T) {
	slots := &fakeSlots{drafts: map[string]domain.ContentDraft{
		slotrepo.Editor: {ID: "x", Title: "editor copy"},
		slotrepo.Post:   {ID: "x", Title: "post copy"},
	}}
	s := newTestStore(slots, &fakeLibrary{})

	draft, err := s.FindContentByID(context.Background(), 1, "x")
	if err != nil {
		t.Fatalf("FindContentByID: %v", err)
	}
	if draft.Title != "editor copy" {
		t.Errorf("Title = %q, the editor slot should win over the post slot", draft.Title)
	}

	want := []string{slotrepo.Scheduler, slotrepo.Editor}
	if len(slots.gets) != len(want) {
		t.Fatalf("gets = %v, want %v", slots.gets, want)
	}
	for i := range want {
		if slots.gets[i] != want[i] {
			t.Errorf("gets[%d] = %s, want %s", i, slots.gets[i], want[i])
		}
	}
}

func TestFindContentFallsBackToLibrary(t *testing.T) {
	lib := &fakeLibrary{items: map[string]domain.LibraryItem{
		"lib-1": {ContentDraft: domain.ContentDraft{ID: "lib-1", Title: "from library"}},
	}}
	s := newTestStore(&fakeSlots{}, lib)

	draft, err := s.FindContentByID(context.Background(), 1, "lib-1")
	if err != nil {
		t.Fatalf("FindContentByID: %v", err)
	}
	if draft.Title != "from library" {
		t.Errorf("Title = %q", draft.Title)
	}
}

func TestFindContentNotFound(t *testing.T) {
	s := newTestStore(&fakeSlots{}, &fakeLibrary{})

	if _, err := s.FindContentByID(context.Background(), 1, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestFindContentSkipsNonMatchingSlots(t *testing.T) {
	slots := &fakeSlots{drafts: map[string]domain.ContentDraft{
		slotrepo.Scheduler: {ID: "other", Title: "someone else"},
	}}
	lib := &fakeLibrary{items: map[string]domain.LibraryItem{
		"x": {ContentDraft: domain.ContentDraft{ID: "x", Title: "match"}},
	}}
	s := newTestStore(slots, lib)

	draft, err := s.FindContentByID(context.Background(), 1, "x")
	if err != nil {
		t.Fatalf("FindContentByID: %v", err)
	}
	if draft.Title != "match" {
		t.Errorf("Title = %q", draft.Title)
	}
}
