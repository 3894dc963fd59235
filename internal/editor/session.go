// Package editor holds the in-memory editing session for a draft: a current
// snapshot plus a bounded linear undo/redo history.
package editor

import (
	"sync"

	"github.com/socialspark/socialspark-bot/internal/domain"
)

// HistoryLimit caps the undo history. Once exceeded the oldest snapshot is
// evicted and the window slides.
const HistoryLimit = 50

// Session is a single draft being edited. The invariant
// -1 <= cursor < len(history) holds at all times; history[cursor] is the
// current snapshot whenever cursor >= 0.
type Session struct {
	mu      sync.Mutex
	current domain.EditorSnapshot
	history []domain.EditorSnapshot
	cursor  int
}

func NewSession(draft domain.ContentDraft) *Session {
	return &Session{
		current: domain.NewEditorSnapshot(draft),
		cursor:  -1,
	}
}

// Snapshot returns a copy of the current editor state.
func (s *Session) Snapshot() domain.EditorSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// apply records the pre-change state (seeding the history on the first
// change), truncates any redo tail, applies the change and appends the
// result. An action is undoable to the state immediately prior to it, never
// to "no state".
func (s *Session) apply(change func(*domain.EditorSnapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor == -1 {
		s.history = append(s.history, s.current)
		s.cursor = 0
	}

	s.history = s.history[:s.cursor+1]

	change(&s.current)

	s.history = append(s.history, s.current)
	if len(s.history) > HistoryLimit {
		s.history = s.history[1:]
	} else {
		s.cursor++
	}
}

// Undo steps back one snapshot. Returns false when there is nothing to undo.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor <= 0 {
		return false
	}
	s.cursor--
	s.current = s.history[s.cursor]
	return true
}

// Redo steps forward one snapshot. Returns false at the head of history.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor < 0 || s.cursor >= len(s.history)-1 {
		return false
	}
	s.cursor++
	s.current = s.history[s.cursor]
	return true
}

func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor > 0
}

func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor >= 0 && s.cursor < len(s.history)-1
}

// HistoryLen reports the number of stored snapshots.
func (s *Session) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

func (s *Session) SetCaption(caption string) {
	s.apply(func(snap *domain.EditorSnapshot) { snap.Caption = caption })
}

func (s *Session) AddHashtag(tag string) {
	s.apply(func(snap *domain.EditorSnapshot) {
		for _, existing := range snap.Hashtags {
			if existing == tag {
				return
			}
		}
		snap.Hashtags = append(append([]string{}, snap.Hashtags...), tag)
	})
}

func (s *Session) RemoveHashtag(tag string) {
	s.apply(func(snap *domain.EditorSnapshot) {
		kept := make([]string, 0, len(snap.Hashtags))
		for _, existing := range snap.Hashtags {
			if existing != tag {
				kept = append(kept, existing)
			}
		}
		snap.Hashtags = kept
	})
}

func (s *Session) SetTextAlign(align string) {
	s.apply(func(snap *domain.EditorSnapshot) { snap.TextAlign = align })
}

func (s *Session) SetFontSize(size int) {
	s.apply(func(snap *domain.EditorSnapshot) { snap.FontSize = size })
}

func (s *Session) SetBold(on bool) {
	s.apply(func(snap *domain.EditorSnapshot) { snap.IsBold = on })
}

func (s *Session) SetItalic(on bool) {
	s.apply(func(snap *domain.EditorSnapshot) { snap.IsItalic = on })
}

func (s *Session) SetTextColor(color string) {
	s.apply(func(snap *domain.EditorSnapshot) { snap.TextColor = color })
}

func (s *Session) SetBackgroundColor(color string) {
	s.apply(func(snap *domain.EditorSnapshot) { snap.BackgroundColor = color })
}

func (s *Session) SetTextVisible(on bool) {
	s.apply(func(snap *domain.EditorSnapshot) { snap.TextVisible = on })
}

func (s *Session) SetBackgroundVisible(on bool) {
	s.apply(func(snap *domain.EditorSnapshot) { snap.BackgroundVisible = on })
}

func (s *Session) SetVideoVisible(on bool) {
	s.apply(func(snap *domain.EditorSnapshot) { snap.VideoVisible = on })
}
