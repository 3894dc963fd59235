package domain

import "testing"

func TestMediaKind(t *testing.T) {
	tests := []struct {
		name      string
		imageURL  string
		videoURL  string
		wantImage bool
		wantVideo bool
	}{
		{"image only", "img.png", "", true, false},
		{"video only", "", "clip.mp4", false, true},
		{"video with thumbnail", "thumb.png", "clip.mp4", false, true},
		{"neither", "", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ContentDraft{ImageURL: tt.imageURL, VideoURL: tt.videoURL}
			if d.IsImage() != tt.wantImage {
				t.Errorf("IsImage = %v, want %v", d.IsImage(), tt.wantImage)
			}
			if d.IsVideo() != tt.wantVideo {
				t.Errorf("IsVideo = %v, want %v", d.IsVideo(), tt.wantVideo)
			}
		})
	}
}

func TestIsTerminalTaskStatus(t *testing.T) {
	for _, status := range []string{TaskReady, TaskCompleted, TaskFailed, TaskDone} {
		if !IsTerminalTaskStatus(status) {
			t.Errorf("%q should be terminal", status)
		}
	}
	for _, status := range []string{TaskQueued, TaskProcessing, ""} {
		if IsTerminalTaskStatus(status) {
			t.Errorf("%q should not be terminal", status)
		}
	}
}
