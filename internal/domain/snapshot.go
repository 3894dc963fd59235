package domain

// EditorSnapshot is one point-in-time copy of the editable attributes of a
// draft, used by the editor's undo/redo history.
type EditorSnapshot struct {
	ContentDraft

	TextAlign         string `json:"textAlign"`
	FontSize          int    `json:"fontSize"`
	IsBold            bool   `json:"isBold"`
	IsItalic          bool   `json:"isItalic"`
	TextColor         string `json:"textColor"`
	BackgroundColor   string `json:"backgroundColor"`
	TextVisible       bool   `json:"textVisible"`
	BackgroundVisible bool   `json:"backgroundVisible"`
	VideoVisible      bool   `json:"videoVisible"`
}

// NewEditorSnapshot seeds a snapshot from a draft with the editor defaults.
func NewEditorSnapshot(draft ContentDraft) EditorSnapshot {
	return EditorSnapshot{
		ContentDraft:      draft,
		TextAlign:         "left",
		FontSize:          16,
		TextColor:         "#000000",
		BackgroundColor:   "#ffffff",
		TextVisible:       true,
		BackgroundVisible: true,
		VideoVisible:      true,
	}
}
