package commandimpl

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/socialspark/socialspark-bot/internal/editor"
	libraryrepo "github.com/socialspark/socialspark-bot/internal/repositories/library"
	"github.com/socialspark/socialspark-bot/internal/repositories/slot"
	"github.com/socialspark/socialspark-bot/internal/store"
)

const editorHelp = `✏️ *Editor commands:*

/edit <id> - Open an item in the editor.
/edit caption <text> - Replace the caption.
/edit tag add <#tag> - Add a hashtag.
/edit tag remove <#tag> - Remove a hashtag.
/edit align left|center|right - Set text alignment.
/edit size <number> - Set the font size.
/edit bold on|off - Toggle bold.
/edit italic on|off - Toggle italic.
/edit color <#hex> - Set the text color.
/edit bg <#hex> - Set the background color.
/edit toggle text|bg|video - Show or hide a layer.
/edit undo - Undo the last change.
/edit redo - Redo an undone change.
/edit preview - Show the current state.
/edit save - Save your changes.
/edit close - Close the editor without saving.`

var editorSubcommands = map[string]bool{
	"help": true, "caption": true, "tag": true, "align": true, "size": true,
	"bold": true, "italic": true, "color": true, "bg": true, "toggle": true,
	"undo": true, "redo": true, "preview": true, "save": true, "close": true,
}

func (c *CommandImpl) handleEditCommand(ctx context.Context, chatID int64, args string) error {
	args = strings.TrimSpace(args)
	if args == "" {
		_, err := c.Telegram.SendMessage(chatID, editorHelp)
		return err
	}

	parts := strings.SplitN(args, " ", 2)
	verb := strings.ToLower(parts[0])
	rest := ""
	if len(parts) > 1 {
		rest = strings.TrimSpace(parts[1])
	}

	if !editorSubcommands[verb] {
		return c.openEditor(ctx, chatID, verb)
	}

	if verb == "help" {
		_, err := c.Telegram.SendMessage(chatID, editorHelp)
		return err
	}

	session := c.Editor.Get(chatID)
	if session == nil {
		_, err := c.Telegram.SendMessage(chatID, "No editing session open. Start one with /edit <id>.")
		return err
	}

	switch verb {
	case "caption":
		if rest == "" {
			_, err := c.Telegram.SendMessage(chatID, "Please provide the new caption: /edit caption <text>")
			return err
		}
		session.SetCaption(rest)
	case "tag":
		return c.handleEditTag(chatID, session, rest)
	case "align":
		if rest != "left" && rest != "center" && rest != "right" {
			_, err := c.Telegram.SendMessage(chatID, "Alignment must be left, center or right.")
			return err
		}
		session.SetTextAlign(rest)
	case "size":
		size, err := strconv.Atoi(rest)
		if err != nil || size < 8 || size > 96 {
			_, sendErr := c.Telegram.SendMessage(chatID, "Font size must be a number between 8 and 96.")
			return sendErr
		}
		session.SetFontSize(size)
	case "bold":
		on, err := parseOnOff(rest)
		if err != nil {
			_, sendErr := c.Telegram.SendMessage(chatID, "Use /edit bold on or /edit bold off.")
			return sendErr
		}
		session.SetBold(on)
	case "italic":
		on, err := parseOnOff(rest)
		if err != nil {
			_, sendErr := c.Telegram.SendMessage(chatID, "Use /edit italic on or /edit italic off.")
			return sendErr
		}
		session.SetItalic(on)
	case "color":
		if rest == "" {
			_, err := c.Telegram.SendMessage(chatID, "Please provide a color: /edit color <#hex>")
			return err
		}
		session.SetTextColor(rest)
	case "bg":
		if rest == "" {
			_, err := c.Telegram.SendMessage(chatID, "Please provide a color: /edit bg <#hex>")
			return err
		}
		session.SetBackgroundColor(rest)
	case "toggle":
		return c.handleEditToggle(chatID, session, rest)
	case "undo":
		if !session.Undo() {
			_, err := c.Telegram.SendMessage(chatID, "Nothing to undo.")
			return err
		}
	case "redo":
		if !session.Redo() {
			_, err := c.Telegram.SendMessage(chatID, "Nothing to redo.")
			return err
		}
	case "preview":
		_, err := c.Telegram.SendMessage(chatID, editor.RenderPreview(session.Snapshot()))
		return err
	case "save":
		return c.saveEditor(ctx, chatID, session)
	case "close":
		c.Editor.Close(chatID)
		_, err := c.Telegram.SendMessage(chatID, "Editor closed. Unsaved changes were discarded.")
		return err
	}

	_, err := c.Telegram.SendMessage(chatID, editor.RenderPreview(session.Snapshot()))
	return err
}

func (c *CommandImpl) openEditor(ctx context.Context, chatID int64, id string) error {
	draft, err := c.Store.FindContentByID(ctx, chatID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_, sendErr := c.Telegram.SendMessage(chatID, "No content with that id. Use /library to see your items.")
			return sendErr
		}
		return err
	}

	session := c.Editor.Open(chatID, *draft)
	if _, err := c.SlotRepo.Save(ctx, chatID, slot.Editor, *draft); err != nil {
		c.Logger.Warn("Failed to stage draft in editor slot", "error", err)
	}

	_, err = c.Telegram.SendMessage(chatID,
		"✏️ Editing \""+draft.Title+"\". Use /edit help for the command list.\n\n"+editor.RenderPreview(session.Snapshot()))
	return err
}

func (c *CommandImpl) handleEditTag(chatID int64, session *editor.Session, rest string) error {
	parts := strings.Fields(rest)
	if len(parts) != 2 || (parts[0] != "add" && parts[0] != "remove") {
		_, err := c.Telegram.SendMessage(chatID, "Use /edit tag add <#tag> or /edit tag remove <#tag>.")
		return err
	}

	tag := parts[1]
	if !strings.HasPrefix(tag, "#") {
		tag = "#" + tag
	}

	if parts[0] == "add" {
		session.AddHashtag(tag)
	} else {
		session.RemoveHashtag(tag)
	}

	_, err := c.Telegram.SendMessage(chatID, editor.RenderPreview(session.Snapshot()))
	return err
}

func (c *CommandImpl) handleEditToggle(chatID int64, session *editor.Session, rest string) error {
	snap := session.Snapshot()
	switch rest {
	case "text":
		session.SetTextVisible(!snap.TextVisible)
	case "bg":
		session.SetBackgroundVisible(!snap.BackgroundVisible)
	case "video":
		session.SetVideoVisible(!snap.VideoVisible)
	default:
		_, err := c.Telegram.SendMessage(chatID, "Use /edit toggle text, /edit toggle bg or /edit toggle video.")
		return err
	}

	_, err := c.Telegram.SendMessage(chatID, editor.RenderPreview(session.Snapshot()))
	return err
}

// saveEditor writes the edited draft back: the editor slot always gets the
// result, and a library copy with the same id is updated in place.
func (c *CommandImpl) saveEditor(ctx context.Context, chatID int64, session *editor.Session) error {
	draft := session.Snapshot().ContentDraft

	if _, err := c.SlotRepo.Save(ctx, chatID, slot.Editor, draft); err != nil {
		c.Logger.Error("Failed to save edited draft", "error", err)
		_, sendErr := c.Telegram.SendMessage(chatID, "Failed to save your changes. Please try again.")
		if sendErr != nil {
			return sendErr
		}
		return err
	}

	if item, err := c.LibraryRepo.GetByID(ctx, chatID, draft.ID); err == nil {
		item.ContentDraft = draft
		if err := c.LibraryRepo.Update(ctx, chatID, *item); err != nil {
			c.Logger.Warn("Failed to update library copy", "id", draft.ID, "error", err)
		}
	} else if !errors.Is(err, libraryrepo.ErrNotFound) {
		c.Logger.Warn("Failed to look up library copy", "id", draft.ID, "error", err)
	}

	c.Editor.Close(chatID)
	_, err := c.Telegram.SendMessage(chatID, "💾 Changes saved.")
	return err
}

func parseOnOff(arg string) (bool, error) {
	switch strings.ToLower(arg) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", arg)
}
