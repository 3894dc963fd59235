package commandimpl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/socialspark/socialspark-bot/internal/domain"
	"github.com/socialspark/socialspark-bot/internal/repositories/brand"
)

const brandUsage = `Set up your brand like this:

/brand <name> | <business type> | <description>

Optional extra fields, in order:
/brand <name> | <type> | <description> | <voice> | <audience> | <#hashtags ...>

Example:
/brand Bloom Cafe | coffee shop | Cozy neighborhood cafe | friendly | young professionals | #coffee #latteart`

func (c *CommandImpl) handleBrandCommand(ctx context.Context, chatID int64, args string) error {
	args = strings.TrimSpace(args)
	if args == "" {
		return c.showBrand(ctx, chatID)
	}

	parts := strings.Split(args, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if len(parts) < 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		_, err := c.Telegram.SendMessage(chatID, brandUsage)
		return err
	}

	profile := domain.BrandProfile{
		BusinessName:   parts[0],
		BusinessType:   parts[1],
		Description:    parts[2],
		PrimaryColor:   "#3b82f6",
		SecondaryColor: "#8b5cf6",
		AccentColor:    "#f59e0b",
	}
	if len(parts) > 3 {
		profile.BrandVoice = parts[3]
	}
	if len(parts) > 4 {
		profile.TargetAudience = parts[4]
	}
	if len(parts) > 5 {
		profile.DefaultHashtags = strings.Fields(parts[5])
	}

	if err := c.BrandRepo.Save(ctx, chatID, profile); err != nil {
		c.Logger.Error("Failed to save brand profile", "error", err)
		_, sendErr := c.Telegram.SendMessage(chatID, "Failed to save your brand profile. Please try again.")
		if sendErr != nil {
			return sendErr
		}
		return err
	}

	_, err := c.Telegram.SendMessage(chatID,
		fmt.Sprintf("✅ Brand profile saved for %s! You can now use /generate and /video.", profile.BusinessName))
	return err
}

func (c *CommandImpl) showBrand(ctx context.Context, chatID int64) error {
	profile, err := c.BrandRepo.Get(ctx, chatID)
	if err != nil {
		if errors.Is(err, brand.ErrNotFound) {
			_, sendErr := c.Telegram.SendMessage(chatID, "You have no brand profile yet.\n\n"+brandUsage)
			return sendErr
		}
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🏷 *%s* (%s)\n%s\n", profile.BusinessName, profile.BusinessType, profile.Description)
	if profile.BrandVoice != "" {
		fmt.Fprintf(&b, "Voice: %s\n", profile.BrandVoice)
	}
	if profile.TargetAudience != "" {
		fmt.Fprintf(&b, "Audience: %s\n", profile.TargetAudience)
	}
	if len(profile.DefaultHashtags) > 0 {
		fmt.Fprintf(&b, "Hashtags: %s\n", strings.Join(profile.DefaultHashtags, " "))
	}

	_, err = c.Telegram.SendMessage(chatID, b.String())
	return err
}
