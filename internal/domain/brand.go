package domain

// BrandProfile holds the brand presets every generation call is seeded with.
// Generation is blocked until one exists for the chat.
type BrandProfile struct {
	BusinessName    string   `json:"businessName"`
	BusinessType    string   `json:"businessType"`
	Description     string   `json:"description"`
	PrimaryColor    string   `json:"primaryColor"`
	SecondaryColor  string   `json:"secondaryColor"`
	AccentColor     string   `json:"accentColor"`
	LogoURL         string   `json:"logoUrl,omitempty"`
	DefaultHashtags []string `json:"defaultHashtags"`
	BrandVoice      string   `json:"brandVoice"`
	TargetAudience  string   `json:"targetAudience"`
}
