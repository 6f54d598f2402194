package themes

// Style variable names addressed by the dashboard's stylesheets. The 12
// color slots plus the 2 font slots make up the full token surface.
const (
	TokenPrimary         = "--primary"
	TokenSecondary       = "--secondary"
	TokenAccent          = "--accent"
	TokenBackground      = "--background"
	TokenForeground      = "--foreground"
	TokenCard            = "--card"
	TokenCardForeground  = "--card-foreground"
	TokenMuted           = "--muted"
	TokenMutedForeground = "--muted-foreground"
	TokenBorder          = "--border"
	TokenInput           = "--input"
	TokenRing            = "--ring"
	TokenFontSans        = "--font-sans"
	TokenFontHeading     = "--font-heading"
)

// StyleTokens resolves a theme into the map of style variables the UI
// layer applies to its rendering surface. Pure function, no side effects;
// the actual application is the consumer's concern.
func StyleTokens(theme Theme) map[string]string {
	return map[string]string{
		TokenPrimary:         theme.Colors.Primary,
		TokenSecondary:       theme.Colors.Secondary,
		TokenAccent:          theme.Colors.Accent,
		TokenBackground:      theme.Colors.Background,
		TokenForeground:      theme.Colors.Foreground,
		TokenCard:            theme.Colors.Card,
		TokenCardForeground:  theme.Colors.CardForeground,
		TokenMuted:           theme.Colors.Muted,
		TokenMutedForeground: theme.Colors.MutedForeground,
		TokenBorder:          theme.Colors.Border,
		TokenInput:           theme.Colors.Input,
		TokenRing:            theme.Colors.Ring,
		TokenFontSans:        theme.Fonts.Sans,
		TokenFontHeading:     theme.Fonts.Heading,
	}
}
