// Package themes holds the fixed catalog of visual themes a tenant can
// select. A theme is an immutable bundle of HSL color tokens and font
// stacks; tenants reference themes by key.
package themes

// Colors is the set of semantic color slots every theme must fill.
// Values are HSL triples without the hsl() wrapper, as consumed by the
// dashboard's CSS variables.
type Colors struct {
	Primary         string `json:"primary"`
	Secondary       string `json:"secondary"`
	Accent          string `json:"accent"`
	Background      string `json:"background"`
	Foreground      string `json:"foreground"`
	Card            string `json:"card"`
	CardForeground  string `json:"cardForeground"`
	Muted           string `json:"muted"`
	MutedForeground string `json:"mutedForeground"`
	Border          string `json:"border"`
	Input           string `json:"input"`
	Ring            string `json:"ring"`
}

type Fonts struct {
	Sans    string `json:"sans"`
	Heading string `json:"heading"`
}

type Theme struct {
	Name   string `json:"name"`
	Colors Colors `json:"colors"`
	Fonts  Fonts  `json:"fonts"`
}

// Keys of the built-in themes.
const (
	KeyDark      = "dark"
	KeyCorporate = "corporate"
	KeyEduBright = "edu-bright"
)

const interFonts = "Inter, system-ui, sans-serif"

var catalog = map[string]Theme{
	KeyDark: {
		Name: "Dark",
		Colors: Colors{
			Primary:         "217.2 91.2% 59.8%",
			Secondary:       "217.2 32.6% 17.5%",
			Accent:          "217.2 32.6% 17.5%",
			Background:      "222.2 84% 4.9%",
			Foreground:      "210 40% 98%",
			Card:            "222.2 84% 4.9%",
			CardForeground:  "210 40% 98%",
			Muted:           "217.2 32.6% 17.5%",
			MutedForeground: "215 20.2% 65.1%",
			Border:          "217.2 32.6% 17.5%",
			Input:           "217.2 32.6% 17.5%",
			Ring:            "217.2 91.2% 59.8%",
		},
		Fonts: Fonts{Sans: interFonts, Heading: interFonts},
	},
	KeyCorporate: {
		Name: "Corporate",
		Colors: Colors{
			Primary:         "210 100% 12%",
			Secondary:       "210 40% 96%",
			Accent:          "0 84.2% 60.2%",
			Background:      "0 0% 100%",
			Foreground:      "222.2 84% 4.9%",
			Card:            "0 0% 100%",
			CardForeground:  "222.2 84% 4.9%",
			Muted:           "210 40% 96%",
			MutedForeground: "215.4 16.3% 46.9%",
			Border:          "214.3 31.8% 91.4%",
			Input:           "214.3 31.8% 91.4%",
			Ring:            "210 100% 12%",
		},
		Fonts: Fonts{Sans: interFonts, Heading: interFonts},
	},
	KeyEduBright: {
		Name: "Edu Bright",
		Colors: Colors{
			Primary:         "262.1 83.3% 57.8%",
			Secondary:       "220 14.3% 95.9%",
			Accent:          "38.4 92.1% 50.2%",
			Background:      "0 0% 100%",
			Foreground:      "224 71.4% 4.1%",
			Card:            "0 0% 100%",
			CardForeground:  "224 71.4% 4.1%",
			Muted:           "220 14.3% 95.9%",
			MutedForeground: "220 8.9% 46.1%",
			Border:          "220 13% 91%",
			Input:           "220 13% 91%",
			Ring:            "262.1 83.3% 57.8%",
		},
		Fonts: Fonts{Sans: interFonts, Heading: interFonts},
	},
}

// Resolve looks a theme up by key.
func Resolve(key string) (Theme, bool) {
	theme, ok := catalog[key]
	return theme, ok
}

// Default is the theme applied before any tenant has been resolved.
func Default() Theme {
	return catalog[KeyDark]
}

// IsDark reports whether key selects the dark theme, which additionally
// toggles the global "dark" style class on the rendering surface.
func IsDark(key string) bool {
	return key == KeyDark
}

// Keys lists the catalog keys in a stable order.
func Keys() []string {
	return []string{KeyDark, KeyCorporate, KeyEduBright}
}
