package themes_test

import (
	"testing"

	"github.com/0xsonu/mlms/themes"
	"github.com/stretchr/testify/require"
)

func TestCatalogResolvesAllKeys(t *testing.T) {
	for _, key := range themes.Keys() {
		theme, ok := themes.Resolve(key)
		require.True(t, ok, key)
		require.NotEmpty(t, theme.Name)
		require.NotEmpty(t, theme.Colors.Primary)
		require.NotEmpty(t, theme.Fonts.Sans)
	}

	_, ok := themes.Resolve("no-such-theme")
	require.False(t, ok)
}

func TestStyleTokensCoverAllSlots(t *testing.T) {
	theme, ok := themes.Resolve(themes.KeyDark)
	require.True(t, ok)

	tokens := themes.StyleTokens(theme)
	require.Len(t, tokens, 14)
	require.Equal(t, "217.2 91.2% 59.8%", tokens[themes.TokenPrimary])
	require.Equal(t, "222.2 84% 4.9%", tokens[themes.TokenBackground])
	require.Equal(t, "Inter, system-ui, sans-serif", tokens[themes.TokenFontSans])
}

func TestIsDark(t *testing.T) {
	require.True(t, themes.IsDark(themes.KeyDark))
	require.False(t, themes.IsDark(themes.KeyCorporate))
	require.False(t, themes.IsDark(themes.KeyEduBright))
}

func TestDefaultIsDarkTheme(t *testing.T) {
	require.Equal(t, "Dark", themes.Default().Name)
}
