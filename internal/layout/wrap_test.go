package layout

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/mcg/internal/markov"
)

// tenPerRune measures every rune, spaces included, as 10px.
var tenPerRune = MeasureFunc(func(text string, _ markov.Style) int {
	return 10 * utf8.RuneCountInString(text)
})

func words(texts ...string) []markov.StyledWord {
	out := make([]markov.StyledWord, len(texts))
	for i, t := range texts {
		out[i] = markov.StyledWord{Key: t, Text: t}
	}
	return out
}

func lineTexts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text()
	}
	return out
}

func TestWrapGreedy(t *testing.T) {
	lines := NewWrapper(tenPerRune).Wrap(words("aa", "bb", "cc"), 50, false)
	assert.Equal(t, []string{"aa bb", "cc"}, lineTexts(lines))
	assert.Equal(t, 50, lines[0].Width)
	assert.Equal(t, 20, lines[1].Width)
}

func TestWrapSplitsLongWord(t *testing.T) {
	const long = "Supercalifragilisticexpialidocious"
	lines := NewWrapper(tenPerRune).Wrap(words(long), 100, false)

	assert.Equal(t, []string{"Supercal-", "ifragilis-", "ticexpia-", "lidocious"}, lineTexts(lines))
	var joined strings.Builder
	for _, l := range lines {
		assert.LessOrEqual(t, l.Width, 100)
		joined.WriteString(strings.TrimSuffix(l.Text(), "-"))
	}
	assert.Equal(t, long, joined.String())
}

func TestWrapPrefersHyphens(t *testing.T) {
	w := NewWrapper(tenPerRune)

	lines := w.Wrap(words("well-known-fact"), 100, false)
	assert.Equal(t, []string{"well-", "known-fact"}, lineTexts(lines))

	lines = w.Wrap(words("abc\u00addefghijkl"), 60, false)
	assert.Equal(t, []string{"abc-", "defg-", "hijkl"}, lineTexts(lines))
}

func TestWrapPiecesInheritStyle(t *testing.T) {
	in := []markov.StyledWord{{
		Key:         "abcdef",
		Text:        "abcdef",
		Style:       markov.Style{Bold: true},
		SentenceEnd: true,
	}}
	lines := NewWrapper(tenPerRune).Wrap(in, 40, false)
	require.Len(t, lines, 2)
	first, second := lines[0].Words[0], lines[1].Words[0]
	assert.True(t, first.Style.Bold)
	assert.True(t, second.Style.Bold)
	assert.False(t, first.SentenceEnd)
	assert.True(t, second.SentenceEnd)
}

func TestWrapStripsNonPrintable(t *testing.T) {
	lines := NewWrapper(tenPerRune).Wrap(words("he\x00llo", "\x07"), 100, false)
	require.Len(t, lines, 1)
	assert.Equal(t, "hello", lines[0].Text())
	assert.Len(t, lines[0].Words, 1)
}

func TestWrapDegenerate(t *testing.T) {
	t.Run("single rune overflows", func(t *testing.T) {
		lines := NewWrapper(tenPerRune).Wrap(words("W"), 5, false)
		require.Len(t, lines, 1)
		assert.Equal(t, "W", lines[0].Text())
		assert.Equal(t, 10, lines[0].Width)
	})
	t.Run("width clamped", func(t *testing.T) {
		lines := NewWrapper(tenPerRune).Wrap(words("abc"), 0, false)
		assert.Equal(t, []string{"a-", "b-", "c"}, lineTexts(lines))
	})
	t.Run("zero widths", func(t *testing.T) {
		zero := MeasureFunc(func(string, markov.Style) int { return 0 })
		lines := NewWrapper(zero).Wrap(words("Supercalifragilisticexpialidocious", "x"), 1, true)
		require.Len(t, lines, 1)
		assert.Equal(t, 0, lines[0].Padding)
	})
	t.Run("no words", func(t *testing.T) {
		assert.Empty(t, NewWrapper(tenPerRune).Wrap(nil, 100, true))
	})
}

func TestCenterPadding(t *testing.T) {
	tests := []struct {
		lineWidth, widthPx, space int
		want                      int
	}{
		{80, 100, 10, 0},
		{60, 100, 10, 1},
		{20, 100, 10, 3},
		{90, 100, 10, 0},
		{100, 100, 10, 0},
		{20, 100, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CenterPadding(tt.lineWidth, tt.widthPx, tt.space),
			"lineWidth=%d widthPx=%d space=%d", tt.lineWidth, tt.widthPx, tt.space)
	}
}

func TestWrapCenter(t *testing.T) {
	lines := NewWrapper(tenPerRune).Wrap(words("ab"), 100, true)
	require.Len(t, lines, 1)
	l := lines[0]
	assert.Equal(t, 3, l.Padding)
	require.Len(t, l.Words, 4)
	for _, w := range l.Words[:3] {
		assert.Empty(t, w.Text)
	}
	assert.Equal(t, "ab", l.Text())
	assert.Equal(t, 20, l.Width)
}

func TestClean(t *testing.T) {
	assert.Equal(t, "abc", Clean("a\u00adb\tc"))
	assert.Equal(t, "héllo", Clean("héllo"))
}
