package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"", ColorDefault},
		{"default", ColorDefault},
		{"red", ColorRed},
		{" Red ", ColorRed},
		{"#ff0000", ColorRed},
		{"00ff00", ColorFromRGB(0, 255, 0)},
		{"#fff", ColorWhite},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, in := range []string{"reddish", "#12", "#gggggg"} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
	}
}

func TestColorBlend(t *testing.T) {
	assert.Equal(t, ColorBlack, ColorBlack.Blend(ColorWhite, 0))
	assert.Equal(t, ColorWhite, ColorBlack.Blend(ColorWhite, 1))
	assert.Equal(t, ColorDefault, ColorDefault.Blend(ColorRed, 0.2))
	assert.Equal(t, ColorRed, ColorDefault.Blend(ColorRed, 0.8))
}

func TestStyleMerge(t *testing.T) {
	base := DefaultStyle().WithForeground(ColorWhite).Bold()
	over := DefaultStyle().WithBackground(ColorRed).Underline()

	got := base.Merge(over)

	assert.Equal(t, ColorWhite, got.Foreground)
	assert.Equal(t, ColorRed, got.Background)
	assert.True(t, got.Attributes.Has(AttrBold))
	assert.True(t, got.Attributes.Has(AttrUnderline))
	assert.False(t, got.Attributes.Has(AttrReverse))
}

func TestRuneWidth(t *testing.T) {
	assert.Equal(t, 1, RuneWidth('a'))
	assert.Equal(t, 1, RuneWidth('\t'))
	assert.Equal(t, 2, RuneWidth('世'))
	assert.Equal(t, 5, StringWidth("ab世c"))
}

func TestScreenRect(t *testing.T) {
	r := ScreenRect{Top: 1, Left: 2, Bottom: 5, Right: 10}
	assert.Equal(t, 8, r.Width())
	assert.Equal(t, 4, r.Height())
	assert.Equal(t, 0, ScreenRect{Left: 3, Right: 1}.Width())
}
