package rating

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_AllHalfSteps(t *testing.T) {
	for v := 1.0; v <= 5.0; v += 0.5 {
		token := fmt.Sprintf("%g", v)
		t.Run(token, func(t *testing.T) {
			r, ok := Extract("별점: " + token + "\n\n## 장점\n...")
			require.True(t, ok)

			half := 0.0
			if r.Half {
				half = 0.5
			}
			assert.Equal(t, v, float64(r.Full)+half)
			assert.Equal(t, v, r.Value)
		})
	}
}

func TestExtract_KoreanSentence(t *testing.T) {
	r, ok := Extract("제 평가는 4.5점입니다. 감성이 잘 전달됩니다.")
	require.True(t, ok)

	assert.Equal(t, 4, r.Full)
	assert.True(t, r.Half)
	assert.Equal(t, []Glyph{GlyphFull, GlyphFull, GlyphFull, GlyphFull, GlyphHalf}, r.Glyphs())
	assert.Equal(t, "⭐️⭐️⭐️⭐️☆ (4.5점)", r.String())
}

func TestExtract_Five(t *testing.T) {
	r, ok := Extract("5")
	require.True(t, ok)
	assert.Equal(t, 5, r.Full)
	assert.False(t, r.Half)
	assert.Len(t, r.Glyphs(), 5)
	assert.Equal(t, "⭐️⭐️⭐️⭐️⭐️", r.Stars())
}

func TestExtract_One(t *testing.T) {
	r, ok := Extract("별점은 1.0이 아니라 1 입니다")
	require.True(t, ok)
	assert.Equal(t, 1.0, r.Value)
	assert.Equal(t, []Glyph{GlyphFull}, r.Glyphs())
}

func TestExtract_NoDigits(t *testing.T) {
	r, ok := Extract("감성 전달력이 뛰어나고 창의적인 문장입니다.")
	assert.False(t, ok)
	assert.Equal(t, Rating{}, r)
}

func TestExtract_Empty(t *testing.T) {
	_, ok := Extract("")
	assert.False(t, ok)
}

func TestExtract_IgnoresEmbeddedDigits(t *testing.T) {
	cases := []string{
		"10명이 읽었습니다",
		"2024년 가을",
		"총점 85/100",
		"x4 배",
		"0점과 60점 사이",
	}
	for _, c := range cases {
		_, ok := Extract(c)
		assert.False(t, ok, "unexpected match in %q", c)
	}
}

func TestExtract_FirstValidTokenWins(t *testing.T) {
	r, ok := Extract("10명 중 3명이 골랐고 별점은 5")
	require.True(t, ok)
	assert.Equal(t, 3.0, r.Value)

	r, ok = Extract("평점 7, 그러나 별점 2.5")
	require.True(t, ok)
	assert.Equal(t, 2.5, r.Value)
}

func TestExtract_TrailingDigitDropsHalf(t *testing.T) {
	// "4.57" is not a half-step token; the leading "4" still stands alone.
	r, ok := Extract("4.57")
	require.True(t, ok)
	assert.Equal(t, 4.0, r.Value)
}

func TestFromValue_Rounds(t *testing.T) {
	assert.Equal(t, 3.5, FromValue(3.4).Value)
	assert.Equal(t, 3.0, FromValue(3.2).Value)
	assert.Equal(t, 4.0, FromValue(3.8).Value)
}
