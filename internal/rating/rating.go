// Package rating recovers a half-star score from free-form evaluator text.
package rating

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// tokenPattern matches a standalone 1-5 with an optional ".5". RE2 word
// boundaries are ASCII, so Hangul after the digit ("4.5점") still counts as a
// boundary while a neighbouring digit ("10명") does not.
var tokenPattern = regexp.MustCompile(`\b([1-5](?:\.5)?)\b`)

const (
	FullGlyph = "⭐️"
	HalfGlyph = "☆"
)

// Glyph is one mark of a star display.
type Glyph int

const (
	GlyphFull Glyph = iota
	GlyphHalf
)

func (g Glyph) String() string {
	if g == GlyphHalf {
		return HalfGlyph
	}
	return FullGlyph
}

// Rating is a score in [1.0, 5.0] in 0.5 steps.
type Rating struct {
	Value float64 `json:"value"`
	Full  int     `json:"full"`
	Half  bool    `json:"half"`
}

// Extract returns the rating carried by the first valid token in raw. The
// second result is false when no token is present; that is a normal outcome.
func Extract(raw string) (Rating, bool) {
	m := tokenPattern.FindStringSubmatch(raw)
	if m == nil {
		return Rating{}, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Rating{}, false
	}
	return FromValue(v), true
}

// FromValue rounds v to the nearest half and splits it into marks.
func FromValue(v float64) Rating {
	fixed := math.Round(v*2) / 2
	full := int(math.Floor(fixed))
	return Rating{
		Value: fixed,
		Full:  full,
		Half:  fixed-float64(full) == 0.5,
	}
}

// Glyphs returns Full full marks followed by at most one half mark.
func (r Rating) Glyphs() []Glyph {
	gs := make([]Glyph, 0, r.Full+1)
	for i := 0; i < r.Full; i++ {
		gs = append(gs, GlyphFull)
	}
	if r.Half {
		gs = append(gs, GlyphHalf)
	}
	return gs
}

// Stars renders the glyphs as a string.
func (r Rating) Stars() string {
	var sb strings.Builder
	for _, g := range r.Glyphs() {
		sb.WriteString(g.String())
	}
	return sb.String()
}

// String renders e.g. "⭐️⭐️⭐️⭐️☆ (4.5점)".
func (r Rating) String() string {
	return fmt.Sprintf("%s (%s점)", r.Stars(), strconv.FormatFloat(r.Value, 'f', -1, 64))
}
