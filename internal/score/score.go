// Package score implements the 0-10 scale every fun/good value lives on:
// clamping, rounding to tenths, display formatting, and the title casing
// applied when a movie is first committed.
package score

import (
	"math"
	"strconv"
	"strings"
)

// Min and Max bound every score on both axes.
const (
	Min = 0.0
	Max = 10.0
)

// smallWords stay lowercase in titles unless first or last.
var smallWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {},
	"and": {}, "but": {}, "or": {}, "nor": {}, "for": {}, "so": {}, "yet": {},
	"as": {}, "at": {}, "by": {}, "in": {}, "of": {}, "off": {}, "on": {},
	"per": {}, "to": {}, "up": {}, "via": {},
}

// Clamp restricts v to [Min, Max].
func Clamp(v float64) float64 {
	return math.Min(Max, math.Max(Min, v))
}

// Round snaps v to the nearest tenth, collapsing drag noise onto the
// 101-cell-per-axis grid used for grouping.
func Round(v float64) float64 {
	return math.Round(v*10) / 10
}

// Normalize clamps then rounds. Every score crossing a display or
// persistence boundary goes through it.
func Normalize(v float64) float64 {
	return Round(Clamp(v))
}

// Tenths returns the normalized score as an integer count of tenths,
// suitable for exact comparison and map keys.
func Tenths(v float64) int {
	return int(math.Round(Normalize(v) * 10))
}

// Format renders integer scores without a decimal ("8") and everything
// else with exactly one ("8.3").
func Format(v float64) string {
	v = Normalize(v)
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// TitleCase normalizes a user-typed title: trims, lowercases, and
// capitalizes each word except small words in interior positions. It is
// applied once when a title is committed, never to stored titles.
func TitleCase(s string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	for i, w := range words {
		if _, small := smallWords[w]; small && i != 0 && i != len(words)-1 {
			continue
		}
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	r := []rune(w)
	if len(r) == 0 {
		return w
	}
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
