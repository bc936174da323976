package highlight

import (
	"math"

	"github.com/five82/tablegrid/internal/datatype"
	"github.com/five82/tablegrid/internal/theme"
)

const (
	goldenRatioConjugate = 0.618033988749895
	maxHue               = 360
	hslSteps             = 50
)

// hslSequence yields well separated colors. Hues step by the golden ratio;
// once a hue repeats, saturation steps, and once saturation is exhausted,
// lightness steps.
type hslSequence struct {
	hue, saturation, lightness float64
	satSteps, lightSteps       int
	minSat, minLight           float64
	hues                       map[int]bool
}

func newHSLSequence(start, minSat, minLight float64) *hslSequence {
	return &hslSequence{
		hue:        start,
		saturation: 1,
		lightness:  1,
		minSat:     minSat,
		minLight:   minLight,
		hues:       make(map[int]bool),
	}
}

func (s *hslSequence) next() string {
	s.hue = math.Mod(s.hue+goldenRatioConjugate, 1)
	hue := int(math.Round(s.hue * maxHue))
	repeated := s.hues[hue]
	s.hues[hue] = true

	switch {
	case repeated && s.satSteps < hslSteps:
		s.saturation = math.Mod(s.saturation+goldenRatioConjugate, 1)
		s.satSteps++
	case repeated && s.lightSteps < hslSteps:
		s.lightness = math.Mod(s.lightness+goldenRatioConjugate, 1)
		s.lightSteps++
	}

	sat := s.minSat + s.saturation*hslSteps
	light := s.minLight + s.lightness*hslSteps
	return "hsl(" + datatype.FormatNumber(float64(hue)) + ", " +
		datatype.FormatNumber(sat) + "%, " + datatype.FormatNumber(light) + "%)"
}

// Colors returns the first n colors of the sequence starting at hue ratio
// start.
func Colors(start float64, n int, dark bool) []string {
	p := theme.For(dark)
	seq := newHSLSequence(start, p.MinSaturation, p.MinLightness)
	out := make([]string, n)
	for i := range out {
		out[i] = seq.next()
	}
	return out
}

// ColorForIndex returns color n of the sequence starting at start. The
// same arguments always give the same color.
func ColorForIndex(start float64, n int, dark bool) string {
	if n < 0 {
		return ""
	}
	return Colors(start, n+1, dark)[n]
}
