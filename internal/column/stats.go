package column

import (
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/five82/tablegrid/internal/datatype"
	"github.com/five82/tablegrid/internal/model"
)

// MinValue is the raw value that resolves smallest, or nil when the column
// has no comparable values.
func (c *Column) MinValue() any { return c.minValue }

// MaxValue is the raw value that resolves largest, or nil.
func (c *Column) MaxValue() any { return c.maxValue }

// LongestStringValue is the raw value with the widest text, or nil.
func (c *Column) LongestStringValue() any { return c.longest }

func (c *Column) values() []any {
	rows := c.m.rows.Rows()
	out := make([]any, len(rows))
	for i, r := range rows {
		if c.typ == model.IndexColumn {
			out[i] = r.Index
		} else {
			out[i] = r.Value(c.index)
		}
	}
	return out
}

// AddMinMaxValues recomputes the column statistics from the current rows.
func (c *Column) AddMinMaxValues() {
	dt := c.DataType()
	display := c.DisplayType().Type()
	values := c.values()

	c.minValue, c.maxValue, c.longest = nil, nil, nil
	switch {
	case dt == datatype.HTML || display == datatype.HTML:
		c.longest = longestString(values, datatype.ResolverFor(datatype.HTML))
	case dt == datatype.FormattedInteger:
		c.longest = longestString(values, datatype.ResolverFor(dt))
	case dt == datatype.String:
		c.minValue, c.maxValue = minMax(values, func(v any) any {
			if !datatype.IsNumericString(v) && !datatype.IsNumber(v) {
				return math.NaN()
			}
			return datatype.ToNumber(v)
		})
		c.longest = longestString(values, datatype.ResolverFor(dt))
	default:
		c.minValue, c.maxValue = minMax(values, c.ValueResolver())
	}
}

// RecalculateLongestStringValue refreshes the longest string after a
// display type change. Only string and html display types size by text.
func (c *Column) RecalculateLongestStringValue(d datatype.DisplayType) {
	t := d.Type()
	if t != datatype.String && t != datatype.HTML {
		return
	}
	c.longest = longestString(c.values(), datatype.ResolverFor(t))
}

// minMax returns the raw values whose resolved values are extreme,
// skipping NaN and anything that does not resolve to a number or string.
// Ties keep the first value seen.
func minMax(values []any, resolve datatype.Resolver) (lo, hi any) {
	var loR, hiR any
	for _, v := range values {
		r := resolve(v)
		if datatype.IsNull(r) {
			continue
		}
		if f, ok := r.(float64); ok && math.IsNaN(f) {
			continue
		}
		if _, ok := r.(string); !ok && math.IsNaN(datatype.ToNumber(r)) {
			continue
		}
		if loR == nil || datatype.Less(r, loR) {
			lo, loR = v, r
		}
		if hiR == nil || datatype.Less(hiR, r) {
			hi, hiR = v, r
		}
	}
	return lo, hi
}

// longestString returns the raw value whose resolved text is widest.
// Falsy values count as empty.
func longestString(values []any, resolve datatype.Resolver) any {
	var best any
	bestWidth := -1
	for _, v := range values {
		w := 0
		if r := resolve(v); datatype.Truthy(r) {
			w = runewidth.StringWidth(datatype.ToString(r))
		}
		if w > bestWidth {
			best, bestWidth = v, w
		}
	}
	return best
}
