// Package datatype defines the value model of the grid: column type tags,
// display types, value resolvers, loose value coercion and cell formatters.
//
// # Type Tags
//
// Every column carries a Type decoded from the host's type name ("double",
// "datetime", "formatted integer", ...). Unknown names decode to String.
// The numbering follows the host protocol so tags survive a round trip.
//
// # Display Types
//
// A DisplayType selects the formatter. It is either a Type rendered as a
// decimal string ("3") or the double-with-precision form "4.N", where N is
// the number of fraction digits.
//
// # Coercion
//
// Cell values arrive as decoded JSON (float64, string, bool, nil, maps and
// slices) or as database scans (int64, []byte, time.Time). ToNumber,
// ParseFloat, ParseInt and ToString apply the loose conversions used by the
// sort comparator, the filter evaluator and the formatters so that all three
// agree on what a value means.
//
// # Time
//
// Datetime values are formatted with the standard library time package.
// TimeUnit carries a Go layout together with the multiplier that converts a
// raw cell number to milliseconds.
package datatype
