package datatype

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// Cell is the formatter input for one body or header cell.
type Cell struct {
	Value      any
	Row        int
	ColumnName string
}

// FormatFunc renders a cell value as display text.
type FormatFunc func(Cell) string

// Source supplies the model-level formatting hints. The store state
// implements it.
type Source interface {
	StringFormatForColumn(name string) (StringFormat, bool)
	StringFormatForType(name string) (StringFormat, bool)
	TimeStrings() []string
	TimeZone() string
	FormatForTimes() TimeUnit
}

// Formatter builds format functions bound to a Source.
type Formatter struct {
	src Source
	// Local is the zone used when neither the cell nor the model names one.
	Local *time.Location
}

// NewFormatter returns a Formatter reading hints from src.
func NewFormatter(src Source) *Formatter {
	return &Formatter{src: src, Local: time.Local}
}

// FormatFunc returns the formatter for display type d. columnTimes is the
// column's own time unit, or nil to use the model default.
func (f *Formatter) FormatFunc(d DisplayType, columnTimes *TimeUnit) FormatFunc {
	if precision, ok := d.Precision(); ok {
		return handleNull(func(c Cell) string {
			return ToFixed(ParseFloat(c.Value), precision)
		})
	}
	switch d.Type() {
	case Integer:
		return handleNull(func(c Cell) string { return FormatNumber(ParseInt(c.Value)) })
	case FormattedInteger:
		return handleNull(formattedInteger)
	case Double:
		return handleNull(f.double)
	case Exponential5:
		return handleNull(func(c Cell) string { return ToExponential(ParseFloat(c.Value), 5) })
	case Exponential15:
		return handleNull(func(c Cell) string { return ToExponential(ParseFloat(c.Value), 15) })
	case Datetime:
		unit := columnTimes
		return func(c Cell) string { return f.datetime(c, unit) }
	case Boolean:
		return boolean
	case HTML, Int64:
		return rawValue
	case Percentage:
		return handleNull(percentage)
	}
	return f.plain
}

func handleNull(fn FormatFunc) FormatFunc {
	return func(c Cell) string {
		if IsNull(c.Value) {
			return nullText(c.Value)
		}
		return fn(c)
	}
}

// nullText is what a passed-through null value draws as.
func nullText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func rawValue(c Cell) string {
	if c.Value == nil || IsUndefined(c.Value) {
		return ""
	}
	return ToString(c.Value)
}

func formattedInteger(c Cell) string {
	n := ParseInt(c.Value)
	if math.IsNaN(n) {
		return "NaN"
	}
	return GroupThousands(FormatNumber(n))
}

func (f *Formatter) double(c Cell) string {
	v := ParseFloat(c.Value)
	format, ok := f.src.StringFormatForColumn(c.ColumnName)
	if !ok || format.Type != "decimal" {
		format, ok = f.src.StringFormatForType("double")
	}
	if !ok || format.Type != "decimal" {
		return FormatNumber(v)
	}
	_, fraction, _ := strings.Cut(FormatNumber(v), ".")
	if fraction != "" && len(fraction) >= format.MaxDecimals {
		return ToFixed(v, format.MaxDecimals)
	}
	return ToFixed(v, format.MinDecimals)
}

func (f *Formatter) datetime(c Cell, unit *TimeUnit) string {
	if strs := f.src.TimeStrings(); strs != nil {
		if c.Row >= 0 && c.Row < len(strs) {
			return strs[c.Row]
		}
		return ""
	}
	switch c.Value {
	case "NaT":
		return "NaT"
	case nil:
		return "null"
	}
	layout, modifier := DefaultTimeLayout, 1000.0
	if unit == nil {
		u := f.src.FormatForTimes()
		if u.Layout != "" {
			unit = &u
		}
	}
	if unit != nil {
		layout, modifier = unit.Layout, unit.ValueModifier
	}
	if d, ok := AsDate(c.Value); ok {
		tz := f.src.TimeZone()
		if d.HasTZ {
			tz = d.TZ
		}
		return FormatTimestamp(d.Timestamp, Location(tz, f.Local), layout)
	}
	n := ToNumber(c.Value)
	if math.IsNaN(n) {
		return ToString(c.Value)
	}
	return FormatTimestamp(n*modifier, Location(f.src.TimeZone(), f.Local), layout)
}

func boolean(c Cell) string {
	if IsNull(c.Value) || c.Value == false {
		return "false"
	}
	if IsNumber(c.Value) && math.IsNaN(ToNumber(c.Value)) {
		return "false"
	}
	return "true"
}

func percentage(c Cell) string {
	v := ParseFloat(c.Value)
	if math.IsNaN(v) {
		return "NaN"
	}
	if math.IsInf(v, 0) {
		return FormatNumber(v) + "%"
	}
	return GroupThousands(ToFixed(v*100, 2)) + "%"
}

func (f *Formatter) plain(c Cell) string {
	if c.Value == nil || IsUndefined(c.Value) {
		return ""
	}
	if !IsObject(c.Value) {
		if format, ok := f.src.StringFormatForColumn(c.ColumnName); ok && format.Type == "value" {
			values := format.Values[c.ColumnName]
			if c.Row >= 0 && c.Row < len(values) {
				return values[c.Row]
			}
			return ""
		}
		return TruncateString(ToString(c.Value))
	}
	if d, ok := AsDate(c.Value); ok {
		return FormatTimestamp(d.Timestamp, f.Local, DefaultTimeLayout)
	}
	b, err := json.Marshal(c.Value)
	if err != nil {
		return TruncateString(ToString(c.Value))
	}
	return TruncateString(string(b))
}

// ProcessColumnName renders a host column name. Multi-level names are
// joined with ", " and Date parts render as a day.
func ProcessColumnName(name any) string {
	parts, ok := name.([]any)
	if !ok {
		if name == nil {
			return ""
		}
		return ToString(name)
	}
	out := make([]string, len(parts))
	for i, p := range parts {
		if d, ok := AsDate(p); ok {
			out[i] = FormatTimestamp(d.Timestamp, time.Local, "2006-01-02")
			continue
		}
		out[i] = ToString(p)
	}
	return strings.Join(out, ", ")
}
