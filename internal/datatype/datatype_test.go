package datatype

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		name string
		want Type
	}{
		{"double", Double},
		{"formatted integer", FormattedInteger},
		{" DateTime ", Datetime},
		{"float", Double},
		{"int", Integer},
		{"mystery", String},
		{"", String},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseType(tt.name); got != tt.want {
				t.Fatalf("ParseType(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestDisplayTypePrecision(t *testing.T) {
	if p, ok := DisplayType("4.3").Precision(); !ok || p != 3 {
		t.Fatalf("Precision(4.3) = %d, %v, want 3, true", p, ok)
	}
	if DisplayType("4").IsDoubleWithPrecision() {
		t.Fatalf("4 should not be a precision display type")
	}
	if got := DisplayType("3").Type(); got != Double {
		t.Fatalf("Type(3) = %v, want double", got)
	}
	if got := PrecisionDisplay(2); got != "4.2" {
		t.Fatalf("PrecisionDisplay(2) = %q", got)
	}
	if got := DisplayTypeFor(Integer); got != DisplayOf(FormattedInteger) {
		t.Fatalf("DisplayTypeFor(integer) = %q, want formatted integer", got)
	}
	if got := DisplayTypeFor(Time); got != DisplayOf(Datetime) {
		t.Fatalf("DisplayTypeFor(time) = %q, want datetime", got)
	}

	fixed := &StringFormat{Type: "decimal", MinDecimals: 2, MaxDecimals: 2}
	loose := &StringFormat{Type: "decimal", MinDecimals: 1, MaxDecimals: 4}
	if got := DisplayTypeWithFormat(Double, fixed, nil); got != "4.2" {
		t.Fatalf("DisplayTypeWithFormat(fixed type format) = %q, want 4.2", got)
	}
	if got := DisplayTypeWithFormat(Double, fixed, loose); got != DisplayOf(Double) {
		t.Fatalf("DisplayTypeWithFormat(loose column format) = %q, want double", got)
	}
	if got := DisplayTypeWithFormat(Integer, fixed, nil); got != DisplayOf(FormattedInteger) {
		t.Fatalf("DisplayTypeWithFormat(integer) = %q, want formatted integer", got)
	}
}

func TestCoercion(t *testing.T) {
	numbers := []struct {
		name string
		got  float64
		want float64
	}{
		{"ToNumber empty", ToNumber(""), 0},
		{"ToNumber padded", ToNumber(" 12 "), 12},
		{"ToNumber true", ToNumber(true), 1},
		{"ToNumber nil", ToNumber(nil), 0},
		{"ToNumber hex", ToNumber("0x10"), 16},
		{"ParseFloat prefix", ParseFloat("3.14abc"), 3.14},
		{"ParseFloat leading dot", ParseFloat(".5"), 0.5},
		{"ParseInt suffix", ParseInt("42px"), 42},
		{"ParseInt float", ParseInt(3.9), 3},
		{"ParseInt negative", ParseInt("-7.2"), -7},
	}
	for _, tt := range numbers {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	nans := map[string]float64{
		"ToNumber suffix":  ToNumber("12px"),
		"ToNumber inf":     ToNumber("inf"),
		"ParseFloat word":  ParseFloat("x"),
		"ParseInt word":    ParseInt("abc"),
		"ToNumber map":     ToNumber(map[string]any{}),
		"ParseFloat empty": ParseFloat(""),
	}
	for name, got := range nans {
		if !math.IsNaN(got) {
			t.Fatalf("%s = %v, want NaN", name, got)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.5, "1.5"},
		{100, "100"},
		{-0.25, "-0.25"},
		{1e21, "1e+21"},
		{1.5e-7, "1.5e-7"},
		{math.NaN(), "NaN"},
		{math.Inf(-1), "-Infinity"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Fatalf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := ToExponential(12345.6789, 5); got != "1.23457e+4" {
		t.Fatalf("ToExponential = %q, want 1.23457e+4", got)
	}
	if got := ToFixed(3.14159, 2); got != "3.14" {
		t.Fatalf("ToFixed = %q, want 3.14", got)
	}
}

func TestGroupThousands(t *testing.T) {
	tests := map[string]string{
		"1234567": "1,234,567",
		"-1234.5": "-1,234.5",
		"123":     "123",
		"1000":    "1,000",
	}
	for in, want := range tests {
		if got := GroupThousands(in); got != want {
			t.Fatalf("GroupThousands(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsNull(t *testing.T) {
	for _, v := range []any{nil, Undefined, "", "null"} {
		if !IsNull(v) {
			t.Fatalf("IsNull(%v) = false, want true", v)
		}
	}
	for _, v := range []any{0.0, "0", false, "NULL"} {
		if IsNull(v) {
			t.Fatalf("IsNull(%v) = true, want false", v)
		}
	}
}

func TestResolvers(t *testing.T) {
	if got := ResolverFor(Double)("2.5kg"); got != 2.5 {
		t.Fatalf("double resolver = %v, want 2.5", got)
	}
	if got := ResolverFor(Integer)("7.9"); got != 7.0 {
		t.Fatalf("integer resolver = %v, want 7", got)
	}
	if got := ResolverFor(HTML)("<b>bold</b> &amp; more"); got != "bold & more" {
		t.Fatalf("html resolver = %v", got)
	}
	date := map[string]any{"type": "Date", "timestamp": 1000.0}
	if got := ResolverFor(Datetime)(date); got != 1000.0 {
		t.Fatalf("datetime resolver = %v, want 1000", got)
	}
	if got := ResolverFor(Datetime)("soon").(float64); !math.IsNaN(got) {
		t.Fatalf("datetime resolver for string = %v, want NaN", got)
	}
	if got := ResolverFor(String)("x"); got != "x" {
		t.Fatalf("identity resolver = %v", got)
	}
}

type fakeSource struct {
	columnFormats map[string]StringFormat
	typeFormats   map[string]StringFormat
	timeStrings   []string
	timeZone      string
	unit          TimeUnit
}

func (s fakeSource) StringFormatForColumn(name string) (StringFormat, bool) {
	f, ok := s.columnFormats[name]
	return f, ok
}

func (s fakeSource) StringFormatForType(name string) (StringFormat, bool) {
	f, ok := s.typeFormats[name]
	return f, ok
}

func (s fakeSource) TimeStrings() []string    { return s.timeStrings }
func (s fakeSource) TimeZone() string         { return s.timeZone }
func (s fakeSource) FormatForTimes() TimeUnit { return s.unit }

func TestFormatterDisplayTypes(t *testing.T) {
	dt, _ := LookupTimeUnit("DATETIME")
	src := fakeSource{
		columnFormats: map[string]StringFormat{
			"price": {Type: "decimal", MinDecimals: 2, MaxDecimals: 4},
			"label": {Type: "value", Values: map[string][]string{"label": {"first", "second"}}},
		},
		timeZone: "UTC",
		unit:     dt,
	}
	f := NewFormatter(src)
	seconds, _ := LookupTimeUnit("SECONDS")

	tests := []struct {
		name    string
		display DisplayType
		times   *TimeUnit
		cell    Cell
		want    string
	}{
		{"integer", DisplayOf(Integer), nil, Cell{Value: "42.9"}, "42"},
		{"integer null", DisplayOf(Integer), nil, Cell{Value: nil}, ""},
		{"formatted integer", DisplayOf(FormattedInteger), nil, Cell{Value: 1234567.0}, "1,234,567"},
		{"precision", PrecisionDisplay(2), nil, Cell{Value: 3.14159}, "3.14"},
		{"exponential 5", DisplayOf(Exponential5), nil, Cell{Value: 12345.6789}, "1.23457e+4"},
		{"double short fraction", DisplayOf(Double), nil, Cell{Value: 1.5, ColumnName: "price"}, "1.50"},
		{"double long fraction", DisplayOf(Double), nil, Cell{Value: 3.14159265, ColumnName: "price"}, "3.1416"},
		{"double no format", DisplayOf(Double), nil, Cell{Value: 0.1, ColumnName: "other"}, "0.1"},
		{"boolean nil", DisplayOf(Boolean), nil, Cell{Value: nil}, "false"},
		{"boolean zero", DisplayOf(Boolean), nil, Cell{Value: 0.0}, "true"},
		{"boolean NaN", DisplayOf(Boolean), nil, Cell{Value: math.NaN()}, "false"},
		{"percentage", DisplayOf(Percentage), nil, Cell{Value: 12.3456}, "1,234.56%"},
		{"percentage word", DisplayOf(Percentage), nil, Cell{Value: "abc"}, "NaN"},
		{"html", DisplayOf(HTML), nil, Cell{Value: "<i>x</i>"}, "<i>x</i>"},
		{"string value format", DisplayOf(String), nil, Cell{Value: "raw", Row: 1, ColumnName: "label"}, "second"},
		{"string object", DisplayOf(String), nil, Cell{Value: map[string]any{"a": 1.0}}, `{"a":1}`},
		{"string number", DisplayOf(String), nil, Cell{Value: 7.0}, "7"},
		{"datetime date object", DisplayOf(Datetime), nil, Cell{Value: map[string]any{"type": "Date", "timestamp": 0.0}}, "19700101 00:00:00.000 +0000"},
		{"datetime seconds unit", DisplayOf(Datetime), &seconds, Cell{Value: 61.0}, "00:01:01"},
		{"datetime NaT", DisplayOf(Datetime), nil, Cell{Value: "NaT"}, "NaT"},
		{"datetime null", DisplayOf(Datetime), nil, Cell{Value: nil}, "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.FormatFunc(tt.display, tt.times)(tt.cell)
			if got != tt.want {
				t.Fatalf("format = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatterTimeStrings(t *testing.T) {
	f := NewFormatter(fakeSource{timeStrings: []string{"a", "b"}})
	if got := f.FormatFunc(DisplayOf(Datetime), nil)(Cell{Value: 5.0, Row: 1}); got != "b" {
		t.Fatalf("time string = %q, want b", got)
	}
}

func TestFormatterTruncatesLongStrings(t *testing.T) {
	f := NewFormatter(fakeSource{})
	got := f.FormatFunc(DisplayOf(String), nil)(Cell{Value: strings.Repeat("x", 1005)})
	if len(got) != 1003 || !strings.HasSuffix(got, "...") {
		t.Fatalf("truncated length = %d, want 1003 ending in ...", len(got))
	}
}

func TestLocation(t *testing.T) {
	loc := Location("GMT+05:30", time.UTC)
	_, offset := time.Unix(0, 0).In(loc).Zone()
	if offset != 5*3600+30*60 {
		t.Fatalf("offset = %d, want 19800", offset)
	}
	loc = Location("GMT-02:00", time.UTC)
	_, offset = time.Unix(0, 0).In(loc).Zone()
	if offset != -7200 {
		t.Fatalf("offset = %d, want -7200", offset)
	}
	if got := Location("", time.UTC); got != time.UTC {
		t.Fatalf("empty zone = %v, want fallback", got)
	}
}

func TestProcessColumnName(t *testing.T) {
	if got := ProcessColumnName([]any{"a", 1.0}); got != "a, 1" {
		t.Fatalf("ProcessColumnName = %q, want \"a, 1\"", got)
	}
	if got := ProcessColumnName(3.0); got != "3" {
		t.Fatalf("ProcessColumnName(3) = %q", got)
	}
}

func TestRetrieveURL(t *testing.T) {
	url, ok := RetrieveURL("see https://example.com/path?q=1 now")
	if !ok || url != "https://example.com/path?q=1" {
		t.Fatalf("RetrieveURL = %q, %v", url, ok)
	}
	if _, ok := RetrieveURL(12.0); ok {
		t.Fatalf("RetrieveURL on number should fail")
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"numbers", 1.0, 2.0, -1},
		{"equal", 2.0, 2.0, 0},
		{"strings", "b", "a", 1},
		{"infinite after finite", math.Inf(1), 5.0, 1},
		{"finite before NaN", 5.0, math.NaN(), -1},
		{"two non-finite", math.NaN(), math.Inf(-1), 0},
		{"mixed numeric string", "10", 9.0, 1},
		{"unordered", "abc", 1.0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Fatalf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
