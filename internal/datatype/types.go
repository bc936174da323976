package datatype

import (
	"strconv"
	"strings"
)

// Type is a column data type tag.
type Type int

const (
	String              Type = 0
	Integer             Type = 1
	FormattedInteger    Type = 2
	Double              Type = 3
	DoubleWithPrecision Type = 4
	Exponential5        Type = 6
	Exponential15       Type = 7
	Datetime            Type = 8
	Boolean             Type = 9
	HTML                Type = 10
	Int64               Type = 11
	Time                Type = 12
	Image               Type = 13
	Percentage          Type = 14
)

// DefaultIndexType is the type of the synthesized index column.
const DefaultIndexType = Integer

// DefaultPrecision is used when a column first switches to double with
// precision.
const DefaultPrecision = 4

var typeNames = map[Type]string{
	String:              "string",
	Integer:             "integer",
	FormattedInteger:    "formatted integer",
	Double:              "double",
	DoubleWithPrecision: "double with precision",
	Exponential5:        "exponential 5",
	Exponential15:       "exponential 15",
	Datetime:            "datetime",
	Boolean:             "boolean",
	HTML:                "html",
	Int64:               "int64",
	Time:                "time",
	Image:               "image",
	Percentage:          "percentage",
}

var typeAliases = map[string]Type{
	"int":    Integer,
	"float":  Double,
	"bool":   Boolean,
	"date":   Datetime,
	"object": String,
}

// ParseType maps a host type name to its tag. Unknown names are String.
func ParseType(name string) Type {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range typeNames {
		if n == name {
			return t
		}
	}
	if t, ok := typeAliases[name]; ok {
		return t
	}
	return String
}

// String returns the host name of the type.
func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "string"
}

// IsNumeric reports whether values of the type sort and align as numbers.
func (t Type) IsNumeric() bool {
	switch t {
	case Integer, FormattedInteger, Double, DoubleWithPrecision, Exponential5, Exponential15, Int64, Percentage:
		return true
	}
	return false
}

// DisplayType selects a formatter. See the package documentation.
type DisplayType string

// DisplayOf returns the display type that renders t with its own formatter.
func DisplayOf(t Type) DisplayType {
	return DisplayType(strconv.Itoa(int(t)))
}

// PrecisionDisplay returns the "4.N" display type.
func PrecisionDisplay(precision int) DisplayType {
	return DisplayType("4." + strconv.Itoa(precision))
}

// IsDoubleWithPrecision reports whether d has the "4.N" form.
func (d DisplayType) IsDoubleWithPrecision() bool {
	_, ok := d.Precision()
	return ok
}

// Precision returns N for a "4.N" display type.
func (d DisplayType) Precision() (int, bool) {
	rest, ok := strings.CutPrefix(string(d), "4.")
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Type returns the tag a plain display type names. "4.N" yields
// DoubleWithPrecision and anything unparseable yields String.
func (d DisplayType) Type() Type {
	if d.IsDoubleWithPrecision() {
		return DoubleWithPrecision
	}
	n, err := strconv.Atoi(string(d))
	if err != nil {
		return String
	}
	return Type(n)
}

// AllowedDisplayTypes lists the display types a column of type t may be
// switched to, in menu order.
func AllowedDisplayTypes(t Type) []Type {
	switch t {
	case String, HTML, Boolean:
		return []Type{String, HTML}
	case Integer, Int64, FormattedInteger:
		return []Type{String, Integer, FormattedInteger, Double, DoubleWithPrecision, Exponential5, Exponential15, Datetime, HTML}
	case Double, DoubleWithPrecision, Exponential5, Exponential15, Percentage:
		return []Type{String, Integer, FormattedInteger, Double, DoubleWithPrecision, Exponential5, Exponential15, HTML}
	case Datetime, Time:
		return []Type{String, Datetime, HTML}
	}
	return []Type{String}
}

// DisplayTypeFor picks the initial display type for a column of type t.
func DisplayTypeFor(t Type) DisplayType {
	switch t {
	case Datetime, Time:
		return DisplayOf(Datetime)
	case Integer:
		return DisplayOf(FormattedInteger)
	case Int64:
		return DisplayOf(String)
	}
	return DisplayOf(t)
}

// DisplayTypeWithFormat refines DisplayTypeFor with the host's string
// formats: a double column whose decimal format fixes the number of digits
// displays as "4.N". The column format wins over the type format.
func DisplayTypeWithFormat(t Type, typeFormat, columnFormat *StringFormat) DisplayType {
	if t == Double {
		f := columnFormat
		if f == nil {
			f = typeFormat
		}
		if f != nil && f.Type == "decimal" && f.MinDecimals == f.MaxDecimals {
			return PrecisionDisplay(f.MaxDecimals)
		}
	}
	return DisplayTypeFor(t)
}

// StringFormat is the host's per-column or per-type formatting hint.
type StringFormat struct {
	Type          string              `json:"type" yaml:"type"`
	MinDecimals   int                 `json:"minDecimals" yaml:"minDecimals"`
	MaxDecimals   int                 `json:"maxDecimals" yaml:"maxDecimals"`
	Width         int                 `json:"width,omitempty" yaml:"width,omitempty"`
	Unit          string              `json:"unit,omitempty" yaml:"unit,omitempty"`
	HumanFriendly bool                `json:"humanFriendly,omitempty" yaml:"humanFriendly,omitempty"`
	Values        map[string][]string `json:"values,omitempty" yaml:"values,omitempty"`
}
