package datatype

import "math"

// Resolver maps a raw cell value to the value used for sorting, statistics
// and highlighting.
type Resolver func(any) any

// ResolverFor returns the resolver for columns of type t.
func ResolverFor(t Type) Resolver {
	switch t {
	case Datetime, Time:
		return resolveDate
	case Double, DoubleWithPrecision:
		return resolveDouble
	case Integer, Int64:
		return resolveInteger
	case HTML:
		return resolveHTML
	}
	return resolveIdentity
}

func resolveDate(v any) any {
	if d, ok := AsDate(v); ok {
		return d.Timestamp
	}
	return math.NaN()
}

func resolveDouble(v any) any {
	return ParseFloat(v)
}

func resolveInteger(v any) any {
	return ParseInt(v)
}

func resolveHTML(v any) any {
	return TextContent(v)
}

func resolveIdentity(v any) any {
	return v
}
