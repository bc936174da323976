package datatype

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined marks an absent value. It is distinct from nil, which is the
// decoded JSON null.
var Undefined any = undefined{}

// IsUndefined reports whether v is Undefined.
func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// IsNull reports the values formatters pass through untouched: undefined,
// nil, the empty string and the literal "null".
func IsNull(v any) bool {
	switch x := v.(type) {
	case nil, undefined:
		return true
	case string:
		return x == "" || x == "null"
	}
	return false
}

// Date is the host encoding of a timestamp cell: {"type":"Date","timestamp":ms}.
type Date struct {
	Timestamp float64
	TZ        string
	HasTZ     bool
}

// AsDate extracts a Date from a decoded cell value.
func AsDate(v any) (Date, bool) {
	switch x := v.(type) {
	case Date:
		return x, true
	case time.Time:
		return Date{Timestamp: float64(x.UnixMilli())}, true
	case map[string]any:
		if x["type"] != "Date" {
			return Date{}, false
		}
		ts, ok := x["timestamp"]
		if !ok {
			return Date{}, false
		}
		d := Date{Timestamp: ToNumber(ts)}
		if tz, ok := x["tz"]; ok {
			d.TZ, d.HasTZ = ToString(tz), true
		}
		return d, true
	}
	return Date{}, false
}

// IsObject reports whether v is a composite value (map or slice).
func IsObject(v any) bool {
	switch v.(type) {
	case map[string]any, []any, Date, time.Time:
		return true
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return math.NaN(), true
		}
		return f, true
	}
	return 0, false
}

// IsNumber reports whether v holds a numeric Go value.
func IsNumber(v any) bool {
	_, ok := toFloat(v)
	return ok
}

// ToNumber converts v the way a numeric context does: nil is 0, booleans
// are 0 or 1, strings are parsed whole and anything else is NaN.
func ToNumber(v any) float64 {
	if f, ok := toFloat(v); ok {
		return f
	}
	switch x := v.(type) {
	case nil:
		return 0
	case bool:
		if x {
			return 1
		}
		return 0
	case string:
		return stringToNumber(x)
	case []byte:
		return stringToNumber(string(x))
	case time.Time:
		return float64(x.UnixMilli())
	case Date:
		return x.Timestamp
	}
	return math.NaN()
}

func stringToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0o") || strings.HasPrefix(lower, "0b") {
		n, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return math.NaN()
		}
		return float64(n)
	}
	if strings.ContainsAny(lower, "in_") {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

var floatPrefix = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// ParseFloat parses the longest numeric prefix of v's string form.
func ParseFloat(v any) float64 {
	if f, ok := toFloat(v); ok {
		return f
	}
	s := strings.TrimSpace(ToString(v))
	m := floatPrefix.FindString(s)
	if m == "" {
		return math.NaN()
	}
	switch strings.TrimLeft(m, "+-") {
	case "Infinity":
		if strings.HasPrefix(m, "-") {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// ParseInt parses the leading integer of v's string form. Numbers are
// truncated towards zero.
func ParseInt(v any) float64 {
	if f, ok := toFloat(v); ok {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return math.NaN()
		}
		if math.Abs(f) < 1e21 {
			return math.Trunc(f)
		}
	}
	s := strings.TrimSpace(ToString(v))
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	base := 10
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	}
	end := 0
	for end < len(s) && digitValue(s[end]) < base {
		end++
	}
	if end == 0 {
		return math.NaN()
	}
	var n float64
	for _, c := range []byte(s[:end]) {
		n = n*float64(base) + float64(digitValue(c))
	}
	if neg {
		n = -n
	}
	return n
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return 99
}

// IsNumericString reports whether v is a string that converts to a finite
// number as a whole and has a numeric prefix.
func IsNumericString(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	if math.IsNaN(ParseFloat(s)) {
		return false
	}
	f := ToNumber(s)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ToString converts v the way a string context does.
func ToString(v any) string {
	if f, ok := toFloat(v); ok {
		if _, isInt := v.(int64); isInt {
			return strconv.FormatInt(v.(int64), 10)
		}
		return FormatNumber(f)
	}
	switch x := v.(type) {
	case nil:
		return "null"
	case undefined:
		return "undefined"
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case []any:
		parts := make([]string, len(x))
		for i, item := range x {
			if item == nil || IsUndefined(item) {
				continue
			}
			parts[i] = ToString(item)
		}
		return strings.Join(parts, ",")
	case map[string]any, Date:
		return "[object Object]"
	case interface{ String() string }:
		return x.String()
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// FormatNumber renders f in the shortest round-trip decimal form, switching
// to exponent notation outside [1e-6, 1e21).
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		return trimExponent(strconv.FormatFloat(f, 'e', -1, 64))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ToFixed renders f with exactly digits fraction digits.
func ToFixed(f float64, digits int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return FormatNumber(f)
	}
	if math.Abs(f) >= 1e21 {
		return FormatNumber(f)
	}
	if digits < 0 {
		digits = 0
	}
	if digits > 100 {
		digits = 100
	}
	return strconv.FormatFloat(f, 'f', digits, 64)
}

// ToExponential renders f in exponent notation with digits fraction digits.
func ToExponential(f float64, digits int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return FormatNumber(f)
	}
	return trimExponent(strconv.FormatFloat(f, 'e', digits, 64))
}

// trimExponent turns Go's "1.5e-07" exponent into "1.5e-7".
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	mant, sign, exp := s[:i], s[i+1], strings.TrimLeft(s[i+2:], "0")
	if exp == "" {
		exp = "0"
	}
	return mant + "e" + string(sign) + exp
}

// GroupThousands inserts "," separators into the integer part of a decimal
// string.
func GroupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	if len(intPart) <= 3 || strings.ContainsAny(intPart, "eN") {
		return sign + s
	}
	var b strings.Builder
	head := len(intPart) % 3
	if head > 0 {
		b.WriteString(intPart[:head])
	}
	for i := head; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return sign + b.String()
}

// Truthy reports the boolean meaning of v in a condition.
func Truthy(v any) bool {
	if f, ok := toFloat(v); ok {
		return f != 0 && !math.IsNaN(f)
	}
	switch x := v.(type) {
	case nil, undefined:
		return false
	case bool:
		return x
	case string:
		return x != ""
	}
	return true
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// TextContent strips markup from an html cell.
func TextContent(v any) string {
	s := tagPattern.ReplaceAllString(ToString(v), "")
	r := strings.NewReplacer("&nbsp;", " ", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&#39;", "'", "&#47;", "/", "&amp;", "&")
	return r.Replace(s)
}

const truncateLimit = 1000

// TruncateString cuts s to the display limit, marking the cut with "...".
func TruncateString(s string) string {
	r := []rune(s)
	if len(r) > truncateLimit {
		return string(r[:truncateLimit]) + "..."
	}
	return s
}

var upperPattern = regexp.MustCompile(`[A-Z]+`)

// HasUpperCase reports whether s contains an ASCII capital letter.
func HasUpperCase(s string) bool {
	return upperPattern.MatchString(s)
}

var urlPattern = regexp.MustCompile(`(?i)((https?|ftp|file)://)(?:\([-A-Z0-9+&@#/%=~_|$?!:,.]*\)|[-A-Z0-9+&@#/%=~_|$?!:,.])*(?:\([-A-Z0-9+&@#/%=~_|$?!:,.]*\)|[A-Z0-9+&@#/%=~_|$])`)

// RetrieveURL returns the first URL in a string cell.
func RetrieveURL(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	m := urlPattern.FindString(s)
	return m, m != ""
}

// Compare orders two resolved cell values for sorting. Two non-finite
// numbers are equal and a non-finite number sorts after any finite one.
// Mixed values compare as numbers; values that do not order compare equal.
func Compare(a, b any) int {
	fa, aok := toFloat(a)
	fb, bok := toFloat(b)
	if aok && bok && !isFinite(fa-fb) {
		switch {
		case !isFinite(fa) && !isFinite(fb):
			return 0
		case !isFinite(fa):
			return 1
		}
		return -1
	}
	if Less(b, a) {
		return 1
	}
	if Less(a, b) {
		return -1
	}
	return 0
}

// Less reports a < b under relational comparison: strings compare
// lexicographically, anything else numerically with NaN never less.
func Less(a, b any) bool {
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return as < bs
	}
	fa, fb := ToNumber(a), ToNumber(b)
	return fa < fb
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
