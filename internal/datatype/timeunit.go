package datatype

import (
	"math"
	"regexp"
	"strconv"
	"time"
)

// TimeUnit is a datetime display granularity.
type TimeUnit struct {
	Name          string  `json:"name" yaml:"name"`
	Title         string  `json:"title" yaml:"title"`
	Layout        string  `json:"layout" yaml:"layout"`
	ValueModifier float64 `json:"valueModifier" yaml:"valueModifier"`
}

// DefaultTimeLayout renders timestamps inside string columns.
const DefaultTimeLayout = "20060102 15:04:05.000 -0700"

var timeUnits = []TimeUnit{
	{Name: "DATETIME", Title: "datetime", Layout: DefaultTimeLayout, ValueModifier: 1},
	{Name: "DAYS", Title: "date", Layout: "20060102", ValueModifier: 86400000},
	{Name: "HOURS", Title: "hours", Layout: "20060102 15:04", ValueModifier: 3600000},
	{Name: "MINUTES", Title: "minutes", Layout: "15:04", ValueModifier: 60000},
	{Name: "SECONDS", Title: "seconds", Layout: "15:04:05", ValueModifier: 1000},
	{Name: "MILLISECONDS", Title: "milliseconds", Layout: "15:04:05.000", ValueModifier: 1},
}

// TimeUnits returns the known units in menu order.
func TimeUnits() []TimeUnit {
	out := make([]TimeUnit, len(timeUnits))
	copy(out, timeUnits)
	return out
}

// LookupTimeUnit finds a unit by name.
func LookupTimeUnit(name string) (TimeUnit, bool) {
	for _, u := range timeUnits {
		if u.Name == name {
			return u, true
		}
	}
	return TimeUnit{}, false
}

// NextTimeUnit returns the unit after u, wrapping around.
func NextTimeUnit(u *TimeUnit) TimeUnit {
	if u == nil {
		return timeUnits[0]
	}
	for i, candidate := range timeUnits {
		if candidate.Name == u.Name {
			return timeUnits[(i+1)%len(timeUnits)]
		}
	}
	return timeUnits[0]
}

var gmtOffset = regexp.MustCompile(`([+-])(\d{1,2}):?(\d{2})?$`)

// Location resolves a host time zone: "GMT+hh:mm" offsets or IANA names.
// An empty or unknown zone resolves to fallback.
func Location(tz string, fallback *time.Location) *time.Location {
	if fallback == nil {
		fallback = time.Local
	}
	if tz == "" {
		return fallback
	}
	if len(tz) >= 3 && tz[:3] == "GMT" {
		m := gmtOffset.FindStringSubmatch(tz[3:])
		if m == nil {
			return time.UTC
		}
		hours, _ := strconv.Atoi(m[2])
		minutes := 0
		if m[3] != "" {
			minutes, _ = strconv.Atoi(m[3])
		}
		secs := hours*3600 + minutes*60
		if m[1] == "-" {
			secs = -secs
		}
		return time.FixedZone(tz, secs)
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fallback
	}
	return loc
}

// FormatTimestamp renders a millisecond timestamp in loc using layout.
func FormatTimestamp(ms float64, loc *time.Location, layout string) string {
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return "Invalid date"
	}
	sec, frac := math.Modf(ms / 1000)
	t := time.Unix(int64(sec), int64(math.Round(frac*1e9)))
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(layout)
}
