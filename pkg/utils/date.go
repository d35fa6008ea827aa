package utils

import "time"

// DateLayout is the calendar-day key used for daily completion buckets.
const DateLayout = "2006-01-02"

// DateKey formats t as YYYY-MM-DD in loc. A nil loc means time.Local.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}

// PreviousDay returns the key for the day before key, or "" if key does not parse.
func PreviousDay(key string) string {
	d, err := time.Parse(DateLayout, key)
	if err != nil {
		return ""
	}
	return d.AddDate(0, 0, -1).Format(DateLayout)
}
