package timeutil

import "time"

// CompactDate is the YYYYMMDD layout used for calendar dates on the wire
const CompactDate = "20060102"

// FormatCompactDate renders t as YYYYMMDD in t's own location.
// Calendar dates such as birthdays are not shifted to UTC.
// The zero time renders as "".
func FormatCompactDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(CompactDate)
}
