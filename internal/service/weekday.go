package service

import "time"

// ISOWeekday maps a calendar date to the ISO day-of-week ordinal, 1=Monday
// through 7=Sunday. time.Weekday numbers Sunday as 0, so Sunday folds to 7;
// lesson-slot lookups are keyed by the ISO ordinal.
func ISOWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

var isoWeekdayNames = [...]string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ISOWeekdayName returns the English name for an ISO day ordinal.
func ISOWeekdayName(day int) string {
	if day < 1 || day > 7 {
		return ""
	}
	return isoWeekdayNames[day]
}
