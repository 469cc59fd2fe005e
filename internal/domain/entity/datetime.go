package entity

import (
	"time"

	"gorm.io/datatypes"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}

// FormatClock renders a time-of-day column as HH:MM.
func FormatClock(t datatypes.Time) string {
	return time.Time{}.Add(time.Duration(t)).Format(TimeLayout)
}

// ParseClock parses HH:MM or HH:MM:SS into a time-of-day column value.
func ParseClock(s string) (datatypes.Time, error) {
	layout := TimeLayout
	if len(s) == len("15:04:05") {
		layout = time.TimeOnly
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, err
	}
	return datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0), nil
}

// ParseDate parses YYYY-MM-DD as a calendar date.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

// CombineDateTime places the calendar date d at time-of-day t in loc.
func CombineDateTime(d datatypes.Date, t datatypes.Time, loc *time.Location) time.Time {
	day := time.Time(d)
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	return midnight.Add(time.Duration(t))
}
