package schedule

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// DayBounds returns [00:00, next 00:00) of t's calendar day in loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// ParseClock reads an H:MM or HH:MM reading as minutes after midnight.
func ParseClock(field, clock string) (int, error) {
	hm, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return 0, &ValidationError{Field: field, Message: fmt.Sprintf("時刻の形式が正しくありません: %s", clock)}
	}
	return hm.Hour()*60 + hm.Minute(), nil
}

// Combine joins a calendar day and an HH:MM clock reading in loc.
func Combine(day time.Time, clock string, loc *time.Location) (time.Time, error) {
	hm, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "time", Message: fmt.Sprintf("時刻の形式が正しくありません: %s", clock)}
	}
	d := day.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), hm.Hour(), hm.Minute(), 0, 0, loc), nil
}

// ParseDate reads YYYY-MM-DD as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Message: fmt.Sprintf("日付の形式が正しくありません: %s", s)}
	}
	return d, nil
}
