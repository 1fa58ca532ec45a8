package core

import (
	"fmt"
	"os"
	"time"

	"guardlink.com.au/guardlink/utils"
)

// MalformedScheduleError means the stored shift date or time could not
// be parsed. The originating request must be rejected; nothing in the
// lifecycle substitutes a default schedule.
type MalformedScheduleError struct {
	Field string
	Value string
	Err   error
}

func (e *MalformedScheduleError) Error() string {
	return fmt.Sprintf("malformed schedule %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *MalformedScheduleError) Unwrap() error {
	return e.Err
}

// ShiftWindow holds every timestamp the lifecycle needs for one
// assignment. All other packages consume these values; none of them
// recompute timezone arithmetic on their own.
type ShiftWindow struct {
	StartUTC      time.Time
	EndUTC        time.Time
	CreatedAtUTC  time.Time
	StartMinus24h time.Time
	StartMinus2h  time.Time
}

// Location resolves the deployment timezone. Falls back to a fixed
// UTC+10 zone when the tz database entry is unavailable.
func Location() *time.Location {
	name := os.Getenv("PATROL_TIMEZONE")
	if name == "" {
		name = "Australia/Brisbane"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return utils.BrisbaneTZ
	}
	return loc
}

// ResolveShiftWindow computes the UTC shift boundaries and the reminder
// eligibility thresholds for an assignment. date carries the calendar
// day, startTime/endTime are "15:04" site-local strings. An end at or
// before the start rolls to the next day (overnight shift).
func ResolveShiftWindow(date time.Time, startTime, endTime string, createdAt time.Time, loc *time.Location) (ShiftWindow, error) {
	start, err := CombineDateTime(date, startTime, loc)
	if err != nil {
		return ShiftWindow{}, &MalformedScheduleError{Field: "start_time", Value: startTime, Err: err}
	}

	end, err := CombineDateTime(date, endTime, loc)
	if err != nil {
		return ShiftWindow{}, &MalformedScheduleError{Field: "end_time", Value: endTime, Err: err}
	}
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}

	startUTC := start.UTC()
	return ShiftWindow{
		StartUTC:      startUTC,
		EndUTC:        end.UTC(),
		CreatedAtUTC:  createdAt.UTC(),
		StartMinus24h: startUTC.Add(-24 * time.Hour),
		StartMinus2h:  startUTC.Add(-2 * time.Hour),
	}, nil
}

// MinutesToStart is positive before the shift starts, negative after.
func (w ShiftWindow) MinutesToStart(now time.Time) int {
	return int(w.StartUTC.Sub(now) / time.Minute)
}

// CombineDateTime places a "15:04" (or "15:04:05") time-of-day string
// on the calendar day of date, in loc.
func CombineDateTime(date time.Time, timeStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", timeStr)
	if err != nil {
		t, err = time.Parse("15:04:05", timeStr)
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), nil
}
