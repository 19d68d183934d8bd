package service

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"beacon-attendance/core/errors"
	"beacon-attendance/modules/meeting/entity"
)

// Layouts accepted for instants without an offset. They are read in the
// configured local zone.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// TimeWindow converts between client instants, stored UTC instants and the
// display zone.
type TimeWindow struct {
	loc *time.Location
}

func NewTimeWindow(zone string) (*TimeWindow, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load display zone %q: %w", zone, err)
	}
	return &TimeWindow{loc: loc}, nil
}

func NewTimeWindowIn(loc *time.Location) *TimeWindow {
	if loc == nil {
		loc = time.UTC
	}
	return &TimeWindow{loc: loc}
}

func (tw *TimeWindow) Location() *time.Location {
	return tw.loc
}

// ParseInstant reads an RFC 3339 instant, or a naive local time in the
// configured zone. The result is always UTC.
func (tw *TimeWindow) ParseInstant(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, raw, tw.loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised instant %q", raw)
}

// ComputeWindow derives [start, start+duration). A meeting with neither
// start nor duration is unscheduled and yields a nil window.
func (tw *TimeWindow) ComputeWindow(start *time.Time, durationMinutes *int) (*entity.Window, *errors.AppError) {
	if start == nil && durationMinutes == nil {
		return nil, nil
	}
	if start == nil {
		return nil, errors.NewAppError(errors.ErrInvalidWindow, "start_time is required when duration_minutes is set", nil)
	}
	if durationMinutes == nil || *durationMinutes <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidWindow, "duration_minutes must be a positive number", nil)
	}

	begin := start.UTC()
	return &entity.Window{
		Start: begin,
		End:   begin.Add(time.Duration(*durationMinutes) * time.Minute),
	}, nil
}

// ToDisplayZone is a read side transform only.
func (tw *TimeWindow) ToDisplayZone(t time.Time) time.Time {
	return t.In(tw.loc)
}

func (tw *TimeWindow) ToDisplayZonePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	local := tw.ToDisplayZone(*t)
	return &local
}
