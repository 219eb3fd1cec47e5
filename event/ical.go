package event

import (
	"fmt"
	"io"
	"time"

	"interview-scheduler/timestamp"

	"github.com/emersion/go-ical"
)

const productID = "-//interview-scheduler//NONSGML v1.0//EN"

// Calendar renders events as an iCalendar feed. UTC-tagged times become UTC
// date-times and naive times become floating date-times.
func Calendar(events []Event, now time.Time) (*ical.Calendar, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText(ical.PropVersion, "2.0")

	for _, e := range events {
		vevent := ical.NewEvent()
		vevent.Props.SetText(ical.PropUID, fmt.Sprintf("event-%d@interview-scheduler", e.ID))
		vevent.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
		if err := setDateTime(vevent.Props, ical.PropDateTimeStart, e.Start); err != nil {
			return nil, fmt.Errorf("event %d start: %w", e.ID, err)
		}
		if err := setDateTime(vevent.Props, ical.PropDateTimeEnd, e.End); err != nil {
			return nil, fmt.Errorf("event %d end: %w", e.ID, err)
		}
		vevent.Props.SetText(ical.PropSummary, fmt.Sprintf("%s (%s)", e.Title, e.Roommate.Name))
		if e.Location != "" {
			vevent.Props.SetText(ical.PropLocation, e.Location)
		}
		if e.Notes != "" {
			vevent.Props.SetText(ical.PropDescription, e.Notes)
		}
		cal.Children = append(cal.Children, vevent.Component)
	}
	return cal, nil
}

func WriteCalendar(w io.Writer, events []Event, now time.Time) error {
	cal, err := Calendar(events, now)
	if err != nil {
		return err
	}
	return ical.NewEncoder(w).Encode(cal)
}

const floatingLayout = "20060102T150405"

// setDateTime writes a zoned value as a UTC date-time. A naive value is written
// as a floating date-time: no TZID and no trailing Z.
func setDateTime(props ical.Props, name, normalized string) error {
	t, err := timestamp.Parse(normalized)
	if err != nil {
		return err
	}
	if timestamp.IsZoned(normalized) {
		props.SetDateTime(name, t.UTC())
		return nil
	}
	prop := ical.NewProp(name)
	prop.Value = t.Format(floatingLayout)
	props.Set(prop)
	return nil
}
