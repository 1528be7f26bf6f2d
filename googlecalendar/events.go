package googlecalendar

import (
	"time"

	"google.golang.org/api/calendar/v3"

	"zewailcalendar/ics"
	"zewailcalendar/schedule"
)

// BuildEvents converts course entries into Google Calendar event objects.
// The summary, recurrence rule and civil start/end values are identical
// to what the calendar file carries for the same input; only the envelope
// differs. The Calendar API wants local date-times without a UTC suffix,
// paired with an explicit timezone identifier.
func BuildEvents(courses []schedule.CourseEntry, termEnd time.Time) []*calendar.Event {
	rule := ics.RecurrenceRule(termEnd)
	events := make([]*calendar.Event, 0, len(courses))
	for _, course := range courses {
		if course.FirstOccurrence == nil {
			continue
		}

		start := schedule.CombineDateTime(*course.FirstOccurrence, course.StartTime)
		end := schedule.CombineDateTime(*course.FirstOccurrence, course.EndTime)

		events = append(events, &calendar.Event{
			Summary:     ics.Summary(course),
			Location:    course.Location,
			Description: course.Type,
			Start: &calendar.EventDateTime{
				DateTime: start.Format("2006-01-02T15:04:05"),
				TimeZone: ics.TimeZoneID,
			},
			End: &calendar.EventDateTime{
				DateTime: end.Format("2006-01-02T15:04:05"),
				TimeZone: ics.TimeZoneID,
			},
			Recurrence: []string{rule},
		})
	}
	return events
}
