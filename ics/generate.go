package ics

import (
	"fmt"
	"strings"
	"time"

	rrule "github.com/teambition/rrule-go"

	"zewailcalendar/schedule"
)

// TimeZoneID is the fixed civil timezone both calendar outputs are
// expressed in. No timezone database lookup happens anywhere; the
// VTIMEZONE block written by Generate pins the single +02:00 standard
// offset this identifier stands for.
const TimeZoneID = "Africa/Cairo"

const (
	prodID       = "-//ZewailCalendar//EN"
	calendarName = "University Schedule"
)

// RecurrenceRule returns the weekly recurrence rule bounded by the last
// instant of termEnd's day in UTC. The calendar file and the Google
// Calendar events carry this exact string; any time-of-day on termEnd is
// ignored.
func RecurrenceRule(termEnd time.Time) string {
	opt := rrule.ROption{
		Freq:  rrule.WEEKLY,
		Until: time.Date(termEnd.Year(), termEnd.Month(), termEnd.Day(), 23, 59, 59, 0, time.UTC),
	}
	return "RRULE:" + opt.RRuleString()
}

// Summary is the event title: the course name, tagged with the course
// type when it is not a plain lecture.
func Summary(course schedule.CourseEntry) string {
	if course.Type != "" && course.Type != schedule.TypeLecture {
		return fmt.Sprintf("%s (%s)", course.CourseName, course.Type)
	}
	return course.CourseName
}

// Generate serializes courses into a complete iCalendar document with one
// weekly recurring event per course, repeating until termEnd. Entries
// without a first occurrence contribute nothing. Generate cannot fail;
// the only non-deterministic output is the DTSTAMP/UID instant.
//
// Lines are joined with CRLF. RFC 5545 mandates the pair, and several
// calendar clients reject bare LF files outright.
func Generate(courses []schedule.CourseEntry, termEnd time.Time) string {
	now := time.Now()
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + prodID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"X-WR-CALNAME:" + calendarName,
		"X-WR-TIMEZONE:" + TimeZoneID,
		"",
		"BEGIN:VTIMEZONE",
		"TZID:" + TimeZoneID,
		"BEGIN:STANDARD",
		"DTSTART:19700101T000000",
		"TZOFFSETFROM:+0200",
		"TZOFFSETTO:+0200",
		"TZNAME:EET",
		"END:STANDARD",
		"END:VTIMEZONE",
	}

	rule := RecurrenceRule(termEnd)
	for i, course := range courses {
		if course.FirstOccurrence == nil {
			continue
		}

		// The sequence prefix keeps UIDs unique even when every event in
		// the run sees the same clock value.
		uid := fmt.Sprintf("zewail-%d-%d@zewailcalendar", i, now.UnixMilli())
		start := schedule.CombineDateTime(*course.FirstOccurrence, course.StartTime)
		end := schedule.CombineDateTime(*course.FirstOccurrence, course.EndTime)

		lines = append(lines,
			"",
			"BEGIN:VEVENT",
			"UID:"+uid,
			"DTSTAMP:"+now.UTC().Format("20060102T150405Z"),
			fmt.Sprintf("DTSTART;TZID=%s:%s", TimeZoneID, start.Format("20060102T150405")),
			fmt.Sprintf("DTEND;TZID=%s:%s", TimeZoneID, end.Format("20060102T150405")),
			rule,
			"SUMMARY:"+Summary(course),
			"LOCATION:"+course.Location,
			"DESCRIPTION:"+course.Type,
			"END:VEVENT",
		)
	}

	lines = append(lines, "", "END:VCALENDAR")
	return strings.Join(lines, "\r\n")
}
