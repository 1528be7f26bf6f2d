package ics_test

import (
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"

	"zewailcalendar/ics"
	"zewailcalendar/schedule"
)

func course(id int, name, day, start, end, location, courseType string, first time.Time) schedule.CourseEntry {
	return schedule.CourseEntry{
		ID:              id,
		CourseName:      name,
		Day:             day,
		StartTime:       start,
		EndTime:         end,
		Location:        location,
		Type:            courseType,
		FirstOccurrence: &first,
	}
}

var (
	monday  = time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	termEnd = time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)
)

func TestRecurrenceRule(t *testing.T) {
	got := ics.RecurrenceRule(termEnd)
	want := "RRULE:FREQ=WEEKLY;UNTIL=20251215T235959Z"
	if got != want {
		t.Errorf("RecurrenceRule = %q, want %q", got, want)
	}
}

func TestRecurrenceRuleIgnoresTimeOfDay(t *testing.T) {
	noon := time.Date(2025, 12, 15, 14, 30, 45, 0, time.UTC)
	if got, want := ics.RecurrenceRule(noon), ics.RecurrenceRule(termEnd); got != want {
		t.Errorf("RecurrenceRule with time-of-day = %q, want %q", got, want)
	}
}

func TestSummary(t *testing.T) {
	lecture := course(1, "CSCI 101", "Monday", "09:00", "10:30", "Room 1", schedule.TypeLecture, monday)
	if got := ics.Summary(lecture); got != "CSCI 101" {
		t.Errorf("Summary(lecture) = %q, want plain course name", got)
	}

	lab := course(2, "CSCI 101L", "Tuesday", "13:00", "16:00", "Lab 2", schedule.TypeLab, monday)
	if got := ics.Summary(lab); got != "CSCI 101L (Lab)" {
		t.Errorf("Summary(lab) = %q, want type suffix", got)
	}
}

func TestGenerateEnvelope(t *testing.T) {
	body := ics.Generate([]schedule.CourseEntry{
		course(1, "CSCI 101", "Monday", "09:00", "10:30", "Building A, Room 101", schedule.TypeLecture, monday),
	}, termEnd)

	wantHeader := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//ZewailCalendar//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"X-WR-CALNAME:University Schedule",
		"X-WR-TIMEZONE:Africa/Cairo",
		"",
		"BEGIN:VTIMEZONE",
		"TZID:Africa/Cairo",
		"BEGIN:STANDARD",
		"DTSTART:19700101T000000",
		"TZOFFSETFROM:+0200",
		"TZOFFSETTO:+0200",
		"TZNAME:EET",
		"END:STANDARD",
		"END:VTIMEZONE",
	}, "\r\n")
	if !strings.HasPrefix(body, wantHeader) {
		t.Errorf("calendar header mismatch:\n%s", body[:min(len(body), len(wantHeader))])
	}
	if !strings.HasSuffix(body, "\r\nEND:VCALENDAR") {
		t.Error("calendar does not end with END:VCALENDAR")
	}

	// Every line break must be the CRLF pair.
	if strings.Count(body, "\n") != strings.Count(body, "\r\n") {
		t.Error("found a bare LF line break")
	}

	for _, line := range []string{
		"DTSTART;TZID=Africa/Cairo:20250901T090000",
		"DTEND;TZID=Africa/Cairo:20250901T103000",
		"RRULE:FREQ=WEEKLY;UNTIL=20251215T235959Z",
		"SUMMARY:CSCI 101",
		"LOCATION:Building A, Room 101",
		"DESCRIPTION:Lecture",
	} {
		if !strings.Contains(body, "\r\n"+line+"\r\n") {
			t.Errorf("calendar is missing line %q", line)
		}
	}
}

func TestGenerateSkipsDatelessCourses(t *testing.T) {
	courses := []schedule.CourseEntry{
		course(1, "CSCI 101", "Monday", "09:00", "10:30", "Room 1", schedule.TypeLecture, monday),
		{ID: 2, CourseName: "GHOST 100", Day: "Friday", Type: schedule.TypeLecture},
		course(3, "MATH 201", "Tuesday", "11:00", "12:30", "Room 2", schedule.TypeTutorial, monday.AddDate(0, 0, 1)),
	}

	body := ics.Generate(courses, termEnd)

	if got := strings.Count(body, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("got %d BEGIN:VEVENT, want 2", got)
	}
	if got := strings.Count(body, "END:VEVENT"); got != 2 {
		t.Errorf("got %d END:VEVENT, want 2", got)
	}
	if strings.Contains(body, "GHOST 100") {
		t.Error("dateless course leaked into the calendar")
	}
}

func TestGenerateRoundTrip(t *testing.T) {
	courses := []schedule.CourseEntry{
		course(1, "CSCI 101", "Monday", "09:00", "10:30", "Building A, Room 101", schedule.TypeLecture, monday),
		course(2, "CSCI 101L", "Wednesday", "13:00", "16:00", "Lab 3", schedule.TypeLab, monday.AddDate(0, 0, 2)),
	}

	body := ics.Generate(courses, termEnd)

	// Calendar clients tolerate the blank spacer lines between blocks;
	// the library parser is stricter, so fold them away first.
	folded := strings.ReplaceAll(body, "\r\n\r\n", "\r\n")
	cal, err := ical.ParseCalendar(strings.NewReader(folded))
	if err != nil {
		t.Fatalf("generated calendar does not parse back: %v", err)
	}

	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("round trip produced %d events, want 2", len(events))
	}

	uids := make(map[string]bool)
	for _, ev := range events {
		uid := ev.GetProperty(ical.ComponentPropertyUniqueId)
		if uid == nil || uid.Value == "" {
			t.Fatal("event is missing a UID")
		}
		if uids[uid.Value] {
			t.Errorf("duplicate UID %q", uid.Value)
		}
		uids[uid.Value] = true

		if p := ev.GetProperty(ical.ComponentPropertyDtstamp); p == nil {
			t.Error("event is missing DTSTAMP")
		}
		if p := ev.GetProperty(ical.ComponentPropertyRrule); p == nil || p.Value != "FREQ=WEEKLY;UNTIL=20251215T235959Z" {
			t.Errorf("unexpected RRULE property: %+v", p)
		}
	}

	if got := events[1].GetProperty(ical.ComponentPropertySummary).Value; got != "CSCI 101L (Lab)" {
		t.Errorf("second event summary = %q, want type-suffixed name", got)
	}
	if got := events[1].GetProperty(ical.ComponentPropertyDtStart).Value; got != "20250903T130000" {
		t.Errorf("second event DTSTART = %q, want 20250903T130000", got)
	}
}
