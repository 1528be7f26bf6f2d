package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Markup conventions of the registration system. The id prefix marks each
// course section's title button; the class marker identifies the meeting
// details container between a button and the next <hr>.
const (
	entryPointPrefix   = "btnItemTitle_section_"
	subtypeLabel       = "Subtype:"
	durationLabel      = "Duration:"
	meetingClassMarker = "WithWidth-ScheduleItem--meeting"
)

const noEntriesWarning = "No schedule entries found. Make sure you saved the full HTML page from the registration system."

// Parse extracts course entries from a saved registration page. It never
// fails: empty or malformed markup produces an empty course list plus a
// warning, and a section missing required fields is dropped with a
// warning while the remaining sections are still processed.
func Parse(markup string) ParseResult {
	result := ParseResult{Courses: []CourseEntry{}, Warnings: []string{}}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		result.Warnings = append(result.Warnings, noEntriesWarning)
		return result
	}

	buttons := doc.Find(fmt.Sprintf("button[id^=%q]", entryPointPrefix))
	if buttons.Length() == 0 {
		result.Warnings = append(result.Warnings, noEntriesWarning)
		return result
	}

	id := 0
	buttons.Each(func(_ int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Text())
		info := collectSectionInfo(sel.Get(0))

		termStart, termEnd := parseDuration(info.Duration)
		if termEnd != nil && result.TermEndDate == nil {
			result.TermEndDate = termEnd
		}

		startTime, endTime := parseMeetingTime(info.MeetingTime)

		var first *time.Time
		if termStart != nil && info.MeetingDay != "" {
			first = FirstOccurrenceOn(*termStart, info.MeetingDay)
		}
		if first == nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Could not determine schedule for %q — missing day or date info.", title))
			return
		}

		location := info.Location
		if location == "" {
			location = "TBA"
		}

		id++
		result.Courses = append(result.Courses, CourseEntry{
			ID:              id,
			CourseName:      title,
			Day:             info.MeetingDay,
			StartTime:       startTime,
			EndTime:         endTime,
			Location:        location,
			Type:            classifyType(info.Subtype),
			TermStart:       termStart,
			TermEnd:         termEnd,
			FirstOccurrence: first,
		})
	})

	return result
}

// parseDuration decodes "Duration: M/D/YYYY - M/D/YYYY". Either half may
// fail independently; a failed half is simply nil.
func parseDuration(text string) (start, end *time.Time) {
	if text == "" {
		return nil, nil
	}
	trimmed := strings.TrimSpace(strings.TrimPrefix(text, durationLabel))
	parts := strings.Split(trimmed, "-")
	if len(parts) != 2 {
		return nil, nil
	}
	if t, err := ParseMonthDayYear(parts[0]); err == nil {
		start = &t
	}
	if t, err := ParseMonthDayYear(parts[1]); err == nil {
		end = &t
	}
	return start, end
}

// parseMeetingTime decodes a range like "9:00 AM - 10:30 AM" into a pair
// of 24-hour times. If either half is malformed both come back empty.
func parseMeetingTime(text string) (string, string) {
	if text == "" {
		return "", ""
	}
	parts := strings.Split(text, "-")
	if len(parts) != 2 {
		return "", ""
	}
	start, startErr := Convert12To24(parts[0])
	end, endErr := Convert12To24(parts[1])
	if startErr != nil || endErr != nil {
		return "", ""
	}
	return start, end
}

// classifyType maps the subtype descriptor onto a course type. Laboratory
// is checked before Tutorial before Lecture; anything unrecognized is a
// Lecture. Matching is case-sensitive to the source convention.
func classifyType(subtype string) string {
	switch {
	case strings.Contains(subtype, "Laboratory"):
		return TypeLab
	case strings.Contains(subtype, "Tutorial"):
		return TypeTutorial
	default:
		return TypeLecture
	}
}
