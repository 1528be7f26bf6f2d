package schedule

import "time"

// Course types as they appear in the registration system's subtype text.
const (
	TypeLecture  = "Lecture"
	TypeLab      = "Lab"
	TypeTutorial = "Tutorial"
)

// CourseEntry is one scheduled weekly meeting extracted from a saved
// registration page.
type CourseEntry struct {
	ID              int        `json:"id"`
	CourseName      string     `json:"courseName"`
	Day             string     `json:"day"`
	StartTime       string     `json:"startTime"` // 24-hour "HH:MM"
	EndTime         string     `json:"endTime"`   // 24-hour "HH:MM"
	Location        string     `json:"location"`  // "TBA" when the page gives none
	Type            string     `json:"type"`
	TermStart       *time.Time `json:"termStart"`
	TermEnd         *time.Time `json:"termEnd"`
	FirstOccurrence *time.Time `json:"firstOccurrence"`
}

// ParseResult is everything one extraction run produces. TermEndDate is
// the first term end seen in document order; it is a suggestion the
// caller may override when generating calendar output.
type ParseResult struct {
	Courses     []CourseEntry `json:"courses"`
	Warnings    []string      `json:"warnings"`
	TermEndDate *time.Time    `json:"termEndDate"`
}
