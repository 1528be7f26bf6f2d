package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"zewailcalendar/config"
	"zewailcalendar/googlecalendar"
	"zewailcalendar/ics"
	"zewailcalendar/schedule"
	"zewailcalendar/uploader"
)

func main() {
	var (
		inPath     = flag.String("in", "schedule.html", "saved registration page to convert")
		outPath    = flag.String("out", "schedule.ics", "calendar file to write")
		termEndArg = flag.String("term-end", "", "override the term end date (YYYY-MM-DD)")
		configPath = flag.String("config", "config.json", "configuration file")
		push       = flag.Bool("google", false, "push the events to Google Calendar")
		clearFirst = flag.Bool("clear", false, "clear the target calendar before pushing")
		publish    = flag.Bool("publish", false, "upload the calendar file to GitHub")
	)
	flag.Parse()

	data, err := os.ReadFile(*inPath)
	if err != nil {
		fmt.Println("Error reading schedule page:", err)
		os.Exit(1)
	}

	result := schedule.Parse(string(data))
	for _, warning := range result.Warnings {
		fmt.Println("Warning:", warning)
	}
	if len(result.Courses) == 0 {
		fmt.Println("No courses found.")
		os.Exit(1)
	}

	fmt.Printf("Parsed %d course(s):\n", len(result.Courses))
	for _, course := range result.Courses {
		fmt.Printf("  #%d %s (%s) %s %s-%s @ %s, first on %s\n",
			course.ID, course.CourseName, course.Type, course.Day,
			course.StartTime, course.EndTime, course.Location,
			course.FirstOccurrence.Format("2006-01-02"))
	}

	termEnd, err := resolveTermEnd(*termEndArg, result.TermEndDate)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	fmt.Println("Events repeat weekly until", termEnd.Format("2006-01-02"))

	body := ics.Generate(result.Courses, termEnd)
	if err := os.WriteFile(*outPath, []byte(body), 0o644); err != nil {
		fmt.Println("Error writing calendar file:", err)
		os.Exit(1)
	}
	fmt.Println("Calendar file written to", *outPath)

	if !*push && !*publish {
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	if *push {
		ctx := context.Background()
		service, err := googlecalendar.GetCalendarService(ctx, cfg)
		if err != nil {
			fmt.Println("Error getting Google Calendar service:", err)
			os.Exit(1)
		}

		if *clearFirst {
			if err := googlecalendar.ClearCalendar(service, cfg.CalendarID()); err != nil {
				fmt.Println("Error clearing Google Calendar:", err)
				os.Exit(1)
			}
		}

		events := googlecalendar.BuildEvents(result.Courses, termEnd)
		results := googlecalendar.InsertEvents(service, cfg.CalendarID(), events)
		succeeded := 0
		for _, res := range results {
			if res.Success {
				succeeded++
			}
		}
		fmt.Printf("Pushed %d/%d event(s) to Google Calendar.\n", succeeded, len(results))
	}

	if *publish {
		if err := uploader.UploadToGitHub(cfg.GithubToken, cfg.GithubRepo, cfg.GithubPath, []byte(body)); err != nil {
			fmt.Println("Error uploading to GitHub:", err)
			os.Exit(1)
		}
		fmt.Printf("Calendar file published to %s/%s.\n", cfg.GithubRepo, cfg.GithubPath)
	}
}

// resolveTermEnd prefers an explicit override over the date detected from
// the page's duration text.
func resolveTermEnd(override string, detected *time.Time) (time.Time, error) {
	if override != "" {
		termEnd, err := time.Parse("2006-01-02", override)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid -term-end date %q: %v", override, err)
		}
		return termEnd, nil
	}
	if detected == nil {
		return time.Time{}, fmt.Errorf("no term end date found on the page; pass -term-end")
	}
	return *detected, nil
}
