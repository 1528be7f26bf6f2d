package googlecalendar

import (
	"errors"
	"fmt"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
)

// InsertResult reports the outcome of inserting one event.
type InsertResult struct {
	Summary string `json:"summary"`
	Success bool   `json:"success"`
	EventID string `json:"eventId,omitempty"`
	Error   string `json:"error,omitempty"`
}

// InsertEvents submits events one by one. A failed insert never aborts
// the batch; each event gets its own result entry so the caller can
// report per-item success and failure.
func InsertEvents(service *calendar.Service, calendarID string, events []*calendar.Event) []InsertResult {
	results := make([]InsertResult, 0, len(events))
	for _, event := range events {
		created, err := service.Events.Insert(calendarID, event).Do()
		if err != nil {
			msg := err.Error()
			var gerr *googleapi.Error
			if errors.As(err, &gerr) && gerr.Message != "" {
				msg = gerr.Message
			}
			fmt.Printf("Error inserting event %q: %v\n", event.Summary, err)
			results = append(results, InsertResult{Summary: event.Summary, Error: msg})
			continue
		}
		fmt.Printf("Inserted event %q (ID: %s)\n", event.Summary, created.Id)
		results = append(results, InsertResult{Summary: event.Summary, Success: true, EventID: created.Id})
	}
	return results
}

// ClearCalendar deletes every event from the specified calendar. Events
// Google already garbage-collected (410) are skipped.
func ClearCalendar(service *calendar.Service, calendarID string) error {
	pageToken := ""
	for {
		events, err := service.Events.List(calendarID).PageToken(pageToken).Do()
		if err != nil {
			return fmt.Errorf("error fetching events from Google Calendar: %v", err)
		}

		for _, event := range events.Items {
			if event == nil || event.Status == "cancelled" {
				continue
			}
			err = service.Events.Delete(calendarID, event.Id).Do()
			if err != nil {
				var gerr *googleapi.Error
				if errors.As(err, &gerr) && gerr.Code == 410 {
					continue
				}
				return fmt.Errorf("error deleting event from Google Calendar: %v", err)
			}
			fmt.Printf("Event %q (ID: %s) removed from Google Calendar.\n", event.Summary, event.Id)
		}

		pageToken = events.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return nil
}
