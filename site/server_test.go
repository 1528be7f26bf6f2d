package site_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"zewailcalendar/schedule"
	"zewailcalendar/site"
)

const samplePage = `<html><body>
<button id="btnItemTitle_section_1">CSCI 101</button>
<p>Subtype: Lecture, Section 1</p>
<p>Duration: 9/1/2025 - 12/15/2025</p>
<div class="WithWidth-ScheduleItem--meeting"><p>9:00 AM - 10:30 AM</p><p>Monday</p><p>Building A, Room 101</p></div>
<hr/>
</body></html>`

func TestParseHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/parse", strings.NewReader(samplePage))
	rec := httptest.NewRecorder()

	site.ParseHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var result schedule.ParseResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("response is not a ParseResult: %v", err)
	}
	if len(result.Courses) != 1 || result.Courses[0].CourseName != "CSCI 101" {
		t.Errorf("courses = %+v, want one CSCI 101 entry", result.Courses)
	}
	if result.TermEndDate == nil {
		t.Error("TermEndDate missing from response")
	}
}

func TestParseHandlerRejectsGet(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/parse", nil)
	rec := httptest.NewRecorder()

	site.ParseHandler(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestICSHandler(t *testing.T) {
	result := schedule.Parse(samplePage)
	payload, _ := json.Marshal(map[string]any{
		"courses": result.Courses,
		"termEnd": "2025-12-15",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/ics", strings.NewReader(string(payload)))
	rec := httptest.NewRecorder()

	site.ICSHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("Content-Type = %q, want text/calendar", ct)
	}

	body := rec.Body.String()
	if !strings.HasPrefix(body, "BEGIN:VCALENDAR\r\n") {
		t.Error("response body is not a calendar file")
	}
	if !strings.Contains(body, "SUMMARY:CSCI 101") {
		t.Error("calendar is missing the parsed course")
	}
	if !strings.Contains(body, "UNTIL=20251215T235959Z") {
		t.Error("calendar recurrence does not honor the requested term end")
	}
}

func TestICSHandlerRejectsBadTermEnd(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/ics", strings.NewReader(`{"courses":[],"termEnd":"12/15/2025"}`))
	rec := httptest.NewRecorder()

	site.ICSHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGoogleCalendarHandlerRequiresToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/google-calendar", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	site.GoogleCalendarHandler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	var resp struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if resp.Code != "NOT_AUTHENTICATED" {
		t.Errorf("code = %q, want NOT_AUTHENTICATED", resp.Code)
	}
}

func TestGoogleCalendarHandlerRejectsEmptyBatch(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/google-calendar",
		strings.NewReader(`{"courses":[],"termEnd":"2025-12-15"}`))
	req.Header.Set("Authorization", "Bearer test-token")
	rec := httptest.NewRecorder()

	site.GoogleCalendarHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
