package site

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"zewailcalendar/googlecalendar"
	"zewailcalendar/ics"
	"zewailcalendar/schedule"
)

// Saved registration pages run to a megabyte or two; anything bigger is
// not a schedule page.
const maxUploadBytes = 10 << 20

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// readMarkup pulls the uploaded page out of the request: a multipart
// "file" field when the browser sends a form, the raw body otherwise.
func readMarkup(r *http.Request) (string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return "", err
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return "", err
		}
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseHandler accepts a saved registration page and returns the
// extracted courses, warnings and detected term end date as JSON.
func ParseHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	markup, err := readMarkup(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Could not read the uploaded page.", Code: "INVALID_UPLOAD"})
		return
	}

	writeJSON(w, http.StatusOK, schedule.Parse(markup))
}

type icsRequest struct {
	Courses []schedule.CourseEntry `json:"courses"`
	TermEnd string                 `json:"termEnd"` // YYYY-MM-DD
}

// ICSHandler turns previously parsed courses into a downloadable
// calendar file.
func ICSHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req icsRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxUploadBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON", Code: "INVALID_JSON"})
		return
	}

	termEnd, err := time.Parse("2006-01-02", req.TermEnd)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "termEnd must be a YYYY-MM-DD date.", Code: "VALIDATION_ERROR"})
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="schedule.ics"`)
	io.WriteString(w, ics.Generate(req.Courses, termEnd))
}

type googleCalendarRequest struct {
	Courses    []schedule.CourseEntry `json:"courses"`
	TermEnd    string                 `json:"termEnd"` // YYYY-MM-DD
	CalendarID string                 `json:"calendarId"`
}

type googleCalendarResponse struct {
	Message string                        `json:"message"`
	Results []googlecalendar.InsertResult `json:"results"`
}

// GoogleCalendarHandler builds recurring events from parsed courses and
// inserts them into the caller's calendar using the bearer access token
// from the Authorization header. Sign-in and token refresh are the
// browser's problem; this endpoint only consumes the resulting token.
func GoogleCalendarHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token == "" || token == r.Header.Get("Authorization") {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Not authenticated. Please sign in with Google first.", Code: "NOT_AUTHENTICATED"})
		return
	}

	var req googleCalendarRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxUploadBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON", Code: "INVALID_JSON"})
		return
	}

	termEnd, err := time.Parse("2006-01-02", req.TermEnd)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "termEnd must be a YYYY-MM-DD date.", Code: "VALIDATION_ERROR"})
		return
	}

	events := googlecalendar.BuildEvents(req.Courses, termEnd)
	if len(events) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "At least one event is required", Code: "VALIDATION_ERROR"})
		return
	}

	calendarID := req.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	service, err := googlecalendar.ServiceForToken(r.Context(), token)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "Could not reach Google Calendar.", Code: "UPSTREAM_ERROR"})
		return
	}

	results := googlecalendar.InsertEvents(service, calendarID, events)

	succeeded, failed := 0, 0
	for _, res := range results {
		if res.Success {
			succeeded++
		} else {
			failed++
		}
	}

	message := fmt.Sprintf("Created %d event(s)", succeeded)
	if failed > 0 {
		message += fmt.Sprintf(", %d failed", failed)
	}

	status := http.StatusOK
	if failed > 0 && succeeded == 0 {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, googleCalendarResponse{Message: message, Results: results})
}
