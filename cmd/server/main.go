package main

import (
	"log"
	"net/http"
	"os"

	"zewailcalendar/site"
)

func main() {
	httpPort := os.Getenv("HTTP_PORT")
	if httpPort == "" {
		httpPort = "8100"
	}

	http.HandleFunc("/api/parse", site.ParseHandler)
	http.HandleFunc("/api/ics", site.ICSHandler)
	http.HandleFunc("/api/google-calendar", site.GoogleCalendarHandler)

	log.Printf("Starting HTTP server on http://localhost:%s\n", httpPort)
	log.Fatal(http.ListenAndServe(":"+httpPort, nil))
}
