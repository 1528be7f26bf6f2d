package config

import (
	"encoding/json"
	"os"
)

// Config holds the OAuth client used for pushing events to Google
// Calendar and the optional GitHub target the generated calendar file can
// be published to.
type Config struct {
	GoogleClientID     string `json:"google_client_id"`
	GoogleClientSecret string `json:"google_client_secret"`
	GoogleRedirectURI  string `json:"google_redirect_uri"`
	GoogleCalendarID   string `json:"google_calendar_id"`
	GithubToken        string `json:"github_token"`
	GithubRepo         string `json:"github_repo"`
	GithubPath         string `json:"github_path"`
}

func LoadConfig(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// CalendarID returns the configured target calendar, defaulting to the
// user's primary calendar.
func (c *Config) CalendarID() string {
	if c.GoogleCalendarID == "" {
		return "primary"
	}
	return c.GoogleCalendarID
}
