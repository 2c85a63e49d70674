// Package worldtime looks up the current time in a fixed timezone from a
// public time API. Lookups are best effort and always produce a printable
// sentence.
package worldtime

import (
	"context"
	"log/slog"

	"sparklebot/pkg/api"

	"github.com/tidwall/gjson"
)

const (
	DefaultURL   = "https://worldtimeapi.org/api/timezone/Europe/Rome"
	DefaultPlace = "Italy"

	FetchFailed = "Could not fetch time."
	ParseFailed = "Failed to parse time data."
)

// Fetcher performs one GET per lookup, without retries.
type Fetcher struct {
	Sender api.Sender
	URL    string
	Place  string
}

// NewFetcher creates a fetcher for url. An empty url uses the Europe/Rome endpoint.
func NewFetcher(sender api.Sender, url string) *Fetcher {
	if url == "" {
		url = DefaultURL
	}
	return &Fetcher{Sender: sender, URL: url, Place: DefaultPlace}
}

// Fetch returns "It's <datetime> in <place>." or one of the fallback sentences.
func (f *Fetcher) Fetch(ctx context.Context) string {
	body, err := f.Sender.Send(ctx, api.Request{Method: "GET", URL: f.URL})
	if err != nil {
		slog.Warn("Time fetch error", "url", f.URL, "error", err)
		return FetchFailed
	}

	if !gjson.ValidBytes(body) {
		slog.Warn("Error parsing time data", "reason", "invalid JSON", "size", len(body))
		return ParseFailed
	}
	datetime := gjson.GetBytes(body, "datetime")
	if datetime.Type != gjson.String {
		slog.Warn("Error parsing time data", "reason", "datetime missing or not a string")
		return ParseFailed
	}

	return "It's " + datetime.String() + " in " + f.Place + "."
}
