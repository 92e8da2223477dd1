package main

import "strings"

// Song is the data model for the songs endpoint. AfterLoad and BeforeSave
// are picked up by the endpoint because Song is registered as its model.
type Song struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Duration int    `json:"duration"`

	// Display is derived locally and never sent over the wire.
	Display string `json:"-"`
}

// AfterLoad runs once per song fetched from the API.
func (s *Song) AfterLoad() error {
	s.Display = s.Title + " by " + s.Artist
	return nil
}

// BeforeSave runs on the copy of a song about to be persisted.
func (s *Song) BeforeSave() error {
	s.Title = strings.TrimSpace(s.Title)
	s.Artist = strings.TrimSpace(s.Artist)
	return nil
}
