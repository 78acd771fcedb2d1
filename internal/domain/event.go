package domain

import "time"

// Event is an upstream event record for a landmark.
type Event struct {
	EventID    string    `json:"eventId"`
	LandmarkID string    `json:"landMarkId"`
	Name       string    `json:"name"`
	StartsAt   time.Time `json:"startsAt"`
	Venue      string    `json:"venue"`
}
