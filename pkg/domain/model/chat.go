package model

import (
	"time"

	"github.com/lab9-dev/pythia/pkg/domain/types"
)

// ChatMetadata describes the data that backed one answer.
type ChatMetadata struct {
	MessageID     string    `json:"messageId"`
	TeamCount     int       `json:"teamCount"`
	UpcomingCount int       `json:"upcomingCount"`
	PastCount     int       `json:"pastCount"`
	Timestamp     time.Time `json:"timestamp"`
}

// ChatResult is the envelope returned for every SendMessage call.
// Success is false only for invalid input and unexpected orchestration
// failures; mapped generation fallbacks still carry Success=true with
// the fixed user-facing text.
type ChatResult struct {
	Success  bool            `json:"success"`
	Text     string          `json:"text"`
	Metadata *ChatMetadata   `json:"metadata,omitempty"`
	Error    types.ErrorKind `json:"error,omitempty"`
}

// ServiceHealth reports the outcome of each health sub-check.
type ServiceHealth struct {
	Team       bool `json:"team"`
	Events     bool `json:"events"`
	Generation bool `json:"generation"`
}

// HealthResult aggregates the sub-checks; Healthy is true iff all three
// services report ok.
type HealthResult struct {
	Healthy  bool          `json:"healthy"`
	Services ServiceHealth `json:"services"`
}

// TeamStats summarizes the cached roster.
type TeamStats struct {
	TotalMembers int `json:"totalMembers"`
}

// EventStats summarizes the cached events.
type EventStats struct {
	UpcomingCount int `json:"upcomingCount"`
	PastCount     int `json:"pastCount"`
}

// Stats is the operational snapshot returned by GetStats.
type Stats struct {
	Team      TeamStats  `json:"team"`
	Events    EventStats `json:"events"`
	Timestamp time.Time  `json:"timestamp"`
}
