package model

import (
	"encoding/json"
	"time"
)

// EventInfo is the summary header of an event.
type EventInfo struct {
	Title            string    `json:"title"`
	Date             time.Time `json:"date"`
	IsPast           bool      `json:"isPast"`
	RegistrationLink string    `json:"registrationLink,omitempty"`
}

// EventRecord is a full event: its info header plus an ordered sequence
// of opaque content blocks. Blocks are kept as raw JSON since the
// assistant only ever serializes them back into the prompt context.
type EventRecord struct {
	ID       string            `json:"id"`
	Info     EventInfo         `json:"info"`
	Sections []json.RawMessage `json:"sections,omitempty"`
}

// EventSet is the cached view of all events. Upcoming events keep their
// full records in upstream order; past events are compacted to their
// info headers, newest first, at most five.
type EventSet struct {
	Upcoming []EventRecord `json:"upcoming"`
	Past     []EventInfo   `json:"past"`
}

// Empty reports whether the set holds no events in either subset.
func (s EventSet) Empty() bool {
	return len(s.Upcoming) == 0 && len(s.Past) == 0
}

// Clone returns a shallow-safe copy of the set. Section blocks are
// immutable by convention (raw JSON, never modified in place), so the
// slices are copied but the blocks themselves are shared.
func (s EventSet) Clone() EventSet {
	var c EventSet
	if s.Upcoming != nil {
		c.Upcoming = make([]EventRecord, len(s.Upcoming))
		copy(c.Upcoming, s.Upcoming)
	}
	if s.Past != nil {
		c.Past = make([]EventInfo, len(s.Past))
		copy(c.Past, s.Past)
	}
	return c
}
