package usecase_test

import (
	"strings"
	"testing"
	"time"

	"github.com/lab9-dev/pythia/pkg/domain/model"
	"github.com/lab9-dev/pythia/pkg/usecase"
	"github.com/m-mizutani/gt"
)

// section returns the text between a start and end marker, failing the
// test when either marker is missing or out of order.
func section(t *testing.T, s, start, end string) string {
	t.Helper()
	i := strings.Index(s, start)
	j := strings.Index(s, end)
	gt.Bool(t, i >= 0).True()
	gt.Bool(t, j > i).True()
	return s[i+len(start) : j]
}

func TestBuildContext(t *testing.T) {
	members := []model.TeamMember{
		{ID: "1", Name: "Jane Doe", AccessCode: "PRESIDENT", Year: 2025},
	}
	events := model.EventSet{
		Upcoming: []model.EventRecord{
			{ID: "e1", Info: model.EventInfo{Title: "Hackathon", Date: time.Date(2026, 9, 12, 10, 0, 0, 0, time.UTC)}},
		},
		Past: []model.EventInfo{
			{Title: "Old Workshop", Date: time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC), IsPast: true},
		},
	}

	out := usecase.BuildContext(members, events)

	t.Run("team data sits between the team markers", func(t *testing.T) {
		team := section(t, out, "### LIVE TEAM DATA START ###", "### LIVE TEAM DATA END ###")
		gt.Bool(t, strings.Contains(team, "Jane Doe")).True()
		gt.Bool(t, strings.Contains(team, "PRESIDENT")).True()
	})

	t.Run("upcoming events sit between the upcoming markers", func(t *testing.T) {
		upcoming := section(t, out, "### UPCOMING EVENTS START ###", "### UPCOMING EVENTS END ###")
		gt.Bool(t, strings.Contains(upcoming, "Hackathon")).True()
	})

	t.Run("past section is present with content", func(t *testing.T) {
		past := section(t, out, "### PAST EVENTS START ###", "### PAST EVENTS END ###")
		gt.Bool(t, strings.Contains(past, "Old Workshop")).True()
	})

	t.Run("sections are ordered team, upcoming, past", func(t *testing.T) {
		i := strings.Index(out, "### LIVE TEAM DATA START ###")
		j := strings.Index(out, "### UPCOMING EVENTS START ###")
		k := strings.Index(out, "### PAST EVENTS START ###")
		gt.Bool(t, i < j && j < k).True()
	})

	t.Run("past section survives empty input", func(t *testing.T) {
		empty := usecase.BuildContext(nil, model.EventSet{})
		gt.Bool(t, strings.Contains(empty, "### PAST EVENTS START ###")).True()
		gt.Bool(t, strings.Contains(empty, "### PAST EVENTS END ###")).True()
	})
}
