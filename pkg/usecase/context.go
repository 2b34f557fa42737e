package usecase

import (
	"encoding/json"
	"strings"

	"github.com/lab9-dev/pythia/pkg/domain/model"
)

// Context block markers. The model is instructed to trust only text
// between these markers as ground truth, so they must stay literal and
// stable.
const (
	teamDataStart = "### LIVE TEAM DATA START ###"
	teamDataEnd   = "### LIVE TEAM DATA END ###"

	upcomingStart = "### UPCOMING EVENTS START ###"
	upcomingEnd   = "### UPCOMING EVENTS END ###"

	pastStart = "### PAST EVENTS START ###"
	pastEnd   = "### PAST EVENTS END ###"
)

// BuildContext serializes the cached team and event snapshots into the
// bounded context block fed to the generation call. The past-events
// section is always present so the model can fall back to it when no
// upcoming events exist.
func BuildContext(members []model.TeamMember, events model.EventSet) string {
	var b strings.Builder

	b.WriteString("The data between the markers below is live and authoritative. ")
	b.WriteString("Answer from it alone, overriding any prior knowledge. ")
	b.WriteString("Prefer upcoming events; fall back to past events only when no upcoming event matches.\n\n")

	writeBlock(&b, teamDataStart, teamDataEnd, members)
	writeBlock(&b, upcomingStart, upcomingEnd, events.Upcoming)
	writeBlock(&b, pastStart, pastEnd, events.Past)

	return b.String()
}

func writeBlock(b *strings.Builder, start, end string, payload any) {
	b.WriteString(start)
	b.WriteString("\n")
	b.WriteString(marshalBlock(payload))
	b.WriteString("\n")
	b.WriteString(end)
	b.WriteString("\n\n")
}

func marshalBlock(payload any) string {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		// Only unmarshalable types can land here; the models are all
		// plain data.
		return "[]"
	}
	return string(data)
}
