package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaesv/studyflow/internal/domain"
)

func testSession(t *testing.T) *domain.StudySession {
	t.Helper()
	start := time.Date(2026, 9, 2, 14, 30, 0, 0, time.UTC)
	s, err := domain.NewStudySession("Math", 45*time.Minute, start)
	require.NoError(t, err)
	s.Topic = "Integrals"
	return s
}

func TestEscapeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"semi;colon", "semi\\;colon"},
		{"a,b,c", "a\\,b\\,c"},
		{"back\\slash", "back\\\\slash"},
		{"line\nbreak", "line\\nbreak"},
		{"crlf\r\nbreak", "crlf\\nbreak"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeText(tt.in))
	}
}

func TestICS_SingleEvent(t *testing.T) {
	s := testSession(t)
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	payload := ICS([]*domain.StudySession{s}, now)

	assert.True(t, strings.HasPrefix(payload, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(payload, "END:VCALENDAR\r\n"))
	assert.Contains(t, payload, "DTSTART:20260902T143000Z")
	assert.Contains(t, payload, "DTEND:20260902T151500Z")
	assert.Contains(t, payload, "DTSTAMP:20260901T100000Z")
	assert.Contains(t, payload, "SUMMARY:Study: Math — Integrals")
	assert.Contains(t, payload, "TRIGGER:-PT15M")
	assert.Contains(t, payload, "UID:"+s.ID+"@studyflow")

	// Exactly one event block.
	assert.Equal(t, 1, strings.Count(payload, "BEGIN:VEVENT"))
	assert.Equal(t, 1, strings.Count(payload, "BEGIN:VALARM"))
}

func TestICS_LocalTimeConvertedToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	start := time.Date(2026, 9, 2, 16, 30, 0, 0, loc)
	s, err := domain.NewStudySession("Math", 30*time.Minute, start)
	require.NoError(t, err)

	payload := ICS([]*domain.StudySession{s}, time.Now())
	assert.Contains(t, payload, "DTSTART:20260902T143000Z")
}

func TestICS_EscapesFields(t *testing.T) {
	s := testSession(t)
	s.Topic = "Integrals; u-substitution"
	s.Description = "bring notes,\nand the formula sheet"

	payload := ICS([]*domain.StudySession{s}, time.Now())
	assert.Contains(t, payload, "SUMMARY:Study: Math — Integrals\\; u-substitution")
	assert.Contains(t, payload, "DESCRIPTION:bring notes\\,\\nand the formula sheet")
}

func TestICS_GoalsInDescription(t *testing.T) {
	s := testSession(t)
	s.AddGoal("solve 5 problems")

	payload := ICS([]*domain.StudySession{s}, time.Now())
	assert.Contains(t, payload, "DESCRIPTION:- solve 5 problems")
}

func TestGoogleLink(t *testing.T) {
	s := testSession(t)
	link := GoogleLink(s)

	assert.Contains(t, link, "https://calendar.google.com/calendar/render?")
	assert.Contains(t, link, "action=TEMPLATE")
	assert.Contains(t, link, "20260902T143000Z%2F20260902T151500Z")
}

func TestOutlookLink(t *testing.T) {
	s := testSession(t)
	link := OutlookLink(s)

	assert.Contains(t, link, "https://outlook.live.com/calendar/0/deeplink/compose?")
	assert.Contains(t, link, "rru=addevent")
}
