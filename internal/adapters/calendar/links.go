package calendar

import (
	"net/url"
	"time"

	"github.com/kaesv/studyflow/internal/domain"
)

// GoogleLink returns a prefilled Google Calendar event-creation URL
// for the session.
func GoogleLink(s *domain.StudySession) string {
	start := s.StartTime.UTC()
	end := start.Add(s.Duration)

	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", summary(s))
	q.Set("dates", start.Format(icsTimeLayout)+"/"+end.Format(icsTimeLayout))
	if desc := description(s); desc != "" {
		q.Set("details", desc)
	}

	return "https://calendar.google.com/calendar/render?" + q.Encode()
}

// OutlookLink returns a prefilled Outlook web event-creation URL for
// the session.
func OutlookLink(s *domain.StudySession) string {
	start := s.StartTime.UTC()
	end := start.Add(s.Duration)

	q := url.Values{}
	q.Set("path", "/calendar/action/compose")
	q.Set("rru", "addevent")
	q.Set("subject", summary(s))
	q.Set("startdt", start.Format(time.RFC3339))
	q.Set("enddt", end.Format(time.RFC3339))
	if desc := description(s); desc != "" {
		q.Set("body", desc)
	}

	return "https://outlook.live.com/calendar/0/deeplink/compose?" + q.Encode()
}
