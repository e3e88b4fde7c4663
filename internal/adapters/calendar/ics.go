// Package calendar renders study sessions as iCalendar payloads and
// as deep links into external calendar web UIs.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/kaesv/studyflow/internal/domain"
)

const (
	prodID = "-//studyflow//studyflow CLI//EN"

	// icsTimeLayout is the UTC timestamp format required by RFC 5545.
	icsTimeLayout = "20060102T150405Z"

	// alarmOffset is how long before the session the reminder fires.
	alarmOffset = 15 * time.Minute
)

// EscapeText escapes a text value per RFC 5545 §3.3.11: backslash,
// semicolon and comma are backslash-escaped, newlines become literal \n.
func EscapeText(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
	)
	return r.Replace(s)
}

// summary builds the event title from subject and topic.
func summary(s *domain.StudySession) string {
	if s.Topic != "" {
		return fmt.Sprintf("Study: %s — %s", s.Subject, s.Topic)
	}
	return fmt.Sprintf("Study: %s", s.Subject)
}

// description builds the event body from the session's notes and goals.
func description(s *domain.StudySession) string {
	var parts []string
	if s.Description != "" {
		parts = append(parts, s.Description)
	}
	for _, g := range s.Goals {
		parts = append(parts, "- "+g)
	}
	return strings.Join(parts, "\n")
}

// ICS renders the sessions as one VCALENDAR payload, one VEVENT per
// session, with a reminder alarm 15 minutes before each start.
// Lines are CRLF-terminated as the format requires.
func ICS(sessions []*domain.StudySession, now time.Time) string {
	var b strings.Builder
	write := func(line string) {
		b.WriteString(line)
		b.WriteString("\r\n")
	}

	write("BEGIN:VCALENDAR")
	write("VERSION:2.0")
	write("PRODID:" + prodID)
	write("CALSCALE:GREGORIAN")
	write("METHOD:PUBLISH")

	stamp := now.UTC().Format(icsTimeLayout)
	for _, s := range sessions {
		start := s.StartTime.UTC()
		end := start.Add(s.Duration)

		write("BEGIN:VEVENT")
		write("UID:" + s.ID + "@studyflow")
		write("DTSTAMP:" + stamp)
		write("DTSTART:" + start.Format(icsTimeLayout))
		write("DTEND:" + end.Format(icsTimeLayout))
		write("SUMMARY:" + EscapeText(summary(s)))
		if desc := description(s); desc != "" {
			write("DESCRIPTION:" + EscapeText(desc))
		}
		write("BEGIN:VALARM")
		write("ACTION:DISPLAY")
		write("DESCRIPTION:" + EscapeText("Study session starts in 15 minutes"))
		write(fmt.Sprintf("TRIGGER:-PT%dM", int(alarmOffset.Minutes())))
		write("END:VALARM")
		write("END:VEVENT")
	}

	write("END:VCALENDAR")
	return b.String()
}
