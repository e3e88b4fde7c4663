// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/kaesv/studyflow/internal/config"
)

// Notifier handles desktop notifications.
type Notifier struct {
	cfg *config.NotificationConfig
}

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{cfg: cfg}
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if n.cfg == nil || !n.cfg.Enabled {
		return nil
	}

	return beeep.Notify(title, message, "")
}

// NotifyStudyComplete displays a notification when a study countdown runs out.
func (n *Notifier) NotifyStudyComplete(subject string) error {
	title := "📚 Study Session Complete!"
	message := fmt.Sprintf("Time is up for %s. Mark it complete or take a break.", subject)
	return n.Notify(title, message)
}

// NotifyBreakComplete displays a notification when a break runs out.
func (n *Notifier) NotifyBreakComplete(breakType string) error {
	title := "☕ Break Over!"
	message := fmt.Sprintf("Your %s break is complete. Ready to focus?", breakType)
	return n.Notify(title, message)
}

// NotifySessionUpcoming displays a reminder for a session starting soon.
func (n *Notifier) NotifySessionUpcoming(subject string, minutes int) error {
	title := "⏰ Session Starting Soon"
	message := fmt.Sprintf("%s starts in %d minutes.", subject, minutes)
	return n.Notify(title, message)
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}
