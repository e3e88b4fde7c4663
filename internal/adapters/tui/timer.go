package tui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kaesv/studyflow/internal/adapters/notification"
	"github.com/kaesv/studyflow/internal/config"
	"github.com/kaesv/studyflow/internal/domain"
	"github.com/kaesv/studyflow/internal/ports"
)

// Timer implements the ports.TimerView interface using Bubbletea.
type Timer struct {
	program  *tea.Program
	theme    *config.ThemeConfig
	notifier *notification.Notifier

	mu         sync.Mutex
	wg         sync.WaitGroup
	onComplete func(sessionID string) error
	onClose    func()
}

// NewTimer creates a new TUI timer adapter. The notifier may be nil.
func NewTimer(theme *config.ThemeConfig, notifier *notification.Notifier) *Timer {
	return &Timer{
		theme:    theme,
		notifier: notifier,
	}
}

// Ensure Timer implements ports.TimerView.
var _ ports.TimerView = (*Timer)(nil)

// SetOnComplete sets the callback invoked when the user marks the
// session complete.
func (t *Timer) SetOnComplete(callback func(sessionID string) error) {
	t.mu.Lock()
	t.onComplete = callback
	t.mu.Unlock()
}

// SetOnClose sets the callback invoked when the view closes without
// the session being marked complete.
func (t *Timer) SetOnClose(callback func()) {
	t.mu.Lock()
	t.onClose = callback
	t.mu.Unlock()
}

// Run starts the timer interface for the session and blocks until the
// user quits it.
func (t *Timer) Run(ctx context.Context, session *domain.StudySession) error {
	model := NewModel(session, t.theme)

	t.mu.Lock()
	onComplete := t.onComplete
	onClose := t.onClose
	t.mu.Unlock()

	if onComplete != nil {
		model.markComplete = func() error {
			return onComplete(session.ID)
		}
	}
	if t.notifier != nil {
		model.onStudyExpired = func() {
			_ = t.notifier.NotifyStudyComplete(session.Subject)
		}
		model.onBreakExpired = func(long bool) {
			breakType := "short"
			if long {
				breakType = "long"
			}
			_ = t.notifier.NotifyBreakComplete(breakType)
		}
	}

	t.mu.Lock()
	t.program = tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)
	t.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		<-runCtx.Done()
		t.mu.Lock()
		program := t.program
		t.mu.Unlock()
		if program != nil {
			program.Quit()
		}
	}()

	final, err := t.program.Run()
	cancel()
	t.wg.Wait()
	if err != nil {
		return fmt.Errorf("failed to run timer view: %w", err)
	}

	if fm, ok := final.(Model); ok && !fm.marked && onClose != nil {
		onClose()
	}
	return nil
}

// Stop gracefully stops the timer interface.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.program != nil {
		t.program.Quit()
	}
}
