// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kaesv/studyflow/internal/config"
	"github.com/kaesv/studyflow/internal/domain"
)

// resolveTheme fills any empty string fields in the given ThemeConfig
// with defaults. A nil theme yields the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	if resolved.ColorStudy == "" {
		resolved.ColorStudy = defaults.ColorStudy
	}
	if resolved.ColorBreak == "" {
		resolved.ColorBreak = defaults.ColorBreak
	}
	if resolved.ColorPaused == "" {
		resolved.ColorPaused = defaults.ColorPaused
	}
	if resolved.ColorTitle == "" {
		resolved.ColorTitle = defaults.ColorTitle
	}
	if resolved.ColorHelp == "" {
		resolved.ColorHelp = defaults.ColorHelp
	}
	if resolved.IconApp == "" {
		resolved.IconApp = defaults.IconApp
	}
	if resolved.IconStreak == "" {
		resolved.IconStreak = defaults.IconStreak
	}
	if resolved.IconDone == "" {
		resolved.IconDone = defaults.IconDone
	}
	if resolved.IconPaused == "" {
		resolved.IconPaused = defaults.IconPaused
	}
	return resolved
}

// tickMsg is sent once per second while the countdown runs. It carries
// the generation of the tick chain that produced it; messages from a
// chain orphaned by a pause, stop or reset are discarded so a resume
// never leaves two chains ticking at once.
type tickMsg struct {
	gen int
}

// Model represents the TUI state. It owns the countdown directly; the
// tick loop only runs while the countdown does, so an idle or paused
// timer costs nothing.
type Model struct {
	countdown *domain.Countdown
	progress  progress.Model
	theme     config.ThemeConfig

	width  int
	height int

	// marked is set once the user marks the session complete through
	// the view. The countdown can keep running breaks afterwards.
	marked    bool
	notified  bool
	lastError error

	// tickGen identifies the live tick chain. Bumped whenever the
	// countdown leaves or re-enters the running state.
	tickGen int

	confirmStop bool

	// markComplete persists the completion; set by the host.
	markComplete func() error
	// onStudyExpired fires once when a study interval runs out.
	onStudyExpired func()
	// onBreakExpired fires when a break runs out.
	onBreakExpired func(long bool)
}

// NewModel creates a TUI model for the given session.
func NewModel(session *domain.StudySession, theme *config.ThemeConfig) Model {
	return Model{
		countdown: domain.NewCountdown(session),
		progress:  progress.New(progress.WithDefaultGradient()),
		theme:     resolveTheme(theme),
	}
}

// Countdown exposes the underlying state machine.
func (m Model) Countdown() *domain.Countdown { return m.countdown }

// Init initializes the TUI. No tick is scheduled until the countdown
// starts.
func (m Model) Init() tea.Cmd {
	return nil
}

// tickCmd creates a command that sends a tick message after one second,
// stamped with the given chain generation.
func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 4

	case tickMsg:
		if msg.gen != m.tickGen {
			return m, nil
		}
		wasBreak := m.countdown.Mode == domain.ModeBreak
		wasLong := wasBreak && m.countdown.TotalTime == int(domain.LongBreakDuration.Seconds())

		m.countdown.Tick()

		if m.countdown.State == domain.TimerCompleted && !m.notified {
			m.notified = true
			if m.onStudyExpired != nil {
				m.onStudyExpired()
			}
			return m, nil
		}
		if wasBreak && m.countdown.Mode == domain.ModeStudy {
			if m.onBreakExpired != nil {
				m.onBreakExpired(wasLong)
			}
			return m, nil
		}
		if m.countdown.State == domain.TimerRunning {
			return m, tickCmd(m.tickGen)
		}
		return m, nil
	}

	newProgress, cmd := m.progress.Update(msg)
	if p, ok := newProgress.(progress.Model); ok {
		m.progress = p
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Any key other than the confirm key cancels a pending stop.
	if m.confirmStop && key != "x" {
		m.confirmStop = false
	}

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "s":
		if m.countdown.State == domain.TimerIdle || m.countdown.State == domain.TimerPaused {
			m.countdown.Start()
			m.tickGen++
			return m, tickCmd(m.tickGen)
		}

	case "p":
		switch m.countdown.State {
		case domain.TimerRunning:
			m.countdown.Pause()
			m.tickGen++
		case domain.TimerPaused:
			m.countdown.Start()
			m.tickGen++
			return m, tickCmd(m.tickGen)
		}

	case "r":
		m.countdown.Reset()
		m.notified = false
		m.tickGen++

	case "x":
		if m.countdown.State != domain.TimerRunning && m.countdown.State != domain.TimerPaused {
			return m, nil
		}
		if !m.confirmStop {
			m.confirmStop = true
			return m, nil
		}
		m.confirmStop = false
		m.countdown.Stop()
		m.notified = false
		m.tickGen++

	case "t":
		if m.countdown.State == domain.TimerIdle {
			if m.countdown.Type == domain.TimerTypeCustom {
				m.countdown.SelectType(domain.TimerTypePomodoro)
			} else {
				m.countdown.SelectType(domain.TimerTypeCustom)
			}
		}

	case "b":
		if m.countdown.CanMarkComplete() {
			m.countdown.StartBreak()
			m.notified = false
			m.tickGen++
			return m, tickCmd(m.tickGen)
		}

	case "k":
		if m.countdown.CanMarkComplete() {
			m.countdown.SkipBreak()
			m.notified = false
		}

	case "enter", "c":
		if m.countdown.CanMarkComplete() && !m.marked && m.markComplete != nil {
			if err := m.markComplete(); err != nil {
				m.lastError = err
				return m, nil
			}
			m.marked = true
			m.lastError = nil
		}
	}

	return m, nil
}

// timerColor returns the color for the current mode, dimmed while paused.
func (m Model) timerColor() lipgloss.Color {
	if m.countdown.State == domain.TimerPaused {
		return lipgloss.Color(m.theme.ColorPaused)
	}
	if m.countdown.Mode == domain.ModeBreak {
		return lipgloss.Color(m.theme.ColorBreak)
	}
	return lipgloss.Color(m.theme.ColorStudy)
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	session := m.countdown.Session()
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
	statusStyle := lipgloss.NewStyle().Foreground(m.timerColor())

	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle)).MarginBottom(1)
	sections = append(sections, titleStyle.Render(fmt.Sprintf("%s %s", m.theme.IconApp, session.Subject)))

	if session.Topic != "" {
		topicStyle := lipgloss.NewStyle().Italic(true).Faint(true)
		sections = append(sections, topicStyle.Render(session.Topic))
	}

	sections = append(sections, statusStyle.Render(m.statusLine()))

	// Big clock
	sections = append(sections, "")
	sections = append(sections, renderBigTime(formatClock(m.countdown.TimeLeft), m.timerColor(), m.width))

	if m.countdown.State == domain.TimerPaused {
		pauseBadge := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(m.theme.ColorPaused)).
			Padding(0, 1).
			Render(fmt.Sprintf("%s PAUSED", m.theme.IconPaused))
		sections = append(sections, "")
		sections = append(sections, pauseBadge)
	}

	// Progress bar keyed to the current mode
	sections = append(sections, "")
	pbar := progress.New(progress.WithSolidFill(string(m.timerColor())))
	pbar.Width = m.width - 4
	sections = append(sections, pbar.ViewAs(m.countdown.Progress()))

	if m.countdown.Type == domain.TimerTypePomodoro && m.countdown.PomodoroCount > 0 {
		cycleText := fmt.Sprintf("%d pomodoro cycles done", m.countdown.PomodoroCount)
		sections = append(sections, helpStyle.Render(cycleText))
	}

	// Workspace context for coding-practice sessions
	if session.RepoBranch != "" {
		commitShort := session.RepoCommit
		if len(commitShort) > 7 {
			commitShort = commitShort[:7]
		}
		sections = append(sections, helpStyle.Render(fmt.Sprintf("⎇ %s (%s)", session.RepoBranch, commitShort)))
	}

	if m.lastError != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C"))
		sections = append(sections, "")
		sections = append(sections, errStyle.Render("Error: "+m.lastError.Error()))
	}

	sections = append(sections, "")
	sections = append(sections, helpStyle.Render(m.helpLine()))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// statusLine describes the countdown state in one line.
func (m Model) statusLine() string {
	if m.marked && m.countdown.Mode == domain.ModeStudy && m.countdown.State == domain.TimerCompleted {
		return fmt.Sprintf("%s Session complete, logged", m.theme.IconDone)
	}

	var mode string
	if m.countdown.Mode == domain.ModeBreak {
		if m.countdown.TotalTime == int(domain.LongBreakDuration.Seconds()) {
			mode = "Long break"
		} else {
			mode = "Short break"
		}
	} else if m.countdown.Type == domain.TimerTypePomodoro {
		mode = "Pomodoro"
	} else {
		mode = "Study"
	}

	switch m.countdown.State {
	case domain.TimerIdle:
		return fmt.Sprintf("%s · ready", mode)
	case domain.TimerRunning:
		return fmt.Sprintf("%s · running", mode)
	case domain.TimerPaused:
		return fmt.Sprintf("%s · paused", mode)
	case domain.TimerCompleted:
		return fmt.Sprintf("%s · time's up!", mode)
	}
	return mode
}

// helpLine lists the keys available in the current state.
func (m Model) helpLine() string {
	if m.confirmStop {
		return "Stop and discard this interval? [x] confirm · any key cancels"
	}

	switch m.countdown.State {
	case domain.TimerIdle:
		typeLabel := "pomodoro"
		if m.countdown.Type == domain.TimerTypePomodoro {
			typeLabel = "custom"
		}
		return fmt.Sprintf("[s]tart  [t]ype: switch to %s  [q]uit", typeLabel)

	case domain.TimerRunning:
		return "[p]ause  [r]eset  [x] stop  [q]uit"

	case domain.TimerPaused:
		return "[p] resume  [r]eset  [x] stop  [q]uit"

	case domain.TimerCompleted:
		breakLabel := "5m break"
		if m.countdown.NextBreakIsLong() {
			breakLabel = "15m break, you earned it"
		}
		if m.marked {
			return fmt.Sprintf("[b] %s  [q]uit", breakLabel)
		}
		return fmt.Sprintf("[enter] mark complete  [b] %s  [k] skip break  [q]uit", breakLabel)
	}
	return "[q]uit"
}

// formatClock formats whole seconds as MM:SS.
func formatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
