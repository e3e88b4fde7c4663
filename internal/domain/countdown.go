package domain

import "time"

// TimerType selects the timing policy for a countdown.
type TimerType string

const (
	// TimerTypeCustom counts down the session's own configured duration.
	TimerTypeCustom TimerType = "custom"
	// TimerTypePomodoro ignores the session duration and runs fixed
	// 25-minute focus intervals with 5/15-minute breaks.
	TimerTypePomodoro TimerType = "pomodoro"
)

// TimerMode distinguishes study intervals from breaks.
type TimerMode string

const (
	ModeStudy TimerMode = "study"
	ModeBreak TimerMode = "break"
)

// TimerState represents the current state of a countdown.
type TimerState string

const (
	TimerIdle      TimerState = "idle"
	TimerRunning   TimerState = "running"
	TimerPaused    TimerState = "paused"
	TimerCompleted TimerState = "completed"
)

// Pomodoro cadence constants.
const (
	PomodoroStudyDuration = 25 * time.Minute
	ShortBreakDuration    = 5 * time.Minute
	LongBreakDuration     = 15 * time.Minute
	CyclesBeforeLongBreak = 4
)

// Countdown is the state machine driving one session's timer. It holds
// whole seconds and advances only via Tick; it never reads the clock,
// so the owner decides when seconds elapse and when ticks stop.
//
// Countdown state lives only for the lifetime of the timer view. It is
// never persisted; closing the view discards it.
type Countdown struct {
	session *StudySession

	Type  TimerType
	Mode  TimerMode
	State TimerState

	// TimeLeft and TotalTime are in seconds, 0 <= TimeLeft <= TotalTime.
	TimeLeft  int
	TotalTime int

	// PomodoroCount increments once per break actually taken after a
	// completed study cycle. Skipped breaks do not count.
	PomodoroCount int
}

// NewCountdown creates an idle study-mode countdown for the session.
// The session must have a positive duration; the host validates this
// before a timer view is ever opened.
func NewCountdown(session *StudySession) *Countdown {
	c := &Countdown{
		session: session,
		Type:    TimerTypeCustom,
		Mode:    ModeStudy,
		State:   TimerIdle,
	}
	c.loadDuration()
	return c
}

// Session returns the session this countdown is running for.
func (c *Countdown) Session() *StudySession { return c.session }

// studyDuration returns the study-interval length for the current type.
func (c *Countdown) studyDuration() int {
	if c.Type == TimerTypePomodoro {
		return int(PomodoroStudyDuration.Seconds())
	}
	return int(c.session.Duration.Seconds())
}

// breakDuration returns the length of the break numbered n (1-indexed).
// Every CyclesBeforeLongBreak-th break is long.
func breakDuration(n int) int {
	if n%CyclesBeforeLongBreak == 0 {
		return int(LongBreakDuration.Seconds())
	}
	return int(ShortBreakDuration.Seconds())
}

// loadDuration sets TimeLeft and TotalTime to the full length for the
// current mode and type.
func (c *Countdown) loadDuration() {
	if c.Mode == ModeBreak {
		c.TotalTime = breakDuration(c.PomodoroCount)
	} else {
		c.TotalTime = c.studyDuration()
	}
	c.TimeLeft = c.TotalTime
}

// SelectType switches the timing policy. Only permitted while idle;
// resets the pomodoro cycle count and recomputes the duration.
func (c *Countdown) SelectType(t TimerType) {
	if c.State != TimerIdle {
		return
	}
	c.Type = t
	c.PomodoroCount = 0
	c.loadDuration()
}

// Start begins or resumes the countdown.
func (c *Countdown) Start() {
	if c.State != TimerIdle && c.State != TimerPaused {
		return
	}
	c.State = TimerRunning
}

// Pause halts a running countdown.
func (c *Countdown) Pause() {
	if c.State != TimerRunning {
		return
	}
	c.State = TimerPaused
}

// Reset returns to idle and restores the full duration for the current
// mode. Unlike Stop, it does not leave break mode.
func (c *Countdown) Reset() {
	if c.State != TimerRunning && c.State != TimerPaused && c.State != TimerCompleted {
		return
	}
	c.State = TimerIdle
	c.loadDuration()
}

// Stop abandons the current interval entirely: back to an idle study
// interval at full study duration.
func (c *Countdown) Stop() {
	if c.State != TimerRunning && c.State != TimerPaused {
		return
	}
	c.State = TimerIdle
	c.Mode = ModeStudy
	c.loadDuration()
}

// Tick advances the countdown by one second. No-op unless running.
// When a study interval hits zero the countdown parks in the completed
// state awaiting the user's decision; when a break hits zero it rolls
// straight back to an idle study interval.
func (c *Countdown) Tick() {
	if c.State != TimerRunning {
		return
	}
	if c.TimeLeft > 0 {
		c.TimeLeft--
	}
	if c.TimeLeft > 0 {
		return
	}

	if c.Mode == ModeStudy {
		c.State = TimerCompleted
		return
	}
	c.Mode = ModeStudy
	c.State = TimerIdle
	c.loadDuration()
}

// StartBreak begins the break following a completed study interval.
// The count increments first; whether the break is long depends on the
// ordinal of the break being taken, so every 4th, 8th, ... break runs
// 15 minutes and the rest run 5.
func (c *Countdown) StartBreak() {
	if c.State != TimerCompleted || c.Mode != ModeStudy {
		return
	}
	c.PomodoroCount++
	c.Mode = ModeBreak
	c.loadDuration()
	c.State = TimerRunning
}

// SkipBreak declines the break after a completed study interval and
// returns to an idle study interval. The cycle count is unchanged.
func (c *Countdown) SkipBreak() {
	if c.State != TimerCompleted || c.Mode != ModeStudy {
		return
	}
	c.Mode = ModeStudy
	c.State = TimerIdle
	c.loadDuration()
}

// CanMarkComplete reports whether the session may be marked complete,
// which the host only offers once a study interval has finished.
func (c *Countdown) CanMarkComplete() bool {
	return c.State == TimerCompleted
}

// Progress returns the completion fraction of the current interval
// (0.0 at full time left, 1.0 at zero).
func (c *Countdown) Progress() float64 {
	if c.TotalTime == 0 {
		return 0
	}
	return float64(c.TotalTime-c.TimeLeft) / float64(c.TotalTime)
}

// NextBreakIsLong reports whether the break that would start now
// (were StartBreak called) is a long one.
func (c *Countdown) NextBreakIsLong() bool {
	return (c.PomodoroCount+1)%CyclesBeforeLongBreak == 0
}

// Remaining returns the time left as a duration.
func (c *Countdown) Remaining() time.Duration {
	return time.Duration(c.TimeLeft) * time.Second
}
