// Package planner synthesizes canned study plans from a static,
// embedded topic table. Plans are suggestions only; nothing here
// touches storage.
package planner

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	_ "embed"

	"gopkg.in/yaml.v3"

	"github.com/kaesv/studyflow/internal/domain"
)

//go:embed plans.yaml
var plansYAML []byte

// ErrUnknownSubject is returned when no canned plan exists for a subject.
var ErrUnknownSubject = errors.New("no study plan for subject")

// StudyPlan is a suggested topic list for one subject at one difficulty.
type StudyPlan struct {
	Subject          string
	Difficulty       domain.Difficulty
	Topics           []string
	SuggestedMinutes int
}

type planEntry struct {
	Minutes int      `yaml:"minutes"`
	Topics  []string `yaml:"topics"`
}

type subjectEntry struct {
	Name  string               `yaml:"name"`
	Plans map[string]planEntry `yaml:"plans"`
}

type planTable struct {
	Subjects []subjectEntry `yaml:"subjects"`
}

// Planner serves study plans from the embedded table.
type Planner struct {
	subjects map[string]subjectEntry
	names    []string
}

// Load parses the embedded plan table.
func Load() (*Planner, error) {
	var table planTable
	if err := yaml.Unmarshal(plansYAML, &table); err != nil {
		return nil, fmt.Errorf("failed to parse plan table: %w", err)
	}

	p := &Planner{
		subjects: make(map[string]subjectEntry, len(table.Subjects)),
	}
	for _, s := range table.Subjects {
		p.subjects[strings.ToLower(s.Name)] = s
		p.names = append(p.names, s.Name)
	}
	sort.Strings(p.names)
	return p, nil
}

// Subjects returns the subjects with canned plans, sorted by name.
func (p *Planner) Subjects() []string {
	return p.names
}

// Plan returns the topic list for a subject at the given difficulty.
// The subject lookup is case-insensitive.
func (p *Planner) Plan(subject string, difficulty domain.Difficulty) (*StudyPlan, error) {
	if _, err := domain.ValidateDifficulty(string(difficulty)); err != nil {
		return nil, err
	}

	entry, ok := p.subjects[strings.ToLower(strings.TrimSpace(subject))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSubject, subject)
	}

	plan, ok := entry.Plans[string(difficulty)]
	if !ok || len(plan.Topics) == 0 {
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnknownSubject, subject, difficulty)
	}

	topics := make([]string, len(plan.Topics))
	copy(topics, plan.Topics)

	return &StudyPlan{
		Subject:          entry.Name,
		Difficulty:       difficulty,
		Topics:           topics,
		SuggestedMinutes: plan.Minutes,
	}, nil
}

// Sessions expands a plan into one scheduled session per topic, spaced
// a day apart starting from start.
func (plan *StudyPlan) Sessions(start time.Time) ([]*domain.StudySession, error) {
	duration := time.Duration(plan.SuggestedMinutes) * time.Minute
	sessions := make([]*domain.StudySession, 0, len(plan.Topics))

	for i, topic := range plan.Topics {
		session, err := domain.NewStudySession(plan.Subject, duration, start.AddDate(0, 0, i))
		if err != nil {
			return nil, err
		}
		session.Topic = topic
		session.Difficulty = plan.Difficulty
		sessions = append(sessions, session)
	}
	return sessions, nil
}
