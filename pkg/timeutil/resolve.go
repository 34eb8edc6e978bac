package timeutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnparsable is returned when text that must carry a date or time has none.
var ErrUnparsable = errors.New("timeutil: could not find a date or time")

// Frequency is the period of a recurrence.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

// Recurrence describes how often a routine repeats.
type Recurrence struct {
	Frequency Frequency `json:"frequency" yaml:"frequency"`
	Interval  int       `json:"interval" yaml:"interval"`
}

// DefaultRecurrence is used for routines that do not say how often they repeat.
func DefaultRecurrence() Recurrence {
	return Recurrence{Frequency: Daily, Interval: 1}
}

// Step moves t by n periods of the recurrence. n may be negative.
func (r Recurrence) Step(t time.Time, n int) time.Time {
	interval := r.Interval
	if interval < 1 {
		interval = 1
	}
	switch r.Frequency {
	case Weekly:
		return t.AddDate(0, 0, 7*interval*n)
	case Monthly:
		return t.AddDate(0, interval*n, 0)
	case Yearly:
		return t.AddDate(interval*n, 0, 0)
	default:
		return t.AddDate(0, 0, interval*n)
	}
}

func (r Recurrence) String() string {
	if r.Interval <= 1 {
		return string(r.Frequency)
	}
	unit := map[Frequency]string{
		Daily:   "days",
		Weekly:  "weeks",
		Monthly: "months",
		Yearly:  "years",
	}[r.Frequency]
	return fmt.Sprintf("every %d %s", r.Interval, unit)
}

// Result is what the resolver found in a piece of text.
type Result struct {
	// Start is the scheduled instant. Zero when the text only carried a
	// deadline or a recurrence.
	Start   time.Time
	HasTime bool

	End        *time.Time
	Deadline   *time.Time
	Recurrence *Recurrence

	// Remainder is the text with every consumed token removed.
	Remainder string
}

// Scheduled reports whether a start instant was found.
func (r *Result) Scheduled() bool {
	return r != nil && !r.Start.IsZero()
}

// Resolver turns natural language date and time phrases into instants
// relative to Now.
type Resolver struct {
	Now func() time.Time
}

func (r *Resolver) now() time.Time {
	if r == nil || r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// Resolve scans text for date, time, range, deadline and recurrence phrases.
// It returns nil when nothing was recognized.
func (r *Resolver) Resolve(text string) *Result {
	s := newScan(text, r.now())
	s.run()
	return s.result()
}

// ParseSchedule is the strict form of Resolve used when a start instant is
// required. It never falls back to the current time.
func (r *Resolver) ParseSchedule(text string) (*Result, error) {
	res := r.Resolve(text)
	if !res.Scheduled() {
		return nil, fmt.Errorf("%w in %q", ErrUnparsable, strings.TrimSpace(text))
	}
	return res, nil
}

// StartOfDay returns midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
