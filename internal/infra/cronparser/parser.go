package cronparser

import (
	"errors"
	"fmt"
	"strings"
	"time"

	cron "github.com/netresearch/go-cron"
)

// ErrNoNextRun is returned when a schedule never fires again.
var ErrNoNextRun = errors.New("schedule has no next run")

var _parser = cron.MustNewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Schedule is a parsed five-field cron expression bound to a timezone.
type Schedule struct {
	spec     string
	schedule cron.Schedule
}

// String returns the expression the schedule was parsed from, including its timezone prefix.
func (s Schedule) String() string {
	return s.spec
}

// NextAfter returns the next occurrence strictly after `after`.
func (s Schedule) NextAfter(after time.Time) (time.Time, error) {
	next := s.schedule.Next(after)
	if next.IsZero() {
		return time.Time{}, fmt.Errorf("%q: %w", s.spec, ErrNoNextRun)
	}

	return next, nil
}

// Parser parses cron expressions with go-cron.
type Parser struct{}

// New creates a new cron parser.
func New() *Parser {
	return &Parser{}
}

// Parse parses spec in timezone tz. An inline CRON_TZ=/TZ= prefix wins over tz;
// without either the schedule runs in UTC.
func (p *Parser) Parse(spec, tz string) (Schedule, error) {
	fullSpec := withTimezone(strings.TrimSpace(spec), tz)

	schedule, err := _parser.Parse(fullSpec)
	if err != nil {
		return Schedule{}, fmt.Errorf("parse cron spec %q: %w", spec, err)
	}

	return Schedule{spec: fullSpec, schedule: schedule}, nil
}

// NextAfter parses spec and returns its next occurrence strictly after `after`.
func (p *Parser) NextAfter(spec, tz string, after time.Time) (time.Time, error) {
	schedule, err := p.Parse(spec, tz)
	if err != nil {
		return time.Time{}, err
	}

	return schedule.NextAfter(after)
}

func withTimezone(spec, tz string) string {
	if strings.HasPrefix(spec, "CRON_TZ=") || strings.HasPrefix(spec, "TZ=") {
		return spec
	}

	if tz == "" {
		tz = "UTC"
	}

	return "CRON_TZ=" + tz + " " + spec
}
