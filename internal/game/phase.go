package game

import (
	"fmt"
	"regexp"
	"time"
)

// phaseTimeRegex accepts 24-hour HH:mm with a leading zero required.
var phaseTimeRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ValidatePhaseTime checks the raw phase time against the HH:mm pattern.
func ValidatePhaseTime(raw string) error {
	if !phaseTimeRegex.MatchString(raw) {
		return ErrBadPhaseTime
	}
	return nil
}

// NextPhaseOccurrence returns the instant of the next phase in UTC. The time
// is always placed on the next calendar day, even when today's occurrence has
// not passed yet; the scheduler has always skipped ahead a full day and games
// are paced around that.
func NextPhaseOccurrence(phaseTime string, now time.Time) (time.Time, error) {
	parsed, err := time.Parse("15:04", phaseTime)
	if err != nil {
		return time.Time{}, ErrBadPhaseTime
	}
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
	return today.AddDate(0, 0, 1), nil
}

// MinutesUntilPhase returns the whole minutes from now until the next phase.
func MinutesUntilPhase(phaseTime string, now time.Time) (int, error) {
	next, err := NextPhaseOccurrence(phaseTime, now)
	if err != nil {
		return 0, err
	}
	return int(next.Sub(now).Minutes()), nil
}

// FormatCountdown renders a minute count as "Xh Ym".
func FormatCountdown(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
