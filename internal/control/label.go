package control

import "time"

// Label is the track name line. An error message temporarily replaces it and
// reverts to the last track name once its time is up.
type Label struct {
	track   string
	message string
	until   time.Time
	errors  int
}

func NewLabel(initial string) *Label {
	return &Label{track: initial}
}

func (l *Label) SetTrack(name string) {
	l.track = name
}

func (l *Label) Track() string { return l.track }

func (l *Label) ShowError(msg string, now time.Time, d time.Duration) {
	l.message = msg
	l.until = now.Add(d)
	l.errors++
}

func (l *Label) IsError(now time.Time) bool {
	return l.message != "" && now.Before(l.until)
}

func (l *Label) Text(now time.Time) string {
	if l.IsError(now) {
		return l.message
	}
	return l.track
}

// Errors counts every error shown so far.
func (l *Label) Errors() int { return l.errors }
