package visualizer

import "time"

// Clock supplies the wall-clock time of each frame.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Scheduler is the tick source of the loop. The window's update callback
// calls Step once per refresh; tests call it directly with a fake clock.
type Scheduler struct {
	clock  Clock
	tick   func(now time.Time)
	frames uint64
}

func NewScheduler(clock Clock, tick func(now time.Time)) *Scheduler {
	return &Scheduler{clock: clock, tick: tick}
}

// Step runs one tick and returns the time it was given.
func (s *Scheduler) Step() time.Time {
	now := s.clock.Now()
	s.tick(now)
	s.frames++
	return now
}

func (s *Scheduler) Frames() uint64 { return s.frames }
