package services

import (
	"sync"
	"time"
)

// Scheduler runs a task once after a delay.
type Scheduler interface {
	Schedule(delay time.Duration, task func())
}

// TimerScheduler owns one runtime timer per scheduled task. Stop cancels the
// timers that have not fired and waits for running tasks.
type TimerScheduler struct {
	mu      sync.Mutex
	timers  map[*time.Timer]struct{}
	stopped bool
	wg      sync.WaitGroup
}

func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{timers: make(map[*time.Timer]struct{})}
}

func (s *TimerScheduler) Schedule(delay time.Duration, task func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	var t *time.Timer
	s.wg.Add(1)
	t = time.AfterFunc(delay, func() {
		defer s.wg.Done()

		s.mu.Lock()
		_, live := s.timers[t]
		delete(s.timers, t)
		s.mu.Unlock()

		if live {
			task()
		}
	})
	s.timers[t] = struct{}{}
}

// Pending returns the number of tasks that have not started yet.
func (s *TimerScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	for t := range s.timers {
		if t.Stop() {
			s.wg.Done()
		}
		delete(s.timers, t)
	}
	s.mu.Unlock()

	s.wg.Wait()
}
