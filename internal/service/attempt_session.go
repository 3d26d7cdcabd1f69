package service

import (
	"sync"
	"time"

	"github.com/khanhlt/learnboard/internal/model"
)

// attemptSession is one InProgress quiz run. The session owns its countdown
// timer; every exit path (manual submit, forced timeout, teardown) goes
// through the registry lock so the timer can never fire after the attempt
// is closed.
type attemptSession struct {
	id          string
	studentID   uint
	studentName string
	quiz        model.Quiz
	startedAt   time.Time
	expiresAt   time.Time
	answers     map[string]string
	submitted   bool
	timer       *time.Timer
}

func (s *attemptSession) secondsRemaining(now time.Time) int {
	remaining := int(s.expiresAt.Sub(now).Seconds())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// close marks the session submitted and cancels the countdown. Returns
// false when the session was already closed.
func (s *attemptSession) close() bool {
	if s.submitted {
		return false
	}
	s.submitted = true
	if s.timer != nil {
		s.timer.Stop()
	}
	return true
}

type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*attemptSession
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*attemptSession)}
}
