// Package notify shows transient toast notifications.
package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind is the toast severity.
type Kind string

// Supported kinds.
const (
	Success Kind = "success"
	Error   Kind = "error"
)

// Toast timings.
const (
	VisibleFor = 3 * time.Second
	FadeFor    = 500 * time.Millisecond
)

// Toast is a single shown notification.
type Toast struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	Fading    bool      `json:"fading"`
}

// Timer is the subset of *time.Timer the service needs.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler func(d time.Duration, f func()) Timer

func realScheduler(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Recorder observes emitted notifications.
type Recorder interface {
	NotificationSent(kind string)
}

// Option customises a Service.
type Option func(*Service)

// WithScheduler replaces time.AfterFunc.
func WithScheduler(s Scheduler) Option {
	return func(svc *Service) { svc.after = s }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(svc *Service) { svc.now = now }
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(svc *Service) { svc.recorder = r }
}

// Service keeps the toasts currently on screen.
type Service struct {
	mu       sync.Mutex
	toasts   []*Toast
	timers   map[string][]Timer
	closed   bool
	logger   *slog.Logger
	after    Scheduler
	now      func() time.Time
	recorder Recorder
}

// New constructs a Service.
func New(logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	svc := &Service{
		timers: make(map[string][]Timer),
		logger: logger,
		after:  realScheduler,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Notify shows message. The toast starts fading after VisibleFor and is
// removed FadeFor later. Toasts are never merged or queued.
func (s *Service) Notify(kind Kind, message string) Toast {
	s.mu.Lock()
	t := &Toast{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: s.now(),
	}
	s.logger.Info("notification", slog.String("id", t.ID), slog.String("kind", string(kind)), slog.String("message", message))
	if s.recorder != nil {
		s.recorder.NotificationSent(string(kind))
	}
	shown := *t
	if s.closed {
		s.mu.Unlock()
		return shown
	}
	s.toasts = append(s.toasts, t)
	s.mu.Unlock()

	id := shown.ID
	s.track(id, s.after(VisibleFor, func() { s.fade(id) }))
	return shown
}

// Success is shorthand for Notify(Success, message).
func (s *Service) Success(message string) Toast { return s.Notify(Success, message) }

// Error is shorthand for Notify(Error, message).
func (s *Service) Error(message string) Toast { return s.Notify(Error, message) }

// track keeps timer for Close. Schedulers run without s.mu held, so the
// toast may already be gone by the time the timer is handed back.
func (s *Service) track(id string, timer Timer) {
	s.mu.Lock()
	if !s.closed && s.indexOf(id) >= 0 {
		s.timers[id] = append(s.timers[id], timer)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	timer.Stop()
}

func (s *Service) indexOf(id string) int {
	for i, t := range s.toasts {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) fade(id string) {
	s.mu.Lock()
	i := -1
	if !s.closed {
		i = s.indexOf(id)
	}
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.toasts[i].Fading = true
	s.mu.Unlock()

	s.track(id, s.after(FadeFor, func() { s.remove(id) }))
}

func (s *Service) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.timers, id)
	if i := s.indexOf(id); i >= 0 {
		s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
	}
}

// Active returns visible and fading toasts in the order they were shown.
func (s *Service) Active() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Toast, len(s.toasts))
	for i, t := range s.toasts {
		out[i] = *t
	}
	return out
}

// Close stops all pending timers and clears the toasts.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, timers := range s.timers {
		for _, t := range timers {
			t.Stop()
		}
	}
	s.timers = map[string][]Timer{}
	s.toasts = nil
}
