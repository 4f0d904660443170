package theme

import (
	"context"
	"log/slog"
	"sync"
)

// Listener is notified after every transition.
type Listener func(Theme)

// Controller owns the process wide theme state.
type Controller struct {
	// transition serialises Toggle so persistence and listeners observe
	// transitions in the order they happened.
	transition sync.Mutex

	mu        sync.Mutex
	current   Theme
	store     Store
	logger    *slog.Logger
	listeners []Listener
}

// NewController resolves the initial theme: persisted preference first, then the
// environment preference, then Light. Any stored value other than "dark" counts
// as Light.
func NewController(ctx context.Context, store Store, prefersDark bool, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{current: Light, store: store, logger: logger}
	if prefersDark {
		c.current = Dark
	}
	if store == nil {
		return c
	}
	value, ok, err := store.Get(ctx, StorageKey)
	if err != nil {
		logger.Warn("load theme preference", slog.Any("error", err))
		return c
	}
	if !ok || value == "" {
		return c
	}
	saved, err := Parse(value)
	if err != nil {
		logger.Warn("unrecognised theme preference, using light", slog.String("value", value))
		saved = Light
	}
	c.current = saved
	return c
}

// Current returns the active theme.
func (c *Controller) Current() Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Subscribe registers fn for transitions.
func (c *Controller) Subscribe(fn Listener) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Toggle flips the theme, persists it and notifies listeners. Persistence
// failures are logged and do not undo the transition.
func (c *Controller) Toggle(ctx context.Context) Theme {
	c.transition.Lock()
	defer c.transition.Unlock()

	c.mu.Lock()
	c.current = c.current.Toggle()
	next := c.current
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.Unlock()

	if c.store != nil {
		if err := c.store.Set(ctx, StorageKey, string(next)); err != nil {
			c.logger.Warn("persist theme preference", slog.Any("error", err))
		}
	}
	c.logger.Info("theme toggled", slog.String("theme", string(next)))
	for _, fn := range listeners {
		fn(next)
	}
	return next
}
