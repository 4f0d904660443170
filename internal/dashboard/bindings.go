package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownBinding is returned when no handler is registered for a control
// and event pair.
var ErrUnknownBinding = errors.New("dashboard: unknown binding")

// Event names.
const (
	EventClick = "click"
)

// Binding identifies a control event.
type Binding struct {
	Control string `json:"control"`
	Event   string `json:"event"`
}

func (b Binding) String() string { return b.Control + "/" + b.Event }

// Input carries the form values submitted with an event, keyed by element ID.
type Input map[string]string

// Get returns the value of id.
func (in Input) Get(id string) string {
	if in == nil {
		return ""
	}
	return in[id]
}

// Handler reacts to one control event.
type Handler func(ctx context.Context, in Input) error

// Bindings is the event subscription table.
type Bindings struct {
	mu       sync.RWMutex
	handlers map[Binding]Handler
}

// NewBindings constructs an empty table.
func NewBindings() *Bindings {
	return &Bindings{handlers: make(map[Binding]Handler)}
}

// On registers h for control/event, replacing any previous handler.
func (b *Bindings) On(control, event string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[Binding{Control: control, Event: event}] = h
}

// List enumerates the bindings sorted by control then event.
func (b *Bindings) List() []Binding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Binding, 0, len(b.handlers))
	for k := range b.handlers {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Control != out[j].Control {
			return out[i].Control < out[j].Control
		}
		return out[i].Event < out[j].Event
	})
	return out
}

// Dispatch runs the handler bound to control/event.
func (b *Bindings) Dispatch(ctx context.Context, control, event string, in Input) error {
	b.mu.RLock()
	h, ok := b.handlers[Binding{Control: control, Event: event}]
	b.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrUnknownBinding, control, event)
	}
	return h(ctx, in)
}
