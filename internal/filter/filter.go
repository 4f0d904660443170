// Package filter validates the dashboard date range.
package filter

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/salesdash/internal/notify"
)

// DateLayout is the input value format.
const DateLayout = "2006-01-02"

// displayLayout matches en-US short dates.
const displayLayout = "1/2/2006"

// Bounds and defaults of the picker.
var (
	MinDate      = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	MaxDate      = time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	DefaultStart = time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	DefaultEnd   = time.Date(2023, 9, 30, 0, 0, 0, 0, time.UTC)
)

// User facing messages.
const (
	MsgMissing     = "Please select both a start and end date"
	MsgOrder       = "Start date must be before end date"
	MsgReset       = "Filters reset to default"
	msgOutOfBounds = "Dates must be between %s and %s"
	msgFiltered    = "Data filtered from %s to %s"
)

// Notifier receives the outcome of each action.
type Notifier interface {
	Notify(kind notify.Kind, message string) notify.Toast
}

// Range is the pair of input values.
type Range struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02"`
	End   string `json:"end" validate:"required,datetime=2006-01-02"`
}

// DefaultRange returns the initial picker values.
func DefaultRange() Range {
	return Range{Start: DefaultStart.Format(DateLayout), End: DefaultEnd.Format(DateLayout)}
}

// Result is the outcome of Apply or Reset.
type Result struct {
	OK      bool
	Message string
	Start   time.Time
	End     time.Time
}

var validate = validator.New()

// Controller holds the date inputs. Applying a range never changes the dataset.
type Controller struct {
	mu       sync.Mutex
	current  Range
	notifier Notifier
	logger   *slog.Logger
}

// NewController starts at the default range.
func NewController(notifier Notifier, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{current: DefaultRange(), notifier: notifier, logger: logger}
}

// Range returns the current input values.
func (c *Controller) Range() Range {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Bounds returns the min and max input values.
func (c *Controller) Bounds() (string, string) {
	return MinDate.Format(DateLayout), MaxDate.Format(DateLayout)
}

// Apply records the inputs and validates them, emitting exactly one
// notification.
func (c *Controller) Apply(start, end string) Result {
	c.mu.Lock()
	c.current = Range{Start: start, End: end}
	c.mu.Unlock()

	res := Check(Range{Start: start, End: end})
	c.emit(res)
	return res
}

// Reset restores the default range.
func (c *Controller) Reset() Result {
	c.mu.Lock()
	c.current = DefaultRange()
	c.mu.Unlock()

	res := Result{OK: true, Message: MsgReset, Start: DefaultStart, End: DefaultEnd}
	c.emit(res)
	return res
}

func (c *Controller) emit(res Result) {
	kind := notify.Success
	if !res.OK {
		kind = notify.Error
	}
	c.logger.Debug("date filter", slog.Bool("ok", res.OK), slog.String("message", res.Message))
	if c.notifier != nil {
		c.notifier.Notify(kind, res.Message)
	}
}

// Check validates r without side effects.
func Check(r Range) Result {
	if err := validate.Struct(r); err != nil {
		return Result{Message: MsgMissing}
	}
	start, _ := time.Parse(DateLayout, r.Start)
	end, _ := time.Parse(DateLayout, r.End)
	if start.After(end) {
		return Result{Message: MsgOrder, Start: start, End: end}
	}
	if start.Before(MinDate) || end.After(MaxDate) {
		return Result{
			Message: fmt.Sprintf(msgOutOfBounds, FormatDisplay(MinDate), FormatDisplay(MaxDate)),
			Start:   start,
			End:     end,
		}
	}
	return Result{
		OK:      true,
		Message: fmt.Sprintf(msgFiltered, FormatDisplay(start), FormatDisplay(end)),
		Start:   start,
		End:     end,
	}
}

// FormatDisplay renders t as M/D/YYYY.
func FormatDisplay(t time.Time) string {
	return t.Format(displayLayout)
}
