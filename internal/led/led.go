// Package led disables status LEDs through their sysfs attribute files.
package led

import (
	"errors"
	"fmt"

	"k8s.io/klog/v2"

	"github.com/elcritch/power-control/internal/sysfs"
)

const (
	AttrBrightness = "brightness"
	AttrTrigger    = "trigger"

	// triggerNone detaches the LED from whatever kernel event was driving it,
	// otherwise the brightness write is undone on the next event.
	triggerNone = "none"

	defaultAttempts = 3
)

// Attrs is the accessor seam to the LED class directory. Satisfied by
// *sysfs.Dir; tests substitute fakes that fail a configurable number of times.
type Attrs interface {
	WriteAttr(sub, name, value string) error
	List() ([]string, error)
}

// Controller lists and disables LEDs. Writes are retried a bounded number of
// times before failure is surfaced; LED driver writes occasionally fail
// transiently during early boot, unlike cpufreq writes where a rejection is
// authoritative.
type Controller struct {
	attrs Attrs

	attempts  int
	retryable func(error) bool
}

type Option interface {
	apply(*Controller)
}

type attempts struct {
	Count int
}

func (a *attempts) apply(c *Controller) {
	// The first try is not optional.
	if a.Count < 1 {
		c.attempts = 1
		return
	}
	c.attempts = a.Count
}

// Attempts sets the total number of write attempts (first try included).
func Attempts(count int) Option {
	return &attempts{count}
}

type retryableWhen struct {
	Predicate func(error) bool
}

func (r *retryableWhen) apply(c *Controller) {
	c.retryable = r.Predicate
}

// RetryableWhen replaces the policy deciding which write errors are worth
// another attempt.
func RetryableWhen(predicate func(error) bool) Option {
	return &retryableWhen{predicate}
}

// A missing LED will not appear by retrying; everything else might.
func defaultRetryable(err error) bool {
	return !errors.Is(err, sysfs.ErrNotFound)
}

func NewController(attrs Attrs, opts ...Option) *Controller {
	controller := &Controller{
		attrs:     attrs,
		attempts:  defaultAttempts,
		retryable: defaultRetryable,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.apply(controller)
	}
	return controller
}

// List returns the LED names present under the class directory.
func (c *Controller) List() ([]string, error) {
	return c.attrs.List()
}

// Disable turns the LED off: trigger to none, then brightness to zero. Each
// write gets the bounded retry before its error is surfaced.
func (c *Controller) Disable(id string) error {
	if err := c.write(id, AttrTrigger, triggerNone); err != nil {
		return fmt.Errorf("led %q: setting trigger: %w", id, err)
	}
	if err := c.write(id, AttrBrightness, "0"); err != nil {
		return fmt.Errorf("led %q: setting brightness: %w", id, err)
	}
	klog.V(2).Infof("led %q disabled", id)
	return nil
}

func (c *Controller) write(id, name, value string) error {
	var err error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		err = c.attrs.WriteAttr(id, name, value)
		if err == nil {
			return nil
		}
		if !c.retryable(err) {
			return err
		}
		klog.V(2).Infof("led %q: write %s=%s attempt %d/%d failed: %v", id, name, value, attempt, c.attempts, err)
	}
	return err
}
