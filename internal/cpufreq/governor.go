package cpufreq

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"k8s.io/klog/v2"
)

// Governor names a kernel frequency-scaling policy. The vocabulary is
// device-defined and discovered at runtime from the available-governors
// attribute; comparisons are exact string match against that list.
type Governor string

const GovernorPerformance Governor = "performance"

// ErrInvalidGovernor marks a requested governor that the device does not
// offer. The write is never attempted in this case, so callers can tell bad
// input apart from a bad environment.
var ErrInvalidGovernor = errors.New("governor not available on this cpu")

// Governors reads and writes the scaling governor of individual CPUs.
type Governors struct {
	attrs Attrs
}

func NewGovernors(attrs Attrs) *Governors {
	return &Governors{attrs: attrs}
}

// Available returns the governors the device offers for the CPU, in the order
// the kernel reports them.
func (g *Governors) Available(cpu CPU) ([]Governor, error) {
	raw, err := g.attrs.ReadAttr(cpu.freqDir(), AttrAvailableGovernors)
	if err != nil {
		return nil, fmt.Errorf("%s: reading available governors: %w", cpu, err)
	}
	fields := strings.Fields(raw)
	governors := make([]Governor, len(fields))
	for i, field := range fields {
		governors[i] = Governor(field)
	}
	return governors, nil
}

// Current returns the CPU's active governor.
func (g *Governors) Current(cpu CPU) (Governor, error) {
	raw, err := g.attrs.ReadAttr(cpu.freqDir(), AttrGovernor)
	if err != nil {
		return "", fmt.Errorf("%s: reading governor: %w", cpu, err)
	}
	return Governor(raw), nil
}

// Set validates the governor against the CPU's available list and, only if it
// is offered, writes it. Returns the governor that was set.
func (g *Governors) Set(cpu CPU, governor Governor) (Governor, error) {
	available, err := g.Available(cpu)
	if err != nil {
		return "", err
	}
	if !slices.Contains(available, governor) {
		return "", fmt.Errorf("%s: %q (available: %v): %w", cpu, governor, available, ErrInvalidGovernor)
	}
	if err := g.attrs.WriteAttr(cpu.freqDir(), AttrGovernor, string(governor)); err != nil {
		return "", fmt.Errorf("%s: writing governor %q: %w", cpu, governor, err)
	}
	klog.V(2).Infof("%s: governor set to %q", cpu, governor)
	return governor, nil
}
