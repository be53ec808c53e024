package cpufreq

import (
	"errors"
	"fmt"

	"k8s.io/klog/v2"
)

// ErrNonUniformGovernors marks a bulk frequency override rejected because the
// discovered CPUs are not all pinned to the performance governor.
var ErrNonUniformGovernors = errors.New("cpus are not uniformly on the performance governor")

// IntelPolicy applies a maximum-frequency override across every discovered
// CPU. On this hardware family scaling_max_freq is only a stable setting when
// every CPU runs the non-scaling performance governor, so the override is
// refused outright while any CPU reports something else.
type IntelPolicy struct {
	resolver  *Resolver
	governors *Governors
	params    *Params
}

func NewIntelPolicy(resolver *Resolver, governors *Governors, params *Params) *IntelPolicy {
	return &IntelPolicy{
		resolver:  resolver,
		governors: governors,
		params:    params,
	}
}

// SetMaxFrequency writes scaling_max_freq = freq to every discovered CPU and
// reports a per-CPU outcome (nil meaning success). The whole call fails, with
// no writes attempted, when freq is negative, when discovery fails, or when
// the governor precondition does not hold.
func (p *IntelPolicy) SetMaxFrequency(freq int) (map[CPU]error, error) {
	if freq < 0 {
		return nil, fmt.Errorf("frequency %d must be non-negative: %w", freq, ErrInvalidArgument)
	}
	cpus, err := p.resolver.CPUs()
	if err != nil {
		return nil, fmt.Errorf("discovering cpus: %w", err)
	}

	observed := make(map[Governor]struct{}, 1)
	for _, cpu := range cpus {
		governor, err := p.governors.Current(cpu)
		if err != nil {
			return nil, err
		}
		observed[governor] = struct{}{}
	}
	if _, ok := observed[GovernorPerformance]; !ok || len(observed) != 1 {
		names := make([]Governor, 0, len(observed))
		for governor := range observed {
			names = append(names, governor)
		}
		return nil, fmt.Errorf("observed governors %v: %w", names, ErrNonUniformGovernors)
	}

	results := make(map[CPU]error, len(cpus))
	for _, cpu := range cpus {
		perKey, err := p.params.Set(cpu, map[string]int{AttrMaxFreq: freq})
		if err != nil {
			results[cpu] = err
			continue
		}
		results[cpu] = perKey[AttrMaxFreq]
	}
	klog.V(2).Infof("applied scaling_max_freq=%d to %d cpus", freq, len(cpus))
	return results, nil
}
