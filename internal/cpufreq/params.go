package cpufreq

import (
	"fmt"
	"strconv"

	"k8s.io/klog/v2"

	"github.com/elcritch/power-control/internal/sysfs"
)

// Params writes arbitrary scaling attribute files and reads frequency info.
type Params struct {
	attrs Attrs
}

func NewParams(attrs Attrs) *Params {
	return &Params{attrs: attrs}
}

// Set writes each named attribute independently and reports a per-key outcome
// (nil meaning success). One key's failure does not stop the others; there is
// no rollback, and callers detect partial application by inspecting the map.
// A nil or empty map and malformed attribute names are caller-contract
// violations and fail the whole call before any write is attempted.
func (p *Params) Set(cpu CPU, params map[string]int) (map[string]error, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("no parameters given: %w", ErrInvalidArgument)
	}
	for name := range params {
		if !attrNameRe.MatchString(name) {
			return nil, fmt.Errorf("parameter name %q: %w", name, ErrInvalidArgument)
		}
	}
	results := make(map[string]error, len(params))
	for name, value := range params {
		err := p.attrs.WriteAttr(cpu.freqDir(), name, strconv.Itoa(value))
		if err != nil {
			klog.V(2).Infof("%s: writing %s=%d failed: %v", cpu, name, value, err)
		}
		results[name] = err
	}
	return results, nil
}

// Labels reported by Info alongside any caller-supplied extras.
var baseInfoAttrs = map[string]string{
	"speed":     AttrCurFreq,
	"min_speed": AttrMinFreq,
	"max_speed": AttrMaxFreq,
}

// Info reads the base frequency attributes plus any extra label->attribute
// pairs and parses each as an integer. Unlike Set this is all-or-nothing: a
// missing CPU fails with sysfs.ErrNotFound, and any single unreadable or
// unparsable attribute fails the whole call rather than omitting the field.
func (p *Params) Info(cpu CPU, extra map[string]string) (map[string]int, error) {
	if !p.attrs.Exists(cpu.String()) {
		return nil, fmt.Errorf("%s: %w", cpu, sysfs.ErrNotFound)
	}
	info := make(map[string]int, len(baseInfoAttrs)+len(extra))
	read := func(label, attr string) error {
		if !attrNameRe.MatchString(attr) {
			return fmt.Errorf("attribute name %q: %w", attr, ErrInvalidArgument)
		}
		raw, err := p.attrs.ReadAttr(cpu.freqDir(), attr)
		if err != nil {
			return fmt.Errorf("%s: reading %s: %w", cpu, attr, err)
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s: parsing %s value %q: %w", cpu, attr, raw, err)
		}
		info[label] = value
		return nil
	}
	for label, attr := range baseInfoAttrs {
		if err := read(label, attr); err != nil {
			return nil, err
		}
	}
	for label, attr := range extra {
		if err := read(label, attr); err != nil {
			return nil, err
		}
	}
	return info, nil
}
