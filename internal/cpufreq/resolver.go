package cpufreq

import (
	"slices"
	"strconv"
)

// Resolver discovers which CPUs are present under the base directory.
type Resolver struct {
	attrs Attrs
}

func NewResolver(attrs Attrs) *Resolver {
	return &Resolver{attrs: attrs}
}

// CPUs lists the processors present under the base directory in ascending
// numeric order. Entries that do not match the cpuN naming convention (e.g.
// the shared cpufreq and cpuidle directories) are skipped. A missing base
// directory surfaces as sysfs.ErrNotFound, the signal that the device has no
// frequency scaling support at all.
func (r *Resolver) CPUs() ([]CPU, error) {
	names, err := r.attrs.List()
	if err != nil {
		return nil, err
	}
	cpus := make([]CPU, 0, len(names))
	for _, name := range names {
		match := cpuDirRe.FindStringSubmatch(name)
		if match == nil {
			continue
		}
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		cpus = append(cpus, CPU(n))
	}
	slices.Sort(cpus)
	return cpus, nil
}

// Exists reports whether the CPU's attribute subtree is present.
func (r *Resolver) Exists(cpu CPU) bool {
	return r.attrs.Exists(cpu.String())
}
