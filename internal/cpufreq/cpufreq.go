// Package cpufreq controls the kernel CPU frequency-scaling subsystem through
// its sysfs attribute files.
package cpufreq

import (
	"errors"
	"path"
	"regexp"
	"strconv"
)

const (
	AttrAvailableGovernors = "scaling_available_governors"
	AttrGovernor           = "scaling_governor"
	AttrCurFreq            = "scaling_cur_freq"
	AttrMinFreq            = "scaling_min_freq"
	AttrMaxFreq            = "scaling_max_freq"

	// freqSubdir holds the scaling attributes inside each CPU directory.
	freqSubdir = "cpufreq"
)

// ErrInvalidArgument marks a caller-contract violation (malformed attribute
// name, negative frequency). Distinct from environment failures so callers can
// tell their own mistakes from a misconfigured device.
var ErrInvalidArgument = errors.New("invalid argument")

var (
	cpuDirRe   = regexp.MustCompile(`^cpu(\d+)$`)
	attrNameRe = regexp.MustCompile(`^[a-z0-9_]+$`)
)

// CPU identifies one processor by its ordinal index. The zero value is cpu0.
type CPU int

func (c CPU) String() string {
	return "cpu" + strconv.Itoa(int(c))
}

// freqDir is the CPU subdirectory holding the scaling attribute files.
func (c CPU) freqDir() string {
	return path.Join(c.String(), freqSubdir)
}

// Attrs is the accessor seam to the sysfs base directory. Satisfied by
// *sysfs.Dir; tests substitute write-counting fakes.
type Attrs interface {
	ReadAttr(sub, name string) (string, error)
	WriteAttr(sub, name, value string) error
	List() ([]string, error)
	Exists(sub string) bool
}
