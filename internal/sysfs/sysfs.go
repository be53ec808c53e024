// Package sysfs provides read/write access to kernel attribute files under a
// configurable base directory.
package sysfs

import (
	"os"
	"path/filepath"
	"strings"

	"k8s.io/klog/v2"
)

// Dir is bound to one sysfs base directory (e.g. /sys/devices/system/cpu or
// /sys/class/leds) and addresses attribute files as <base>/<sub>/<name>.
type Dir struct {
	base string
}

func New(base string) *Dir {
	return &Dir{base: base}
}

func (d *Dir) Base() string {
	return d.base
}

// ReadAttr returns the contents of an attribute file with trailing whitespace
// trimmed. Kernel attribute reads terminate with a newline that callers never
// want.
func (d *Dir) ReadAttr(sub, name string) (string, error) {
	path := filepath.Join(d.base, sub, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", classify(err)
	}
	return strings.TrimSpace(string(data)), nil
}

// WriteAttr writes value to an attribute file. The file must already exist;
// attribute files are created by the kernel, never by us.
func (d *Dir) WriteAttr(sub, name, value string) error {
	path := filepath.Join(d.base, sub, name)
	klog.V(2).Infof("writing %q to %s", value, path)
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return classify(err)
	}
	_, err = file.WriteString(value)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return classify(err)
	}
	return nil
}

// List returns the entry names of the base directory.
func (d *Dir) List() ([]string, error) {
	entries, err := os.ReadDir(d.base)
	if err != nil {
		return nil, classify(err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

// Exists reports whether the subdirectory is present under the base.
func (d *Dir) Exists(sub string) bool {
	info, err := os.Stat(filepath.Join(d.base, sub))
	return err == nil && info.IsDir()
}
