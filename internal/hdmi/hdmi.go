// Package hdmi toggles the display output through the framebuffer blank flag.
package hdmi

import (
	"fmt"

	"k8s.io/klog/v2"
)

const (
	// Framebuffer device under the graphics class directory.
	fbDevice = "fb0"

	attrBlank = "blank"

	blankOn  = "1"
	blankOff = "0"
)

// Attrs is the accessor seam to the graphics class directory. Satisfied by
// *sysfs.Dir.
type Attrs interface {
	WriteAttr(sub, name, value string) error
}

// Switch enables and disables the HDMI output. No retry: the blank flag write
// either takes effect or the device has no framebuffer at all.
type Switch struct {
	attrs Attrs
}

func NewSwitch(attrs Attrs) *Switch {
	return &Switch{attrs: attrs}
}

func (s *Switch) Disable() error {
	if err := s.attrs.WriteAttr(fbDevice, attrBlank, blankOn); err != nil {
		return fmt.Errorf("blanking %s: %w", fbDevice, err)
	}
	klog.V(2).Info("hdmi output disabled")
	return nil
}

func (s *Switch) Enable() error {
	if err := s.attrs.WriteAttr(fbDevice, attrBlank, blankOff); err != nil {
		return fmt.Errorf("unblanking %s: %w", fbDevice, err)
	}
	klog.V(2).Info("hdmi output enabled")
	return nil
}
