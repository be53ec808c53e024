package sysfs_test

import (
	"os"
	"path/filepath"

	"github.com/elcritch/power-control/internal/sysfs"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Dir", func() {
	var base string
	var dir *sysfs.Dir

	BeforeEach(func() {
		base = GinkgoT().TempDir()
		dir = sysfs.New(base)

		Expect(os.MkdirAll(filepath.Join(base, "cpu0"), 0o755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(base, "cpu0", "scaling_governor"), []byte("ondemand\n"), 0o644)).To(Succeed())
	})

	Context("reading", func() {
		It("should trim the trailing newline the kernel appends", func() {
			value, err := dir.ReadAttr("cpu0", "scaling_governor")
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal("ondemand"))
		})

		It("should classify a missing attribute as not found", func() {
			_, err := dir.ReadAttr("cpu0", "scaling_max_freq")
			Expect(err).To(MatchError(sysfs.ErrNotFound))
		})

		It("should classify a missing subdirectory as not found", func() {
			_, err := dir.ReadAttr("cpu9", "scaling_governor")
			Expect(err).To(MatchError(sysfs.ErrNotFound))
		})
	})

	Context("writing", func() {
		It("should replace the attribute contents", func() {
			Expect(dir.WriteAttr("cpu0", "scaling_governor", "performance")).To(Succeed())

			value, err := dir.ReadAttr("cpu0", "scaling_governor")
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal("performance"))
		})

		It("should classify a write into a missing subdirectory as not found", func() {
			err := dir.WriteAttr("cpu9", "scaling_governor", "performance")
			Expect(err).To(MatchError(sysfs.ErrNotFound))
		})

		It("should not create a missing attribute file", func() {
			err := dir.WriteAttr("cpu0", "scaling_setspeed", "600000")
			Expect(err).To(MatchError(sysfs.ErrNotFound))
			_, statErr := os.Stat(filepath.Join(base, "cpu0", "scaling_setspeed"))
			Expect(os.IsNotExist(statErr)).To(BeTrue())
		})
	})

	Context("listing", func() {
		It("should return the base directory entries", func() {
			Expect(os.MkdirAll(filepath.Join(base, "cpu1"), 0o755)).To(Succeed())

			names, err := dir.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(names).To(ConsistOf("cpu0", "cpu1"))
		})

		It("should classify a missing base directory as not found", func() {
			missing := sysfs.New(filepath.Join(base, "nope"))

			_, err := missing.List()
			Expect(err).To(MatchError(sysfs.ErrNotFound))
		})
	})

	Context("existence", func() {
		It("should report subdirectories only", func() {
			Expect(dir.Exists("cpu0")).To(BeTrue())
			Expect(dir.Exists("cpu9")).To(BeFalse())
			// A plain file is not an attribute subtree.
			Expect(os.WriteFile(filepath.Join(base, "uevent"), nil, 0o644)).To(Succeed())
			Expect(dir.Exists("uevent")).To(BeFalse())
		})
	})
})
